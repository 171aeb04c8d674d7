package repository

import (
	"errors"

	"github.com/lib/pq"
)

const undefinedTable = "42P01"

// IsUndefinedTable reports whether err is Postgres "relation does not exist".
func IsUndefinedTable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == undefinedTable
	}
	return false
}
