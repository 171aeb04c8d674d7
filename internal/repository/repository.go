package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Notification NotificationRepository
	Event        EventRepository
	Application  ApplicationRepository
	Account      AccountRepository
	Session      SessionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Notification: NewNotificationRepository(db),
		Event:        NewEventRepository(db),
		Application:  NewApplicationRepository(db),
		Account:      NewAccountRepository(db),
		Session:      NewSessionRepository(db),
	}
}
