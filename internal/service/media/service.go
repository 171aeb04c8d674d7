package media

import (
	"context"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"

	"jobnexus/internal/config"
)

// ObjectStore is the subset of *minio.Client used for company logos.
type ObjectStore interface {
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type Service interface {
	PublicURL(storagePath string) string
	Remove(ctx context.Context, storagePath string) error
}

type service struct {
	store ObjectStore
	cfg   *config.Config
}

func NewService(store ObjectStore, cfg *config.Config) Service {
	return &service{store: store, cfg: cfg}
}

// PublicURL maps a stored logo path to its public bucket URL. Absolute URLs
// are returned unchanged and an empty path yields "".
func (s *service) PublicURL(storagePath string) string {
	storagePath = strings.TrimSpace(storagePath)
	if storagePath == "" {
		return ""
	}
	if strings.HasPrefix(storagePath, "http://") || strings.HasPrefix(storagePath, "https://") {
		return storagePath
	}

	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	u := url.URL{
		Scheme: scheme,
		Host:   s.cfg.MinIOPublicEndpoint,
		Path:   "/" + s.cfg.MinIOBucket + "/" + strings.TrimPrefix(storagePath, "/"),
	}
	return u.String()
}

func (s *service) Remove(ctx context.Context, storagePath string) error {
	storagePath = strings.TrimSpace(storagePath)
	if s.store == nil || storagePath == "" || strings.Contains(storagePath, "://") {
		return nil
	}
	return s.store.RemoveObject(ctx, s.cfg.MinIOBucket, strings.TrimPrefix(storagePath, "/"), minio.RemoveObjectOptions{})
}
