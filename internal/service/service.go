package service

import (
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"jobnexus/internal/config"
	"jobnexus/internal/events"
	"jobnexus/internal/repository"
	"jobnexus/internal/service/account"
	"jobnexus/internal/service/application"
	"jobnexus/internal/service/auth"
	"jobnexus/internal/service/email"
	"jobnexus/internal/service/interview"
	"jobnexus/internal/service/media"
	"jobnexus/internal/service/meeting"
	"jobnexus/internal/service/notification"
	"jobnexus/internal/service/notify"
)

type Services struct {
	Auth         auth.Service
	Notification notification.Service
	Notify       notify.Service
	Media        media.Service
	Email        email.Service
	Meeting      meeting.Service
	Interview    interview.Service
	Application  application.Service
	Account      account.Service
}

func NewServices(
	repos *repository.Repositories,
	redis *redis.Client,
	minioClient *minio.Client,
	publisher events.Publisher,
	cfg *config.Config,
	logger *zap.Logger,
) *Services {
	var store media.ObjectStore
	if minioClient != nil {
		store = minioClient
	}
	mediaService := media.NewService(store, cfg)
	emailService := email.NewService(cfg)

	notificationService := notification.NewService(repos.Notification, redis, logger.Named("notification"))
	notifier := notify.NewService(publisher, cfg.Locale, logger.Named("notify"))

	return &Services{
		Auth:         auth.NewService(repos.User, repos.Session, cfg, logger.Named("auth")),
		Notification: notificationService,
		Notify:       notifier,
		Media:        mediaService,
		Email:        emailService,
		Meeting:      meeting.NewService(repos.Event, mediaService, cfg.Location(), time.Now, logger.Named("meeting")),
		Interview:    interview.NewService(repos.Event, repos.Application, notifier, emailService, cfg.BaseURL, logger.Named("interview")),
		Application:  application.NewService(repos.Application, repos.User, notifier, logger.Named("application")),
		Account:      account.NewService(repos.User, repos.Account, notificationService, mediaService, logger.Named("account")),
	}
}
