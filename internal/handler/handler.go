package handler

import (
	"go.uber.org/zap"

	"jobnexus/internal/config"
	"jobnexus/internal/realtime"
	"jobnexus/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	Notification *NotificationHandler
	Meeting      *MeetingHandler
	Application  *ApplicationHandler
	Interview    *InterviewHandler
	Account      *AccountHandler
	Realtime     *RealtimeHandler
}

func NewHandlers(services *service.Services, hub *realtime.Hub, cfg *config.Config, logger *zap.Logger) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth, cfg),
		Notification: NewNotificationHandler(services.Notification, logger.Named("handler")),
		Meeting:      NewMeetingHandler(services.Meeting),
		Application:  NewApplicationHandler(services.Application),
		Interview:    NewInterviewHandler(services.Interview),
		Account:      NewAccountHandler(services.Account, cfg),
		Realtime:     NewRealtimeHandler(hub),
	}
}
