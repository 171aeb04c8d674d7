package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"jobnexus/internal/config"
	"jobnexus/internal/domain"
	"jobnexus/internal/events"
	"jobnexus/internal/handler"
	"jobnexus/internal/metrics"
	"jobnexus/internal/middleware"
	"jobnexus/internal/pkg/i18n"
	"jobnexus/internal/realtime"
	"jobnexus/internal/repository"
	"jobnexus/internal/service"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	log, err := config.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if envErr != nil {
		log.Info("no .env file found, using environment variables")
	}

	if err := i18n.LoadTranslations(cfg.LocalesPath); err != nil {
		log.Fatal("failed to load notification copy", zap.String("path", cfg.LocalesPath), zap.Error(err))
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg, log)
	if err != nil {
		log.Warn("failed to connect to minio, company logos will not be removed", zap.Error(err))
		minioClient = nil
	}

	metrics.Init()

	publisher, consumer, err := newEventBus(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to event broker", zap.String("broker", cfg.EventBroker), zap.Error(err))
	}
	defer publisher.Close()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, publisher, cfg, log)

	hub := realtime.NewHub(log.Named("realtime"))
	defer hub.Close()
	services.Notification.SetBroadcaster(hub)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(ctx, services.Notification.HandleRequested); err != nil {
		log.Fatal("failed to start notification consumer", zap.Error(err))
	}
	go purgeExpiredSessions(ctx, repos.Session, log)

	handlers := handler.NewHandlers(services, hub, cfg, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, PATCH, DELETE, OPTIONS",
		AllowCredentials: cfg.CORSOrigins != "*",
	}))
	app.Use(middleware.LoadIdentity(services.Auth, cfg.SessionCookie))

	setupRoutes(app, handlers, cfg)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Warn("shutdown did not complete cleanly", zap.Error(err))
		}
	}()

	log.Info("server starting", zap.String("port", cfg.Port), zap.String("broker", cfg.EventBroker))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// The polling endpoint answers every method itself, 401 and 405 included.
	app.All("/api/notifications", h.Notification.API)

	forms := middleware.CSRF(cfg.IsProduction())
	signedIn := middleware.PageAuthRequired()

	auth := app.Group("/auth", forms)
	auth.Get("/login", h.Auth.LoginForm)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/logout", h.Auth.Logout)

	app.Get("/meeting", h.Meeting.Show)
	app.Post("/meeting/room", h.Meeting.Room)
	app.Get("/notifications", forms, signedIn, h.Notification.Page)
	app.Post("/notifications", forms, signedIn, h.Notification.PageAction)
	app.Post("/settings/delete-account", forms, signedIn, h.Account.Delete)

	app.Get("/ws/notifications", h.Realtime.Upgrade, h.Realtime.Stream())

	app.Post("/jobs/:id/apply", middleware.AuthRequired(), middleware.RequireRole(domain.RoleSeeker), h.Application.Apply)

	hr := app.Group("/hr", middleware.AuthRequired(), middleware.RequireRole(domain.RoleHR))
	hr.Post("/applications/:id/status", h.Application.UpdateStatus)
	hr.Post("/applications/:id/rating", h.Application.UpdateRating)
	hr.Post("/interviews", h.Interview.Schedule)
	hr.Post("/interviews/:token/cancel", h.Interview.Cancel)
	hr.Post("/interviews/:token/reschedule", h.Interview.Reschedule)
	hr.Post("/interviews/:token/complete", h.Interview.Complete)
}

// newEventBus selects the transport behind notification events. The local
// bus delivers in-process and needs no broker.
func newEventBus(cfg *config.Config, log *zap.Logger) (events.Publisher, events.Consumer, error) {
	switch cfg.EventBroker {
	case "nats":
		bus, err := events.NewNATSBus(cfg.NATSURL, cfg.NATSQueue, log.Named("nats"))
		if err != nil {
			return nil, nil, err
		}
		return bus, bus, nil
	case "kafka":
		return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic),
			events.NewKafkaConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID, log.Named("kafka")),
			nil
	}
	bus := events.NewLocalBus()
	return bus, bus, nil
}

func purgeExpiredSessions(ctx context.Context, sessions repository.SessionRepository, log *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sessions.DeleteExpired(ctx); err != nil {
				log.Warn("failed to purge expired sessions", zap.Error(err))
			}
		}
	}
}
