package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/almadepapel/storefront/internal/config"
	"github.com/almadepapel/storefront/internal/events"
	"github.com/almadepapel/storefront/internal/httpserver"
	"github.com/almadepapel/storefront/internal/logging"
	"github.com/almadepapel/storefront/internal/mail"
	"github.com/almadepapel/storefront/internal/metrics"
	authmw "github.com/almadepapel/storefront/internal/middleware/auth"
	loggingmw "github.com/almadepapel/storefront/internal/middleware/logging"
	"github.com/almadepapel/storefront/internal/repo"
	"github.com/almadepapel/storefront/internal/service"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	if configuration.SESSION_SECRET == "" {
		logger.Warn("SESSION_SECRET is empty, sessions will not survive restarts safely")
	}

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	var producer *events.Producer
	var publisher events.Publisher
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{configuration.KAFKA_ADDRESS})
		publisher = producer
	} else {
		logger.Warn("KAFKA_ADDRESS is empty, domain events disabled")
	}

	sender, err := mail.NewSMTPSender(configuration)
	if err != nil {
		log.Fatal(err)
	}

	gormRepo := &repo.GormRepo{DB: db}
	authSvc := &service.AuthService{Repo: gormRepo, Secret: []byte(configuration.SESSION_SECRET)}
	catalogSvc := &service.CatalogService{Repo: gormRepo}
	contactSvc := &service.ContactService{Sender: sender}
	sessionMW := &authmw.Middleware{Auth: authSvc}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc:      authSvc,
			Session:  sessionMW,
			Producer: publisher,
			Secure:   configuration.Production(),
		},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc},
		AdminHandler:   &httpserver.AdminHTTP{Svc: catalogSvc, Producer: publisher},
		ContactHandler: &httpserver.ContactHTTP{Svc: contactSvc},
		Session:        sessionMW,
		Metrics:        metrics.New(prometheus.DefaultRegisterer),
		StaticRoot:     "web",
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("storefront listening", "addr", configuration.HTTP_ADDR)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	} else {
		logger.Error("db handle error", "error", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
