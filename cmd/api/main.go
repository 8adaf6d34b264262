package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/recipeshare/backend/config"
	"github.com/recipeshare/backend/internal/database"
	"github.com/recipeshare/backend/internal/server"
	"github.com/recipeshare/backend/internal/service"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}

	s3cfg, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize S3")
	}
	if s3cfg == nil {
		logrus.Warn("no S3 bucket configured, image uploads disabled")
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	imageService := service.NewImageService(s3cfg)

	srv := server.New(cfg, db, authService, imageService)

	errChan := make(chan error, 1)
	go func() {
		logrus.WithField("addr", cfg.ServerHost+":"+cfg.ServerPort).Info("starting server")
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logrus.WithError(err).Fatal("server error")
		}
	case sig := <-quit:
		logrus.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("server shutdown error")
	}
	logrus.Info("server stopped")
}
