package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	grpcctx "github.com/dtroode/courseauth/internal/api/grpc/context"
	grpcrouter "github.com/dtroode/courseauth/internal/api/grpc/router"
	grpcserver "github.com/dtroode/courseauth/internal/api/grpc/server"
	"github.com/dtroode/courseauth/internal/api/http/handler"
	httprouter "github.com/dtroode/courseauth/internal/api/http/router"
	httpserver "github.com/dtroode/courseauth/internal/api/http/server"
	"github.com/dtroode/courseauth/internal/config"
	"github.com/dtroode/courseauth/internal/logger"
	"github.com/dtroode/courseauth/internal/model"
	"github.com/dtroode/courseauth/internal/notification"
	"github.com/dtroode/courseauth/internal/repository"
	"github.com/dtroode/courseauth/internal/server"
	"github.com/dtroode/courseauth/internal/service"
	storage "github.com/dtroode/courseauth/internal/storage/minio"
	"github.com/dtroode/courseauth/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	stores, err := repository.New(ctx, cfg.StorageDriver, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer stores.Close()

	mailer, err := newMailer(cfg.SMTP, logger)
	if err != nil {
		logger.Fatal("failed to initialize mailer", "error", err)
	}

	var opts []service.VerificationOption
	if cfg.Storage.Endpoint != "" {
		archive, err := storage.Connect(ctx, storage.Config{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			logger.Fatal("failed to initialize mail archive", "error", err)
		}
		opts = append(opts, service.WithArchive(archive))
	}

	verificationService := service.NewVerification(
		stores.Identities,
		stores.Events,
		stores.Tx,
		mailer,
		service.VerificationConfig{
			SenderAddress:   cfg.SMTP.From,
			BaseURL:         cfg.Verification.BaseURL,
			MaxAttempts:     cfg.Verification.MaxAttempts,
			DeliveryTimeout: cfg.Verification.DeliveryTimeout,
			Subject:         cfg.Verification.Subject,
		},
		logger,
		opts...,
	)
	sessionService := service.NewSession(token.NewJWT(cfg.JWT.Secret), stores.Sessions, cfg.Session.TTL, logger)

	grpcSrv := grpcserver.NewGRPCServer(
		grpcrouter.New(verificationService, sessionService, grpcctx.NewManager(), logger).Register(),
		fmt.Sprintf(":%s", cfg.GRPC.Port),
	)
	httpSrv := httpserver.NewHTTPServer(
		httprouter.New(verificationService, sessionService, handler.Config{
			CookieSecure: cfg.HTTP.CookieSecure,
			SessionTTL:   sessionService.TTL(),
		}, logger).Register(),
		fmt.Sprintf(":%s", cfg.HTTP.Port),
	)

	servers := []struct {
		server model.Server
		sl     model.SecurityLayer
	}{
		{grpcSrv, server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)},
		{httpSrv, server.NewPlainListener()},
	}

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server, sl model.SecurityLayer) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s.server, s.sl)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.server.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.server.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func newMailer(cfg config.SMTP, logger *logger.Logger) (model.Mailer, error) {
	if cfg.Host == "" {
		logger.Warn("SMTP host is not set, verification emails are only logged")
		return notification.NewLogMailer(logger), nil
	}

	return notification.NewSMTPMailer(notification.SMTPConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		TLS:      cfg.TLS,
	}, logger)
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
