package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"realty/backend/internal/config"
	"realty/backend/internal/httpserver"
	"realty/backend/internal/infrastructure/postgres"
	"realty/backend/internal/infrastructure/smtp"
	"realty/backend/internal/infrastructure/token"
	articleusecase "realty/backend/internal/usecase/article"
	authusecase "realty/backend/internal/usecase/auth"
	resetusecase "realty/backend/internal/usecase/passwordreset"
	propertyusecase "realty/backend/internal/usecase/property"
	userusecase "realty/backend/internal/usecase/user"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}
	logger.Info("database ready")

	users := postgres.NewUserRepository(db.Pool)
	properties := postgres.NewPropertyRepository(db.Pool)
	articles := postgres.NewArticleRepository(db.Pool)

	tokens := token.NewJWTManager(cfg.JWTSecret, cfg.TokenExpiry, cfg.JWTIssuer)
	csrf := token.NewCSRFManager(cfg.CSRFSecret, cfg.TokenExpiry)
	mailer := smtp.NewMailer(smtp.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})

	services := httpserver.Services{
		Auth:          authusecase.NewService(users),
		Users:         userusecase.NewService(users),
		Properties:    propertyusecase.NewService(properties),
		Articles:      articleusecase.NewService(articles),
		PasswordReset: resetusecase.NewService(users, mailer, logger, cfg.ResetTokenTTL, cfg.ResetURLBase, cfg.NotifyTimeout),
	}

	server := httpserver.NewServer(cfg, logger, tokens, csrf, services)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", server.Addr()))
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
