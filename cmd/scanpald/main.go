package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Tieahapani/Scanpal-Intelligent-Receipt-Organizer/internal/classify/gemini"
	"github.com/Tieahapani/Scanpal-Intelligent-Receipt-Organizer/internal/common"
	"github.com/Tieahapani/Scanpal-Intelligent-Receipt-Organizer/internal/ocr/azure"
	"github.com/Tieahapani/Scanpal-Intelligent-Receipt-Organizer/internal/otp"
	"github.com/Tieahapani/Scanpal-Intelligent-Receipt-Organizer/internal/receipt"
	"github.com/Tieahapani/Scanpal-Intelligent-Receipt-Organizer/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analyzer := azure.NewClient(azure.Config{
		Endpoint:     cfg.OCR.Endpoint,
		APIKey:       cfg.OCR.APIKey,
		APIVersion:   cfg.OCR.APIVersion,
		PollInterval: cfg.OCR.PollInterval,
		Timeout:      cfg.OCR.Timeout,
	}, logger)

	classifier := gemini.NewClient(gemini.Config{
		APIKey:  cfg.Classify.APIKey,
		Model:   cfg.Classify.Model,
		Timeout: cfg.Classify.Timeout,
	}, logger)

	mailer := otp.NewSMTPMailer(otp.SMTPConfig{
		Host: cfg.SMTP.Host,
		Port: cfg.SMTP.Port,
		User: cfg.SMTP.User,
		Pass: cfg.SMTP.Pass,
		From: cfg.SMTP.From,
	})
	otpSvc := otp.NewService(otp.NewMemoryStore(), mailer, cfg.OTP.TTL, logger)

	handler := server.NewHandler(analyzer, classifier, otpSvc, receipt.DefaultPolicy(), logger)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("stopped")
}
