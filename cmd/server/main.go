package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ismobla/portfolio-api/internal/config"
	"github.com/ismobla/portfolio-api/internal/handler"
	"github.com/ismobla/portfolio-api/internal/logging"
	"github.com/ismobla/portfolio-api/internal/repository"
	"github.com/ismobla/portfolio-api/internal/service"
	"github.com/ismobla/portfolio-api/pkg/auth"
	"github.com/ismobla/portfolio-api/pkg/resend"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg := config.Load()

	pool, err := repository.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	contactRepo := repository.NewPgContactRepository(pool)
	mailer := resend.NewClient(cfg.ResendAPIKey)
	contactService := service.NewContactService(contactRepo, mailer, service.Options{
		IPSalt:          cfg.IPSalt,
		MailFrom:        cfg.MailFrom,
		NotifyFrom:      cfg.NotifyFrom,
		NotifyEmail:     cfg.NotifyEmail,
		CVURL:           cfg.CVURL,
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
	})

	h := handler.New(pool, cfg.AllowedOrigin)
	contactHandler := handler.NewContactHandler(contactService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("POST /api/contact", contactHandler.Submit)

	// Admin routes only exist when an operator token is configured.
	if cfg.AdminToken != "" {
		requireToken := auth.RequireToken(cfg.AdminToken)
		mux.Handle("GET /api/admin/contacts", requireToken(http.HandlerFunc(contactHandler.AdminList)))
	} else {
		slog.Warn("ADMIN_TOKEN not set, admin routes disabled")
	}

	// CORS outermost so pre-flight OPTIONS never reaches the method-scoped mux.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h.CORS(handler.SecurityHeaders(handler.RequestLogger(mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
