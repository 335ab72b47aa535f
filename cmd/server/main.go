package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/olatube/backend/internal/config"
	"github.com/olatube/backend/internal/database"
	"github.com/olatube/backend/internal/mailer"
	postgresrepo "github.com/olatube/backend/internal/repository/postgres"
	"github.com/olatube/backend/internal/service"
	"github.com/olatube/backend/internal/transport/http/handlers"
	"github.com/olatube/backend/internal/transport/http/middleware"
	"github.com/olatube/backend/internal/transport/ws"
)

func main() {
	cfg := config.Load()

	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	log.SetReportTimestamp(true)

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("database connect failed", "err", err)
	}
	defer pool.Close()

	if err := database.Migrate(pool); err != nil {
		log.Fatal("migrations failed", "err", err)
	}
	log.Info("connected to database", "host", cfg.DBHost, "db", cfg.DBName)

	// Repositories
	accountRepo := postgresrepo.NewAccountRepo(pool)

	// Mailer: no-op unless SMTP is configured.
	var mail mailer.Mailer = mailer.Nop{}
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	}

	// Services
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(accountRepo, tokenService, mail)
	profileService := service.NewProfileService(accountRepo)
	subscriptionService := service.NewSubscriptionService(accountRepo)

	// WebSocket hub for real-time notification events
	hub := ws.NewHub()
	go hub.Run()
	subscriptionService.SetNotifier(ws.NewHubNotifier(hub))

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)

	// Auth middleware
	auth := middleware.Auth(tokenService)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /accounts", authHandler.Register)
	mux.HandleFunc("POST /sessions", authHandler.Login)
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, tokenService))

	// Protected - Profile
	mux.Handle("GET /accounts/{id}/profile", auth(http.HandlerFunc(profileHandler.Get)))
	mux.Handle("PUT /accounts/{id}/profile", auth(http.HandlerFunc(profileHandler.Update)))

	// Protected - Subscriptions
	mux.Handle("POST /accounts/{id}/subscriptions", auth(http.HandlerFunc(subscriptionHandler.Subscribe)))
	mux.Handle("DELETE /accounts/{id}/subscriptions/{channelId}", auth(http.HandlerFunc(subscriptionHandler.Unsubscribe)))
	mux.Handle("GET /accounts/{id}/subscriptions", auth(http.HandlerFunc(subscriptionHandler.List)))
	mux.Handle("POST /accounts/{id}/notifications/reset", auth(http.HandlerFunc(subscriptionHandler.ResetNotifications)))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Info("starting server", "addr", addr)
	if err := http.ListenAndServe(addr, middleware.CORS(mux)); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
