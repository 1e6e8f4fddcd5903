package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/flashchat/flashchat-go/internal/config"
	"github.com/flashchat/flashchat-go/internal/gemini"
	"github.com/flashchat/flashchat-go/internal/handler"
	"github.com/flashchat/flashchat-go/internal/middleware"
	"github.com/flashchat/flashchat-go/internal/repository"
	"github.com/flashchat/flashchat-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Completion client is built once and injected; without it the AI
	// routes are disabled but auth/session routes still work.
	var completer service.Completer
	ai, err := gemini.NewClient(context.Background(), gemini.Config{
		APIKey:     cfg.GeminiAPIKey,
		TextModel:  cfg.TextModel,
		ImageModel: cfg.ImageModel,
		Timeout:    cfg.ProviderTimeout,
	})
	if err != nil {
		slog.Warn("gemini client init failed — AI routes disabled", "error", err)
	} else {
		completer = ai

		assistService := service.NewAssistService(completer)
		assistHandler := handler.NewAssistHandler(assistService)

		// Free-tier AI endpoints: no auth, but rate limited per IP since
		// every request is a paid provider call.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(2, 5))
			r.Post("/codeReview", assistHandler.HandleCodeReview)
			r.Post("/summarizeText", assistHandler.HandleSummarizeText)
			r.Post("/fileHandler", assistHandler.HandleFileUpload)
			r.Post("/codeGenerator", assistHandler.HandleCodeGenerator)
			r.Post("/generateImage", assistHandler.HandleGenerateImage)
		})
	}

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Warn("database connection failed — auth and chat routes disabled", "error", err)
	} else {
		userRepo := repository.NewUserRepository(db)
		authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
		authHandler := handler.NewAuthHandler(authService, cfg.JWTExpiry)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(5, 10))
			r.Post("/signup", authHandler.HandleSignup)
			r.Post("/login", authHandler.HandleLogin)
		})
		r.Get("/logout", authHandler.HandleLogout)

		chatRepo := repository.NewChatRepository(db)
		chatService := service.NewChatService(chatRepo, completer)
		chatHandler := handler.NewChatHandler(chatService)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))
			r.Get("/checkAuth", authHandler.HandleCheckAuth)
			r.Get("/fetchAllChats", chatHandler.HandleFetchAllChats)

			// Sending needs the completion client.
			if completer != nil {
				r.Post("/chat", chatHandler.HandleChat)
			}
		})
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
