package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/SagarNRao/agile-lab2-startup-market/docs"
	"github.com/SagarNRao/agile-lab2-startup-market/internal/access"
	"github.com/SagarNRao/agile-lab2-startup-market/internal/chat"
	"github.com/SagarNRao/agile-lab2-startup-market/internal/config"
	"github.com/SagarNRao/agile-lab2-startup-market/internal/startup"
	mw "github.com/SagarNRao/agile-lab2-startup-market/pkg/middleware"
)

// @title           Startup Market API
// @version         1.0
// @description     Post startup ideas, apply for roles, review applications as the owner, and chat with the team. All state is in-memory and resets on restart.
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Unlock token from POST /sessions, sent as "Bearer <token>"

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Startup feature
	startupRepo := startup.NewRepository()
	startupService := startup.NewService(startupRepo)

	// Access feature (owner verification and unlock sessions)
	accessService := access.NewService(startupService)
	accessHandler := access.NewHandler(accessService)

	guard := mw.RequireUnlock(accessService)
	startupHandler := startup.NewHandler(startupService, guard)

	// Chat feature
	chatRepo := chat.NewRepository()
	chatService := chat.NewService(chatRepo, cfg.ChatHistoryLimit)
	chatHandler := chat.NewHandler(chatService, startupService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Mount feature routers
		r.Mount("/startups", startupHandler.Routes())
		r.Mount("/sessions", accessHandler.Routes())
		r.Mount("/chats", chatHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
