package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/AnshRaj112/keepsake-backend/internal/config"
	"github.com/AnshRaj112/keepsake-backend/internal/handlers"
	"github.com/AnshRaj112/keepsake-backend/internal/middleware"
	"github.com/AnshRaj112/keepsake-backend/internal/routes"
	"github.com/AnshRaj112/keepsake-backend/internal/services"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	b, err := openBackends(startCtx, cfg)
	cancel()
	if err != nil {
		log.Fatal("Failed to open storage: ", err)
	}
	defer b.Close()

	cipherCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	cipher, err := services.NewLegacyCipher(cipherCtx, b.kv, cfg.EncryptionKey, cfg.EncryptionPassphrase)
	cancel()
	if err != nil {
		log.Fatal("Invalid legacy message encryption settings: ", err)
	}
	if cipher == nil {
		log.Println("⚠️  WARNING: ENCRYPTION_KEY not set. Legacy messages are stored as plain text.")
		log.Println("   To generate a key, run: openssl rand -base64 32")
	} else {
		log.Println("✅ Legacy messages encrypted at rest")
	}

	repos := services.NewRepositories(b.kv, b.photos, b.voice, cipher, cfg.Location(), nil)
	stats := services.NewStatsService(repos, nil)
	hub := services.NewEventHub()
	api := handlers.NewAPI(repos, stats, hub, cfg.AllowedOrigins)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Production: SecurityHeaders → per-IP limits (shared through Redis when available)
	if cfg.IsProduction() {
		if b.redis != nil {
			r.Use(middleware.SecurityHeaders)
			r.Use(middleware.RedisRateLimit(b.redis, cfg.RateLimitPrefix))
			r.Use(middleware.UploadRateLimit())
		} else {
			for _, mw := range middleware.ProductionSecurity() {
				r.Use(mw)
			}
		}
		log.Println("✅ Production security enabled (security headers, per-IP + upload rate limiting)")
	}

	routes.SetupRoutes(r, api)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("🚀 Keepsake backend running on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  Graceful shutdown failed: %v", err)
	}
}
