package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"magicgatherer-api/internal/cache"
	"magicgatherer-api/internal/config"
	"magicgatherer-api/internal/handler"
	"magicgatherer-api/internal/middleware"
	"magicgatherer-api/internal/repository"
	"magicgatherer-api/internal/router"
	"magicgatherer-api/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Starting %s v%s...", cfg.App.Name, cfg.App.Version)
	log.Printf("Environment: %s", cfg.App.Environment)
	if cfg.App.IsDevelopment() && os.Getenv("JWT_SECRET") == "" {
		log.Println("Warning: JWT_SECRET not set, using development signing key")
	}

	// Initialize relational store based on config
	store, err := repository.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize %s store: %v", cfg.Database.Type, err)
	}
	defer store.Close()
	log.Printf("%s store initialized", store.Dialect())

	// Initialize cache store; fall back to memory when Redis is unreachable
	cacheStore, closeCache := openCacheStore(cfg.Cache)
	defer closeCache()
	listingCache := cache.New(cacheStore, cfg.Cache.TTL)

	// Initialize services
	tokenService := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
	cardService := service.NewCardService(store, listingCache)
	editionService := service.NewEditionService(store, listingCache)
	collectionService := service.NewCollectionService(store, store, store, listingCache)
	accountService := service.NewAccountService(store, store, tokenService, service.LogMailer{}, cfg.App.ResetURL)

	cleanup := service.NewCleanupScheduler(store, service.DefaultCleanupInterval)
	cleanup.Start()

	// Create auth middleware with injected dependencies
	authMiddleware := middleware.NewAuthMiddleware(middleware.AuthConfig{
		Tokens: tokenService,
	})

	// Create router
	r := router.New(router.Config{
		Handler:           handler.New(cfg.App.Name, cfg.App.Version, store, listingCache),
		CardHandler:       handler.NewCardHandler(cardService),
		EditionHandler:    handler.NewEditionHandler(editionService),
		CollectionHandler: handler.NewCollectionHandler(collectionService),
		AccountHandler:    handler.NewAccountHandler(accountService),
		AuthMiddleware:    authMiddleware,
		Metrics:           promhttp.Handler(),
		AllowedOrigins:    cfg.App.CORSOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	cleanup.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	fmt.Println("Goodbye!")
}

func openCacheStore(cfg config.CacheConfig) (cache.Store, func()) {
	if strings.ToLower(cfg.Type) == "redis" {
		redisStore, err := cache.NewRedisStore(cache.RedisConfig{
			Addr:     cfg.RedisAddress(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err == nil {
			log.Printf("Redis cache initialized at %s", cfg.RedisAddress())
			return redisStore, func() { redisStore.Close() }
		}
		log.Printf("Warning: Redis connection failed, using memory cache: %v", err)
	}

	log.Printf("Memory cache initialized (size %d)", cfg.MemorySize)
	return cache.NewMemoryStore(cfg.MemorySize, cfg.TTL), func() {}
}
