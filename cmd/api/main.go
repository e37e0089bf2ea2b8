// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jodahe1/AcademicHelper/internal/api"
	"github.com/jodahe1/AcademicHelper/internal/config"
	"github.com/jodahe1/AcademicHelper/internal/embedder"
	"github.com/jodahe1/AcademicHelper/internal/service"
	"github.com/jodahe1/AcademicHelper/internal/storage"
)

func main() {
	// Server flags
	addr := flag.String("addr", ":8080", "Server address")

	// Storage flags
	storageDriver := flag.String("storage-driver", "postgres", "Storage driver: postgres, mongodb")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
	mongoURI := flag.String("mongodb-uri", os.Getenv("MONGODB_URI"), "MongoDB connection URI")
	mongoDatabase := flag.String("mongodb-database", "academichelper", "MongoDB database name")

	flag.Parse()

	ctx := context.Background()

	// Embedding and search defaults come from the environment
	cfg := config.Load()

	// Build storage config (no sqlite for API server - shared deployments only)
	storeCfg := storage.Config{
		Driver:          *storageDriver,
		Dimensions:      cfg.TargetDim,
		PostgresDSN:     *postgresDSN,
		MongoDBURI:      *mongoURI,
		MongoDBDatabase: *mongoDatabase,
	}

	if storeCfg.Driver == "sqlite" {
		log.Fatal("SQLite not supported for API server - use postgres or mongodb")
	}

	// Initialize storage
	store, err := storage.New(ctx, storeCfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	// Initialize embedder. Without credentials the server still runs:
	// search degrades to lexical matching and ingest reports 502.
	emb, err := embedder.FromConfig(cfg)
	if err != nil {
		if !errors.Is(err, embedder.ErrNoProvider) {
			log.Fatalf("Failed to initialize embedder: %v", err)
		}
		log.Println("Warning: no embedding provider configured, search falls back to lexical matching")
		emb = nil
	} else {
		log.Printf("Embedding provider: %s", emb.Name())
	}

	// Create service
	svc := service.New(store, emb, cfg.DefaultLimit)

	// Create handlers
	handlers := api.NewHandlers(svc)

	// Set health check to verify storage connectivity
	handlers.SetHealthCheck(func() error {
		_, err := store.List(context.Background(), 1)
		return err
	})

	// Setup router
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(api.RequestID)
	r.Use(api.MaxBodySize)

	// Routes
	r.Get("/health", handlers.Health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/sources", handlers.AddSource)
		r.Get("/sources", handlers.List)
		r.Post("/ingest", handlers.Ingest)
		r.Get("/search", handlers.Search)
	})

	// Create server
	srv := &http.Server{
		Addr:         *addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool)
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}

		close(done)
	}()

	// Start server
	log.Printf("Starting API server on %s", *addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	<-done
	fmt.Println("Server stopped")
}
