package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jodahe1/AcademicHelper/internal/config"
	"github.com/jodahe1/AcademicHelper/internal/embedder"
	"github.com/jodahe1/AcademicHelper/internal/service"
	"github.com/jodahe1/AcademicHelper/internal/storage"
	"github.com/jodahe1/AcademicHelper/internal/tools"
)

// version is set by goreleaser via ldflags
var version = "dev"

func main() {
	// Storage flags
	storageDriver := flag.String("storage-driver", "sqlite", "Storage driver: sqlite, postgres, mongodb")
	dbPath := flag.String("db-path", ".academichelper/sources.db", "Path to SQLite database (sqlite driver)")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (postgres driver)")
	mongoURI := flag.String("mongodb-uri", "", "MongoDB connection URI (mongodb driver)")
	mongoDatabase := flag.String("mongodb-database", "academichelper", "MongoDB database name (mongodb driver)")

	// CLI mode flags
	listFlag := flag.Bool("list", false, "List recent sources (CLI mode)")
	limitFlag := flag.Int("limit", 20, "Limit for list operation")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Parse()

	if *versionFlag {
		fmt.Printf("ah-server %s\n", version)
		return
	}

	ctx := context.Background()

	cfg := config.Load()

	// Build storage config
	storeCfg := storage.Config{
		Driver:          *storageDriver,
		Dimensions:      cfg.TargetDim,
		SQLitePath:      *dbPath,
		PostgresDSN:     *postgresDSN,
		MongoDBURI:      *mongoURI,
		MongoDBDatabase: *mongoDatabase,
	}

	// CLI mode - list sources
	if *listFlag {
		if err := runList(ctx, storeCfg, *limitFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Initialize storage
	store, err := storage.New(ctx, storeCfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	// Initialize embedder. Running without credentials is allowed, search
	// falls back to lexical matching and ah_ingest reports an error.
	emb, err := embedder.FromConfig(cfg)
	if err != nil {
		if !errors.Is(err, embedder.ErrNoProvider) {
			log.Fatalf("Failed to initialize embedder: %v", err)
		}
		log.Println("Warning: no embedding provider configured")
		emb = nil
	}

	// Create service
	svc := service.New(store, emb, cfg.DefaultLimit)

	// Create MCP server
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "academic-helper",
		Version: version,
	}, nil)

	// Register tools
	tools.Register(server, svc)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutting down...")
		cancel()
	}()

	// Start server with stdio transport
	log.Println("Starting Academic Helper MCP server...")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func runList(ctx context.Context, cfg storage.Config, limit int) error {
	store, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()

	sources, err := store.List(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	for _, s := range sources {
		marker := " "
		if s.Embedded() {
			marker = "*"
		}
		fmt.Printf("%s [%s] %s (%s)\n", marker, s.SourceType, s.Title, s.Authors)
	}
	return nil
}
