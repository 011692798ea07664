// Copyright (c) 2024 cblomart
// Licensed under the MIT License

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gonewsag/internal/aggregator"
	"gonewsag/internal/api"
	"gonewsag/internal/cache"
	"gonewsag/internal/catalog"
	"gonewsag/internal/config"
	"gonewsag/internal/engagement"
	"gonewsag/internal/feed"
	"gonewsag/internal/models"
	"gonewsag/internal/poller"
	"gonewsag/internal/storage"
	"gonewsag/internal/users"

	_ "gonewsag/docs" // registers the swagger spec
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize cache for upstream fetch results
	cacheManager := cache.NewManager(cfg.CacheTTL)

	// Initialize persistent storage
	store, err := storage.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}
	defer store.Close()

	// Restore prior state; a missing or corrupt file yields empty state
	state, err := store.Load()
	if err != nil {
		log.Fatal("Failed to load persisted state:", err)
	}

	cat := catalog.New(config.AggregateCategory)
	cat.Restore(state.Articles)

	eng := engagement.NewStore()
	eng.Restore(state.Likes, state.Comments)

	registry := users.NewRegistry()
	registry.Restore(state.Users)

	log.Printf("Restored %d articles from %s", cat.Len(), cfg.DataDir)

	// Write-through persistence: every mutation flushes the full state
	persist := func() {
		snapshot := models.NewPersistedState()
		snapshot.Articles = cat.Export()
		snapshot.Likes, snapshot.Comments = eng.Export()
		snapshot.Users = registry.Export()
		if err := store.Save(snapshot); err != nil {
			log.Printf("Warning: failed to persist state: %v", err)
		}
	}

	// Initialize the upstream feed source and aggregator
	source := feed.NewSource(cfg)
	agg := aggregator.New(cacheManager, cat, eng, source, cfg, persist)

	// Initialize background poller
	backgroundPoller := poller.New(agg, cfg.ConcreteCategories(), cfg.PollInterval)
	backgroundPoller.Start()

	// Initialize API server
	server := api.NewServer(agg, eng, registry, backgroundPoller, cfg, persist)

	log.Printf("Starting News Aggregator server on port %d", cfg.Port)
	log.Printf("Feed source: %s", cfg.FeedSource)
	log.Printf("Data directory: %s", cfg.DataDir)
	log.Printf("Cache TTL: %v", cfg.CacheTTL)
	log.Printf("Background polling interval: %v", cfg.PollInterval)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Create a context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start signal handler in goroutine
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, stopping services...")
		backgroundPoller.Stop()
		cancel() // Cancel the context to stop the server
	}()

	// Start the server with context for graceful shutdown
	if err := server.StartWithContext(ctx); err != nil && err != context.Canceled {
		log.Fatal("Failed to start server:", err)
	}
}
