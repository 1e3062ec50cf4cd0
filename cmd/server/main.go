package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/neuraseek/neuraseek/internal/conf"
	"github.com/neuraseek/neuraseek/internal/inference"
	"github.com/neuraseek/neuraseek/internal/pkg/logger"
	"github.com/neuraseek/neuraseek/internal/pkg/workerpool"
	"github.com/neuraseek/neuraseek/internal/search/adapter"
	"github.com/neuraseek/neuraseek/internal/search/cache"
	"github.com/neuraseek/neuraseek/internal/search/client"
	"github.com/neuraseek/neuraseek/internal/search/dispatch"
	"github.com/neuraseek/neuraseek/internal/search/enrich"
	"github.com/neuraseek/neuraseek/internal/search/service"
	"github.com/neuraseek/neuraseek/internal/server"
	"github.com/neuraseek/neuraseek/internal/suggest"
)

var (
	configFile = flag.String("config", "config.yaml", "config file path")
)

func main() {
	flag.Parse()

	// Load configuration
	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(&config.Log)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("config loaded successfully")

	// Shared provider-response cache
	searchCache := cache.New(time.Duration(config.Cache.TTL) * time.Second)

	// Outbound provider clients
	webClient := client.NewGoogleWebClient(&config.Providers.Google.Config, config.Providers.Google.CX)
	videoClient := client.NewYouTubeClient(&config.Providers.YouTube)
	discussionClient := client.NewRedditClient(&config.Providers.Reddit)
	paperClient := client.NewScholarClient(&config.Providers.Scholar)
	suggestClient := client.NewSuggestClient(&config.Providers.SerpAPI)

	// Provider adapters
	webAdapter := adapter.NewWebAdapter(webClient, searchCache, log.Logger)
	imageAdapter := adapter.NewImageAdapter(webClient, searchCache, log.Logger)
	videoAdapter := adapter.NewVideoAdapter(videoClient, searchCache, log.Logger)
	discussionAdapter := adapter.NewDiscussionAdapter(discussionClient, searchCache, log.Logger)
	paperAdapter := adapter.NewPaperAdapter(paperClient, searchCache, log.Logger)

	dispatcher := dispatch.New(webAdapter, imageAdapter, videoAdapter, discussionAdapter, paperAdapter, log.Logger)

	// Enrichment pipeline
	pool, err := workerpool.New(&config.Enrichment, log.Logger)
	if err != nil {
		log.Fatal("failed to create worker pool", zap.Error(err))
	}
	defer pool.Shutdown()

	summarizer := inference.NewSummarizer(&config.Inference)
	classifier := inference.NewHuggingFaceClient(&config.Inference)
	enricher := enrich.New(summarizer, classifier, pool, &config.Inference, log.Logger)

	suggestService := suggest.New(suggestClient, searchCache, log.Logger)
	searchService := service.NewSearchService(dispatcher, enricher, suggestService, log.Logger)

	httpServer := server.NewHTTPServer(config, log, searchService)

	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Stop(ctx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
}
