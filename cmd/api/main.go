package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/ewilliams-labs/vibecraft/internal/adapters/openai"
	"github.com/ewilliams-labs/vibecraft/internal/adapters/rest"
	"github.com/ewilliams-labs/vibecraft/internal/adapters/spotify"
	"github.com/ewilliams-labs/vibecraft/internal/cache"
	"github.com/ewilliams-labs/vibecraft/internal/config"
	"github.com/ewilliams-labs/vibecraft/internal/core/services"
	"github.com/ewilliams-labs/vibecraft/internal/worker"
)

const spotifyTokenURL = "https://accounts.spotify.com/api/token"

func main() {
	// 1. Configuration: .env, then YAML file, then environment overrides.
	// Crash early if required config is missing.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("VIBECRAFT_CONFIG"))
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	if cfg.OpenAIAPIKey == "" {
		log.Fatal("FATAL: OPENAI_API_KEY is required")
	}

	// 2. Driven adapters.
	llmClient := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)

	// Requests normally carry the caller's bearer token; the app-level
	// client-credentials source only backs tokenless catalog calls.
	var appTokens oauth2.TokenSource
	if cfg.SpotifyClientID != "" && cfg.SpotifyClientSecret != "" {
		cc := &clientcredentials.Config{
			ClientID:     cfg.SpotifyClientID,
			ClientSecret: cfg.SpotifyClientSecret,
			TokenURL:     spotifyTokenURL,
		}
		appTokens = cc.TokenSource(context.Background())
	}
	catalog := spotify.NewClient(nil, cfg.SpotifyBaseURL, appTokens)

	// 3. Core services.
	specCache := cache.New(cfg.CacheCapacity, cfg.CacheTTL())
	translator := services.NewTranslator(llmClient, specCache)
	discovery := services.NewDiscovery(catalog, llmClient, nil)

	featureStore := worker.NewFeatureStore()
	recommender := services.NewRecommender(catalog, featureStore)

	pool := worker.NewPool(featureStore, cfg.WorkerQueueSize)
	pool.Start(cfg.WorkerCount)
	defer pool.Stop()

	// 4. Driving adapter.
	handler := rest.NewHandler(discovery, translator, recommender, pool)

	// 5. Start the server.
	log.Println("------------------------------------------------")
	log.Printf("🎶 vibecraft API is running on http://localhost%s", cfg.Addr)
	log.Println("------------------------------------------------")

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
