package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lensbackend/internal/artifact"
	"lensbackend/internal/config"
	"lensbackend/internal/synthesis"
	transporthttp "lensbackend/internal/transport/http"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	staticSource, err := artifact.NewStaticFileSource("sample", cfg.StaticDataPath)
	if err != nil {
		log.Fatalf("init static source: %v", err)
	}

	ingestSource := artifact.NewIngestSource("ingest")

	sources, err := artifact.NewSourceRegistry(staticSource, ingestSource)
	if err != nil {
		log.Fatalf("init source registry: %v", err)
	}

	heuristics := synthesis.DefaultHeuristics()
	if cfg.HeuristicsPath != "" {
		heuristics, err = synthesis.LoadHeuristics(cfg.HeuristicsPath)
		if err != nil {
			log.Fatalf("load heuristics: %v", err)
		}
		log.Printf("heuristics loaded from %s", cfg.HeuristicsPath)
	}
	if cfg.SimilarityThreshold > 0 {
		heuristics.SimilarityThreshold = cfg.SimilarityThreshold
	}

	synth, err := synthesis.NewSynthesizer(sources, heuristics)
	if err != nil {
		log.Fatalf("init synthesizer: %v", err)
	}

	server := transporthttp.NewServer(synth, cfg, ingestSource)

	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      withLogging(withCORS(server.Routes())),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("LENS API listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("signal received: %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)

		if r.Method == http.MethodOptions {
			log.Printf("[CORS preflight] %s %s %s", r.Method, r.URL.Path, duration)
		} else {
			log.Printf("%s %s %s", r.Method, r.URL.Path, duration)
		}
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
