// ABOUTME: Entry point for the farmer API demo backend
// ABOUTME: Serves cached lookups, token issuance, and the AMCS pass-through proxy

package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/OpenAgriNet/amul-sdk-go/cache"
	"github.com/OpenAgriNet/amul-sdk-go/config"
	"github.com/OpenAgriNet/amul-sdk-go/handlers"
	"github.com/OpenAgriNet/amul-sdk-go/logger"
	"github.com/OpenAgriNet/amul-sdk-go/middleware"
)

func main() {
	// .env is optional; real deployments set the environment directly
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)

	slog.Info("Starting farmer API demo backend")
	slog.Info("AMCS API configured", "url", cfg.AMCSAPIUrl)
	if cfg.PashuGPTConfigured() {
		slog.Info("PashuGPT lookup configured", "url", cfg.PashuGPTAPIUrl)
	} else {
		slog.Warn("PashuGPT token not set, lookup endpoints disabled")
	}
	if cfg.CVCCToken == "" {
		slog.Warn("CVCC token not set, registry endpoint disabled")
	}
	if !cfg.SigningConfigured() {
		slog.Warn("JWT_PRIVATE_KEY not set, token endpoint disabled")
	}

	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	c := cache.New(cacheTTL)
	slog.Info("Cache initialized", "ttl", cacheTTL)

	h, err := handlers.NewHandler(cfg, c)
	if err != nil {
		slog.Error("Failed to initialize handlers", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	for _, route := range h.Routes() {
		mux.HandleFunc(route.Method+" "+route.Path, middleware.Chain(route.Handler, middleware.LogRequest, middleware.CORS))
	}
	mux.HandleFunc(handlers.ProxyPrefix, middleware.Chain(h.ProxyAmul, middleware.LogRequest, middleware.CORS))

	addr := ":" + cfg.Port
	slog.Info("Server listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
