// ABOUTME: HTTP handlers for the demo farmer API backend
// ABOUTME: Wires the SDK clients behind cached lookup and token endpoints

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/OpenAgriNet/amul-sdk-go/cache"
	"github.com/OpenAgriNet/amul-sdk-go/config"
	"github.com/OpenAgriNet/amul-sdk-go/models"
	"github.com/OpenAgriNet/amul-sdk-go/services"
)

type Handler struct {
	cfg      *config.Config
	cache    *cache.Cache
	client   *http.Client
	lookup   *services.PashuGPTClient
	registry *services.CVCCClient
	signer   *services.TokenSigner

	// collapses concurrent identical lookups into one upstream call
	group singleflight.Group
}

// NewHandler builds the handler set from config. Optional upstreams are left
// nil when unconfigured; their endpoints answer with a configuration error.
// A malformed signing key is a startup error, not a per-request one.
func NewHandler(cfg *config.Config, cache *cache.Cache) (*Handler, error) {
	h := &Handler{
		cfg:    cfg,
		cache:  cache,
		client: &http.Client{Timeout: time.Duration(cfg.HTTPTimeout) * time.Second},
	}

	if cfg.PashuGPTConfigured() {
		h.lookup = services.NewPashuGPTClient(cfg.PashuGPTAPIUrl, cfg.PashuGPTToken, h.client)
	}

	if cfg.CVCCToken != "" {
		h.registry = services.NewCVCCClient(cfg.CVCCAPIUrl, cfg.CVCCToken, cfg.CVCCVendorNo, h.client)
	}

	if cfg.SigningConfigured() {
		signer, err := services.NewTokenSigner(cfg.JWTPrivateKey)
		if err != nil {
			return nil, err
		}
		h.signer = signer
	}

	return h, nil
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
