// ABOUTME: Lookup endpoints backed by the PashuGPT and CVCC clients
// ABOUTME: Caches lookup responses and collapses concurrent identical requests

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/OpenAgriNet/amul-sdk-go/services"
)

// FarmerLookup returns the farmer profiles for a mobile number.
func (h *Handler) FarmerLookup(w http.ResponseWriter, r *http.Request) {
	if h.lookup == nil {
		writeError(w, "PashuGPT lookup not configured", http.StatusServiceUnavailable)
		return
	}

	mobile := r.URL.Query().Get("mobileNumber")
	if err := services.ValidateMobile(mobile); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.cachedLookup(w, r, "farmer:"+mobile, func() (interface{}, error) {
		return h.lookup.FarmerByMobile(r.Context(), mobile)
	})
}

// AnimalLookup returns the animal record for an ear-tag number.
func (h *Handler) AnimalLookup(w http.ResponseWriter, r *http.Request) {
	if h.lookup == nil {
		writeError(w, "PashuGPT lookup not configured", http.StatusServiceUnavailable)
		return
	}

	tag := r.URL.Query().Get("tagNo")
	if err := services.ValidateTagNo(tag); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.cachedLookup(w, r, "animal:"+tag, func() (interface{}, error) {
		return h.lookup.AnimalByTag(r.Context(), tag)
	})
}

// cachedLookup serves a lookup from cache, deduplicating concurrent misses
// for the same key through singleflight.
func (h *Handler) cachedLookup(w http.ResponseWriter, r *http.Request, key string, fetch func() (interface{}, error)) {
	if cached, found := h.cache.Get(key); found {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	result, err, _ := h.group.Do(key, func() (interface{}, error) {
		data, err := fetch()
		if err != nil {
			return nil, err
		}
		h.cache.SetWithTTL(key, data, time.Duration(h.cfg.LookupCacheTTL)*time.Second)
		return data, nil
	})
	if err != nil {
		h.writeLookupError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// CVCCLookup fetches the cattle registry record for a tag number.
func (h *Handler) CVCCLookup(w http.ResponseWriter, r *http.Request) {
	if h.registry == nil {
		writeError(w, "CVCC registry not configured", http.StatusServiceUnavailable)
		return
	}

	var body struct {
		TagNo string `json:"tagNo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := services.ValidateTagNo(body.TagNo); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	record, err := h.registry.CattleDetail(r.Context(), body.TagNo)
	if err != nil {
		h.writeLookupError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// combined endpoint response shapes

type combinedAnimal struct {
	TagNo  string      `json:"tagNo"`
	Animal interface{} `json:"animal,omitempty"`
	Error  string      `json:"error,omitempty"`
}

type combinedResponse struct {
	Farmers        interface{}              `json:"farmers"`
	Animals        []combinedAnimal         `json:"animals"`
	CattleRegistry []map[string]interface{} `json:"cattleRegistry"`
}

// CombinedLookup fetches the farmer profiles for a mobile number, then fans
// out animal and registry lookups across every tag the profiles carry (plus
// an optional explicit tagNo). Per-tag failures are reported inline; they
// never fail the whole request.
func (h *Handler) CombinedLookup(w http.ResponseWriter, r *http.Request) {
	if h.lookup == nil {
		writeError(w, "PashuGPT lookup not configured", http.StatusServiceUnavailable)
		return
	}

	mobile := r.URL.Query().Get("mobileNumber")
	if err := services.ValidateMobile(mobile); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	explicitTag := r.URL.Query().Get("tagNo")
	if explicitTag != "" {
		if err := services.ValidateTagNo(explicitTag); err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	farmers, err := h.lookup.FarmerByMobile(r.Context(), mobile)
	if err != nil {
		h.writeLookupError(w, err)
		return
	}

	tags := services.CollectTagNumbers(explicitTag, farmers)
	results := services.BatchTagLookup(r.Context(), tags, h.lookup, h.registry)

	resp := combinedResponse{
		Farmers:        farmers,
		Animals:        make([]combinedAnimal, 0, len(results)),
		CattleRegistry: make([]map[string]interface{}, 0, len(results)),
	}
	for _, res := range results {
		entry := combinedAnimal{TagNo: res.TagNo}
		if res.AnimalErr != nil {
			entry.Error = res.AnimalErr.Error()
		} else if res.Animal != nil {
			entry.Animal = res.Animal
		}
		resp.Animals = append(resp.Animals, entry)

		// only usable registry records make the response
		if res.RegistryErr == nil && res.Registry != nil && res.Registry["msg"] == "Success" {
			resp.CattleRegistry = append(resp.CattleRegistry, res.Registry)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// writeLookupError maps the service error taxonomy onto HTTP status codes.
func (h *Handler) writeLookupError(w http.ResponseWriter, err error) {
	var upstream *services.UpstreamError
	var network *services.NetworkError
	var malformed *services.MalformedResponseError

	switch {
	case errors.As(err, &upstream):
		slog.Error("Upstream rejected request", "backend", upstream.Backend, "status", upstream.StatusCode)
		writeError(w, "Upstream request failed", http.StatusBadGateway)
	case errors.As(err, &network):
		slog.Error("Upstream unreachable", "op", network.Op, "error", network.Err)
		writeError(w, "Upstream unreachable", http.StatusBadGateway)
	case errors.As(err, &malformed):
		slog.Error("Upstream response unparseable", "backend", malformed.Backend, "error", malformed.Err)
		writeError(w, "Upstream returned malformed data", http.StatusBadGateway)
	default:
		slog.Error("Lookup failed", "error", err)
		writeError(w, "Internal error", http.StatusInternalServerError)
	}
}
