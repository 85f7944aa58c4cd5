// ABOUTME: Pass-through proxy to the AMCS API for the demo frontend
// ABOUTME: Forwards Authorization and x-apiversion, streams the upstream body

package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// ProxyPrefix is the path prefix of the AMCS pass-through proxy.
const ProxyPrefix = "/api/amul/"

// ProxyAmul forwards a request to the AMCS API, preserving the path beyond
// the proxy prefix, the query string, the body, and the session headers. The
// browser never talks to the upstream directly, which keeps CORS out of the
// upstream's hands.
func (h *Handler) ProxyAmul(w http.ResponseWriter, r *http.Request) {
	base, err := url.Parse(h.cfg.AMCSAPIUrl)
	if err != nil || base.Host == "" {
		slog.Error("Proxy misconfigured", "url", h.cfg.AMCSAPIUrl, "error", err)
		writeError(w, "Proxy misconfigured", http.StatusInternalServerError)
		return
	}

	target := base.Scheme + "://" + base.Host + "/" + strings.TrimPrefix(r.URL.Path, ProxyPrefix)
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, r.Body)
	if err != nil {
		writeError(w, "Internal error", http.StatusInternalServerError)
		return
	}

	req.Header.Set("Content-Type", "application/json")
	apiVersion := r.Header.Get("x-apiversion")
	if apiVersion == "" {
		apiVersion = h.cfg.APIVersion
	}
	req.Header.Set("x-apiversion", apiVersion)
	if auth := r.Header.Get("Authorization"); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		slog.Error("Proxy request failed", "url", target, "error", err)
		writeError(w, "Upstream request failed", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for key, values := range resp.Header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.WriteHeader(resp.StatusCode)
	io.Copy(w, resp.Body)
}
