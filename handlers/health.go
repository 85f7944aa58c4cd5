// ABOUTME: Health endpoint reporting which upstream integrations are configured
// ABOUTME: Tokens and keys are reported as present/absent, never echoed

package handlers

import "net/http"

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := func(configured bool) string {
		if configured {
			return "ok"
		}
		return "not_configured"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"upstreams": map[string]string{
			"pashugpt": status(h.lookup != nil),
			"cvcc":     status(h.registry != nil),
			"amcs":     status(h.cfg.LoginConfigured()),
		},
		"token_signing": status(h.signer != nil),
	})
}
