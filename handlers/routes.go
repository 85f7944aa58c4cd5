// ABOUTME: Declarative route table for the demo backend endpoints
// ABOUTME: Defines all routes with their HTTP methods and handlers

package handlers

import "net/http"

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/health")
	Handler http.HandlerFunc // Handler function
}

// Routes returns all API routes for registration. The AMCS pass-through
// proxy is prefix-based and is registered separately under ProxyPrefix.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health & Status
		{Method: http.MethodGet, Path: "/health", Handler: h.Health},

		// PashuGPT lookups
		{Method: http.MethodGet, Path: "/api/pashugpt/farmer", Handler: h.FarmerLookup},
		{Method: http.MethodGet, Path: "/api/pashugpt/animal", Handler: h.AnimalLookup},
		{Method: http.MethodPost, Path: "/api/pashugpt/cvcc", Handler: h.CVCCLookup},
		{Method: http.MethodGet, Path: "/api/pashugpt/combined", Handler: h.CombinedLookup},

		// Token issuance
		{Method: http.MethodPost, Path: "/api/generate-token", Handler: h.GenerateToken},
	}
}
