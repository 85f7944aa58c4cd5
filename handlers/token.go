// ABOUTME: Token endpoint collating lookup and session data into a signed JWT
// ABOUTME: Accepts the combined-call payload shape the demo frontend sends

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/OpenAgriNet/amul-sdk-go/models"
	"github.com/OpenAgriNet/amul-sdk-go/services"
)

// amulEnvelope is the pass-through AMCS response the frontend forwards
// unmodified. Data may be a single object or an array.
type amulEnvelope struct {
	Data json.RawMessage `json:"Data"`
}

type generateTokenRequest struct {
	FarmerData       json.RawMessage        `json:"farmerData"`
	AnimalData       *models.PashuGPTAnimal `json:"animalData"`
	AmulFarmerDetail *amulEnvelope          `json:"amulFarmerDetail"`
	AmulSocietyData  *amulEnvelope          `json:"amulSocietyData"`
}

// GenerateToken collates the posted farmer, animal, and session data, masks
// financial fields, and mints the RS256 token the chat UI consumes.
func (h *Handler) GenerateToken(w http.ResponseWriter, r *http.Request) {
	if h.signer == nil {
		writeError(w, "Server configuration error: JWT_PRIVATE_KEY not set", http.StatusInternalServerError)
		return
	}

	var req generateTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	farmers, err := decodeList[models.PashuGPTFarmer](req.FarmerData)
	if err != nil {
		writeError(w, "Invalid farmerData", http.StatusBadRequest)
		return
	}

	var amulFarmers []models.FarmerDetail
	if req.AmulFarmerDetail != nil {
		amulFarmers, err = decodeList[models.FarmerDetail](req.AmulFarmerDetail.Data)
		if err != nil {
			writeError(w, "Invalid amulFarmerDetail", http.StatusBadRequest)
			return
		}
	}

	var society *models.SocietyData
	if req.AmulSocietyData != nil && len(req.AmulSocietyData.Data) > 0 && string(req.AmulSocietyData.Data) != "null" {
		society = &models.SocietyData{}
		if err := json.Unmarshal(req.AmulSocietyData.Data, society); err != nil {
			writeError(w, "Invalid amulSocietyData", http.StatusBadRequest)
			return
		}
	}

	collated := services.Collate(farmers, req.AnimalData, amulFarmers, society)

	token, err := h.signer.Sign(collated)
	if err != nil {
		slog.Error("Token signing failed", "error", err)
		writeError(w, "Failed to sign token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// decodeList accepts either a JSON array or a single object, normalizing to
// a slice. Absent and null both yield an empty slice.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var list []T
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var single T
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, err
	}
	return []T{single}, nil
}
