// ABOUTME: PashuGPT lookup client using a static preauthorized bearer token
// ABOUTME: Farmer-by-mobile and animal-by-tag reads plus breeding-cycle helpers

package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/OpenAgriNet/amul-sdk-go/models"
)

const (
	pashugptFarmerByMobile = "GetFarmerDetailsByMobile"
	pashugptAnimalByTag    = "GetAnimalDetailsByTagNo"
)

// PashuGPTClient reads farmer and animal records from the preauthorized
// lookup backend. Stateless: no session, no OTP, a fixed bearer token.
type PashuGPTClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewPashuGPTClient(baseURL, token string, client *http.Client) *PashuGPTClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &PashuGPTClient{
		baseURL: baseURL,
		token:   token,
		client:  client,
	}
}

// FarmerByMobile returns the farmer profiles registered for a mobile number.
// Multi-membership is normal; callers must not assume a singleton.
func (c *PashuGPTClient) FarmerByMobile(ctx context.Context, mobile string) ([]models.PashuGPTFarmer, error) {
	var farmers []models.PashuGPTFarmer
	if err := c.get(ctx, pashugptFarmerByMobile, url.Values{"mobileNumber": {mobile}}, &farmers); err != nil {
		return nil, err
	}
	return farmers, nil
}

// AnimalByTag returns the animal record for an ear-tag number.
func (c *PashuGPTClient) AnimalByTag(ctx context.Context, tag string) (*models.PashuGPTAnimal, error) {
	var animal models.PashuGPTAnimal
	if err := c.get(ctx, pashugptAnimalByTag, url.Values{"tagNo": {tag}}, &animal); err != nil {
		return nil, err
	}
	return &animal, nil
}

func (c *PashuGPTClient) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	u := c.baseURL + "/" + endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return &NetworkError{Op: endpoint, URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &UpstreamError{Backend: "PashuGPT", StatusCode: resp.StatusCode, Message: string(raw)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &MalformedResponseError{Backend: "PashuGPT", Err: err}
	}
	return nil
}

// breedingDateLayouts are the date formats observed in lookup responses.
var breedingDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999",
	"2006-01-02",
}

// ParseBreedingDate parses an upstream date string. Absent or unparseable
// values yield nil, which the helpers below treat as "no recorded activity".
func ParseBreedingDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	for _, layout := range breedingDateLayouts {
		if t, err := time.Parse(layout, *s); err == nil {
			return &t
		}
	}
	return nil
}

// DaysSince returns the whole calendar days elapsed since t, floored
// (exact integer division of the elapsed seconds by 86400). Nil in, nil out.
func DaysSince(t *time.Time, now time.Time) *int {
	if t == nil {
		return nil
	}
	secs := int64(now.Sub(*t) / time.Second)
	days := int(secs / 86400)
	// integer division truncates toward zero; floor for future dates
	if secs < 0 && secs%86400 != 0 {
		days--
	}
	return &days
}

// IsLikelyInHeat reports whether the animal is inside the estrus window:
// 18 to 24 days (inclusive) since the last artificial insemination.
func IsLikelyInHeat(animal *models.PashuGPTAnimal, now time.Time) bool {
	days := DaysSince(ParseBreedingDate(animal.LastBreedingActivity.LastAI), now)
	if days == nil {
		return false
	}
	return *days >= 18 && *days <= 24
}

// ShouldRecommendPregnancyCheck reports whether a pregnancy detection is due:
// 25 to 90 days (inclusive) since the last AI, unless already pregnant.
func ShouldRecommendPregnancyCheck(animal *models.PashuGPTAnimal, now time.Time) bool {
	if animal.PregnancyStage == models.PregnancyStagePregnant {
		return false
	}
	days := DaysSince(ParseBreedingDate(animal.LastBreedingActivity.LastAI), now)
	if days == nil {
		return false
	}
	return *days >= 25 && *days <= 90
}
