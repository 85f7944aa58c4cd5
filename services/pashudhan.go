// ABOUTME: Pashudhan bridge exchanging AMCS session data for a secondary token
// ABOUTME: Connectivity probe plus field-remapped authentication request

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/OpenAgriNet/amul-sdk-go/models"
)

const (
	pashudhanCheckConnection    = "CheckConnection"
	pashudhanAuthenticateFarmer = "Authentication/authenticateFarmer"
)

// PashudhanBridge authenticates against the secondary animal-trading backend
// using farmer and society data cached on an AMCS session.
type PashudhanBridge struct {
	apiURL   string
	usersURL string
	client   *http.Client

	token  string
	userID int
}

func NewPashudhanBridge(apiURL, usersURL string, client *http.Client) *PashudhanBridge {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &PashudhanBridge{
		apiURL:   apiURL,
		usersURL: usersURL,
		client:   client,
	}
}

// Token returns the bearer token obtained by Authenticate, or empty.
func (b *PashudhanBridge) Token() string { return b.token }

// UserID returns the user id obtained by Authenticate, or zero.
func (b *PashudhanBridge) UserID() int { return b.userID }

// CheckConnection probes the backend with a HEAD request. A false result
// means the bridge should not be attempted; callers decide whether to
// proceed degraded.
func (b *PashudhanBridge) CheckConnection(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, b.usersURL+pashudhanCheckConnection, nil)
	if err != nil {
		return false
	}

	resp, err := b.client.Do(req)
	if err != nil {
		slog.Debug("Pashudhan connection check failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 400
}

// Authenticate exchanges cached AMCS farmer/society data for a Pashudhan
// session token. The first farmer registration is used, matching the app.
// Requires GetFarmerDetail and GetSocietyData to have succeeded on the
// session first; fails with a PreconditionError otherwise.
//
// The request field names, including the "socityCode" misspelling and the
// mixed casing, are fixed by the remote schema and copied verbatim.
func (b *PashudhanBridge) Authenticate(ctx context.Context, session *AmcsClient) (*models.PashudhanResponse[models.PashudhanAuthResponse], error) {
	if !session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	farmers := session.Farmers()
	society := session.Society()
	if len(farmers) == 0 || society == nil {
		return nil, &PreconditionError{Reason: "farmer and society data required, call GetFarmerDetail and GetSocietyData first"}
	}

	farmer := farmers[0]

	whatsApp := ""
	whatsAppField := "null"
	if farmer.WhatsAppNo != nil && *farmer.WhatsAppNo != "" {
		whatsApp = *farmer.WhatsAppNo
		whatsAppField = *farmer.WhatsAppNo
	}

	body := models.PashudhanAuthRequest{
		MobileNo:              whatsApp,
		WhatsAppNo:            whatsAppField,
		UniqueId:              farmer.CattleBuySellGuid,
		SocityCode:            society.SocietyCode,
		UnionName:             society.UnionName,
		UnionCode:             society.UnionCode,
		FarmerCode:            farmer.FarmerCode,
		UserName:              farmer.FarmerName,
		EmailId:               farmer.Email,
		Latitude:              farmer.Latitude,
		Longitude:             farmer.Longitude,
		CultureId:             session.cfg.CultureID,
		PushNotificationFCMId: "XXXXXXXXXXXXXXXX",
		AmcsToken:             session.bearerToken,
		Platform:              "2",
		DeviceId:              session.DeviceID(),
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	url := b.apiURL + pashudhanAuthenticateFarmer
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("User-Agent", "okhttp/3.14.9")
	// Lowercase bare bearer header: this is what the backend expects for the
	// initial authentication call.
	req.Header.Set("authorization", "bearer")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: pashudhanAuthenticateFarmer, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &UpstreamError{Backend: "Pashudhan", StatusCode: resp.StatusCode, Message: string(raw)}
	}

	var envelope models.PashudhanResponse[models.PashudhanAuthResponse]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, &MalformedResponseError{Backend: "Pashudhan", Err: err}
	}

	if envelope.IsSuccess && envelope.Data.Token != "" {
		b.token = envelope.Data.Token
		b.userID = envelope.Data.UserId
		slog.Debug("Pashudhan authentication successful", "user_id", b.userID)
	}

	return &envelope, nil
}
