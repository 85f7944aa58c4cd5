// ABOUTME: AMCS farmer backend client with OTP login state machine
// ABOUTME: Handles URL discovery, OTP handshake, and bearer-signed data fetches

package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/OpenAgriNet/amul-sdk-go/models"
)

// AMCS endpoint names. GetAPIUrl is called on the discovery base; everything
// else uses the dynamically resolved URL it returns.
const (
	endpointGetAPIUrl        = "GetAPIUrl"
	endpointValidateMobile   = "ValidateMobileNo"
	endpointRegisterMobile   = "RegisterMobileNo"
	endpointGetFarmerDetail  = "GetFarmerDetail"
	endpointGetSocietyData   = "GetSocietyData"
	endpointGetFarmerSetting = "GetFarmerSetting"
	endpointGetCattleInfo    = "GetCattleInfo"
	endpointGetAllItem       = "GetAllItem"
	endpointGetUOM           = "GetUOM"
	endpointGetAppModuleList = "GetAppModuleList"
	endpointGetVersionDetail = "GetVersionDetail"
)

// AmcsConfig configures an AMCS client. BaseURL, AppKey, and AppSecret are
// required for login flows; the remaining app-identity fields default to the
// values shipped in the published app.
type AmcsConfig struct {
	BaseURL     string
	AppKey      string
	AppSecret   string
	APIVersion  string
	AppVersion  string
	AppType     string
	AppPlatform string
	CultureID   string
	DeviceID    string       // generated when empty
	HTTPClient  *http.Client // defaults to 30s timeout
	IDs         IDProvider   // defaults to RandomIDProvider
}

// AmcsClient owns one login session against the primary farmer backend.
// It is a single-owner object: methods mutate session state and the client
// is not safe for concurrent use.
type AmcsClient struct {
	cfg     AmcsConfig
	baseURL string
	client  *http.Client
	ids     IDProvider

	deviceID      string
	bearerToken   string
	apiKey        string
	apiSecret     string
	farmers       []models.FarmerDetail
	society       *models.SocietyData
	authenticated bool
}

func NewAmcsClient(cfg AmcsConfig) *AmcsClient {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "1.0.1"
	}
	if cfg.AppVersion == "" {
		cfg.AppVersion = "3.0.4"
	}
	if cfg.AppType == "" {
		cfg.AppType = "3"
	}
	if cfg.AppPlatform == "" {
		cfg.AppPlatform = "3"
	}
	if cfg.CultureID == "" {
		cfg.CultureID = "1"
	}

	c := &AmcsClient{
		cfg:     cfg,
		baseURL: cfg.BaseURL,
		client:  cfg.HTTPClient,
		ids:     cfg.IDs,
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: 30 * time.Second}
	}
	if c.ids == nil {
		c.ids = RandomIDProvider{}
	}
	c.deviceID = cfg.DeviceID
	if c.deviceID == "" {
		c.deviceID = c.ids.NewID()
	}
	return c
}

// getApiUrlRequest posts the app identity to the discovery endpoint.
type getApiUrlRequest struct {
	MobileNo    string `json:"MobileNo"`
	ApiVersion  string `json:"ApiVersion"`
	AppType     string `json:"AppType"`
	APPPlatForm string `json:"APPPlatForm"`
	AppVersion  string `json:"AppVersion"`
}

type validateMobileRequest struct {
	AppKey                string `json:"AppKey"`
	APPVerificationSecret string `json:"APPVerificationSecret"`
	MobileNo              string `json:"MobileNo"`
	DeviceId              string `json:"DeviceId"`
	CultureId             string `json:"CultureId"`
	ApiVersion            string `json:"ApiVersion"`
	AppType               string `json:"AppType"`
	APPPlatForm           string `json:"APPPlatForm"`
	AppVersion            string `json:"AppVersion"`
	OSVersion             string `json:"OSVersion"`
	ScreenResolution      string `json:"screenresolution"`
	Model                 string `json:"model"`
	PushNotificationId    string `json:"PushNotificationId"`
	SocietyId             int    `json:"SocietyId"`
}

type registerMobileRequest struct {
	AppKey                string `json:"AppKey"`
	APPVerificationSecret string `json:"APPVerificationSecret"`
	MobileNo              string `json:"MobileNo"`
	DeviceId              string `json:"DeviceId"`
	ApiVersion            string `json:"ApiVersion"`
	AppType               string `json:"AppType"`
	CultureId             string `json:"CultureId"`
	APPPlatForm           string `json:"APPPlatForm"`
	AppVersion            string `json:"AppVersion"`
	OTP                   string `json:"OTP"`
}

type cultureRequest struct {
	CultureId string `json:"CultureId"`
}

type cattleInfoRequest struct {
	CultureId   string `json:"CultureId"`
	RequestData struct {
		MobileNo string `json:"MobileNo"`
	} `json:"RequestData"`
}

// itemRequest is shared by GetAllItem and GetUOM. The lowercase "Cultureid"
// is how the remote schema spells it for these two endpoints only.
type itemRequest struct {
	CultureID string `json:"Cultureid"`
	SocietyId string `json:"SocietyId"`
	UpdatedOn string `json:"UpdatedOn"`
}

// ResolveApiUrl performs the discovery step of the login handshake. On a
// success envelope with a URL, all subsequent calls are rebased onto it.
func (c *AmcsClient) ResolveApiUrl(ctx context.Context, mobile string) (*models.AmcsResponse[models.APIUrlData], error) {
	body := getApiUrlRequest{
		MobileNo:    mobile,
		ApiVersion:  c.cfg.APIVersion,
		AppType:     c.cfg.AppType,
		APPPlatForm: c.cfg.AppPlatform,
		AppVersion:  c.cfg.AppVersion,
	}

	resp, err := amcsPost[models.APIUrlData](ctx, c, endpointGetAPIUrl, body, false)
	if err != nil {
		return nil, err
	}

	if resp.OK() && resp.Data.Url != "" {
		c.baseURL = resp.Data.Url
		slog.Debug("AMCS base URL resolved", "url", c.baseURL)
	}

	return resp, nil
}

// SendOTP triggers OTP delivery to the given mobile number. The returned
// APIKey/APISecret are stored for protocol parity; the login flow never uses
// them again.
func (c *AmcsClient) SendOTP(ctx context.Context, mobile string) (*models.AmcsResponse[models.ValidateMobileData], error) {
	body := validateMobileRequest{
		AppKey:                c.cfg.AppKey,
		APPVerificationSecret: c.cfg.AppSecret,
		MobileNo:              mobile,
		DeviceId:              c.deviceID,
		CultureId:             c.cfg.CultureID,
		ApiVersion:            c.cfg.APIVersion,
		AppType:               c.cfg.AppType,
		APPPlatForm:           c.cfg.AppPlatform,
		AppVersion:            c.cfg.AppVersion,
		OSVersion:             "10",
		ScreenResolution:      "1080 * 1920",
		Model:                 "SDK-Client",
		PushNotificationId:    "",
		SocietyId:             0,
	}

	resp, err := amcsPost[models.ValidateMobileData](ctx, c, endpointValidateMobile, body, false)
	if err != nil {
		return nil, err
	}

	if resp.OK() {
		c.apiKey = resp.Data.APIKey
		c.apiSecret = resp.Data.APISecret
		slog.Debug("OTP sent, API credentials received")
	}

	return resp, nil
}

// VerifyOTP completes the handshake. On success the envelope Data IS the
// opaque bearer credential (a string, not an object); it carries no claims
// and is used as-is for all authenticated calls.
func (c *AmcsClient) VerifyOTP(ctx context.Context, mobile, otp string) (*models.AmcsResponse[string], error) {
	body := registerMobileRequest{
		AppKey:                c.cfg.AppKey,
		APPVerificationSecret: c.cfg.AppSecret,
		MobileNo:              mobile,
		DeviceId:              c.deviceID,
		ApiVersion:            c.cfg.APIVersion,
		AppType:               c.cfg.AppType,
		CultureId:             c.cfg.CultureID,
		APPPlatForm:           c.cfg.AppPlatform,
		AppVersion:            c.cfg.AppVersion,
		OTP:                   otp,
	}

	resp, err := amcsPost[string](ctx, c, endpointRegisterMobile, body, false)
	if err != nil {
		return nil, err
	}

	if resp.OK() && resp.Data != "" {
		c.bearerToken = resp.Data
		c.authenticated = true
		slog.Debug("AMCS authentication successful")
	}

	return resp, nil
}

// SetBearerToken resumes a previous session without the OTP handshake.
func (c *AmcsClient) SetBearerToken(token string) {
	c.bearerToken = token
	c.authenticated = true
}

// Logout discards the session state client-side. The upstream has no
// revocation call.
func (c *AmcsClient) Logout() {
	c.bearerToken = ""
	c.apiKey = ""
	c.apiSecret = ""
	c.farmers = nil
	c.society = nil
	c.authenticated = false
}

func (c *AmcsClient) IsAuthenticated() bool { return c.authenticated }
func (c *AmcsClient) BaseURL() string       { return c.baseURL }
func (c *AmcsClient) DeviceID() string      { return c.deviceID }

// Farmers returns the farmer registrations cached by the last successful
// GetFarmerDetail call.
func (c *AmcsClient) Farmers() []models.FarmerDetail { return c.farmers }

// Society returns the society record cached by the last successful
// GetSocietyData call, or nil.
func (c *AmcsClient) Society() *models.SocietyData { return c.society }

// GetFarmerDetail fetches the farmer registrations for the session. The
// result is an array: one mobile number can hold several memberships.
// A success refreshes the session's farmer cache for the Pashudhan bridge.
func (c *AmcsClient) GetFarmerDetail(ctx context.Context) (*models.AmcsResponse[[]models.FarmerDetail], error) {
	resp, err := amcsPost[[]models.FarmerDetail](ctx, c, endpointGetFarmerDetail, cultureRequest{CultureId: c.cfg.CultureID}, true)
	if err != nil {
		return nil, err
	}
	if resp.OK() && resp.Data != nil {
		c.farmers = resp.Data
	}
	return resp, nil
}

// GetSocietyData fetches the society/union record shared by all farmer
// registrations. A success refreshes the session's society cache.
func (c *AmcsClient) GetSocietyData(ctx context.Context) (*models.AmcsResponse[models.SocietyData], error) {
	resp, err := amcsPost[models.SocietyData](ctx, c, endpointGetSocietyData, cultureRequest{CultureId: c.cfg.CultureID}, true)
	if err != nil {
		return nil, err
	}
	if resp.OK() {
		society := resp.Data
		c.society = &society
	}
	return resp, nil
}

func (c *AmcsClient) GetFarmerSettings(ctx context.Context) (*models.AmcsResponse[[]models.FarmerSetting], error) {
	return amcsPost[[]models.FarmerSetting](ctx, c, endpointGetFarmerSetting, cultureRequest{CultureId: c.cfg.CultureID}, true)
}

// GetCattleInfo returns the raw cattle info payload. The upstream answers
// with an empty string and envelope status 1010 when no data exists.
func (c *AmcsClient) GetCattleInfo(ctx context.Context, mobile string) (*models.AmcsResponse[string], error) {
	body := cattleInfoRequest{CultureId: c.cfg.CultureID}
	body.RequestData.MobileNo = mobile
	return amcsPost[string](ctx, c, endpointGetCattleInfo, body, true)
}

func (c *AmcsClient) GetAllItems(ctx context.Context, societyID string) (*models.AmcsResponse[[]json.RawMessage], error) {
	body := itemRequest{CultureID: c.cfg.CultureID, SocietyId: societyID, UpdatedOn: ""}
	return amcsPost[[]json.RawMessage](ctx, c, endpointGetAllItem, body, true)
}

func (c *AmcsClient) GetUOM(ctx context.Context, societyID string) (*models.AmcsResponse[[]models.UOMInfo], error) {
	body := itemRequest{CultureID: c.cfg.CultureID, SocietyId: societyID, UpdatedOn: ""}
	return amcsPost[[]models.UOMInfo](ctx, c, endpointGetUOM, body, true)
}

func (c *AmcsClient) GetAppModuleList(ctx context.Context) (*models.AmcsResponse[[]models.AppModule], error) {
	return amcsPost[[]models.AppModule](ctx, c, endpointGetAppModuleList, struct{}{}, true)
}

func (c *AmcsClient) GetVersionDetail(ctx context.Context) (*models.AmcsResponse[models.VersionDetail], error) {
	return amcsPost[models.VersionDetail](ctx, c, endpointGetVersionDetail, struct{}{}, true)
}

// authHeader derives the composite bearer header used by authenticated
// calls: base64(bearer:deviceId:freshRequestId:signature). A fresh request
// id is generated per call; the signature is the documented placeholder.
func (c *AmcsClient) authHeader() string {
	composite := fmt.Sprintf("%s:%s:%s:%s", c.bearerToken, c.deviceID, c.ids.NewID(), requestSignature())
	return "Bearer " + base64.StdEncoding.EncodeToString([]byte(composite))
}

// amcsPost issues one POST against the session's current base URL and
// decodes the uppercase AMCS envelope. Authenticated calls fail fast with
// ErrNotAuthenticated before any network I/O.
func amcsPost[T any](ctx context.Context, c *AmcsClient, endpoint string, body any, authenticated bool) (*models.AmcsResponse[T], error) {
	if authenticated && !c.authenticated {
		return nil, ErrNotAuthenticated
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", endpoint, err)
	}

	url := c.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", endpoint, err)
	}

	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("x-apiversion", c.cfg.APIVersion)
	req.Header.Set("User-Agent", "okhttp/3.14.9")
	if authenticated {
		req.Header.Set("Authorization", c.authHeader())
	}

	slog.Debug("AMCS request", "endpoint", endpoint, "authenticated", authenticated)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: endpoint, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &UpstreamError{Backend: "AMCS", StatusCode: resp.StatusCode, Message: string(raw)}
	}

	var envelope models.AmcsResponse[T]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, &MalformedResponseError{Backend: "AMCS", Err: err}
	}

	return &envelope, nil
}
