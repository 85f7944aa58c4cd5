// ABOUTME: Data models for the secondary Pashudhan animal-trading backend
// ABOUTME: Envelope and field casing differ from AMCS and are fixed upstream

package models

// PashudhanResponse is the lowercase envelope of the Pashudhan backend.
// Kept distinct from AmcsResponse: the two backends genuinely disagree on
// casing and semantics.
type PashudhanResponse[T any] struct {
	IsSuccess  bool   `json:"isSuccess"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       T      `json:"data"`
}

// PashudhanAuthRequest remaps primary-session farmer and society fields into
// the Pashudhan schema. The casing and the "socityCode" misspelling are
// verbatim from the remote API and must not be corrected.
type PashudhanAuthRequest struct {
	MobileNo              string  `json:"mobileNo"`
	WhatsAppNo            string  `json:"WhatsAppNo"`
	UniqueId              string  `json:"uniqueId"`
	SocityCode            string  `json:"socityCode"`
	UnionName             string  `json:"unionName"`
	UnionCode             string  `json:"unionCode"`
	FarmerCode            string  `json:"farmercode"`
	UserName              string  `json:"userName"`
	EmailId               string  `json:"emailId"`
	Latitude              float64 `json:"latitude"`
	Longitude             float64 `json:"longitude"`
	CultureId             string  `json:"cultureId"`
	PushNotificationFCMId string  `json:"PushNotificationFCMId"`
	AmcsToken             string  `json:"amcsToken"`
	Platform              string  `json:"platform"`
	DeviceId              string  `json:"deviceId"`
}

// PashudhanAuthResponse is the session identity issued by the Pashudhan
// backend after a successful bridge authentication.
type PashudhanAuthResponse struct {
	UserName   string `json:"userName"`
	SocityCode string `json:"socityCode"`
	UnionCode  string `json:"unionCode"`
	DeviceId   string `json:"deviceId"`
	UserId     int    `json:"userId"`
	Token      string `json:"token"`
}
