// ABOUTME: Data models for the primary AMCS farmer backend
// ABOUTME: JSON shapes verified against captured app traffic (uppercase keys)

package models

// Envelope status codes used by the AMCS backend. The HTTP status is
// usually 200; the envelope StatusCode carries the real outcome.
const (
	AmcsStatusOK           = 200
	AmcsStatusDataNotFound = 1010
)

// AmcsResponse is the uniform envelope of the primary backend. Field casing
// is fixed by the remote schema and must not be unified with the Pashudhan
// envelope, which uses lowercase keys.
type AmcsResponse[T any] struct {
	Data       T        `json:"Data"`
	Errors     []string `json:"Errors"`
	Message    string   `json:"Message"`
	StatusCode int      `json:"StatusCode"`
}

// OK reports whether the envelope carries a success status.
func (r *AmcsResponse[T]) OK() bool {
	return r.StatusCode == AmcsStatusOK
}

// APIUrlData is returned by the GetAPIUrl discovery endpoint.
type APIUrlData struct {
	Url            string `json:"Url"`
	UserType       int    `json:"UserType"`
	AboutUsUrl     string `json:"AboutUsUrl"`
	UploadImageUrl string `json:"UploadImageUrl"`
	ItemOrderUrl   string `json:"ItemOrderUrl"`
}

// ValidateMobileData carries the API credentials returned by ValidateMobileNo.
// They are stored for protocol parity but not used again in the login flow.
type ValidateMobileData struct {
	APIKey    string `json:"APIKey"`
	APISecret string `json:"APISecret"`
}

// FarmerDetail is one farmer registration. A single mobile number can be
// linked to several registrations, so GetFarmerDetail returns an array.
type FarmerDetail struct {
	FarmerId          string  `json:"FarmerId"`
	FarmerCode        string  `json:"FarmerCode"`
	FarmerName        string  `json:"FarmerName"`
	IsMember          bool    `json:"IsMember"`
	Address           string  `json:"Address"`
	Email             string  `json:"Email"`
	BankAccountNo     string  `json:"BankAccountNo"`
	IFSCCode          string  `json:"IFSCCode"`
	BankBranchCode    string  `json:"BankBranchCode"`
	BankName          string  `json:"BankName"`
	ImageUrl          *string `json:"ImageUrl"`
	ProfileImage      string  `json:"ProfileImage"`
	CattleBuySellGuid string  `json:"CattleBuySellGuid"`
	WhatsAppNo        *string `json:"WhatsAppNo"`
	Latitude          float64 `json:"Latitude"`
	Longitude         float64 `json:"Longitude"`
}

// SocietyData describes the collection society and union a farmer belongs to.
// It is shared across all farmer registrations of one session.
type SocietyData struct {
	SocietyId   string `json:"SocietyId"`
	SocietyName string `json:"SocietyName"`
	SocietyCode string `json:"SocietyCode"`
	UnionName   string `json:"UnionName"`
	UnionCode   string `json:"UnionCode"`
	UnionId     int    `json:"UnionId"`
}

// FarmerSetting is a key/value app setting for the logged-in farmer.
type FarmerSetting struct {
	SettingKey   string `json:"SettingKey"`
	SettingValue string `json:"SettingValue"`
}

// UOMInfo is a unit of measurement for item ordering.
type UOMInfo struct {
	UOMId   string `json:"UOMId"`
	UOMName string `json:"UOMName"`
}

// AppModule is one entry of the app module list.
type AppModule struct {
	AppType          int    `json:"AppType"`
	ModuleId         int    `json:"ModuleId"`
	AppTypeName      string `json:"AppTypeName"`
	ModuleName       string `json:"ModuleName"`
	CompanyId        int    `json:"CompanyId"`
	IsActiveInactive bool   `json:"IsActiveInactive"`
	Layout           int    `json:"Layout"`
	SortOrder        int    `json:"SortOrder"`
	ParentId         int    `json:"ParentId"`
}

// VersionDetail describes the minimum supported app version.
type VersionDetail struct {
	APPVersion  string `json:"APPVersion"`
	IsMandatory int    `json:"IsMandatory"`
	IsFromGujarat bool `json:"IsFromGujarat"`
}

// ErrorResponse represents a demo backend error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}
