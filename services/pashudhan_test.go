// ABOUTME: Tests for the Pashudhan bridge
// ABOUTME: Verifies the connectivity probe, preconditions, and field remapping

package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/OpenAgriNet/amul-sdk-go/models"
)

func authedSession(t *testing.T) *AmcsClient {
	t.Helper()
	c := NewAmcsClient(AmcsConfig{BaseURL: "http://example.invalid/farmer/"})
	c.SetBearerToken("amcs-bearer")
	whatsApp := "9876543210"
	c.farmers = []models.FarmerDetail{{
		FarmerCode:        "F100",
		FarmerName:        "Test Farmer",
		Email:             "farmer@example.com",
		CattleBuySellGuid: "guid-1",
		WhatsAppNo:        &whatsApp,
		Latitude:          23.02,
		Longitude:         72.57,
	}}
	c.society = &models.SocietyData{
		SocietyCode: "S200",
		UnionName:   "Test Union",
		UnionCode:   "U300",
	}
	return c
}

func TestPashudhanBridge_CheckConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("Expected HEAD request, got %s", r.Method)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	b := NewPashudhanBridge(server.URL+"/api/", server.URL+"/Users/", nil)
	if !b.CheckConnection(context.Background()) {
		t.Error("Expected probe to succeed")
	}

	server.Close()
	if b.CheckConnection(context.Background()) {
		t.Error("Expected probe to fail against closed server")
	}
}

func TestPashudhanBridge_AuthenticatePreconditions(t *testing.T) {
	b := NewPashudhanBridge("http://example.invalid/api/", "http://example.invalid/Users/", nil)

	// unauthenticated session
	unauthed := NewAmcsClient(AmcsConfig{BaseURL: "http://example.invalid/farmer/"})
	if _, err := b.Authenticate(context.Background(), unauthed); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Expected ErrNotAuthenticated, got %v", err)
	}

	// authenticated but no cached farmer/society data
	empty := NewAmcsClient(AmcsConfig{BaseURL: "http://example.invalid/farmer/"})
	empty.SetBearerToken("tok")
	_, err := b.Authenticate(context.Background(), empty)
	var pre *PreconditionError
	if !errors.As(err, &pre) {
		t.Fatalf("Expected PreconditionError, got %v", err)
	}
}

func TestPashudhanBridge_AuthenticateFieldMapping(t *testing.T) {
	var body map[string]interface{}
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("authorization")
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"isSuccess":true,"statusCode":200,"message":"ok","data":{"userName":"Test Farmer","userId":42,"token":"pashudhan-jwt"}}`))
	}))
	defer server.Close()

	b := NewPashudhanBridge(server.URL+"/", server.URL+"/", nil)
	session := authedSession(t)

	resp, err := b.Authenticate(context.Background(), session)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	if gotAuth != "bearer" {
		t.Errorf("Expected bare lowercase bearer header, got %q", gotAuth)
	}

	// the remote schema's casing, misspelling included, must survive verbatim
	checks := map[string]interface{}{
		"socityCode": "S200",
		"farmercode": "F100",
		"unionCode":  "U300",
		"unionName":  "Test Union",
		"mobileNo":   "9876543210",
		"WhatsAppNo": "9876543210",
		"uniqueId":   "guid-1",
		"userName":   "Test Farmer",
		"amcsToken":  "amcs-bearer",
		"platform":   "2",
	}
	for key, want := range checks {
		if body[key] != want {
			t.Errorf("Expected body[%q] = %v, got %v", key, want, body[key])
		}
	}
	if _, ok := body["SocietyCode"]; ok {
		t.Error("Primary-cased SocietyCode must not leak into the bridge request")
	}

	if !resp.IsSuccess || resp.Data.Token != "pashudhan-jwt" {
		t.Errorf("Expected success envelope with token, got %+v", resp)
	}
	if b.Token() != "pashudhan-jwt" || b.UserID() != 42 {
		t.Errorf("Expected bridge to store token and user id, got %q/%d", b.Token(), b.UserID())
	}
}

func TestPashudhanBridge_MissingWhatsAppNumber(t *testing.T) {
	var body map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"isSuccess":false,"statusCode":400,"message":"rejected","data":null}`))
	}))
	defer server.Close()

	b := NewPashudhanBridge(server.URL+"/", server.URL+"/", nil)
	session := authedSession(t)
	session.farmers[0].WhatsAppNo = nil

	resp, err := b.Authenticate(context.Background(), session)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	if body["mobileNo"] != "" {
		t.Errorf("Expected empty mobileNo fallback, got %v", body["mobileNo"])
	}
	if body["WhatsAppNo"] != "null" {
		t.Errorf(`Expected literal "null" WhatsAppNo fallback, got %v`, body["WhatsAppNo"])
	}
	if resp.IsSuccess {
		t.Error("Expected failure envelope passed through")
	}
	if b.Token() != "" {
		t.Error("Expected no token stored on failure")
	}
}
