// ABOUTME: Tests for RS256 token issuance over collated farmer data
// ABOUTME: Keys are generated per test; tokens are verified with the public half

package services

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/OpenAgriNet/amul-sdk-go/models"
)

func generateTestKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("MarshalPKCS8PrivateKey: %v", err)
	}
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	return key, string(pemKey)
}

func TestNewTokenSigner(t *testing.T) {
	_, pemKey := generateTestKey(t)

	if _, err := NewTokenSigner(pemKey); err != nil {
		t.Errorf("PKCS#8 key rejected: %v", err)
	}

	// the same key with literal \n sequences, as it arrives via env vars
	escaped := strings.ReplaceAll(pemKey, "\n", `\n`)
	if _, err := NewTokenSigner(escaped); err != nil {
		t.Errorf("Escaped key rejected: %v", err)
	}

	if _, err := NewTokenSigner(""); err == nil {
		t.Error("Expected error for empty key")
	}
	if _, err := NewTokenSigner("not a pem key"); err == nil {
		t.Error("Expected error for garbage key")
	}
}

func TestNewTokenSignerPKCS1(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	pemKey := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	if _, err := NewTokenSigner(string(pemKey)); err != nil {
		t.Errorf("PKCS#1 key rejected: %v", err)
	}
}

func TestTokenSigner_Sign(t *testing.T) {
	key, pemKey := generateTestKey(t)
	signer, err := NewTokenSigner(pemKey)
	if err != nil {
		t.Fatalf("NewTokenSigner: %v", err)
	}
	issued := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	signer.now = func() time.Time { return issued }

	farmers := []models.CollatedFarmer{
		{PashuGPTData: models.PashuGPTFarmer{FarmerCode: "F001", FarmerName: "Ramesh"}},
		{PashuGPTData: models.PashuGPTFarmer{FarmerCode: "F002"}},
	}

	signed, err := signer.Sign(farmers)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return &key.PublicKey, nil
	}, jwt.WithValidMethods([]string{"RS256"}), jwt.WithTimeFunc(func() time.Time { return issued }))
	if err != nil {
		t.Fatalf("ParseWithClaims: %v", err)
	}
	if !parsed.Valid {
		t.Fatal("Expected valid token")
	}

	if claims["sub"] != "F001" {
		t.Errorf("Expected sub F001, got %v", claims["sub"])
	}
	if claims["iat"] != float64(issued.Unix()) {
		t.Errorf("Unexpected iat %v", claims["iat"])
	}
	if claims["exp"] != float64(issued.Add(24*time.Hour).Unix()) {
		t.Errorf("Expected 24h expiry, got %v", claims["exp"])
	}

	data, ok := claims["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected data claim object, got %T", claims["data"])
	}
	list, ok := data["farmers"].([]interface{})
	if !ok || len(list) != 2 {
		t.Fatalf("Expected two farmers in claim, got %v", data["farmers"])
	}
	entry := list[0].(map[string]interface{})
	inner := entry["pashuGPTData"].(map[string]interface{})
	if inner["farmerName"] != "Ramesh" {
		t.Errorf("Expected farmer data embedded in claims, got %v", inner)
	}
}

func TestTokenSigner_SignEmptySubject(t *testing.T) {
	_, pemKey := generateTestKey(t)
	signer, err := NewTokenSigner(pemKey)
	if err != nil {
		t.Fatalf("NewTokenSigner: %v", err)
	}

	for _, farmers := range [][]models.CollatedFarmer{
		nil,
		{{PashuGPTData: models.PashuGPTFarmer{FarmerName: "No Code"}}},
	} {
		signed, err := signer.Sign(farmers)
		if err != nil {
			t.Fatalf("Sign: %v", err)
		}
		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
			return &signer.key.PublicKey, nil
		}); err != nil {
			t.Fatalf("ParseWithClaims: %v", err)
		}
		if claims["sub"] != "unknown" {
			t.Errorf("Expected sub unknown, got %v", claims["sub"])
		}
	}
}
