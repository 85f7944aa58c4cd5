// ABOUTME: RS256 signing of collated farmer data for the downstream chat UI
// ABOUTME: Claim shape {sub, data.farmers} with 24h expiry is a fixed contract

package services

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/OpenAgriNet/amul-sdk-go/models"
)

// TokenTTL is the validity window the downstream chat UI expects.
const TokenTTL = 24 * time.Hour

// TokenSigner mints the bearer token consumed by the external chat system
// via its ?token= query parameter.
type TokenSigner struct {
	key *rsa.PrivateKey
	ttl time.Duration
	now func() time.Time
}

// NewTokenSigner parses a PEM-encoded RSA private key. Keys delivered
// through environment variables often arrive with literal "\n" sequences;
// those are unescaped first. PKCS#8 is tried before PKCS#1.
func NewTokenSigner(pemKey string) (*TokenSigner, error) {
	if pemKey == "" {
		return nil, errors.New("signing key is empty")
	}

	block, _ := pem.Decode([]byte(strings.ReplaceAll(pemKey, `\n`, "\n")))
	if block == nil {
		return nil, errors.New("failed to decode PEM signing key")
	}

	var privateKey *rsa.PrivateKey
	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("signing key is not an RSA key")
		}
		privateKey = rsaKey
	} else {
		privateKey, err = x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse signing key: %w", err)
		}
	}

	return &TokenSigner{
		key: privateKey,
		ttl: TokenTTL,
		now: time.Now,
	}, nil
}

// Sign issues an RS256 token over the collated farmer views. The subject is
// the first entry's farmer code, "unknown" when no entry carries one.
func (s *TokenSigner) Sign(farmers []models.CollatedFarmer) (string, error) {
	sub := "unknown"
	if len(farmers) > 0 && farmers[0].PashuGPTData.FarmerCode != "" {
		sub = farmers[0].PashuGPTData.FarmerCode
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub": sub,
		"data": map[string]interface{}{
			"farmers": farmers,
		},
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
