// ABOUTME: Device and request identity generation
// ABOUTME: Pseudo-UUID provider matching the mobile app, swappable for crypto-strong IDs

package services

import (
	"encoding/base64"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"
)

// IDProvider produces correlation identifiers for devices and requests.
// These are not secrets; they exist so upstream logs can tie calls together.
type IDProvider interface {
	NewID() string
}

// RandomIDProvider emits UUID-v4 layout strings from a non-cryptographic
// source, matching the captured behavior of the mobile app.
type RandomIDProvider struct{}

func (RandomIDProvider) NewID() string {
	const layout = "xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx"
	const hexDigits = "0123456789abcdef"

	buf := make([]byte, len(layout))
	for i := 0; i < len(layout); i++ {
		switch layout[i] {
		case 'x':
			buf[i] = hexDigits[rand.IntN(16)]
		case 'y':
			// variant bits: one of 8, 9, a, b
			buf[i] = hexDigits[8+rand.IntN(4)]
		default:
			buf[i] = layout[i]
		}
	}
	return string(buf)
}

// UUIDProvider is a cryptographically strong alternative for callers that
// need more than correlation tokens.
type UUIDProvider struct{}

func (UUIDProvider) NewID() string {
	return uuid.NewString()
}

// requestSignature emits the placeholder request "signature" observed in
// captured traffic. The real signing algorithm is not reverse-engineered;
// upstream does not appear to verify this value. Known gap, do not rely on
// it for integrity.
func requestSignature() string {
	s := base64.StdEncoding.EncodeToString([]byte(strconv.FormatFloat(rand.Float64(), 'f', -1, 64)))
	if len(s) > 44 {
		s = s[:44]
	}
	return s + "="
}
