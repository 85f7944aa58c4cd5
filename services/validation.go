// ABOUTME: Input validation for API parameters
// ABOUTME: Validates mobile and tag numbers before any upstream call

package services

import (
	"fmt"
	"regexp"
	"strings"
)

// mobilePattern matches a 10-digit Indian mobile number.
var mobilePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// tagPattern matches registry ear-tag numbers (numeric, up to 15 digits).
var tagPattern = regexp.MustCompile(`^[0-9]{6,15}$`)

// sanitizeForLog removes control characters from strings to prevent log
// injection when including user input in error messages
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}

// ValidateMobile validates that a mobile number has the expected format.
func ValidateMobile(mobile string) error {
	if !mobilePattern.MatchString(mobile) {
		return fmt.Errorf("invalid mobile number: %s", sanitizeForLog(mobile))
	}
	return nil
}

// ValidateTagNo validates that an animal tag number has a safe format.
// This prevents URL injection via the tag query parameter.
func ValidateTagNo(tag string) error {
	if !tagPattern.MatchString(tag) {
		return fmt.Errorf("invalid tag number: %s", sanitizeForLog(tag))
	}
	return nil
}
