// Package validation holds the pure field validators shared by the
// signup flow and the admin user endpoints.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// reservedUsername is the self-reference path segment (users/me/), so no
// account may claim it in any letter-casing.
const reservedUsername = "me"

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Username rejects the reserved self-reference word, case-insensitively.
func Username(value string) error {
	if strings.EqualFold(value, reservedUsername) {
		return fmt.Errorf("username %q is reserved", value)
	}
	return nil
}

// Year rejects release years in the future.
func Year(value int) error {
	if current := time.Now().Year(); value > current {
		return fmt.Errorf("year %d is in the future", value)
	}
	return nil
}

// Slug accepts letters, digits, hyphens and underscores only.
func Slug(value string) error {
	if !slugPattern.MatchString(value) {
		return fmt.Errorf("slug %q contains invalid characters", value)
	}
	return nil
}
