// Package whatsapp builds the wa.me deep link handed to the platform's
// link-opening mechanism. Transmission itself happens outside the engine.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

const baseURL = "https://wa.me/"

// Link builds a wa.me deep link for the destination phone carrying the
// pre-filled message. The phone may come formatted ("(11) 91234-5678");
// everything but digits is stripped. countryCode is prepended when the
// number does not already carry it.
func Link(phone, countryCode, message string) (string, error) {
	digits := onlyDigits(phone)
	if digits == "" {
		return "", fmt.Errorf("destination phone has no digits: %q", phone)
	}

	cc := onlyDigits(countryCode)
	if cc != "" && !strings.HasPrefix(digits, cc) {
		digits = cc + digits
	}

	u, err := url.Parse(baseURL + digits)
	if err != nil {
		return "", fmt.Errorf("building wa.me link: %w", err)
	}
	q := u.Query()
	q.Set("text", message)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func onlyDigits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
