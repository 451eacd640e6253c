package util

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var symbolRe = regexp.MustCompile(`^[A-Za-z0-9.\-&]{1,32}$`)

// NormalizeSymbol trims and upper-cases a stock symbol and validates it
// (1-32 chars: letters, digits, dot, dash, ampersand).
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return "", fmt.Errorf("symbol is empty")
	}
	if !symbolRe.MatchString(s) {
		return "", fmt.Errorf("invalid symbol %q", symbol)
	}
	return s, nil
}

// ValidateURL checks that s is an absolute http(s) URL.
func ValidateURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("url has no host")
	}
	return nil
}
