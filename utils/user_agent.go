package utils

import (
	"fmt"

	"github.com/mileusna/useragent"
)

// ParseUserAgent turns a raw User-Agent header into a short device label
// stored on login sessions, e.g. "Chrome on Windows (desktop)".
func ParseUserAgent(uaString string) string {
	ua := useragent.Parse(uaString)

	device := "desktop"
	switch {
	case ua.Mobile:
		device = "mobile"
	case ua.Tablet:
		device = "tablet"
	case ua.Bot:
		device = "bot"
	}

	browser := ua.Name
	if browser == "" {
		browser = "Unknown browser"
	}
	os := ua.OS
	if os == "" {
		os = "unknown OS"
	}

	return fmt.Sprintf("%s on %s (%s)", browser, os, device)
}
