package utils

import (
	"github.com/mileusna/useragent"
)

// DeviceSummary renders a short human-facing device description from a raw
// User-Agent string, in the form "<DeviceType> - <Browser>".
func DeviceSummary(rawUserAgent string) string {
	ua := useragent.Parse(rawUserAgent)

	browser := ua.Name
	if browser == "" {
		browser = "Unknown"
	}

	deviceType := "Desktop"
	switch {
	case ua.Mobile:
		deviceType = "Mobile"
	case ua.Tablet:
		deviceType = "Tablet"
	case ua.Bot:
		deviceType = "Bot"
	}

	return deviceType + " - " + browser
}
