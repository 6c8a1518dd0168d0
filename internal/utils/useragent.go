package utils

import (
	"strings"

	ua "github.com/mssola/user_agent"
)

// DeviceInfo holds parsed information from a User-Agent string
type DeviceInfo struct {
	DeviceType string `json:"device_type"` // mobile, tablet, desktop
	OS         string `json:"os"`
	Browser    string `json:"browser"`
	BrowserVer string `json:"browser_ver"`
	IsBot      bool   `json:"is_bot"`
	Platform   string `json:"platform"` // android, ios, windows, mac, linux
}

var tabletIndicators = []string{"ipad", "tablet", "kindle", "playbook", "nexus 7", "nexus 9", "nexus 10", "xoom", "sm-t"}

var platforms = []struct {
	needle   string
	platform string
}{
	{"android", "android"},
	{"iphone os", "ios"},
	{"ios", "ios"},
	{"chrome os", "chromeos"},
	{"windows", "windows"},
	{"mac os x", "mac"},
	{"macos", "mac"},
	{"ubuntu", "linux"},
	{"linux", "linux"},
}

// ParseUserAgent parses a User-Agent string and extracts device information
func ParseUserAgent(userAgent string) DeviceInfo {
	if userAgent == "" || userAgent == "Unknown" {
		return DeviceInfo{
			DeviceType: "unknown",
			OS:         "Unknown",
			Browser:    "Unknown",
			Platform:   "unknown",
		}
	}

	parser := ua.New(userAgent)
	browser, version := parser.Browser()
	if browser == "" {
		browser = "Unknown"
	}

	osInfo := parser.OSInfo()
	osName := strings.TrimSpace(osInfo.Name + " " + osInfo.Version)
	if osInfo.Name == "" {
		osName = "Unknown"
	}

	return DeviceInfo{
		DeviceType: deviceType(parser),
		OS:         osName,
		Browser:    browser,
		BrowserVer: version,
		IsBot:      parser.Bot(),
		Platform:   platform(osInfo.Name),
	}
}

func deviceType(parser *ua.UserAgent) string {
	lower := strings.ToLower(parser.UA())
	for _, indicator := range tabletIndicators {
		if strings.Contains(lower, indicator) {
			return "tablet"
		}
	}
	if parser.Mobile() {
		return "mobile"
	}
	return "desktop"
}

func platform(osName string) string {
	lower := strings.ToLower(osName)
	for _, p := range platforms {
		if strings.Contains(lower, p.needle) {
			return p.platform
		}
	}
	return "unknown"
}
