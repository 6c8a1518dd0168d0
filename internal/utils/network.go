package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetRealIP extracts the client IP address from the request.
//
// Priority order:
// 1. X-Real-IP header when it carries a public address
// 2. First public address in X-Forwarded-For, else its first valid entry
// 3. Gin's ClientIP()
func GetRealIP(c *gin.Context) string {
	realIP := strings.TrimSpace(c.Request.Header.Get("X-Real-IP"))
	if ip := net.ParseIP(realIP); ip != nil && !isPrivateIP(ip) {
		return realIP
	}

	if forwarded := c.Request.Header.Get("X-Forwarded-For"); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		for _, hop := range hops {
			candidate := strings.TrimSpace(hop)
			if ip := net.ParseIP(candidate); ip != nil && !isPrivateIP(ip) && !ip.IsLoopback() {
				return candidate
			}
		}
		if first := strings.TrimSpace(hops[0]); net.ParseIP(first) != nil {
			return first
		}
	}

	return c.ClientIP()
}

// GetUserAgent extracts the User-Agent header from the request
func GetUserAgent(c *gin.Context) string {
	ua := c.Request.UserAgent()
	if ua == "" {
		return "Unknown"
	}
	return ua
}

// RequestBaseURL rebuilds scheme://host for the request, honoring
// X-Forwarded-Proto and X-Forwarded-Host set by a reverse proxy.
func RequestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}

	host := c.Request.Host
	if fwdHost := c.GetHeader("X-Forwarded-Host"); fwdHost != "" {
		host = strings.TrimSpace(strings.Split(fwdHost, ",")[0])
	}
	if host == "" {
		host = "localhost"
	}

	return scheme + "://" + host
}

// isPrivateIP checks if an IP is in a private range
func isPrivateIP(ip net.IP) bool {
	return ip != nil && ip.IsPrivate()
}
