package utils

import (
	"net"
	"net/http"
	"strings"
)

// SourceIP extracts the best client IP address from typical proxy headers
// or RemoteAddr. Returns "" when nothing usable is found.
func SourceIP(r *http.Request) string {
	forwardedFor := r.Header.Get("X-Forwarded-For")
	if forwardedFor != "" {
		ips := strings.Split(forwardedFor, ",")
		for _, ip := range ips {
			cleanIP := strings.TrimSpace(ip)
			if isValidIP(cleanIP) {
				return cleanIP
			}
		}
	}

	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" && isValidIP(realIP) {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && isValidIP(host) {
		return host
	}
	if isValidIP(r.RemoteAddr) {
		return r.RemoteAddr
	}
	return ""
}

func isValidIP(s string) bool {
	return net.ParseIP(s) != nil
}
