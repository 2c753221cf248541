// AngelaMos | 2026
// request.go

package core

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the caller address, preferring the proxy headers set
// by the ingress. The last X-Forwarded-For hop is the one the proxy saw.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[len(ips)-1])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}
