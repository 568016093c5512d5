package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// forwardingHeaders are consulted in order before falling back to RemoteAddr.
var forwardingHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// GetIP returns the client's IP address for r, or "" when nothing parses.
// X-Forwarded-For may hold a chain; its first valid entry is the client.
func GetIP(r *http.Request) string {
	for _, h := range forwardingHeaders {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		for candidate := range strings.SplitSeq(v, ",") {
			if ip := normalize(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalize(r.RemoteAddr)
	}
	return normalize(host)
}

func normalize(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}
