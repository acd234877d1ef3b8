// Package middleware provides HTTP middleware for request handling.
package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// CORS adds Cross-Origin Resource Sharing headers for browser clients.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ClientIP returns the host part of the connection's remote address.
// Forwarding headers are ignored; see TrustedClientIP.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// TrustedClientIP returns a ClientIP variant that uses the first hop of
// X-Forwarded-For when the connection comes from one of the trusted
// networks. With no networks it is ClientIP.
func TrustedClientIP(trusted []netip.Prefix) func(*http.Request) string {
	if len(trusted) == 0 {
		return ClientIP
	}
	return func(r *http.Request) string {
		remote := ClientIP(r)
		addr, err := netip.ParseAddr(remote)
		if err != nil || !containsAddr(trusted, addr.Unmap()) {
			return remote
		}

		fwd := r.Header.Get("X-Forwarded-For")
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
		return remote
	}
}

// ParseTrustedProxies parses CIDR prefixes or bare addresses.
func ParseTrustedProxies(list []string) ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.Contains(item, "/") {
			prefix, err := netip.ParsePrefix(item)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", item, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", item, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

func containsAddr(prefixes []netip.Prefix, addr netip.Addr) bool {
	for _, p := range prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
