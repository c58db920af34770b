package utils

import (
	"fmt"
	"net"
	"net/http"
	"strings"
)

// HeaderClientID is sent by the website with a random per-browser id that it
// keeps in its own storage. It identifies one retention scope.
const HeaderClientID = "X-Client-ID"

// maxClientIDLen bounds header-supplied ids so they stay usable as storage keys.
const maxClientIDLen = 128

// ClientIdentifier holds a typed value that can either be a browser id or an IP address.
type ClientIdentifier struct {
	Type  ClientIDType
	Value string
}

// Scope renders the identifier as a storage scope, e.g. "browser:3f2c..." or "ip:203.0.113.9".
func (c ClientIdentifier) Scope() string {
	return c.Type.String() + ":" + c.Value
}

// IsBrowser reports whether the identifier came from X-Client-ID.
func (c ClientIdentifier) IsBrowser() bool {
	return c.Type == ClientIDTypeBrowser
}

// IsBrowserScope reports whether scope was rendered from an X-Client-ID.
// Address scopes are shared by everyone behind one IP and hold no history.
func IsBrowserScope(scope string) bool {
	return strings.HasPrefix(scope, ClientIDTypeBrowser.String()+":")
}

// TrustedProxies lists the networks whose forwarding headers are believed.
type TrustedProxies []*net.IPNet

// ParseTrustedProxies accepts CIDRs ("10.0.0.0/8") and bare IPs.
func ParseTrustedProxies(entries []string) (TrustedProxies, error) {
	var out TrustedProxies
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.Contains(e, "/") {
			ip := net.ParseIP(e)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", e)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			out = append(out, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(e)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", e, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// Contains reports whether ip falls inside one of the trusted networks.
func (t TrustedProxies) Contains(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	for _, n := range t {
		if n.Contains(parsed) {
			return true
		}
	}
	return false
}

// GetClientIdentifier returns the browser id when the site sent a usable one,
// otherwise the client IP as seen through trusted.
func GetClientIdentifier(r *http.Request, trusted TrustedProxies) ClientIdentifier {
	if id := strings.TrimSpace(r.Header.Get(HeaderClientID)); isUsableClientID(id) {
		return ClientIdentifier{Type: ClientIDTypeBrowser, Value: id}
	}
	return ClientIdentifier{Type: ClientIDTypeIP, Value: ClientIP(r, trusted)}
}

func isUsableClientID(id string) bool {
	if id == "" || len(id) > maxClientIDLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// ClientIP returns the peer address. Forwarding headers are only read when
// the peer itself is a trusted proxy; X-Forwarded-For is walked from the
// right and the first hop outside trusted wins.
func ClientIP(r *http.Request, trusted TrustedProxies) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || !isValidIP(peer) {
		return "unknown"
	}
	if !trusted.Contains(peer) {
		return peer
	}

	if forwardedFor := r.Header.Get("X-Forwarded-For"); forwardedFor != "" {
		hops := strings.Split(forwardedFor, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if !isValidIP(hop) {
				break
			}
			if !trusted.Contains(hop) {
				return hop
			}
		}
	}

	if cfConnectingIP := strings.TrimSpace(r.Header.Get("CF-Connecting-IP")); isValidIP(cfConnectingIP) {
		return cfConnectingIP
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); isValidIP(realIP) {
		return realIP
	}
	return peer
}

func isValidIP(ip string) bool {
	return ip != "" && net.ParseIP(ip) != nil
}
