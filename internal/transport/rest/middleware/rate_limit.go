package middleware

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"

	"brandaudit/internal/cache"
	"brandaudit/internal/logger"
	"brandaudit/internal/metrics"
)

// MsgRateLimited is the 429 body
const MsgRateLimited = "Zbyt wiele zapytań. Spróbuj ponownie za chwilę."

// RateLimit refuses clients over their budget. When the limiter itself fails
// the request is let through.
func RateLimit(limiter cache.RateLimiter, trusted TrustedProxies, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			allowed, remaining, err := limiter.Allow(r.Context(), ClientIP(r, trusted))
			if err != nil {
				log.WithError(err).Warn("rate limiter unavailable, allowing request", map[string]interface{}{
					"requestId": GetRequestID(r.Context()),
				})
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !allowed {
				metrics.RateLimited.Inc()
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{"error": MsgRateLimited})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TrustedProxies are the peers whose X-Forwarded-For header is believed
type TrustedProxies []netip.Prefix

// ParseTrustedProxies accepts single addresses and CIDR ranges
func ParseTrustedProxies(entries []string) (TrustedProxies, error) {
	out := make(TrustedProxies, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if strings.Contains(e, "/") {
			p, err := netip.ParsePrefix(e)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", e, err)
			}
			out = append(out, p.Masked())
			continue
		}
		a, err := netip.ParseAddr(e)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", e, err)
		}
		a = a.Unmap()
		out = append(out, netip.PrefixFrom(a, a.BitLen()))
	}
	return out, nil
}

func (t TrustedProxies) contains(ip string) bool {
	a, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	a = a.Unmap()
	for _, p := range t {
		if p.Contains(a) {
			return true
		}
	}
	return false
}

// ClientIP is the peer address unless the peer is a trusted proxy. Then the
// right-most X-Forwarded-For hop that is not itself trusted wins; hops to
// its left are client-supplied and ignored.
func ClientIP(r *http.Request, trusted TrustedProxies) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		peer = host
	}
	if !trusted.contains(peer) {
		return peer
	}

	hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !trusted.contains(hop) {
			return hop
		}
	}
	return peer
}
