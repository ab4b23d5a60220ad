package http

import (
	"github.com/rogerio-castellano/candy-inventory-ui/internal/http/ban"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/http/rate_limiter"
)

var (
	limiter        *rate_limiter.Limiter
	banService     *ban.Service
	allowedOrigins []string
	trustProxy     bool
)

// SetRateLimiter enables rate limiting of the action routes.
func SetRateLimiter(l *rate_limiter.Limiter) {
	limiter = l
}

func SetBanService(s *ban.Service) {
	banService = s
}

// SetAllowedOrigins lists the origins allowed to read /state and /events.
func SetAllowedOrigins(origins []string) {
	allowedOrigins = origins
}

// SetTrustProxy makes the router take client addresses from proxy headers.
func SetTrustProxy(trust bool) {
	trustProxy = trust
}
