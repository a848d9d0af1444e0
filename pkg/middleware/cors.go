package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"time"
)

const (
	corsMethods = "GET, POST, PUT, DELETE"
	corsHeaders = "Accept, Content-Type, X-Correlation-ID"
	corsExposed = "X-Correlation-ID"
)

// CORSConfig lists the browser origins allowed to call the API: the
// storefront and the admin panel. "*" allows any origin.
type CORSConfig struct {
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	MaxAge         time.Duration `env:"CORS_MAX_AGE" envDefault:"1h"`
}

// DefaultCORSConfig allows any origin, for a storefront served from its own
// dev server.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{AllowedOrigins: []string{"*"}, MaxAge: time.Hour}
}

// CORS answers preflight requests and sets CORS headers for allowed
// origins. Requests from other origins get no CORS headers and are left for
// the browser to block.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	anyOrigin := slices.Contains(cfg.AllowedOrigins, "*")
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = time.Hour
	}
	maxAge := strconv.Itoa(int(cfg.MaxAge.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""

			allowed := anyOrigin || (origin != "" && slices.Contains(cfg.AllowedOrigins, origin))
			if allowed {
				h := w.Header()
				if anyOrigin {
					h.Set("Access-Control-Allow-Origin", "*")
				} else {
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
				h.Set("Access-Control-Expose-Headers", corsExposed)
				if preflight {
					h.Set("Access-Control-Allow-Methods", corsMethods)
					h.Set("Access-Control-Allow-Headers", corsHeaders)
					h.Set("Access-Control-Max-Age", maxAge)
				}
			}

			if preflight {
				if !allowed {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
