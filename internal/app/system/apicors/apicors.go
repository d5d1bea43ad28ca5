// Package apicors provides the CORS negotiation applied in front of every
// API endpoint.
//
// Every response is annotated with the access-control headers before any
// other processing, and preflight OPTIONS requests are answered right here
// with 200 and an empty body, so handlers never see them.
package apicors

import (
	"net/http"
	"strings"
)

// Header values sent on every response.
const (
	AllowMethods = "GET,OPTIONS,PATCH,DELETE,POST,PUT"
	AllowHeaders = "X-CSRF-Token, X-Requested-With, Accept, Accept-Version, Content-Length, Content-MD5, Content-Type, Date, X-Api-Version, Authorization"
)

func setCommon(h http.Header) {
	h.Set("Access-Control-Allow-Credentials", "true")
	h.Set("Access-Control-Allow-Methods", AllowMethods)
	h.Set("Access-Control-Allow-Headers", AllowHeaders)
}

// Middleware returns CORS middleware that accepts any origin
// (Access-Control-Allow-Origin: *).
//
// Usage in routes.go:
//
//	r.Route("/api", func(r chi.Router) {
//	    r.Use(apicors.Middleware())
//	    r.Mount("/login", loginfeature.Routes(loginHandler))
//	})
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			setCommon(w.Header())

			// Preflight: answer and stop.
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// MiddlewareWithOrigins returns CORS middleware that only allows specific origins.
// The request Origin is echoed back when it is in the list; otherwise no
// Allow-Origin header is sent and the browser blocks the response.
// Preflight handling is the same as Middleware.
//
// Usage:
//
//	r.Use(apicors.MiddlewareWithOrigins("https://hr.example.com", "https://admin.example.com"))
func MiddlewareWithOrigins(allowedOrigins ...string) func(http.Handler) http.Handler {
	originSet := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originSet[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" {
				if _, allowed := originSet[origin]; allowed {
					w.Header().Set("Access-Control-Allow-Origin", origin)
				}
			}
			w.Header().Add("Vary", "Origin")
			setCommon(w.Header())

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// FromConfig picks the middleware for a configured origin list.
// An empty list or one containing "*" means any origin.
func FromConfig(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		return Middleware()
	}
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			return Middleware()
		}
	}
	return MiddlewareWithOrigins(origins...)
}
