package apicors

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// okHandler records whether it ran.
func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusTeapot)
	})
}

func assertCommonHeaders(t *testing.T, h http.Header) {
	t.Helper()
	if got := h.Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q, want true", got)
	}
	if got := h.Get("Access-Control-Allow-Methods"); got != "GET,OPTIONS,PATCH,DELETE,POST,PUT" {
		t.Errorf("Allow-Methods = %q", got)
	}
	if got := h.Get("Access-Control-Allow-Headers"); got != AllowHeaders {
		t.Errorf("Allow-Headers = %q", got)
	}
}

func TestAllowHeaders_Count(t *testing.T) {
	if n := len(strings.Split(AllowHeaders, ",")); n != 10 {
		t.Errorf("AllowHeaders lists %d headers, want 10", n)
	}
}

func TestMiddleware_Preflight(t *testing.T) {
	called := false
	h := Middleware()(okHandler(&called))

	req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	req.Header.Set("Origin", "https://anything.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if called {
		t.Error("preflight reached the wrapped handler")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	assertCommonHeaders(t, rec.Header())
}

func TestMiddleware_PassesThrough(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			called := false
			h := Middleware()(okHandler(&called))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(method, "/api/login", nil))

			if !called {
				t.Error("wrapped handler not called")
			}
			if rec.Code != http.StatusTeapot {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
				t.Errorf("Allow-Origin = %q, want *", got)
			}
			assertCommonHeaders(t, rec.Header())
		})
	}
}

func TestMiddlewareWithOrigins(t *testing.T) {
	tests := []struct {
		name       string
		origin     string
		wantOrigin string
	}{
		{"allowed origin echoed", "https://hr.example.com", "https://hr.example.com"},
		{"other origin omitted", "https://evil.example", ""},
		{"no origin", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := MiddlewareWithOrigins("https://hr.example.com")(okHandler(&called))

			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if got := rec.Header().Get("Vary"); got != "Origin" {
				t.Errorf("Vary = %q, want Origin", got)
			}
			assertCommonHeaders(t, rec.Header())
			if !called {
				t.Error("wrapped handler not called")
			}
		})
	}
}

func TestMiddlewareWithOrigins_Preflight(t *testing.T) {
	called := false
	h := MiddlewareWithOrigins("https://hr.example.com")(okHandler(&called))

	req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	req.Header.Set("Origin", "https://hr.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if called || rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Errorf("preflight: called=%v status=%d body=%q", called, rec.Code, rec.Body.String())
	}
}

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name       string
		origins    []string
		wantOrigin string
	}{
		{"empty means wildcard", nil, "*"},
		{"explicit wildcard", []string{"*"}, "*"},
		{"wildcard among others", []string{"https://a.example", " * "}, "*"},
		{"restricted", []string{"https://a.example"}, "https://a.example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := FromConfig(tt.origins)(okHandler(&called))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", "https://a.example")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}
