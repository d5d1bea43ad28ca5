// internal/app/features/passwordtest/passwordtest.go
package passwordtest

import (
	"net/http"

	errorsfeature "github.com/dalemusser/stratahr/internal/app/features/errors"
	"github.com/dalemusser/stratahr/internal/app/system/jsonutil"
	"github.com/dalemusser/stratahr/internal/app/system/normalize"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DiagnosticEmail is the only identity the endpoint evaluates.
const DiagnosticEmail = "admin@test.com"

// Candidates are compared against the submitted password, in this order.
var Candidates = []string{"admin123", "password", "admin", "123456", "test123"}

// Handler serves the password diagnostic endpoint. It never touches the
// directory; it only reports which fixed candidates the submitted password
// equals. Mount it only outside production.
type Handler struct {
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a new diagnostic Handler.
func NewHandler(errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{errLog: errLog, logger: logger}
}

// Request is the diagnostic payload.
type Request struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Result reports candidate matches. Email and ProvidedPassword echo the
// request as sent; the identity check itself compares the normalized email,
// so "  Admin@Test.com" is accepted and echoed unchanged.
type Result struct {
	Email            string          `json:"email"`
	ProvidedPassword string          `json:"providedPassword"`
	Tests            map[string]bool `json:"tests"`
	Success          bool            `json:"success"`
}

// Info is the GET description of the endpoint.
type Info struct {
	Message string   `json:"message"`
	Methods []string `json:"methods"`
	Usage   string   `json:"usage"`
}

// Routes returns a chi.Router with the diagnostic routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.describe)
	r.Post("/", h.evaluate)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		jsonutil.MethodNotAllowed(w)
	})
	return r
}

func (h *Handler) describe(w http.ResponseWriter, r *http.Request) {
	jsonutil.OK(w, Info{
		Message: "Password test endpoint",
		Methods: []string{http.MethodGet, http.MethodPost},
		Usage:   `POST {"email":"` + DiagnosticEmail + `","password":"..."}`,
	})
}

func (h *Handler) evaluate(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := jsonutil.Decode(r, &req); err != nil {
		h.errLog.Log(r, "decode diagnostic request", err)
		jsonutil.InternalError(w, err.Error())
		return
	}

	if normalize.Email(req.Email) != DiagnosticEmail {
		jsonutil.OK(w, map[string]any{
			"success": false,
			"message": "Only testing " + DiagnosticEmail + " for now",
		})
		return
	}

	h.logger.Warn("password diagnostic evaluated", zap.String("email", DiagnosticEmail))
	jsonutil.OK(w, Evaluate(req.Email, req.Password))
}

// Evaluate compares password against every candidate.
func Evaluate(email, password string) Result {
	res := Result{
		Email:            email,
		ProvidedPassword: password,
		Tests:            make(map[string]bool, len(Candidates)),
	}
	for _, c := range Candidates {
		match := password == c
		res.Tests[c] = match
		res.Success = res.Success || match
	}
	return res
}
