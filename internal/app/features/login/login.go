// internal/app/features/login/login.go
package login

// Terminology: User Identifiers
//   - userID / user_id: the "id" field of the directory record, rendered as a string
//   - email: the address the user types to log in; lower-cased before lookup

import (
	"errors"
	"net/http"

	errorsfeature "github.com/dalemusser/stratahr/internal/app/features/errors"
	userstore "github.com/dalemusser/stratahr/internal/app/store/users"
	"github.com/dalemusser/stratahr/internal/app/system/auditlog"
	"github.com/dalemusser/stratahr/internal/app/system/auth"
	"github.com/dalemusser/stratahr/internal/app/system/authutil"
	"github.com/dalemusser/stratahr/internal/app/system/jsonutil"
	"github.com/dalemusser/stratahr/internal/app/system/normalize"
	"github.com/dalemusser/stratahr/internal/app/system/status"
	"github.com/dalemusser/stratahr/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Response messages. The 401 text is shared by every credential failure so
// callers cannot tell an unknown email from a wrong password.
const (
	msgInvalidCredentials = "Invalid credentials"
	msgFieldsRequired     = "Email and password are required"
	msgConfigMissing      = "Database configuration missing"
	msgConfigHint         = "Please set up environment variables"
	msgLoginSuccessful    = "Login successful"
)

// Handler provides the login endpoint.
type Handler struct {
	directory      userstore.Directory // nil when the directory is not configured
	issuer         auth.Issuer
	allowPlaintext bool
	errLog         *errorsfeature.ErrorLogger
	auditLogger    *auditlog.Logger
	logger         *zap.Logger

	// compareDummy spends bcrypt time on failures that have no stored hash.
	compareDummy func(password string)
}

// NewHandler creates a new login Handler.
// directory may be nil; every login then fails with the configuration error.
// allowPlaintext permits stored secrets that are not bcrypt hashes.
func NewHandler(
	directory userstore.Directory,
	issuer auth.Issuer,
	allowPlaintext bool,
	errLog *errorsfeature.ErrorLogger,
	auditLogger *auditlog.Logger,
	logger *zap.Logger,
) *Handler {
	if issuer == nil {
		issuer = auth.NewDemoIssuer("")
	}
	return &Handler{
		directory:      directory,
		issuer:         issuer,
		allowPlaintext: allowPlaintext,
		errLog:         errLog,
		auditLogger:    auditLogger,
		logger:         logger,
		compareDummy:   authutil.CompareDummy,
	}
}

// Request is the login payload.
type Request struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Response is the body of a successful login.
type Response struct {
	Message string            `json:"message"`
	User    models.UserRecord `json:"user"`
	Token   string            `json:"token"`
}

// Routes returns a chi.Router with the login route mounted.
// Only POST is served; any other method gets the JSON 405.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.handleLogin)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		jsonutil.MethodNotAllowed(w)
	})
	return r
}

// handleLogin verifies an email/password pair against the directory.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if h.directory == nil {
		h.logger.Error("login attempted without directory configuration")
		jsonutil.ErrorWithMessage(w, http.StatusInternalServerError, msgConfigMissing, msgConfigHint)
		return
	}

	var req Request
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, msgFieldsRequired)
		return
	}
	email := normalize.Email(req.Email)
	if email == "" || req.Password == "" {
		jsonutil.BadRequest(w, msgFieldsRequired)
		return
	}

	ctx := r.Context()
	user, err := h.directory.FindByEmail(ctx, email)
	switch {
	case err == nil:
	case errors.Is(err, userstore.ErrNotFound):
		h.compareDummy(req.Password)
		h.auditLogger.LoginFailed(ctx, r, "", email, auditlog.ReasonUserNotFound)
		jsonutil.Unauthorized(w, msgInvalidCredentials)
		return
	case userstore.IsQueryError(err):
		h.compareDummy(req.Password)
		h.logger.Warn("directory rejected login query", zap.Error(err))
		h.auditLogger.LoginFailed(ctx, r, "", email, auditlog.ReasonQueryError)
		jsonutil.Unauthorized(w, msgInvalidCredentials)
		return
	default:
		h.errLog.LogWithFields(r, "directory lookup failed", err, zap.String("email", email))
		jsonutil.InternalError(w, err.Error())
		return
	}

	if !authutil.CheckSecret(req.Password, user.Secret(), h.allowPlaintext) {
		// A plaintext or missing secret fails without bcrypt work.
		if !authutil.IsBcryptHash(user.Secret()) {
			h.compareDummy(req.Password)
		}
		h.auditLogger.LoginFailed(ctx, r, user.ID(), email, auditlog.ReasonBadPassword)
		jsonutil.Unauthorized(w, msgInvalidCredentials)
		return
	}

	// Checked after the password so a wrong guess cannot probe account state.
	if !status.CanLogin(status.Of(user[status.Key])) {
		h.auditLogger.LoginFailed(ctx, r, user.ID(), email, auditlog.ReasonDisabled)
		jsonutil.Unauthorized(w, msgInvalidCredentials)
		return
	}

	token, err := h.issuer.Issue(user.ID())
	if err != nil {
		h.errLog.Log(r, "issue token failed", err)
		jsonutil.InternalError(w, err.Error())
		return
	}

	h.auditLogger.LoginSuccess(ctx, r, user.ID(), email)
	jsonutil.OK(w, Response{
		Message: msgLoginSuccessful,
		User:    user.Sanitized(),
		Token:   token,
	})
}
