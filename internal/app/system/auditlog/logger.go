// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/dalemusser/stratahr/internal/app/system/network"
	"go.uber.org/zap"
)

// Setting values for Config.Auth.
const (
	SettingLog = "log" // structured log via zap
	SettingOff = "off" // disabled
)

// Event categories and types.
const (
	CategoryAuth = "auth"

	EventLoginSuccess = "login_success"
	EventLoginFailed  = "login_failed"
)

// Failure reasons recorded for failed logins. They are for operators only;
// the client always sees the same response.
const (
	ReasonUserNotFound = "user_not_found"
	ReasonQueryError   = "query_error"
	ReasonBadPassword  = "bad_password"
	ReasonDisabled     = "user_disabled"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for authentication events.
	// Values: "log" (zap), "off" (disabled). Anything else is treated as "log".
	Auth string
}

// Event is a single audit record.
type Event struct {
	Category      string
	EventType     string
	UserID        string
	IP            string
	UserAgent     string
	Success       bool
	FailureReason string
	Details       map[string]string
}

// Logger provides convenience methods for logging audit events.
type Logger struct {
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		zapLog: zapLog,
		config: config,
	}
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}

	if event.UserID != "" {
		fields = append(fields, zap.String("user_id", event.UserID))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
func (l *Logger) Log(ctx context.Context, event Event) {
	if l == nil {
		return
	}
	if event.Category == CategoryAuth && l.config.Auth == SettingOff {
		return
	}
	l.logToZap(event)
}

// --- Authentication Events ---

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID, email string) {
	l.Log(ctx, Event{
		Category:  CategoryAuth,
		EventType: EventLoginSuccess,
		UserID:    userID,
		IP:        network.GetClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   map[string]string{"email": email},
	})
}

// LoginFailed logs a failed login. userID is empty when the user is unknown.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, userID, attemptedEmail, reason string) {
	l.Log(ctx, Event{
		Category:      CategoryAuth,
		EventType:     EventLoginFailed,
		UserID:        userID,
		IP:            network.GetClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: reason,
		Details:       map[string]string{"attempted_email": attemptedEmail},
	})
}
