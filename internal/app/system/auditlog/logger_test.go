package auditlog

import (
	"context"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(setting string) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return New(zap.New(core), Config{Auth: setting}), logs
}

func TestLoginSuccess(t *testing.T) {
	l, logs := newObserved(SettingLog)

	req := httptest.NewRequest("POST", "/api/login", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	l.LoginSuccess(context.Background(), req, "42", "admin@test.com")

	if logs.Len() != 1 {
		t.Fatalf("got %d log entries, want 1", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Level != zapcore.InfoLevel {
		t.Errorf("level = %v, want info", entry.Level)
	}
	fields := entry.ContextMap()
	if fields["event_type"] != EventLoginSuccess {
		t.Errorf("event_type = %v", fields["event_type"])
	}
	if fields["user_id"] != "42" {
		t.Errorf("user_id = %v", fields["user_id"])
	}
	if fields["ip"] != "203.0.113.9" {
		t.Errorf("ip = %v", fields["ip"])
	}
	if fields["detail_email"] != "admin@test.com" {
		t.Errorf("detail_email = %v", fields["detail_email"])
	}
}

func TestLoginFailed(t *testing.T) {
	l, logs := newObserved(SettingLog)

	req := httptest.NewRequest("POST", "/api/login", nil)
	l.LoginFailed(context.Background(), req, "", "nobody@x.com", ReasonUserNotFound)

	if logs.Len() != 1 {
		t.Fatalf("got %d log entries, want 1", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", entry.Level)
	}
	fields := entry.ContextMap()
	if fields["failure_reason"] != ReasonUserNotFound {
		t.Errorf("failure_reason = %v", fields["failure_reason"])
	}
	if _, ok := fields["user_id"]; ok {
		t.Error("user_id logged for unknown user")
	}
}

func TestLog_Off(t *testing.T) {
	l, logs := newObserved(SettingOff)

	req := httptest.NewRequest("POST", "/api/login", nil)
	l.LoginSuccess(context.Background(), req, "1", "a@x.com")

	if logs.Len() != 0 {
		t.Errorf("got %d log entries with auditing off", logs.Len())
	}
}

func TestLog_NilLogger(t *testing.T) {
	var l *Logger
	req := httptest.NewRequest("POST", "/api/login", nil)
	// Must not panic.
	l.LoginFailed(context.Background(), req, "", "a@x.com", ReasonBadPassword)
}
