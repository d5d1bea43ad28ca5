package models

import (
	"encoding/json"
	"testing"
)

func TestUserRecord_ID(t *testing.T) {
	tests := []struct {
		name string
		rec  UserRecord
		want string
	}{
		{"string id", UserRecord{"id": "abc-123"}, "abc-123"},
		{"json number id", UserRecord{"id": float64(42)}, "42"},
		{"decoded number id", UserRecord{"id": json.Number("9007199254740993")}, "9007199254740993"},
		{"int64 id", UserRecord{"id": int64(7)}, "7"},
		{"int id", UserRecord{"id": 9}, "9"},
		{"missing id", UserRecord{"email": "a@b.c"}, ""},
		{"nil id", UserRecord{"id": nil}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.ID(); got != tt.want {
				t.Errorf("ID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserRecord_Secret(t *testing.T) {
	tests := []struct {
		name string
		rec  UserRecord
		want string
	}{
		{"password column", UserRecord{"password": "admin123"}, "admin123"},
		{"secret column", UserRecord{"secret": "s3"}, "s3"},
		{"hash column", UserRecord{"password_hash": "$2a$12$x"}, "$2a$12$x"},
		{"password wins", UserRecord{"password": "p", "secret": "s"}, "p"},
		{"empty password falls through", UserRecord{"password": "", "secret": "s"}, "s"},
		{"none", UserRecord{"email": "a@b.c"}, ""},
		{"non-string", UserRecord{"password": 123}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Secret(); got != tt.want {
				t.Errorf("Secret() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserRecord_Sanitized(t *testing.T) {
	rec := UserRecord{
		"id":            "1",
		"email":         "admin@test.com",
		"password":      "admin123",
		"secret":        "x",
		"password_hash": "y",
		"department":    "HR",
	}

	got := rec.Sanitized()

	for _, k := range []string{"password", "secret", "password_hash"} {
		if _, ok := got[k]; ok {
			t.Errorf("Sanitized() still contains %q", k)
		}
	}
	if got["department"] != "HR" || got["email"] != "admin@test.com" || got["id"] != "1" {
		t.Errorf("Sanitized() dropped profile fields: %v", got)
	}

	// The original record must be untouched.
	if rec["password"] != "admin123" {
		t.Error("Sanitized() modified the receiver")
	}
}

func TestUserRecord_Email(t *testing.T) {
	if got := (UserRecord{"email": "a@b.c"}).Email(); got != "a@b.c" {
		t.Errorf("Email() = %q", got)
	}
	if got := (UserRecord{}).Email(); got != "" {
		t.Errorf("Email() on empty record = %q", got)
	}
}

func TestDecodeUserRecord_KeepsBigIntID(t *testing.T) {
	rec, err := DecodeUserRecord([]byte(`{"id":9007199254740993,"email":"big@x.com","age":41}`))
	if err != nil {
		t.Fatalf("DecodeUserRecord() error = %v", err)
	}
	if got := rec.ID(); got != "9007199254740993" {
		t.Errorf("ID() = %q, want 9007199254740993", got)
	}

	out, err := json.Marshal(rec.Sanitized())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"age":41,"email":"big@x.com","id":9007199254740993}`; string(out) != want {
		t.Errorf("Marshal() = %s, want %s", out, want)
	}
}

func TestDecodeUserRecord_Invalid(t *testing.T) {
	if _, err := DecodeUserRecord([]byte(`{broken`)); err == nil {
		t.Error("DecodeUserRecord() error = nil, want error")
	}
}
