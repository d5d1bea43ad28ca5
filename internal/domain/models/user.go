// internal/domain/models/user.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// UserRecord is a row of the external user directory.
//
// The directory owns the schema; besides the identity fields listed below a
// record may carry any number of profile columns (name, department, role, ...),
// so it is kept as an open key/value set and passed through to clients as-is
// once the secret fields have been stripped.
//
// Well-known keys:
//   - id: directory primary key
//   - email: lowercase login identity (unique)
//   - password: stored secret (plaintext in legacy directories, bcrypt hash otherwise)
type UserRecord map[string]any

// Record keys that hold credential material. None of them may leave the server.
var secretKeys = []string{"password", "secret", "password_hash"}

// ID returns the record id rendered as a string, or "" if absent.
func (u UserRecord) ID() string {
	v, ok := u["id"]
	if !ok || v == nil {
		return ""
	}
	switch id := v.(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	case float64:
		// JSON numbers decode as float64; ids are integral.
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(id, 10)
	case int:
		return strconv.Itoa(id)
	default:
		return fmt.Sprint(id)
	}
}

// DecodeUserRecord decodes one JSON object into a record. Numbers are kept
// as json.Number so bigint ids survive intact.
func DecodeUserRecord(data []byte) (UserRecord, error) {
	var rec UserRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Email returns the record email, or "" if absent.
func (u UserRecord) Email() string {
	s, _ := u["email"].(string)
	return s
}

// Secret returns the stored secret. The first non-empty secret key wins.
func (u UserRecord) Secret() string {
	for _, k := range secretKeys {
		if s, ok := u[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Sanitized returns a shallow copy of the record without any secret fields.
// The receiver is not modified.
func (u UserRecord) Sanitized() UserRecord {
	out := make(UserRecord, len(u))
	for k, v := range u {
		out[k] = v
	}
	for _, k := range secretKeys {
		delete(out, k)
	}
	return out
}
