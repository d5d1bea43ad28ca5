// internal/app/store/users/supabase.go
package userstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/stratahr/internal/domain/models"
)

// maxErrorBody bounds how much of a failed response is kept in a QueryError.
const maxErrorBody = 4 << 10

// SupabaseStore reads users through the PostgREST API that Supabase exposes
// under /rest/v1.
type SupabaseStore struct {
	baseURL string
	key     string
	table   string
	client  *http.Client
}

// NewSupabase creates a store for the project at baseURL (e.g.
// https://xyz.supabase.co) authenticating with key. A nil client means
// http.DefaultClient.
func NewSupabase(baseURL, key string, client *http.Client) *SupabaseStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &SupabaseStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		table:   "users",
		client:  client,
	}
}

// postgrestError is the error document PostgREST returns on failed requests.
type postgrestError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (s *SupabaseStore) newRequest(ctx context.Context, path string, q url.Values) (*http.Request, error) {
	u := s.baseURL + "/rest/v1/" + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// FindByEmail implements Directory.
func (s *SupabaseStore) FindByEmail(ctx context.Context, email string) (models.UserRecord, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("email", "eq."+email)
	q.Set("limit", "2")

	req, err := s.newRequest(ctx, s.table, q)
	if err != nil {
		return nil, fmt.Errorf("build directory request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &QueryError{Op: "find_by_email", Err: decodeAPIError(resp)}
	}

	var rows []models.UserRecord
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode directory response: %w", err)
	}

	switch len(rows) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return rows[0], nil
	default:
		return nil, &QueryError{Op: "find_by_email", Err: errMultipleRows}
	}
}

// Ping implements Directory by fetching the API root.
func (s *SupabaseStore) Ping(ctx context.Context) error {
	req, err := s.newRequest(ctx, "", nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 500 {
		return fmt.Errorf("directory ping: status %d", resp.StatusCode)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var pe postgrestError
	if err := json.Unmarshal(body, &pe); err == nil && pe.Message != "" {
		if pe.Code != "" {
			return fmt.Errorf("status %d: %s (%s)", resp.StatusCode, pe.Message, pe.Code)
		}
		return fmt.Errorf("status %d: %s", resp.StatusCode, pe.Message)
	}
	if len(body) == 0 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
