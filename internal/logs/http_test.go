package logs

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestServer() (*chi.Mux, *InMemoryRepo) {
	repo := NewInMemoryRepo()
	r := chi.NewRouter()
	RegisterRoutes(r, repo)
	return r, repo
}

func TestPostLogs_Success(t *testing.T) {
	r, repo := newTestServer()

	body := []byte(`{"date":"2024-06-01","tasks":[{"id":1,"text":"buy milk","completed":true}]}`)
	req := httptest.NewRequest(http.MethodPost, "/logs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool  `json:"success"`
		ID      int64 `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if !resp.Success || resp.ID == 0 {
		t.Fatalf("expected success with an id, got %+v", resp)
	}

	list, _ := repo.List()
	if len(list) != 1 || list[0].Date != "2024-06-01" {
		t.Fatalf("expected one stored entry, got %+v", list)
	}
}

func TestPostLogs_MissingFields(t *testing.T) {
	r, _ := newTestServer()

	for _, body := range []string{
		`{"tasks":[]}`,
		`{"date":"2024-06-01"}`,
		`{"date":"2024-06-01","tasks":null}`,
		`{}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/logs", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected status 400, got %d, body=%s", body, rec.Code, rec.Body.String())
		}

		var errResp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
			t.Fatalf("failed to parse error JSON: %v", err)
		}
		if errResp["error"] != "Date and tasks are required" {
			t.Errorf("expected error 'Date and tasks are required', got %q", errResp["error"])
		}
	}
}

func TestGetLogs(t *testing.T) {
	r, repo := newTestServer()

	if _, err := repo.Append("2024-06-01", []map[string]any{{"id": 1, "text": "a"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := repo.Append("2024-06-02", []map[string]any{{"id": 2, "text": "b"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/logs", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", rec.Code, rec.Body.String())
	}

	var list []Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	if list[0].Date != "2024-06-02" {
		t.Errorf("expected newest entry first, got %q", list[0].Date)
	}
}

type failingRepo struct {
	err error
}

func (r *failingRepo) List() ([]Entry, error) { return nil, r.err }

func (r *failingRepo) Append(string, any) (int64, error) { return 0, r.err }

func TestStorageFailure_Returns500Verbatim(t *testing.T) {
	backendErr := errors.New("database is locked")
	r := chi.NewRouter()
	RegisterRoutes(r, &failingRepo{err: backendErr})

	cases := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/logs", ""},
		{http.MethodPost, "/logs", `{"date":"2024-06-01","tasks":[]}`},
	}
	for _, tc := range cases {
		var req *http.Request
		if tc.body != "" {
			req = httptest.NewRequest(tc.method, tc.path, bytes.NewReader([]byte(tc.body)))
		} else {
			req = httptest.NewRequest(tc.method, tc.path, nil)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("%s %s: expected status 500, got %d, body=%s", tc.method, tc.path, rec.Code, rec.Body.String())
		}
		var errResp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
			t.Fatalf("%s %s: failed to parse error JSON: %v", tc.method, tc.path, err)
		}
		if errResp["error"] != backendErr.Error() {
			t.Errorf("%s %s: expected backend message %q, got %q", tc.method, tc.path, backendErr.Error(), errResp["error"])
		}
	}
}

func TestGetLogs_EmptyIsArray(t *testing.T) {
	r, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/logs", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", got)
	}
}
