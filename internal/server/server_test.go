package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/Firecargit/BizHub-saas/pkg/errors"
	"github.com/Firecargit/BizHub-saas/pkg/page"
)

func newTestServer(t *testing.T) (*Server, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return New(store, logger, Options{ThrottleLimit: 10}), store
}

const validBody = `{
  "userId": "user123",
  "elements": [
    {"type": "heading", "content": {"text": "Welcome"}, "position": {"x": 80, "y": 40}},
    {"type": "services", "content": {"items": [{"title": "Cut", "description": "Basic", "price": "$25.00"}]}, "position": {"x": 0, "y": 200}}
  ]
}`

func TestSavePageRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/save-page", "application/json", strings.NewReader(validBody))
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}

	get, err := http.Get(ts.URL + "/api/page/user123")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	defer get.Body.Close()
	if get.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d", get.StatusCode)
	}

	var doc page.Document
	if err := json.NewDecoder(get.Body).Decode(&doc); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if doc.UserID != "user123" || len(doc.Elements) != 2 {
		t.Fatalf("doc = %+v", doc)
	}
	if doc.Elements[0].Type != page.TypeHeading || doc.Elements[1].Type != page.TypeServices {
		t.Errorf("element order not preserved: %v, %v", doc.Elements[0].Type, doc.Elements[1].Type)
	}
}

func TestSavePageOverwrites(t *testing.T) {
	srv, store := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	for _, body := range []string{
		validBody,
		`{"userId": "user123", "elements": []}`,
	} {
		resp, err := http.Post(ts.URL+"/api/save-page", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST error: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
	}

	doc, err := store.Get(context.Background(), "user123")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if len(doc.Elements) != 0 {
		t.Errorf("later save did not overwrite: %d elements", len(doc.Elements))
	}
}

func TestSavePageRejectsMalformedBodies(t *testing.T) {
	srv, store := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{oops`},
		{"missing userId", `{"elements": []}`},
		{"empty userId", `{"userId": "", "elements": []}`},
		{"unknown widget type", `{"userId": "u1", "elements": [{"type": "carousel", "content": {}, "position": {"x": 0, "y": 0}}]}`},
		{"negative position", `{"userId": "u1", "elements": [{"type": "text", "content": {}, "position": {"x": -5, "y": 0}}]}`},
		{"elements not an array", `{"userId": "u1", "elements": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/save-page", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST error: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}

			var payload struct {
				Code string `json:"code"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
				t.Fatalf("decode error payload: %v", err)
			}
			if payload.Code == "" {
				t.Error("error response missing machine-readable code")
			}
		})
	}

	if _, err := store.Get(context.Background(), "u1"); !errors.Is(err, errors.ErrCodePageNotFound) {
		t.Error("rejected save reached the store")
	}
}

func TestGetPageNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/page/ghost")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestValidateSaveBodyAcceptsEmptyElements(t *testing.T) {
	if err := ValidateSaveBody([]byte(`{"userId": "u1", "elements": []}`)); err != nil {
		t.Errorf("empty elements should be valid: %v", err)
	}
}
