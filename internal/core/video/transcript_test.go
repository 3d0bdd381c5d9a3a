package video

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *TranscriptClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewTranscriptClient(TranscriptConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func TestFetchJoinsSegments(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"language":"de","segments":[{"text":"Zwiebeln schneiden"},{"text":" "},{"text":"anbraten"}]}`))
	})

	tr, err := c.Fetch(context.Background(), "https://youtu.be/abc123?si=x")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if tr.VideoID != "abc123" || tr.Language != "de" || tr.Text != "Zwiebeln schneiden anbraten" {
		t.Errorf("Fetch() = %+v", tr)
	}
	if gotQuery != "languages=de%2Cen&video_id=abc123" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		status  int
		body    string
		wantErr error
	}{
		{"invalid url", "https://example.com", http.StatusOK, `{}`, ErrInvalidURL},
		{"not found", "https://youtu.be/abc", http.StatusNotFound, `{}`, ErrNoTranscript},
		{"empty transcript", "https://youtu.be/abc", http.StatusOK, `{"segments":[]}`, ErrNoTranscript},
		{"server error", "https://youtu.be/abc", http.StatusInternalServerError, `oops`, ErrTranscriptUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.Fetch(context.Background(), tt.url)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Fetch() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFetchUnreachable(t *testing.T) {
	c := NewTranscriptClient(TranscriptConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	if _, err := c.Fetch(context.Background(), "https://youtu.be/abc"); !errors.Is(err, ErrTranscriptUnavailable) {
		t.Errorf("Fetch() error = %v, want ErrTranscriptUnavailable", err)
	}
}
