package sefaria

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/FocuswithJustin/Tehillim119/core/errors"
	"github.com/FocuswithJustin/Tehillim119/core/psalm"
)

// servePayload returns a test server answering the Psalms.119 request with
// the given body and status.
func servePayload(t *testing.T, status int, body []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/texts/Psalms.119" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("lang"); got != "he" {
			t.Errorf("lang = %q, want he", got)
		}
		if got := r.URL.Query().Get("context"); got != "0" {
			t.Errorf("context = %q, want 0", got)
		}
		w.WriteHeader(status)
		w.Write(body)
	}))
}

func validPayload(t *testing.T) []byte {
	t.Helper()
	verses := make([]string, psalm.VerseCount)
	for i := range verses {
		verses[i] = fmt.Sprintf("<b>פסוק</b> %d {פ}", i)
	}
	body, err := json.Marshal(map[string]any{"he": verses, "ref": "Psalms 119"})
	if err != nil {
		t.Fatalf("marshaling payload: %v", err)
	}
	return body
}

func TestFetchPsalm119(t *testing.T) {
	srv := servePayload(t, http.StatusOK, validPayload(t))
	defer srv.Close()

	client := NewClientWith(srv.Client(), srv.URL)
	verses, err := client.FetchPsalm119(context.Background())
	if err != nil {
		t.Fatalf("FetchPsalm119 failed: %v", err)
	}
	if len(verses) != psalm.VerseCount {
		t.Fatalf("got %d verses, want %d", len(verses), psalm.VerseCount)
	}
	// Raw verses are returned unmodified; cleaning happens downstream.
	if verses[0] != "<b>פסוק</b> 0 {פ}" {
		t.Errorf("verse 0 = %q, want raw markup preserved", verses[0])
	}
}

func TestFetchPsalm119HTTPError(t *testing.T) {
	srv := servePayload(t, http.StatusServiceUnavailable, []byte("down"))
	defer srv.Close()

	client := NewClientWith(srv.Client(), srv.URL)
	_, err := client.FetchPsalm119(context.Background())
	if err == nil {
		t.Fatalf("expected error on 503")
	}
	if !apperrors.Is(err, apperrors.ErrFetch) {
		t.Errorf("error = %v, want ErrFetch", err)
	}
	var httpErr *HTTPError
	if !apperrors.As(err, &httpErr) {
		t.Fatalf("error chain missing HTTPError: %v", err)
	}
	if httpErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", httpErr.StatusCode)
	}
}

func TestFetchPsalm119MalformedPayload(t *testing.T) {
	srv := servePayload(t, http.StatusOK, []byte("<html>not json</html>"))
	defer srv.Close()

	client := NewClientWith(srv.Client(), srv.URL)
	_, err := client.FetchPsalm119(context.Background())
	if err == nil {
		t.Fatalf("expected error on malformed payload")
	}
	if !apperrors.Is(err, apperrors.ErrFetch) {
		t.Errorf("error = %v, want ErrFetch", err)
	}
}

func TestFetchPsalm119WrongCount(t *testing.T) {
	body, _ := json.Marshal(map[string]any{"he": []string{"only", "five", "verses", "is", "wrong"}})
	srv := servePayload(t, http.StatusOK, body)
	defer srv.Close()

	client := NewClientWith(srv.Client(), srv.URL)
	_, err := client.FetchPsalm119(context.Background())
	if err == nil {
		t.Fatalf("expected error on wrong verse count")
	}
	if !apperrors.Is(err, apperrors.ErrBadVerseCount) {
		t.Errorf("error = %v, want ErrBadVerseCount in chain", err)
	}
}

func TestFetchPsalm119ContextCancel(t *testing.T) {
	srv := servePayload(t, http.StatusOK, validPayload(t))
	defer srv.Close()

	client := NewClientWith(srv.Client(), srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchPsalm119(ctx)
	if err == nil {
		t.Fatalf("expected error on canceled context")
	}
}
