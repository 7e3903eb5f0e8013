package nasa

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewClient("test-key", WithBaseURL(ts.URL))
}

func TestPictureImage(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("api_key = %q, want test-key", got)
		}
		if got := r.URL.Query().Get("date"); got != "2024-01-01" {
			t.Errorf("date = %q, want 2024-01-01", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"title":       "X",
			"date":        "2024-01-01",
			"explanation": "E",
			"url":         "http://x/img.png",
			"media_type":  "image",
		})
	})

	pic, err := c.Picture(context.Background(), "2024-01-01")
	if err != nil {
		t.Fatalf("picture: %v", err)
	}
	if pic.Title != "X" || pic.Date != "2024-01-01" || pic.URL != "http://x/img.png" {
		t.Fatalf("unexpected picture: %+v", pic)
	}
	if pic.Media != MediaImage {
		t.Fatalf("media = %q, want image", pic.Media)
	}
	if pic.Copyright != "" {
		t.Fatalf("copyright = %q, want empty", pic.Copyright)
	}
}

func TestPictureVideo(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"title":       "Comet flyby",
			"date":        "2024-02-02",
			"explanation": "E",
			"url":         "https://www.youtube.com/embed/abc",
			"media_type":  "video",
			"copyright":   "J. Doe",
		})
	})

	pic, err := c.Picture(context.Background(), "2024-02-02")
	if err != nil {
		t.Fatalf("picture: %v", err)
	}
	if pic.Media != MediaVideo {
		t.Fatalf("media = %q, want video", pic.Media)
	}
	if pic.Copyright != "J. Doe" {
		t.Fatalf("copyright = %q", pic.Copyright)
	}
}

func TestPictureUnknownMediaTypeDefaultsToImage(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"title":       "X",
			"date":        "2024-01-01",
			"explanation": "E",
			"url":         "http://x/img.png",
			"media_type":  "hologram",
		})
	})

	pic, err := c.Picture(context.Background(), "2024-01-01")
	if err != nil {
		t.Fatalf("picture: %v", err)
	}
	if pic.Media != MediaImage {
		t.Fatalf("media = %q, want image fallback", pic.Media)
	}
}

func TestPictureAPIErrorWithMessage(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"msg": "date out of range"})
	})

	_, err := c.Picture(context.Background(), "1066-10-14")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Msg != "date out of range" {
		t.Fatalf("msg = %q, want server message", apiErr.Msg)
	}
	if apiErr.Date != "1066-10-14" {
		t.Fatalf("date = %q", apiErr.Date)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", apiErr.StatusCode)
	}
}

func TestPictureAPIErrorWithoutParseableBody(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>gateway crashed</html>"))
	})

	_, err := c.Picture(context.Background(), "2024-01-01")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Msg != "HTTP error, status 500" {
		t.Fatalf("msg = %q, want synthesized message", apiErr.Msg)
	}
}

func TestPictureMissingRequiredField(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"title":      "X",
			"date":       "2024-01-01",
			"media_type": "image",
			// explanation and url missing
		})
	})

	_, err := c.Picture(context.Background(), "2024-01-01")
	if err == nil {
		t.Fatal("expected error for missing fields")
	}
	if !IsMalformed(err) {
		t.Fatalf("expected malformed-response error, got %v", err)
	}
}

func TestPictureMalformedJSON(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{truncated"))
	})

	if _, err := c.Picture(context.Background(), "2024-01-01"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestPictureTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	c := NewClient("k", WithBaseURL(ts.URL))
	ts.Close() // force a connection failure

	if _, err := c.Picture(context.Background(), "2024-01-01"); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestNewClientDefaultKey(t *testing.T) {
	c := NewClient("")
	if c.apiKey != DefaultAPIKey {
		t.Fatalf("apiKey = %q, want %q", c.apiKey, DefaultAPIKey)
	}
	if c.baseURL != DefaultBaseURL {
		t.Fatalf("baseURL = %q", c.baseURL)
	}
}

func TestToday(t *testing.T) {
	got := Today()
	if len(got) != len("2006-01-02") {
		t.Fatalf("Today() = %q, want YYYY-MM-DD", got)
	}
}
