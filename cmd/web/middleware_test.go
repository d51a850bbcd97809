package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/synctest"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/gymplan/internal/contexthelpers"
	"github.com/myrjola/gymplan/internal/testhelpers"
)

func newTestApplication(t *testing.T) *application {
	t.Helper()
	templateFS, err := resolveTemplateFS("")
	if err != nil {
		t.Fatalf("resolve templates: %v", err)
	}
	return &application{ //nolint:exhaustruct // this is a test
		logger:     testhelpers.NewLogger(testhelpers.NewWriter(t)),
		templateFS: templateFS,
	}
}

func Test_application_timeout(t *testing.T) {
	tests := []struct {
		name     string
		sleep    time.Duration
		timesOut bool
	}{
		{name: "completes within timeout", sleep: 500 * time.Millisecond, timesOut: false},
		{name: "times out", sleep: 3 * time.Second, timesOut: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				app := newTestApplication(t)
				handler := app.timeout(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					time.Sleep(tt.sleep)
					_, _ = w.Write([]byte("done"))
				}))

				req := httptest.NewRequest(http.MethodGet, "/slow", nil)
				w := httptest.NewRecorder()
				handler.ServeHTTP(w, req)

				if tt.timesOut {
					if w.Code != http.StatusServiceUnavailable {
						t.Errorf("Expected status 503 on timeout, got %d", w.Code)
					}
					if !strings.Contains(w.Body.String(), "Timeout") {
						t.Errorf("Expected timeout message in response body, got: %s", w.Body.String())
					}
					return
				}
				if w.Code != http.StatusOK {
					t.Errorf("Expected status 200, got %d", w.Code)
				}
				if w.Body.String() != "done" {
					t.Errorf("Expected body done, got %q", w.Body.String())
				}
			})
		})
	}
}

func Test_application_recoverPanic(t *testing.T) {
	app := newTestApplication(t)
	handler := app.logAndTraceRequest(secureHeaders(commonContext(app.recoverPanic(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		})))))

	req := httptest.NewRequest(http.MethodGet, "/explode", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", w.Code)
	}
	if got := w.Header().Get("Connection"); got != "close" {
		t.Errorf("Expected Connection: close, got %q", got)
	}
	doc, err := goquery.NewDocumentFromReader(w.Body)
	if err != nil {
		t.Fatalf("parse error page: %v", err)
	}
	if got := doc.Find("h1").Text(); got != "Something went wrong" {
		t.Errorf("Expected error page heading, got %q", got)
	}
	if doc.Find("code").Text() == "" {
		t.Error("Expected trace ID on the error page")
	}
}

func Test_secureHeaders(t *testing.T) {
	var nonce string
	handler := secureHeaders(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		nonce = contexthelpers.CSPNonce(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if nonce == "" {
		t.Fatal("Expected a CSP nonce in the request context")
	}
	csp := w.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "style-src 'nonce-"+nonce+"'") {
		t.Errorf("Expected CSP to allow styles with the nonce, got %s", csp)
	}
	if !strings.Contains(csp, "script-src 'none'") {
		t.Errorf("Expected CSP to forbid scripts, got %s", csp)
	}
	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "deny",
	} {
		if got := w.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

func Test_noCache(t *testing.T) {
	handler := noCache(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := w.Header().Get("Cache-Control"); got != "no-cache, no-store, must-revalidate" {
		t.Errorf("Cache-Control = %q", got)
	}
}
