package server

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/encryptcookie"
	"github.com/gofiber/fiber/v3/middleware/session"

	"keywordlab/internal/analyzer"
	"keywordlab/internal/display"
	"keywordlab/internal/keywordsource"
	"keywordlab/internal/testutil"
)

// TestEncryptCookieSessionRoundTrip verifies that the encrypted session cookie
// carrying the view ID survives being replayed across requests.
func TestEncryptCookieSessionRoundTrip(t *testing.T) {
	encryptionKey := deriveEncryptionKey("test-secret-that-is-long-enough-for-production")

	app := fiber.New()
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: encryptionKey,
	}))
	sessionMiddleware, _ := session.NewWithStore(session.Config{
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	app.Use(sessionMiddleware)

	app.Post("/view", func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		if sess == nil {
			return c.Status(500).SendString("no session")
		}
		sess.Set("view_id", "5c1d0f1e-1111-4a4a-9b9b-000000000001")
		return c.SendString("ok")
	})
	app.Get("/view", func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		if sess == nil {
			return c.Status(500).SendString("no session")
		}
		val, _ := sess.Get("view_id").(string)
		return c.SendString(val)
	})

	client := testutil.NewClient(t, app)

	req, _ := http.NewRequest("POST", "/view", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("set request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("set request: expected 200, got %d", resp.StatusCode)
	}
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("set request: no cookies returned")
	}
	for i := range 2 {
		req, _ := http.NewRequest("GET", "/view", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("replay %d failed (possible encryptcookie panic): %v", i, err)
		}
		body, _ := io.ReadAll(resp.Body)
		if string(body) != "5c1d0f1e-1111-4a4a-9b9b-000000000001" {
			t.Errorf("replay %d: expected view id, got %q", i, body)
		}
		if next := resp.Cookies(); len(next) > 0 {
			cookies = next
		}
	}

	// A client without cookies gets a fresh, empty session.
	_, body := client.Get("/view", false)
	if body != "" {
		t.Errorf("expected empty session, got %q", body)
	}
}

func TestDeriveEncryptionKey(t *testing.T) {
	a := deriveEncryptionKey("secret-a")
	if a != deriveEncryptionKey("secret-a") {
		t.Error("key derivation must be deterministic")
	}
	if a == deriveEncryptionKey("secret-b") {
		t.Error("different secrets must give different keys")
	}
	if len(a) != 44 {
		t.Errorf("expected base64 of 32 bytes (44 chars), got %d", len(a))
	}
}

func newTestServer(t *testing.T) (*Server, *analyzer.Registry) {
	t.Helper()
	cfg := testutil.TestConfig()
	cfg.MetricsEnabled = true

	views := analyzer.NewRegistry(analyzer.Options{Latency: cfg.AnalysisLatency})
	t.Cleanup(views.Close)

	s := New(cfg, nil)
	s.RegisterRoutes(views, keywordsource.NewDefaultSource(keywordsource.Options{}, ""), display.Default())
	return s, views
}

func TestRoutes(t *testing.T) {
	s, _ := newTestServer(t)
	client := testutil.NewClient(t, s.App)

	tests := []struct {
		path       string
		htmx       bool
		wantStatus int
		wantBody   string
	}{
		{"/healthz", false, 200, `"ok"`},
		{"/readyz", false, 200, `"ok"`},
		{"/metrics", false, 200, "go_goroutines"},
		{"/", false, 200, "분석 시작"},
		{"/analyze/check?keyword=ab", true, 200, `id="run-control"`},
		{"/results", true, 200, `id="results"`},
		{"/api/ideas?keyword=ab", false, 200, "ab 추천"},
		{"/api/providers/naver/ideas?keyword=ab", false, 200, "ab 가격"},
		{"/api/ideas?keyword=ab&country=XX", false, 400, `"error"`},
		{"/api/state", false, 200, `"country":"KR"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := client.Get(tt.path, tt.htmx)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, resp.StatusCode, body)
			}
			if !strings.Contains(body, tt.wantBody) {
				t.Errorf("expected body to contain %q", tt.wantBody)
			}
		})
	}
}

func TestNotFoundRendersErrorPage(t *testing.T) {
	s, _ := newTestServer(t)

	resp, body := testutil.NewClient(t, s.App).Get("/nope", false)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "처음으로") {
		t.Error("expected the error view")
	}
	if !strings.Contains(body, s.Cfg.SiteTitle) {
		t.Error("error page should keep the site header")
	}
}

func TestAnalyzeFlowThroughServer(t *testing.T) {
	s, views := newTestServer(t)
	client := testutil.NewClient(t, s.App)

	_, body := client.PostForm("/analyze", url.Values{"keyword": {"보조배터리"}, "country": {"KR"}, "language": {"ko"}}, true)
	if !strings.Contains(body, "분석 중입니다") {
		t.Fatalf("expected loading state, got %s", body)
	}

	views.Each(func(v *analyzer.View) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := v.Wait(ctx); err != nil {
			t.Fatalf("run did not finish: %v", err)
		}
	})

	_, body = client.Get("/api/state", false)
	if !strings.Contains(body, "보조배터리 추천") {
		t.Errorf("state should hold the finished results, got %s", body)
	}
	if views.Len() != 1 {
		t.Errorf("expected one view for the session, got %d", views.Len())
	}
}
