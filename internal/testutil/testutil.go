// Package testutil provides test utilities and helpers.
package testutil

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/gofiber/template/html/v3"

	"keywordlab/internal/config"
	"keywordlab/views"
)

// TestConfig returns the default configuration with a short analysis latency.
func TestConfig() *config.Config {
	cfg := config.Load()
	cfg.Env = "test"
	cfg.AnalysisLatency = 10 * time.Millisecond
	cfg.ResultSource = config.ResultSourceMock
	cfg.DisplayLocale = "ko"
	cfg.CPCCurrency = "KRW"
	return cfg
}

// ViewEngine returns a template engine over the embedded views.
func ViewEngine() *html.Engine {
	return html.NewFileSystem(http.FS(views.FS), ".html")
}

// NewSessionApp creates a Fiber app with the embedded views and an in-memory session store.
func NewSessionApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		Views:       ViewEngine(),
		ViewsLayout: "layouts/main",
	})

	sessionMiddleware, _ := session.NewWithStore(session.Config{
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	app.Use(sessionMiddleware)
	return app
}

// Client issues requests against an app and replays the cookies it receives.
type Client struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]*http.Cookie
}

// NewClient creates a client for app.
func NewClient(t *testing.T, app *fiber.App) *Client {
	return &Client{t: t, app: app, cookies: make(map[string]*http.Cookie)}
}

// Get performs a GET request. htmx marks it as an HTMX request.
func (c *Client) Get(path string, htmx bool) (*http.Response, string) {
	c.t.Helper()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	return c.do(req, htmx)
}

// PostForm performs a form-encoded POST request.
func (c *Client) PostForm(path string, form url.Values, htmx bool) (*http.Response, string) {
	c.t.Helper()
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, htmx)
}

func (c *Client) do(req *http.Request, htmx bool) (*http.Response, string) {
	c.t.Helper()
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	resp, err := c.app.Test(req, fiber.TestConfig{Timeout: 5 * time.Second})
	if err != nil {
		c.t.Fatalf("%s %s failed: %v", req.Method, req.URL.Path, err)
	}
	for _, ck := range resp.Cookies() {
		c.cookies[ck.Name] = ck
	}

	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}
