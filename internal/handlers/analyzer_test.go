package handlers

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"keywordlab/internal/analyzer"
	"keywordlab/internal/display"
	"keywordlab/internal/middleware"
	"keywordlab/internal/models"
	"keywordlab/internal/testutil"
)

func newAnalyzerApp(t *testing.T, latency time.Duration) (*testutil.Client, *analyzer.Registry) {
	t.Helper()
	cfg := testutil.TestConfig()

	views := analyzer.NewRegistry(analyzer.Options{Latency: latency})
	t.Cleanup(views.Close)

	app := testutil.NewSessionApp(t)
	vm := middleware.NewViewMiddleware(views)
	h := NewAnalyzerHandler(cfg, display.Default())

	app.Get("/", vm.RequireView, h.Index)
	app.Get("/analyze/check", vm.RequireView, h.CheckKeyword)
	app.Post("/analyze", vm.RequireView, h.Analyze)
	app.Get("/results", vm.RequireView, h.Results)

	return testutil.NewClient(t, app), views
}

func waitAll(t *testing.T, views *analyzer.Registry) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	v := findView(t, views)
	if err := v.Wait(ctx); err != nil {
		t.Fatalf("run did not finish: %v", err)
	}
}

func findView(t *testing.T, views *analyzer.Registry) *analyzer.View {
	t.Helper()
	var found *analyzer.View
	views.Each(func(v *analyzer.View) { found = v })
	if found == nil {
		t.Fatal("no view registered")
	}
	return found
}

func TestIndexRendersForm(t *testing.T) {
	client, _ := newAnalyzerApp(t, 10*time.Millisecond)

	resp, body := client.Get("/", false)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	for _, want := range []string{
		`name="keyword"`,
		"황금키워드 자동 분석기",
		"대한민국 (KR)",
		"독일어 (de)",
		"분석 시작",
		"키워드를 2자 이상 입력하세요",
		"결과가 여기에 표시됩니다",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
	if !strings.Contains(body, "disabled") {
		t.Error("run button should start disabled")
	}
}

func TestCheckKeyword(t *testing.T) {
	tests := []struct {
		keyword     string
		wantEnabled bool
	}{
		{"", false},
		{" a ", false},
		{"ab", true},
		{"보조배터리", true},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			client, _ := newAnalyzerApp(t, 10*time.Millisecond)

			_, body := client.Get("/analyze/check?keyword="+url.QueryEscape(tt.keyword), true)
			if !strings.Contains(body, `id="run-control"`) {
				t.Fatalf("expected run control partial, got %s", body)
			}
			if strings.Contains(body, "<html") {
				t.Error("partial should not include the layout")
			}

			enabled := !strings.Contains(body, "disabled")
			if enabled != tt.wantEnabled {
				t.Errorf("enabled = %v, want %v", enabled, tt.wantEnabled)
			}
			if hint := strings.Contains(body, "2자 이상"); hint == tt.wantEnabled {
				t.Errorf("validation hint shown = %v for keyword %q", hint, tt.keyword)
			}
		})
	}
}

func TestAnalyzeShowsLoadingThenResults(t *testing.T) {
	client, views := newAnalyzerApp(t, 50*time.Millisecond)

	form := url.Values{"keyword": {"ab"}, "country": {"KR"}, "language": {"ko"}}
	_, body := client.PostForm("/analyze", form, true)

	if !strings.Contains(body, "키워드 구조 분석 중입니다") {
		t.Errorf("expected loading indicator, got %s", body)
	}
	if !strings.Contains(body, `hx-get="/results"`) {
		t.Error("loading partial should poll /results")
	}
	if !strings.Contains(body, "분석 중...") {
		t.Error("run button should show the running label")
	}
	if !strings.Contains(body, `hx-swap-oob="true"`) {
		t.Error("results partial should refresh the run control out of band")
	}

	waitAll(t, views)

	_, body = client.Get("/results", true)
	for _, want := range []string{"ab 추천", "ab 후기", "ab 비교", "4,400", "720", "구매 의도 강함"} {
		if !strings.Contains(body, want) {
			t.Errorf("results missing %q", want)
		}
	}
	if strings.Contains(body, `hx-get="/results"`) {
		t.Error("finished results should stop polling")
	}
	if strings.Index(body, "ab 추천") > strings.Index(body, "ab 비교") {
		t.Error("rows out of order")
	}
}

func TestAnalyzeBlankKeywordIsNoop(t *testing.T) {
	client, views := newAnalyzerApp(t, 10*time.Millisecond)

	_, body := client.PostForm("/analyze", url.Values{"keyword": {"  "}}, true)
	if strings.Contains(body, "분석 중입니다") {
		t.Error("blank keyword must not start a run")
	}
	if !strings.Contains(body, "결과가 여기에 표시됩니다") {
		t.Error("expected empty state")
	}

	v := findView(t, views)
	if v.Snapshot().IsLoading {
		t.Error("view should stay idle")
	}
}

func TestAnalyzeUnknownCountry(t *testing.T) {
	client, _ := newAnalyzerApp(t, 10*time.Millisecond)

	resp, body := client.PostForm("/analyze", url.Values{"keyword": {"ab"}, "country": {"FR"}}, true)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("htmx errors use 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "지원하지 않는 국가입니다") {
		t.Errorf("expected inline error, got %s", body)
	}
}

func TestAnalyzeUnknownLanguageKeepsState(t *testing.T) {
	client, views := newAnalyzerApp(t, 10*time.Millisecond)

	client.PostForm("/analyze", url.Values{"keyword": {"ab"}, "country": {"KR"}, "language": {"ko"}}, true)
	waitAll(t, views)

	_, body := client.PostForm("/analyze", url.Values{"keyword": {"cd"}, "country": {"US"}, "language": {"fr"}}, true)
	if !strings.Contains(body, "지원하지 않는 언어입니다") {
		t.Fatalf("expected inline error, got %s", body)
	}

	s := findView(t, views).Snapshot()
	if s.Keyword != "ab" {
		t.Errorf("keyword = %q, want unchanged %q", s.Keyword, "ab")
	}
	if s.Country != models.CountryKR {
		t.Errorf("country = %q, want unchanged %q", s.Country, models.CountryKR)
	}
	if s.IsLoading {
		t.Error("rejected form must not start a run")
	}
}

func TestAnalyzeNonHTMXRedirects(t *testing.T) {
	client, views := newAnalyzerApp(t, 10*time.Millisecond)

	resp, _ := client.PostForm("/analyze", url.Values{"keyword": {"ab"}}, false)
	if resp.StatusCode != fiber.StatusSeeOther && resp.StatusCode != fiber.StatusFound {
		t.Fatalf("expected redirect, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Errorf("expected redirect to /, got %q", loc)
	}

	waitAll(t, views)
	_, body := client.Get("/", false)
	if !strings.Contains(body, "ab 추천") {
		t.Error("page should render the finished results")
	}
}

func TestAnalyzeKeepsSelectors(t *testing.T) {
	client, views := newAnalyzerApp(t, 10*time.Millisecond)

	client.PostForm("/analyze", url.Values{"keyword": {"ab"}, "country": {"jp"}, "language": {"JA"}}, true)
	waitAll(t, views)

	_, body := client.Get("/", false)
	if !strings.Contains(body, `value="JP" selected`) {
		t.Error("country selection not kept")
	}
	if !strings.Contains(body, `value="ja" selected`) {
		t.Error("language selection not kept")
	}
}
