package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"keywordlab/internal/analyzer"
	"keywordlab/internal/config"
	"keywordlab/internal/display"
	"keywordlab/internal/logger"
	"keywordlab/internal/middleware"
	"keywordlab/internal/models"
	"keywordlab/internal/validation"
)

// ResultsPollInterval is how often the results partial refreshes while a run is pending.
const ResultsPollInterval = "500ms"

// AnalyzerHandler serves the keyword form and its results panel.
type AnalyzerHandler struct {
	cfg    *config.Config
	format *display.Formatter
}

// NewAnalyzerHandler creates a new analyzer handler.
func NewAnalyzerHandler(cfg *config.Config, format *display.Formatter) *AnalyzerHandler {
	return &AnalyzerHandler{cfg: cfg, format: format}
}

// viewData builds the template data shared by the page and its partials.
func (h *AnalyzerHandler) viewData(v *analyzer.View, oob bool) fiber.Map {
	return fiber.Map{
		"View":         analyzer.Present(v.Snapshot(), h.format),
		"PollInterval": ResultsPollInterval,
		"OOB":          oob,
		"DataSource":   h.cfg.ResultSource,
	}
}

// Index renders the form page from the session view's state.
func (h *AnalyzerHandler) Index(c fiber.Ctx) error {
	v := middleware.ViewFrom(c)
	if v == nil {
		return fiber.ErrInternalServerError
	}

	return c.Render("index", WithSiteChrome(h.viewData(v, false), h.cfg))
}

// CheckKeyword records keyword input and returns the run control partial for HTMX.
func (h *AnalyzerHandler) CheckKeyword(c fiber.Ctx) error {
	v := middleware.ViewFrom(c)
	if v == nil {
		return htmxError(c, "세션을 찾을 수 없습니다.")
	}

	v.SetKeyword(c.Query("keyword"))

	return c.Render("partials/run_control", h.viewData(v, false), "")
}

// Analyze applies the submitted form and starts a run.
func (h *AnalyzerHandler) Analyze(c fiber.Ctx) error {
	v := middleware.ViewFrom(c)
	if v == nil {
		return htmxError(c, "세션을 찾을 수 없습니다.")
	}

	// Both selectors are checked before any state changes
	if err := applyForm(v, c.FormValue("keyword"), c.FormValue("country"), c.FormValue("language")); err != nil {
		if !isHTMX(c) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return htmxError(c, err.Error())
	}

	if started := v.Run(); started {
		logger.WithField("view_id", v.ID().String()).Debug("analysis run started")
	}

	if !isHTMX(c) {
		return c.Redirect().To("/")
	}

	return c.Render("partials/results", h.viewData(v, true), "")
}

// Results returns the results partial. While a run is pending the partial polls itself.
func (h *AnalyzerHandler) Results(c fiber.Ctx) error {
	v := middleware.ViewFrom(c)
	if v == nil {
		return htmxError(c, "세션을 찾을 수 없습니다.")
	}

	return c.Render("partials/results", h.viewData(v, true), "")
}

// applyForm records the submitted form. Unknown country or language codes are rejected
// before anything is written, so the view keeps its previous input.
func applyForm(v *analyzer.View, keyword, country, language string) error {
	current := v.Snapshot()
	c, l, err := validation.ValidateSelectors(country, language, current)
	switch {
	case errors.Is(err, models.ErrUnknownCountry):
		return errors.New("지원하지 않는 국가입니다: " + country)
	case errors.Is(err, models.ErrUnknownLanguage):
		return errors.New("지원하지 않는 언어입니다: " + language)
	case err != nil:
		return err
	}

	v.SetKeyword(keyword)
	if err := v.SetCountry(string(c)); err != nil {
		return err
	}
	return v.SetLanguage(string(l))
}
