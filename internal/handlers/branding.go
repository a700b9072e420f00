package handlers

import (
	"github.com/gofiber/fiber/v3"

	"keywordlab/internal/config"
)

// WithSiteChrome fills the keys read by layouts/main: the analyzer name in the header
// and browser tab, the notice under it and the version line in the footer.
// htmx partials render without the layout and skip this.
func WithSiteChrome(data fiber.Map, cfg *config.Config) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}
	data["SiteTitle"] = cfg.SiteTitle
	data["SiteTagline"] = cfg.SiteTagline
	data["SiteFooter"] = cfg.SiteFooter
	return data
}
