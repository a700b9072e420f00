// Package handlers serves the HTML surface of the keyword analysis form.
package handlers

import (
	"html"

	"github.com/gofiber/fiber/v3"
)

// isHTMX reports whether the request was issued by HTMX.
func isHTMX(c fiber.Ctx) bool {
	return c.Get("HX-Request") == "true"
}

// htmxError returns an error message as HTML that HTMX will display.
// Uses 200 status so HTMX processes the swap (HTMX ignores non-2xx by default).
func htmxError(c fiber.Ctx, message string) error {
	return c.SendString(
		`<div id="results" class="mt-3 rounded-xl bg-red-50 px-3 py-2 text-xs text-red-600">` + html.EscapeString(message) + `</div>`,
	)
}
