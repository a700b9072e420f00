package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"keywordlab/internal/keywordsource"
)

// Envelope is the body of every /api response. On success Data holds an
// IdeasResponse or a FormState snapshot. Kind is set only when a keyword
// provider failed and names the failure class (network, timeout or malformed).
type Envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
	Kind   string `json:"kind,omitempty"`
}

func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(Envelope{Status: "ok", Data: data})
}

func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Status: "error", Error: message})
}

// sourceError reports a provider failure as 502 with its failure kind.
func sourceError(c fiber.Ctx, err error) error {
	env := Envelope{Status: "error", Error: err.Error()}
	var perr *keywordsource.ProviderError
	if errors.As(err, &perr) {
		env.Kind = string(perr.Kind)
	}
	return c.Status(fiber.StatusBadGateway).JSON(env)
}
