package api

import (
	"github.com/gofiber/fiber/v3"

	"keywordlab/internal/middleware"
	"keywordlab/internal/models"
)

// StateHandler exposes the session view's form state.
type StateHandler struct{}

// NewStateHandler creates a new API state handler.
func NewStateHandler() *StateHandler {
	return &StateHandler{}
}

// State returns the current form state, or the initial state when the session has no view.
func (h *StateHandler) State(c fiber.Ctx) error {
	v := middleware.ViewFrom(c)
	if v == nil {
		return jsonSuccess(c, models.NewFormState())
	}
	return jsonSuccess(c, v.Snapshot())
}
