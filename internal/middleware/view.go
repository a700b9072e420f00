package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/google/uuid"

	"keywordlab/internal/analyzer"
	"keywordlab/internal/logger"
)

// SessionViewKey is the session key holding the view ID.
const SessionViewKey = "view_id"

// LocalsViewKey is the fiber.Ctx locals key holding the *analyzer.View.
const LocalsViewKey = "view"

// ViewMiddleware binds each browser session to one analysis view.
type ViewMiddleware struct {
	views *analyzer.Registry
}

// NewViewMiddleware creates a new view middleware instance.
func NewViewMiddleware(views *analyzer.Registry) *ViewMiddleware {
	return &ViewMiddleware{views: views}
}

// RequireView loads the session's view, creating one when the session has none
// or its view has been reaped.
func (m *ViewMiddleware) RequireView(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
	}

	if raw, ok := sess.Get(SessionViewKey).(string); ok {
		if id, err := uuid.Parse(raw); err == nil {
			if v, ok := m.views.Get(id); ok {
				c.Locals(LocalsViewKey, v)
				return c.Next()
			}
		}
	}

	v := m.views.Create()
	sess.Set(SessionViewKey, v.ID().String())
	logger.WithField("view_id", v.ID().String()).Debug("created view for session")

	c.Locals(LocalsViewKey, v)
	return c.Next()
}

// OptionalView loads the session's view if one exists, without creating it.
func (m *ViewMiddleware) OptionalView(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return c.Next()
	}

	raw, ok := sess.Get(SessionViewKey).(string)
	if !ok {
		return c.Next()
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return c.Next()
	}
	if v, ok := m.views.Get(id); ok {
		c.Locals(LocalsViewKey, v)
	}

	return c.Next()
}

// ViewFrom returns the view stored by RequireView or OptionalView.
func ViewFrom(c fiber.Ctx) *analyzer.View {
	v, _ := c.Locals(LocalsViewKey).(*analyzer.View)
	return v
}
