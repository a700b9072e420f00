package api

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keywordlab/internal/analyzer"
	"keywordlab/internal/middleware"
	"keywordlab/internal/models"
	"keywordlab/internal/testutil"
)

func TestStateWithoutView(t *testing.T) {
	views := analyzer.NewRegistry(analyzer.Options{})
	defer views.Close()

	app := testutil.NewSessionApp(t)
	vm := middleware.NewViewMiddleware(views)
	app.Get("/api/state", vm.OptionalView, NewStateHandler().State)

	resp, body := testutil.NewClient(t, app).Get("/api/state", false)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var env envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	var state models.FormState
	require.NoError(t, json.Unmarshal(env.Data, &state))

	assert.Equal(t, models.NewFormState(), state)
	assert.Equal(t, 0, views.Len())
}

func TestStateFollowsSessionView(t *testing.T) {
	views := analyzer.NewRegistry(analyzer.Options{Latency: 5 * time.Millisecond})
	defer views.Close()

	app := testutil.NewSessionApp(t)
	vm := middleware.NewViewMiddleware(views)
	app.Post("/analyze", vm.RequireView, func(c fiber.Ctx) error {
		v := middleware.ViewFrom(c)
		v.SetKeyword(c.FormValue("keyword"))
		v.Run()
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/api/state", vm.OptionalView, NewStateHandler().State)

	client := testutil.NewClient(t, app)
	client.PostForm("/analyze", url.Values{"keyword": {"ab"}}, false)

	views.Each(func(v *analyzer.View) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		require.NoError(t, v.Wait(ctx))
	})

	_, body := client.Get("/api/state", false)
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	var state models.FormState
	require.NoError(t, json.Unmarshal(env.Data, &state))

	assert.Equal(t, "ab", state.Keyword)
	assert.False(t, state.IsLoading)
	require.Len(t, state.Results, 3)
	assert.Equal(t, "ab 추천", state.Results[0].Keyword)
}
