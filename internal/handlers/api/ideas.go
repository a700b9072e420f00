package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"keywordlab/internal/analyzer"
	"keywordlab/internal/keywordsource"
	"keywordlab/internal/logger"
	"keywordlab/internal/models"
	"keywordlab/internal/validation"
)

// Idea is one keyword candidate with its provider metrics and derived difficulty.
type Idea struct {
	models.RawKeywordRow
	Difficulty int `json:"difficulty"`
}

// IdeasResponse is the payload of the ideas endpoints.
type IdeasResponse struct {
	Keyword  string          `json:"keyword"`
	Country  models.Country  `json:"country"`
	Language models.Language `json:"language"`
	Source   string          `json:"source"` // policy or provider name
	Ideas    []Idea          `json:"ideas"`
}

// IdeasHandler exposes the keyword source adapter as JSON.
type IdeasHandler struct {
	source *keywordsource.Source
}

// NewIdeasHandler creates a new API ideas handler.
func NewIdeasHandler(source *keywordsource.Source) *IdeasHandler {
	return &IdeasHandler{source: source}
}

// Ideas returns keyword ideas under the configured policy, or the one named by ?policy=.
func (h *IdeasHandler) Ideas(c fiber.Ctx) error {
	q, err := queryFrom(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	policy := h.source.Policy()
	if name := c.Query("policy"); name != "" {
		policy, err = keywordsource.ParsePolicy(name)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	rows, err := h.source.GetKeywordIdeasWith(c.Context(), policy, q)
	if err != nil {
		return fetchError(c, err)
	}

	return jsonSuccess(c, newIdeasResponse(q, string(policy), rows))
}

// ProviderIdeas returns keyword ideas from a single provider.
func (h *IdeasHandler) ProviderIdeas(c fiber.Ctx) error {
	id, err := keywordsource.ParseProviderID(c.Params("provider"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	q, err := queryFrom(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	rows, err := h.source.Fetch(c.Context(), id, q)
	if err != nil {
		return fetchError(c, err)
	}

	return jsonSuccess(c, newIdeasResponse(q, string(id), rows))
}

// queryFrom reads keyword, country and language query parameters.
func queryFrom(c fiber.Ctx) (keywordsource.Query, error) {
	country, language, err := validation.ValidateSelectors(c.Query("country"), c.Query("language"), models.NewFormState())
	if err != nil {
		return keywordsource.Query{}, err
	}
	return keywordsource.Query{
		Keyword:  validation.NormalizeKeyword(c.Query("keyword")),
		Country:  country,
		Language: language,
	}, nil
}

func fetchError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, keywordsource.ErrAdapterFailure):
		return sourceError(c, err)
	case errors.Is(err, keywordsource.ErrUnknownProvider):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		logger.WithError(err).Error("keyword ideas request failed")
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch keyword ideas")
	}
}

func newIdeasResponse(q keywordsource.Query, source string, rows []models.RawKeywordRow) IdeasResponse {
	ideas := make([]Idea, 0, len(rows))
	for _, r := range rows {
		ideas = append(ideas, Idea{RawKeywordRow: r, Difficulty: analyzer.CompetitionToDifficulty(r.Competition)})
	}
	return IdeasResponse{
		Keyword:  q.Keyword,
		Country:  q.Country,
		Language: q.Language,
		Source:   source,
		Ideas:    ideas,
	}
}
