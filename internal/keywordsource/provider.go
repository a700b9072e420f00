package keywordsource

import (
	"context"
	"strings"

	"keywordlab/internal/models"
)

// DefaultBaseKeyword replaces a blank seed keyword.
const DefaultBaseKeyword = "테스트"

// Query holds the parameters of one keyword idea lookup.
type Query struct {
	Keyword  string
	Country  models.Country
	Language models.Language
}

// Provider is a source of raw keyword rows.
type Provider interface {
	ID() models.ProviderID
	FetchIdeas(ctx context.Context, q Query) ([]models.RawKeywordRow, error)
}

// baseKeyword trims the seed and substitutes fallback when nothing is left.
func baseKeyword(keyword, fallback string) string {
	if base := strings.TrimSpace(keyword); base != "" {
		return base
	}
	if fallback == "" {
		return DefaultBaseKeyword
	}
	return fallback
}
