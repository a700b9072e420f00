package keywordsource

import (
	"context"

	"keywordlab/internal/models"
)

// GoogleAdsProvider stands in for the Google Ads Keyword Planner.
// It returns fixed rows templated from the seed keyword; country and language are accepted but unused.
type GoogleAdsProvider struct {
	fallback string
}

// NewGoogleAdsProvider creates the Google Ads provider. An empty fallback uses DefaultBaseKeyword.
func NewGoogleAdsProvider(fallback string) *GoogleAdsProvider {
	return &GoogleAdsProvider{fallback: fallback}
}

func (p *GoogleAdsProvider) ID() models.ProviderID {
	return models.ProviderGoogleAds
}

// FetchIdeas returns three candidate rows for the seed keyword.
func (p *GoogleAdsProvider) FetchIdeas(ctx context.Context, q Query) ([]models.RawKeywordRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base := baseKeyword(q.Keyword, p.fallback)

	return []models.RawKeywordRow{
		{Keyword: base + " 추천", Volume: 4400, CPC: 720, Competition: 0.35},
		{Keyword: base + " 후기", Volume: 2900, CPC: 540, Competition: 0.28},
		{Keyword: base + " 비교", Volume: 1900, CPC: 610, Competition: 0.32},
	}, nil
}

// FetchGoogleAds fetches ideas from a default Google Ads provider.
func FetchGoogleAds(ctx context.Context, keyword string, country models.Country, language models.Language) ([]models.RawKeywordRow, error) {
	return NewGoogleAdsProvider("").FetchIdeas(ctx, Query{Keyword: keyword, Country: country, Language: language})
}
