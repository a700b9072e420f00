package keywordsource

import (
	"context"

	"keywordlab/internal/models"
)

// NaverAdsProvider stands in for the Naver SearchAd keyword tool. It only looks at the keyword.
type NaverAdsProvider struct {
	fallback string
}

// NewNaverAdsProvider creates the Naver provider. An empty fallback uses DefaultBaseKeyword.
func NewNaverAdsProvider(fallback string) *NaverAdsProvider {
	return &NaverAdsProvider{fallback: fallback}
}

func (p *NaverAdsProvider) ID() models.ProviderID {
	return models.ProviderNaverAds
}

// FetchIdeas returns two candidate rows for the seed keyword.
func (p *NaverAdsProvider) FetchIdeas(ctx context.Context, q Query) ([]models.RawKeywordRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base := baseKeyword(q.Keyword, p.fallback)

	return []models.RawKeywordRow{
		{Keyword: base + " 가격", Volume: 3500, CPC: 430, Competition: 0.4},
		{Keyword: base + " 사용법", Volume: 2100, CPC: 280, Competition: 0.25},
	}, nil
}

// FetchNaverAds fetches ideas from a default Naver provider.
func FetchNaverAds(ctx context.Context, keyword string) ([]models.RawKeywordRow, error) {
	return NewNaverAdsProvider("").FetchIdeas(ctx, Query{Keyword: keyword})
}
