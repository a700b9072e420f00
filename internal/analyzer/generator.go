package analyzer

import (
	"context"
	"fmt"
	"math"

	"keywordlab/internal/keywordsource"
	"keywordlab/internal/models"
)

// Generator produces the result rows for one run.
type Generator interface {
	Generate(ctx context.Context, q keywordsource.Query) ([]models.KeywordResult, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, q keywordsource.Query) ([]models.KeywordResult, error)

func (f GeneratorFunc) Generate(ctx context.Context, q keywordsource.Query) ([]models.KeywordResult, error) {
	return f(ctx, q)
}

// MockGenerator produces the fixed sample rows. Country and language have no effect.
type MockGenerator struct{}

// Generate returns three rows derived from the trimmed keyword.
func (MockGenerator) Generate(_ context.Context, q keywordsource.Query) ([]models.KeywordResult, error) {
	base := q.Keyword
	return []models.KeywordResult{
		{
			Keyword:         base + " 추천",
			SearchVolume:    4400,
			DifficultyScore: 32,
			CostPerClick:    720,
			Note:            "구매 의도 강함 · 상위 노출 시 수익 기대",
		},
		{
			Keyword:         base + " 후기",
			SearchVolume:    2900,
			DifficultyScore: 27,
			CostPerClick:    540,
			Note:            "리뷰형 컨텐츠 적합 · 블로그형 추천",
		},
		{
			Keyword:         base + " 비교",
			SearchVolume:    1900,
			DifficultyScore: 24,
			CostPerClick:    610,
			Note:            "비교/가이드 글용 · 체류시간 유리",
		},
	}, nil
}

// SourceGenerator draws rows from the keyword source adapter and maps them for display.
type SourceGenerator struct {
	Source *keywordsource.Source
}

// Generate fetches ideas for the query and maps each raw row.
func (g SourceGenerator) Generate(ctx context.Context, q keywordsource.Query) ([]models.KeywordResult, error) {
	rows, err := g.Source.GetKeywordIdeas(ctx, q.Keyword, q.Country, q.Language)
	if err != nil {
		return nil, err
	}

	results := make([]models.KeywordResult, 0, len(rows))
	for _, r := range rows {
		results = append(results, ToKeywordResult(r))
	}
	return results, nil
}

// CompetitionToDifficulty converts a 0..1 competition value to a 0-100 difficulty score.
// Values outside [0,1] are clamped; NaN maps to 0. Rounding is half away from zero.
func CompetitionToDifficulty(competition float64) int {
	if math.IsNaN(competition) || competition <= 0 {
		return 0
	}
	if competition >= 1 {
		return 100
	}
	return int(math.Round(competition * 100))
}

// ToKeywordResult maps a raw provider row onto a display row.
func ToKeywordResult(r models.RawKeywordRow) models.KeywordResult {
	return models.KeywordResult{
		Keyword:         r.Keyword,
		SearchVolume:    max(r.Volume, 0),
		DifficultyScore: CompetitionToDifficulty(r.Competition),
		CostPerClick:    max(r.CPC, 0),
		Note:            fmt.Sprintf("광고 경쟁 지수 %.2f", r.Competition),
	}
}
