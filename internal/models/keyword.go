package models

// KeywordResult is one display row of the results table.
type KeywordResult struct {
	Keyword         string `json:"keyword"`
	SearchVolume    int    `json:"search_volume"`
	DifficultyScore int    `json:"difficulty_score"` // 0-100
	CostPerClick    int    `json:"cost_per_click"`
	Note            string `json:"note"`
}

// RawKeywordRow is the shape a keyword provider returns before mapping.
type RawKeywordRow struct {
	Keyword     string  `json:"keyword"`
	Volume      int     `json:"volume"`      // monthly searches
	CPC         int     `json:"cpc"`         // estimated cost per click
	Competition float64 `json:"competition"` // 0..1, closer to 1 is more contested
}

// ProviderID names a keyword provider.
type ProviderID string

// Provider identifiers
const (
	ProviderGoogleAds ProviderID = "google"
	ProviderNaverAds  ProviderID = "naver"
)
