package keywordsource

import (
	"strings"

	"keywordlab/internal/models"
)

// Policy selects which providers answer GetKeywordIdeas.
type Policy string

// Policies
const (
	PolicyGoogle Policy = "google"
	PolicyNaver  Policy = "naver"
	PolicyMerged Policy = "merged" // Google rows followed by Naver rows
)

// ParsePolicy validates a policy name. Matching is case-insensitive.
func ParsePolicy(name string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(name)))
	switch p {
	case PolicyGoogle, PolicyNaver, PolicyMerged:
		return p, nil
	}
	return "", ErrUnknownPolicy
}

// Providers returns the provider IDs the policy consults, in result order.
func (p Policy) Providers() []models.ProviderID {
	switch p {
	case PolicyNaver:
		return []models.ProviderID{models.ProviderNaverAds}
	case PolicyMerged:
		return []models.ProviderID{models.ProviderGoogleAds, models.ProviderNaverAds}
	default:
		return []models.ProviderID{models.ProviderGoogleAds}
	}
}

// ParseProviderID validates a provider name.
func ParseProviderID(name string) (models.ProviderID, error) {
	id := models.ProviderID(strings.ToLower(strings.TrimSpace(name)))
	switch id {
	case models.ProviderGoogleAds, models.ProviderNaverAds:
		return id, nil
	}
	return "", ErrUnknownProvider
}
