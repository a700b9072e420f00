package validation

import (
	"strings"
	"unicode/utf8"

	"keywordlab/internal/models"
)

// MinKeywordLength is the shortest trimmed seed keyword the run action accepts.
const MinKeywordLength = 2

// NormalizeKeyword trims surrounding whitespace from a seed keyword.
func NormalizeKeyword(keyword string) string {
	return strings.TrimSpace(keyword)
}

// KeywordLength counts the characters of the trimmed keyword.
func KeywordLength(keyword string) int {
	return utf8.RuneCountInString(NormalizeKeyword(keyword))
}

// ValidateKeyword reports whether the keyword passes the run gate.
func ValidateKeyword(keyword string) bool {
	return KeywordLength(keyword) >= MinKeywordLength
}

// KeywordHint returns the inline validation message for a keyword, or "" when it is valid.
func KeywordHint(keyword string) string {
	if ValidateKeyword(keyword) {
		return ""
	}
	return "키워드를 2자 이상 입력하세요."
}

// ValidateSelectors checks the country and language codes of a form submission.
// Empty values fall back to the supplied defaults.
func ValidateSelectors(country, language string, defaults models.FormState) (models.Country, models.Language, error) {
	c := defaults.Country
	if country != "" {
		parsed, err := models.ParseCountry(country)
		if err != nil {
			return "", "", err
		}
		c = parsed
	}

	l := defaults.Language
	if language != "" {
		parsed, err := models.ParseLanguage(language)
		if err != nil {
			return "", "", err
		}
		l = parsed
	}

	return c, l, nil
}
