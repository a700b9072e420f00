package models

import (
	"errors"
	"strings"
)

// Selector parse errors. The form keeps its previous value when either is returned.
var (
	// ErrUnknownCountry is returned for codes outside KR, US, JP and DE.
	ErrUnknownCountry = errors.New("unknown country code")
	// ErrUnknownLanguage is returned for codes outside ko, en, ja and de.
	ErrUnknownLanguage = errors.New("unknown language code")
)

// Country is a market selector value.
type Country string

// Supported countries
const (
	CountryKR Country = "KR"
	CountryUS Country = "US"
	CountryJP Country = "JP"
	CountryDE Country = "DE"
)

// Language is a content language selector value.
type Language string

// Supported languages
const (
	LanguageKO Language = "ko"
	LanguageEN Language = "en"
	LanguageJA Language = "ja"
	LanguageDE Language = "de"
)

// Option is a select control entry.
type Option struct {
	Value string
	Label string
}

// Countries lists the country selector options in display order.
var Countries = []Option{
	{Value: string(CountryKR), Label: "대한민국 (KR)"},
	{Value: string(CountryUS), Label: "미국 (US)"},
	{Value: string(CountryJP), Label: "일본 (JP)"},
	{Value: string(CountryDE), Label: "독일 (DE)"},
}

// Languages lists the language selector options in display order.
var Languages = []Option{
	{Value: string(LanguageKO), Label: "한국어 (ko)"},
	{Value: string(LanguageEN), Label: "영어 (en)"},
	{Value: string(LanguageJA), Label: "일본어 (ja)"},
	{Value: string(LanguageDE), Label: "독일어 (de)"},
}

// ParseCountry validates a country code. Matching is case-insensitive.
func ParseCountry(code string) (Country, error) {
	c := Country(strings.ToUpper(strings.TrimSpace(code)))
	switch c {
	case CountryKR, CountryUS, CountryJP, CountryDE:
		return c, nil
	}
	return "", ErrUnknownCountry
}

// ParseLanguage validates a language code. Matching is case-insensitive.
func ParseLanguage(code string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(code)))
	switch l {
	case LanguageKO, LanguageEN, LanguageJA, LanguageDE:
		return l, nil
	}
	return "", ErrUnknownLanguage
}
