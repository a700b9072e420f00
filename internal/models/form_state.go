package models

// FormState is the complete state of one input/result view.
type FormState struct {
	Keyword      string          `json:"keyword"`
	Country      Country         `json:"country"`
	Language     Language        `json:"language"`
	IsLoading    bool            `json:"is_loading"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Results      []KeywordResult `json:"results"`
}

// NewFormState returns the initial idle state.
func NewFormState() FormState {
	return FormState{
		Country:  CountryKR,
		Language: LanguageKO,
		Results:  []KeywordResult{},
	}
}

// HasResults reports whether a finished run produced rows.
func (s FormState) HasResults() bool {
	return !s.IsLoading && len(s.Results) > 0
}

// Clone returns a copy whose Results slice is not shared.
func (s FormState) Clone() FormState {
	out := s
	out.Results = make([]KeywordResult, len(s.Results))
	copy(out.Results, s.Results)
	return out
}
