package analyzer

import (
	"keywordlab/internal/display"
	"keywordlab/internal/models"
	"keywordlab/internal/validation"
)

// Button labels and tooltips
const (
	LabelRun     = "분석 시작"
	LabelRunning = "분석 중..."

	TooltipInvalid = "키워드를 2자 이상 입력하세요"
	TooltipRunning = "분석 중..."
	TooltipReady   = "입력값으로 분석 실행"
)

// Row is one rendered result line.
type Row struct {
	Keyword    string
	Volume     string
	Difficulty int
	CPC        string
	Note       string
	Striped    bool
}

// Presentation is everything a template needs to draw the form and result panel.
type Presentation struct {
	Keyword        string
	Country        models.Country
	Language       models.Language
	Countries      []models.Option
	Languages      []models.Option
	ShowValidation bool
	ValidationHint string
	RunEnabled     bool
	RunLabel       string
	RunTooltip     string
	Loading        bool
	ShowEmpty      bool
	ShowTable      bool
	ErrorMessage   string
	Rows           []Row
}

// Present derives the rendering contract from a state snapshot.
func Present(s models.FormState, f *display.Formatter) Presentation {
	if f == nil {
		f = display.Default()
	}

	valid := validation.ValidateKeyword(s.Keyword)
	p := Presentation{
		Keyword:        s.Keyword,
		Country:        s.Country,
		Language:       s.Language,
		Countries:      models.Countries,
		Languages:      models.Languages,
		ShowValidation: !valid,
		ValidationHint: validation.KeywordHint(s.Keyword),
		RunEnabled:     valid && !s.IsLoading,
		RunLabel:       LabelRun,
		Loading:        s.IsLoading,
		ShowEmpty:      !s.IsLoading && !s.HasResults(),
		ShowTable:      s.HasResults(),
		ErrorMessage:   s.ErrorMessage,
	}

	switch {
	case !valid:
		p.RunTooltip = TooltipInvalid
	case s.IsLoading:
		p.RunTooltip = TooltipRunning
	default:
		p.RunTooltip = TooltipReady
	}
	if s.IsLoading {
		p.RunLabel = LabelRunning
	}

	if p.ShowTable {
		p.Rows = make([]Row, 0, len(s.Results))
		for i, r := range s.Results {
			p.Rows = append(p.Rows, Row{
				Keyword:    r.Keyword,
				Volume:     f.Volume(r.SearchVolume),
				Difficulty: r.DifficultyScore,
				CPC:        f.CPC(r.CostPerClick),
				Note:       r.Note,
				Striped:    i%2 == 1,
			})
		}
	}

	return p
}
