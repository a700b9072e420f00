// Package analyzer implements the keyword analysis view: form state, the run state machine,
// result generation and the rendering contract derived from state.
package analyzer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"keywordlab/internal/keywordsource"
	"keywordlab/internal/logger"
	"keywordlab/internal/models"
	"keywordlab/internal/validation"
)

// Run outcomes reported to an Observer
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeCanceled = "canceled"
)

// FailureMessage is shown when result generation fails.
const FailureMessage = "키워드 데이터를 불러오지 못했습니다. 잠시 후 다시 시도하세요."

// DefaultLatency is the simulated analysis delay.
const DefaultLatency = time.Second

// Observer is told about every finished run.
type Observer func(outcome string, elapsed time.Duration)

// Options configures a View.
type Options struct {
	Latency   time.Duration
	Generator Generator // defaults to MockGenerator
	Observer  Observer
}

// View owns one form state and runs at most one analysis at a time.
type View struct {
	id      uuid.UUID
	gen     Generator
	latency time.Duration
	observe Observer
	log     *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	state      models.FormState
	runDone    chan struct{}
	closed     bool
	lastActive time.Time
}

// NewView creates an idle view.
func NewView(id uuid.UUID, opts Options) *View {
	gen := opts.Generator
	if gen == nil {
		gen = MockGenerator{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &View{
		id:         id,
		gen:        gen,
		latency:    opts.Latency,
		observe:    opts.Observer,
		log:        logger.WithField("view_id", id.String()),
		ctx:        ctx,
		cancel:     cancel,
		state:      models.NewFormState(),
		lastActive: time.Now(),
	}
}

// ID returns the view identifier.
func (v *View) ID() uuid.UUID {
	return v.id
}

// Snapshot returns a copy of the current state.
func (v *View) Snapshot() models.FormState {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastActive = time.Now()
	return v.state.Clone()
}

// SetKeyword records keyword input.
func (v *View) SetKeyword(keyword string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastActive = time.Now()
	v.state.Keyword = keyword
}

// SetCountry records the country selector. Unknown codes leave state unchanged.
func (v *View) SetCountry(code string) error {
	c, err := models.ParseCountry(code)
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastActive = time.Now()
	v.state.Country = c
	return nil
}

// SetLanguage records the language selector. Unknown codes leave state unchanged.
func (v *View) SetLanguage(code string) error {
	l, err := models.ParseLanguage(code)
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastActive = time.Now()
	v.state.Language = l
	return nil
}

// CanRun reports whether the run action is enabled.
func (v *View) CanRun() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.canRunLocked()
}

func (v *View) canRunLocked() bool {
	return !v.closed && !v.state.IsLoading && validation.ValidateKeyword(v.state.Keyword)
}

// Run starts an analysis of the current input. It is a no-op returning false while a run
// is pending, when the keyword is below minimum length, or after Close.
func (v *View) Run() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastActive = time.Now()

	if !v.canRunLocked() {
		return false
	}

	v.state.ErrorMessage = ""
	v.state.Results = []models.KeywordResult{}
	v.state.IsLoading = true

	done := make(chan struct{})
	v.runDone = done

	q := keywordsource.Query{
		Keyword:  validation.NormalizeKeyword(v.state.Keyword),
		Country:  v.state.Country,
		Language: v.state.Language,
	}
	go v.execute(q, done)
	return true
}

// execute waits out the analysis latency, generates rows and applies the outcome.
func (v *View) execute(q keywordsource.Query, done chan struct{}) {
	defer close(done)
	start := time.Now()

	timer := time.NewTimer(v.latency)
	defer timer.Stop()

	select {
	case <-v.ctx.Done():
		v.finish(OutcomeCanceled, start)
		return
	case <-timer.C:
	}

	results, err := v.gen.Generate(v.ctx, q)

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		v.finish(OutcomeCanceled, start)
		return
	}
	v.state.IsLoading = false
	if err != nil {
		v.state.ErrorMessage = FailureMessage
		v.state.Results = []models.KeywordResult{}
	} else if results == nil {
		v.state.Results = []models.KeywordResult{}
	} else {
		v.state.Results = results
	}
	v.mu.Unlock()

	if err != nil {
		v.log.WithError(err).WithField("keyword", q.Keyword).Warn("analysis run failed")
		v.finish(OutcomeFailure, start)
		return
	}
	v.log.WithFields(map[string]any{
		"keyword": q.Keyword,
		"country": q.Country,
		"rows":    len(results),
	}).Debug("analysis run completed")
	v.finish(OutcomeSuccess, start)
}

func (v *View) finish(outcome string, start time.Time) {
	if v.observe != nil {
		v.observe(outcome, time.Since(start))
	}
}

// Wait blocks until the pending run, if any, has finished.
func (v *View) Wait(ctx context.Context) error {
	v.mu.Lock()
	done := v.runDone
	v.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close tears the view down. A pending run is cancelled and never updates state.
func (v *View) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.mu.Unlock()
	v.cancel()
}

// Closed reports whether Close has been called.
func (v *View) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

// IdleSince returns the time of the last interaction.
func (v *View) IdleSince() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastActive
}
