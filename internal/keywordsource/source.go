// Package keywordsource produces raw keyword rows from advertising keyword providers.
//
// The providers are placeholders that return fixed rows; Source is the seam where the
// selection policy lives and where every failure is classified into ErrAdapterFailure.
package keywordsource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"keywordlab/internal/logger"
	"keywordlab/internal/models"
)

// Fetch outcomes reported to a FetchObserver
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// FetchObserver is told about every provider fetch.
type FetchObserver func(provider models.ProviderID, outcome string)

// Options configures a Source.
type Options struct {
	Policy  Policy
	Timeout time.Duration // per-fetch deadline, zero disables
	Observe FetchObserver
}

// Source applies a selection policy over a set of providers.
type Source struct {
	providers map[models.ProviderID]Provider
	policy    Policy
	timeout   time.Duration
	observe   FetchObserver
	log       *logger.Logger
}

// NewSource creates a source over the given providers. A zero policy means PolicyGoogle.
func NewSource(opts Options, providers ...Provider) *Source {
	policy := opts.Policy
	if policy == "" {
		policy = PolicyGoogle
	}

	byID := make(map[models.ProviderID]Provider, len(providers))
	for _, p := range providers {
		byID[p.ID()] = p
	}

	return &Source{
		providers: byID,
		policy:    policy,
		timeout:   opts.Timeout,
		observe:   opts.Observe,
		log:       logger.WithField("component", "keywordsource"),
	}
}

// NewDefaultSource creates a source over the built-in Google and Naver providers.
func NewDefaultSource(opts Options, fallback string) *Source {
	return NewSource(opts, NewGoogleAdsProvider(fallback), NewNaverAdsProvider(fallback))
}

// Policy returns the configured selection policy.
func (s *Source) Policy() Policy {
	return s.policy
}

// GetKeywordIdeas returns rows according to the configured policy.
func (s *Source) GetKeywordIdeas(ctx context.Context, keyword string, country models.Country, language models.Language) ([]models.RawKeywordRow, error) {
	return s.GetKeywordIdeasWith(ctx, s.policy, Query{Keyword: keyword, Country: country, Language: language})
}

// GetKeywordIdeasWith returns rows according to an explicit policy.
func (s *Source) GetKeywordIdeasWith(ctx context.Context, policy Policy, q Query) ([]models.RawKeywordRow, error) {
	ids := policy.Providers()
	if len(ids) == 1 {
		return s.fetch(ctx, ctx, ids[0], q)
	}

	results := make([][]models.RawKeywordRow, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			rows, err := s.fetch(gctx, ctx, id, q)
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []models.RawKeywordRow
	for _, rows := range results {
		merged = append(merged, rows...)
	}
	return merged, nil
}

// Fetch queries a single provider and classifies any failure.
func (s *Source) Fetch(ctx context.Context, id models.ProviderID, q Query) ([]models.RawKeywordRow, error) {
	return s.fetch(ctx, ctx, id, q)
}

// fetch queries one provider under ctx. parent is the caller's context: when ctx was
// cancelled while parent is still live, a sibling fetch failed first and this fetch
// is neither logged nor reported.
func (s *Source) fetch(ctx, parent context.Context, id models.ProviderID, q Query) ([]models.RawKeywordRow, error) {
	p, ok := s.providers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, id)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	rows, err := p.FetchIdeas(ctx, q)
	if err == nil {
		err = validateRows(rows)
	}
	if err != nil {
		perr := classify(id, err)
		if errors.Is(err, context.Canceled) && parent.Err() == nil {
			return nil, perr
		}
		s.log.WithError(perr).WithFields(map[string]any{
			"provider": id,
			"kind":     perr.Kind,
		}).Warn("keyword provider fetch failed")
		s.report(id, OutcomeFailure)
		return nil, perr
	}

	s.log.WithFields(map[string]any{
		"provider":    id,
		"rows":        len(rows),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("keyword provider fetch completed")
	s.report(id, OutcomeSuccess)
	return rows, nil
}

func (s *Source) report(id models.ProviderID, outcome string) {
	if s.observe != nil {
		s.observe(id, outcome)
	}
}

var (
	errEmptyResponse = errors.New("provider returned no rows")
	errInvalidRow    = errors.New("provider returned an invalid row")
)

// validateRows rejects responses that cannot be mapped to display rows.
func validateRows(rows []models.RawKeywordRow) error {
	if len(rows) == 0 {
		return errEmptyResponse
	}
	for i, r := range rows {
		switch {
		case r.Keyword == "":
			return fmt.Errorf("%w: row %d has no keyword", errInvalidRow, i)
		case r.Volume < 0 || r.CPC < 0:
			return fmt.Errorf("%w: row %d has negative metrics", errInvalidRow, i)
		case !(r.Competition >= 0 && r.Competition <= 1): // also rejects NaN
			return fmt.Errorf("%w: row %d competition %.2f outside [0,1]", errInvalidRow, i, r.Competition)
		}
	}
	return nil
}

// classify maps a raw provider error onto a ProviderError.
func classify(id models.ProviderID, err error) *ProviderError {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr
	}

	kind := FailureNetwork
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = FailureTimeout
	case errors.Is(err, errEmptyResponse), errors.Is(err, errInvalidRow):
		kind = FailureMalformed
	}
	return &ProviderError{Provider: id, Kind: kind, Err: err}
}
