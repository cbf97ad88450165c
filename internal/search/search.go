// Package search scans numeric ranges for new multiplicative persistence
// records.
//
// A Searcher walks [start, end). Each step rewrites the current value through
// a Substitution, tests the rewritten candidate, and then continues from
// candidate+step. Every time a candidate's persistence strictly exceeds the
// best seen so far in the run, a Record is sent to the Sink.
//
// Searches run synchronously on the calling goroutine and own their
// Calculator (and its cache) for the duration of the run.
package search

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"number-persistence/internal/persistence"
)

const (
	// Progress reporting interval in candidates.
	defaultProgressInterval = 100_000

	// DefaultLongSearchExponent is the k in the default long-search range
	// [10^k, 10^(k+1)).
	DefaultLongSearchExponent = 20588
)

// Variant names a search flavour; it labels metrics and logs.
type Variant string

const (
	VariantExhaustive Variant = "exhaustive"
	VariantHeuristic  Variant = "heuristic"
)

// Record is a candidate that set a new maximum persistence within a run.
type Record struct {
	Value       *big.Int
	Persistence int
}

// String renders the record in the CSV log format.
func (r Record) String() string {
	return fmt.Sprintf("%s,%d", r.Value, r.Persistence)
}

// Sink receives record events. A returned error is logged and counted; it
// never stops the search.
type Sink interface {
	Emit(ctx context.Context, rec Record) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, rec Record) error

func (f SinkFunc) Emit(ctx context.Context, rec Record) error { return f(ctx, rec) }

// Result summarises a finished (or cancelled) run.
type Result struct {
	// Best is the overall record; Best.Value is nil when no candidate
	// exceeded persistence 0.
	Best         Record
	Candidates   int64
	Records      int
	SinkFailures int
	Elapsed      time.Duration
}

// Searcher drives a persistence.Calculator over a numeric range.
type Searcher struct {
	variant          Variant
	calc             *persistence.Calculator
	sink             Sink
	substitution     Substitution
	step             *big.Int
	logger           *zap.Logger
	progress         func(string)
	progressInterval int64
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithSubstitution replaces the variant's default substitution policy.
func WithSubstitution(s Substitution) Option {
	return func(sr *Searcher) { sr.substitution = s }
}

// WithStep replaces the variant's default step. Values < 1 are ignored.
func WithStep(step int64) Option {
	return func(sr *Searcher) {
		if step >= 1 {
			sr.step = big.NewInt(step)
		}
	}
}

// WithLogger sets the logger used for sink failures and run summaries.
func WithLogger(l *zap.Logger) Option {
	return func(sr *Searcher) { sr.logger = l }
}

// WithProgress registers a callback invoked every interval candidates.
// interval <= 0 selects the default.
func WithProgress(cb func(string), interval int64) Option {
	return func(sr *Searcher) {
		sr.progress = cb
		if interval > 0 {
			sr.progressInterval = interval
		}
	}
}

// Exhaustive tests every zero-free value in the range: zeros are rewritten to
// ones and the walk advances by 1.
func Exhaustive(calc *persistence.Calculator, sink Sink, opts ...Option) *Searcher {
	return newSearcher(VariantExhaustive, calc, sink, ZeroToOne, 1, opts)
}

// Heuristic rewrites candidates with SkipUnlikelyDigits and advances by 2.
// It is meant for very long numbers and should be given a divide-and-conquer
// calculator. It may miss the true record.
func Heuristic(calc *persistence.Calculator, sink Sink, opts ...Option) *Searcher {
	return newSearcher(VariantHeuristic, calc, sink, SkipUnlikelyDigits, 2, opts)
}

func newSearcher(v Variant, calc *persistence.Calculator, sink Sink, sub Substitution, step int64, opts []Option) *Searcher {
	s := &Searcher{
		variant:          v,
		calc:             calc,
		sink:             sink,
		substitution:     sub,
		step:             big.NewInt(step),
		logger:           zap.NewNop(),
		progressInterval: defaultProgressInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sink == nil {
		s.sink = SinkFunc(func(context.Context, Record) error { return nil })
	}
	return s
}

// Variant reports which search flavour s runs.
func (s *Searcher) Variant() Variant { return s.variant }

// Run searches [start, end). start >= end performs no iterations.
// The only error is ctx's, returned together with the partial result.
func (s *Searcher) Run(ctx context.Context, start, end *big.Int) (Result, error) {
	started := time.Now()
	variant := string(s.variant)
	purge := s.calc.Policy().PurgeBetweenCandidates() && s.calc.Strategy() == persistence.StrategyDivideAndConquer

	s.logger.Info("search started",
		zap.String("variant", variant),
		zap.String("substitution", s.substitution.Name()),
		zap.String("step", s.step.String()),
		zap.String("strategy", s.calc.Strategy().String()),
		zap.Int("start_digits", len(start.Text(10))),
	)

	var res Result
	cur := new(big.Int).Set(start)
	for cur.Cmp(end) < 0 {
		if err := ctx.Err(); err != nil {
			res.Elapsed = time.Since(started)
			s.logger.Info("search cancelled", zap.Int64("candidates", res.Candidates), zap.Error(err))
			return res, err
		}

		candidate := s.substitution.Apply(cur)

		t0 := time.Now()
		p := s.calc.Persistence(candidate)
		candidateDuration.WithLabelValues(variant).Observe(time.Since(t0).Seconds())
		candidatesTotal.WithLabelValues(variant).Inc()
		res.Candidates++

		if p > res.Best.Persistence {
			rec := Record{Value: new(big.Int).Set(candidate), Persistence: p}
			res.Best = rec
			res.Records++
			recordsTotal.WithLabelValues(variant).Inc()
			bestPersistence.WithLabelValues(variant).Set(float64(p))

			if err := s.sink.Emit(ctx, rec); err != nil {
				res.SinkFailures++
				sinkFailuresTotal.WithLabelValues(variant).Inc()
				s.logger.Warn("failed to record new maximum",
					zap.Int("persistence", p),
					zap.Int("digits", len(candidate.Text(10))),
					zap.Error(err),
				)
			}
		}

		if purge {
			s.calc.ResetCache()
		}

		if s.progress != nil && res.Candidates%s.progressInterval == 0 {
			s.progress(fmt.Sprintf("Tested %d candidates (best persistence %d)", res.Candidates, res.Best.Persistence))
		}

		cur = new(big.Int).Add(candidate, s.step)
	}

	res.Elapsed = time.Since(started)
	stats := s.calc.Stats()
	s.logger.Info("search finished",
		zap.String("variant", variant),
		zap.Int64("candidates", res.Candidates),
		zap.Int("records", res.Records),
		zap.Int("best_persistence", res.Best.Persistence),
		zap.Int("sink_failures", res.SinkFailures),
		zap.Uint64("cache_hits", stats.Hits),
		zap.Uint64("cache_misses", stats.Misses),
		zap.Int("cache_size", stats.Size),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// LongSearchRange returns [10^k, 10^(k+1)).
func LongSearchRange(k int) (start, end *big.Int) {
	start = new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(k)), nil)
	end = new(big.Int).Mul(start, big.NewInt(10))
	return start, end
}
