package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"cinescout/internal/logging"
	"cinescout/internal/media"
)

// Outcome classifies the result of a paced catalog lookup so callers can
// distinguish "no results" from upstream failure without inspecting errors.
type Outcome int

const (
	// OutcomeHit means the lookup returned at least one result.
	OutcomeHit Outcome = iota
	// OutcomeEmpty means the upstream answered with no matches.
	OutcomeEmpty
	// OutcomeTransient means retries were exhausted on network failures.
	OutcomeTransient
	// OutcomePermanent means the upstream rejected the request (4xx/5xx);
	// retrying would not help.
	OutcomePermanent
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeEmpty:
		return "empty"
	case OutcomeTransient:
		return "transient"
	default:
		return "permanent"
	}
}

// Degraded reports whether the lookup failed upstream (as opposed to a clean
// hit or empty answer).
func (o Outcome) Degraded() bool {
	return o == OutcomeTransient || o == OutcomePermanent
}

// API is the raw client surface Lookup paces and retries.
type API interface {
	Search(ctx context.Context, query string, kind media.Kind) (*Response, error)
	Details(ctx context.Context, id int64, kind media.Kind) (*Detail, error)
	Recommendations(ctx context.Context, id int64, kind media.Kind) (*Response, error)
	NowPlaying(ctx context.Context) (*Response, error)
	DiscoverByGenre(ctx context.Context, genreID int64, kind media.Kind) (*Response, error)
}

// LookupConfig captures pacing and retry discipline for catalog calls.
type LookupConfig struct {
	// Pace is the fixed delay applied before every call.
	Pace time.Duration
	// RetryAttempts bounds how many times a failed call is tried.
	RetryAttempts int
	// RetryDelay is the fixed wait between retry attempts.
	RetryDelay time.Duration
	// MaxResults caps each returned result list.
	MaxResults int
}

// Lookup wraps an API with pacing, bounded retries, and outcome
// classification. Exhausted retries degrade to an empty result rather than an
// error: callers treat "no data" as a valid answer.
type Lookup struct {
	api    API
	cfg    LookupConfig
	logger *slog.Logger

	mu       sync.Mutex
	lastCall time.Time

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// LookupOption customizes a Lookup.
type LookupOption func(*Lookup)

// WithClock overrides the time source (useful for tests).
func WithClock(now func() time.Time) LookupOption {
	return func(l *Lookup) {
		if now != nil {
			l.now = now
		}
	}
}

// WithSleeper overrides how pacing and retry waits are performed (useful for tests).
func WithSleeper(sleep func(context.Context, time.Duration) error) LookupOption {
	return func(l *Lookup) {
		if sleep != nil {
			l.sleep = sleep
		}
	}
}

// WithLogger attaches a logger for skip/degrade diagnostics.
func WithLogger(logger *slog.Logger) LookupOption {
	return func(l *Lookup) {
		if logger != nil {
			l.logger = logging.NewComponentLogger(logger, "catalog")
		}
	}
}

// NewLookup builds a Lookup over the given API.
func NewLookup(api API, cfg LookupConfig, opts ...LookupOption) *Lookup {
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 3
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 50
	}
	l := &Lookup{
		api:      api,
		cfg:      cfg,
		logger:   logging.NewNop(),
		lastCall: time.Unix(0, 0),
		now:      time.Now,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Search runs a paced title search. The hit list is capped at MaxResults.
func (l *Lookup) Search(ctx context.Context, query string, kind media.Kind) ([]Hit, Outcome) {
	var resp *Response
	outcome := l.attempt(ctx, "search", func(ctx context.Context) error {
		var err error
		resp, err = l.api.Search(ctx, query, kind)
		return err
	})
	return l.hits(resp, outcome), outcome
}

// Poster runs a paced detail fetch and returns the poster path, which is
// empty when the title has no poster or the lookup degraded.
func (l *Lookup) Poster(ctx context.Context, id int64, kind media.Kind) (string, Outcome) {
	var detail *Detail
	outcome := l.attempt(ctx, "detail", func(ctx context.Context) error {
		var err error
		detail, err = l.api.Details(ctx, id, kind)
		return err
	})
	if outcome.Degraded() || detail == nil {
		return "", outcome
	}
	if detail.PosterPath == "" {
		return "", OutcomeEmpty
	}
	return detail.PosterPath, OutcomeHit
}

// Recommendations runs a paced recommendation fetch, excluding the queried id
// and capping the list at MaxResults.
func (l *Lookup) Recommendations(ctx context.Context, id int64, kind media.Kind) ([]Hit, Outcome) {
	var resp *Response
	outcome := l.attempt(ctx, "recommendations", func(ctx context.Context) error {
		var err error
		resp, err = l.api.Recommendations(ctx, id, kind)
		return err
	})
	hits := l.hits(resp, outcome)
	filtered := hits[:0]
	for _, hit := range hits {
		if hit.ID == id {
			continue
		}
		filtered = append(filtered, hit)
	}
	if len(filtered) == 0 && outcome == OutcomeHit {
		outcome = OutcomeEmpty
	}
	return filtered, outcome
}

// NowPlaying runs a paced now-playing listing fetch.
func (l *Lookup) NowPlaying(ctx context.Context) ([]Hit, Outcome) {
	var resp *Response
	outcome := l.attempt(ctx, "now_playing", func(ctx context.Context) error {
		var err error
		resp, err = l.api.NowPlaying(ctx)
		return err
	})
	return l.hits(resp, outcome), outcome
}

// DiscoverByGenre runs a paced genre discovery fetch.
func (l *Lookup) DiscoverByGenre(ctx context.Context, genreID int64, kind media.Kind) ([]Hit, Outcome) {
	var resp *Response
	outcome := l.attempt(ctx, "discover", func(ctx context.Context) error {
		var err error
		resp, err = l.api.DiscoverByGenre(ctx, genreID, kind)
		return err
	})
	return l.hits(resp, outcome), outcome
}

func (l *Lookup) hits(resp *Response, outcome Outcome) []Hit {
	if outcome.Degraded() || resp == nil || len(resp.Results) == 0 {
		return nil
	}
	results := resp.Results
	if len(results) > l.cfg.MaxResults {
		results = results[:l.cfg.MaxResults]
	}
	out := make([]Hit, len(results))
	copy(out, results)
	return out
}

// attempt applies pacing, runs the call, and retries transport failures up to
// the configured bound. Only status failures abort immediately: timeouts,
// refused connections, and DNS errors all get the full retry budget.
func (l *Lookup) attempt(ctx context.Context, op string, call func(context.Context) error) Outcome {
	var lastErr error
	for i := 1; i <= l.cfg.RetryAttempts; i++ {
		if err := l.pace(ctx); err != nil {
			return OutcomeTransient
		}
		err := call(ctx)
		if err == nil {
			return OutcomeHit
		}
		lastErr = err

		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			l.logger.Warn("catalog call rejected",
				logging.String("op", op),
				logging.Int("status", statusErr.StatusCode))
			return OutcomePermanent
		}
		if errors.Is(err, context.Canceled) {
			return OutcomeTransient
		}
		if i < l.cfg.RetryAttempts {
			l.logger.Warn("catalog call failed, retrying",
				logging.String("op", op),
				logging.Int("attempt", i),
				logging.Duration("delay", l.cfg.RetryDelay),
				logging.Error(err))
			if err := l.sleep(ctx, l.cfg.RetryDelay); err != nil {
				return OutcomeTransient
			}
		}
	}
	l.logger.Warn("catalog call exhausted retries", logging.String("op", op), logging.Error(lastErr))
	return OutcomeTransient
}

func (l *Lookup) pace(ctx context.Context) error {
	if l.cfg.Pace <= 0 {
		return nil
	}
	l.mu.Lock()
	for {
		wait := l.cfg.Pace - l.now().Sub(l.lastCall)
		if wait <= 0 {
			break
		}
		l.mu.Unlock()
		if err := l.sleep(ctx, wait); err != nil {
			return err
		}
		// Another caller may have claimed the slot while we slept.
		l.mu.Lock()
	}
	l.lastCall = l.now()
	l.mu.Unlock()
	return nil
}

func sleepContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
