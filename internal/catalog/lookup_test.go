package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"cinescout/internal/media"
)

type fakeAPI struct {
	searchResponses []searchReply
	searchCalls     int

	detail    *Detail
	detailErr error

	recommendations *Response
	recsErr         error

	nowPlaying *Response
	nowErr     error
}

type searchReply struct {
	resp *Response
	err  error
}

func (f *fakeAPI) Search(ctx context.Context, query string, kind media.Kind) (*Response, error) {
	if f.searchCalls >= len(f.searchResponses) {
		return &Response{}, nil
	}
	reply := f.searchResponses[f.searchCalls]
	f.searchCalls++
	return reply.resp, reply.err
}

func (f *fakeAPI) Details(ctx context.Context, id int64, kind media.Kind) (*Detail, error) {
	return f.detail, f.detailErr
}

func (f *fakeAPI) Recommendations(ctx context.Context, id int64, kind media.Kind) (*Response, error) {
	return f.recommendations, f.recsErr
}

func (f *fakeAPI) NowPlaying(ctx context.Context) (*Response, error) {
	return f.nowPlaying, f.nowErr
}

func (f *fakeAPI) DiscoverByGenre(ctx context.Context, genreID int64, kind media.Kind) (*Response, error) {
	return &Response{}, nil
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

// instantLookup builds a Lookup whose sleeps record instead of waiting.
func instantLookup(api API, cfg LookupConfig, sleeps *[]time.Duration) *Lookup {
	current := time.Unix(1000, 0)
	return NewLookup(api, cfg,
		WithClock(func() time.Time { return current }),
		WithSleeper(func(ctx context.Context, d time.Duration) error {
			if sleeps != nil {
				*sleeps = append(*sleeps, d)
			}
			current = current.Add(d)
			return nil
		}),
	)
}

func TestSearchHitOutcome(t *testing.T) {
	api := &fakeAPI{searchResponses: []searchReply{
		{resp: &Response{Results: []Hit{{ID: 27205, Title: "Inception"}}}},
	}}
	lookup := instantLookup(api, LookupConfig{RetryAttempts: 3}, nil)

	hits, outcome := lookup.Search(context.Background(), "Inception", media.KindMovie)
	if outcome != OutcomeHit {
		t.Fatalf("unexpected outcome: %v", outcome)
	}
	if len(hits) != 1 || hits[0].ID != 27205 {
		t.Fatalf("unexpected hits: %#v", hits)
	}
}

func TestSearchEmptyOutcome(t *testing.T) {
	api := &fakeAPI{searchResponses: []searchReply{{resp: &Response{}}}}
	lookup := instantLookup(api, LookupConfig{RetryAttempts: 3}, nil)

	hits, outcome := lookup.Search(context.Background(), "ZzzNoSuchTitle", media.KindMovie)
	if outcome != OutcomeEmpty {
		t.Fatalf("unexpected outcome: %v", outcome)
	}
	if hits != nil {
		t.Fatalf("expected nil hits, got %#v", hits)
	}
}

func TestSearchRetriesTimeoutsThenSucceeds(t *testing.T) {
	api := &fakeAPI{searchResponses: []searchReply{
		{err: timeoutError{}},
		{err: timeoutError{}},
		{resp: &Response{Results: []Hit{{ID: 1, Title: "Late Arrival"}}}},
	}}
	var sleeps []time.Duration
	lookup := instantLookup(api, LookupConfig{RetryAttempts: 3, RetryDelay: 2 * time.Second}, &sleeps)

	hits, outcome := lookup.Search(context.Background(), "slow", media.KindMovie)
	if outcome != OutcomeHit {
		t.Fatalf("unexpected outcome: %v", outcome)
	}
	if len(hits) != 1 {
		t.Fatalf("unexpected hits: %#v", hits)
	}
	if api.searchCalls != 3 {
		t.Fatalf("expected 3 attempts, got %d", api.searchCalls)
	}
	// Two retry waits of the fixed delay.
	var retryWaits int
	for _, d := range sleeps {
		if d == 2*time.Second {
			retryWaits++
		}
	}
	if retryWaits != 2 {
		t.Fatalf("expected 2 retry waits, got %d (sleeps=%v)", retryWaits, sleeps)
	}
}

func TestSearchExhaustedRetriesIsTransient(t *testing.T) {
	api := &fakeAPI{searchResponses: []searchReply{
		{err: timeoutError{}},
		{err: timeoutError{}},
		{err: timeoutError{}},
	}}
	lookup := instantLookup(api, LookupConfig{RetryAttempts: 3, RetryDelay: time.Second}, nil)

	hits, outcome := lookup.Search(context.Background(), "down", media.KindMovie)
	if outcome != OutcomeTransient {
		t.Fatalf("unexpected outcome: %v", outcome)
	}
	if hits != nil {
		t.Fatalf("expected nil hits, got %#v", hits)
	}
	if api.searchCalls != 3 {
		t.Fatalf("expected 3 attempts, got %d", api.searchCalls)
	}
}

func TestSearchRetriesConnectionFailureThenSucceeds(t *testing.T) {
	refused := &url.Error{
		Op:  "Get",
		URL: "https://api.example/3/search/movie",
		Err: errors.New("connect: connection refused"),
	}
	api := &fakeAPI{searchResponses: []searchReply{
		{err: refused},
		{resp: &Response{Results: []Hit{{ID: 2, Title: "Back Online"}}}},
	}}
	var sleeps []time.Duration
	lookup := instantLookup(api, LookupConfig{RetryAttempts: 3, RetryDelay: 2 * time.Second}, &sleeps)

	hits, outcome := lookup.Search(context.Background(), "refused", media.KindMovie)
	if outcome != OutcomeHit {
		t.Fatalf("unexpected outcome: %v", outcome)
	}
	if len(hits) != 1 || hits[0].ID != 2 {
		t.Fatalf("unexpected hits: %#v", hits)
	}
	if api.searchCalls != 2 {
		t.Fatalf("expected 2 attempts, got %d", api.searchCalls)
	}
	var retryWaits int
	for _, d := range sleeps {
		if d == 2*time.Second {
			retryWaits++
		}
	}
	if retryWaits != 1 {
		t.Fatalf("expected 1 retry wait, got %d (sleeps=%v)", retryWaits, sleeps)
	}
}

func TestSearchConnectionFailureExhaustionIsTransient(t *testing.T) {
	lost := &url.Error{Op: "Get", URL: "https://api.example/3/search/movie", Err: errors.New("no such host")}
	api := &fakeAPI{searchResponses: []searchReply{
		{err: lost},
		{err: lost},
		{err: lost},
	}}
	lookup := instantLookup(api, LookupConfig{RetryAttempts: 3, RetryDelay: time.Second}, nil)

	hits, outcome := lookup.Search(context.Background(), "unreachable", media.KindMovie)
	if outcome != OutcomeTransient {
		t.Fatalf("unexpected outcome: %v", outcome)
	}
	if hits != nil {
		t.Fatalf("expected nil hits, got %#v", hits)
	}
	if api.searchCalls != 3 {
		t.Fatalf("expected 3 attempts, got %d", api.searchCalls)
	}
}

func TestSearchStatusErrorAbortsWithoutRetry(t *testing.T) {
	api := &fakeAPI{searchResponses: []searchReply{
		{err: &StatusError{StatusCode: 500, Endpoint: "/search/movie"}},
		{resp: &Response{Results: []Hit{{ID: 1}}}},
	}}
	lookup := instantLookup(api, LookupConfig{RetryAttempts: 3}, nil)

	_, outcome := lookup.Search(context.Background(), "boom", media.KindMovie)
	if outcome != OutcomePermanent {
		t.Fatalf("unexpected outcome: %v", outcome)
	}
	if api.searchCalls != 1 {
		t.Fatalf("expected a single attempt, got %d", api.searchCalls)
	}
}

func TestPacingWaitsBetweenCalls(t *testing.T) {
	api := &fakeAPI{searchResponses: []searchReply{
		{resp: &Response{Results: []Hit{{ID: 1}}}},
		{resp: &Response{Results: []Hit{{ID: 2}}}},
	}}
	var sleeps []time.Duration
	lookup := instantLookup(api, LookupConfig{Pace: time.Second, RetryAttempts: 1}, &sleeps)

	lookup.Search(context.Background(), "first", media.KindMovie)
	lookup.Search(context.Background(), "second", media.KindMovie)

	if len(sleeps) == 0 {
		t.Fatal("expected a pacing wait before the second call")
	}
	last := sleeps[len(sleeps)-1]
	if last != time.Second {
		t.Fatalf("expected 1s pacing wait, got %v", last)
	}
}

func TestPacingRechecksAfterEarlyWake(t *testing.T) {
	api := &fakeAPI{searchResponses: []searchReply{
		{resp: &Response{Results: []Hit{{ID: 1}}}},
		{resp: &Response{Results: []Hit{{ID: 2}}}},
	}}
	current := time.Unix(1000, 0)
	var sleeps []time.Duration
	firstWake := true
	lookup := NewLookup(api, LookupConfig{Pace: time.Second, RetryAttempts: 1},
		WithClock(func() time.Time { return current }),
		WithSleeper(func(ctx context.Context, d time.Duration) error {
			sleeps = append(sleeps, d)
			if firstWake {
				// Wake with half the pace window still outstanding.
				firstWake = false
				current = current.Add(d / 2)
				return nil
			}
			current = current.Add(d)
			return nil
		}),
	)

	lookup.Search(context.Background(), "first", media.KindMovie)
	lookup.Search(context.Background(), "second", media.KindMovie)

	if len(sleeps) != 2 {
		t.Fatalf("expected a second pacing wait after the early wake, got %v", sleeps)
	}
	if sleeps[0] != time.Second || sleeps[1] != 500*time.Millisecond {
		t.Fatalf("unexpected pacing waits: %v", sleeps)
	}
}

func TestRecommendationsExcludesQueriedIDAndCaps(t *testing.T) {
	results := []Hit{{ID: 42, Title: "Self"}}
	for i := 1; i <= 60; i++ {
		results = append(results, Hit{ID: int64(100 + i), Title: fmt.Sprintf("Rec %d", i)})
	}
	api := &fakeAPI{recommendations: &Response{Results: results}}
	lookup := instantLookup(api, LookupConfig{RetryAttempts: 1, MaxResults: 50}, nil)

	hits, outcome := lookup.Recommendations(context.Background(), 42, media.KindMovie)
	if outcome != OutcomeHit {
		t.Fatalf("unexpected outcome: %v", outcome)
	}
	if len(hits) > 50 {
		t.Fatalf("expected cap of 50, got %d", len(hits))
	}
	for _, hit := range hits {
		if hit.ID == 42 {
			t.Fatal("queried id must be excluded from recommendations")
		}
	}
}

func TestPosterAbsent(t *testing.T) {
	api := &fakeAPI{detail: &Detail{ID: 7, PosterPath: ""}}
	lookup := instantLookup(api, LookupConfig{RetryAttempts: 1}, nil)

	path, outcome := lookup.Poster(context.Background(), 7, media.KindTV)
	if outcome != OutcomeEmpty {
		t.Fatalf("unexpected outcome: %v", outcome)
	}
	if path != "" {
		t.Fatalf("expected empty poster path, got %q", path)
	}
}

func TestPosterDegradesToAbsent(t *testing.T) {
	api := &fakeAPI{detailErr: timeoutError{}}
	lookup := instantLookup(api, LookupConfig{RetryAttempts: 2, RetryDelay: time.Second}, nil)

	path, outcome := lookup.Poster(context.Background(), 7, media.KindMovie)
	if outcome != OutcomeTransient {
		t.Fatalf("unexpected outcome: %v", outcome)
	}
	if path != "" {
		t.Fatalf("expected empty poster path, got %q", path)
	}
}

func TestSearchIsIdempotentUnderStableBackend(t *testing.T) {
	api := &fakeAPI{searchResponses: []searchReply{
		{resp: &Response{Results: []Hit{{ID: 27205, Title: "Inception"}}}},
		{resp: &Response{Results: []Hit{{ID: 27205, Title: "Inception"}}}},
	}}
	lookup := instantLookup(api, LookupConfig{RetryAttempts: 1}, nil)

	first, _ := lookup.Search(context.Background(), "Inception", media.KindMovie)
	second, _ := lookup.Search(context.Background(), "Inception", media.KindMovie)
	if first[0].ID != second[0].ID || first[0].Title != second[0].Title {
		t.Fatalf("expected identical top hit, got %#v vs %#v", first[0], second[0])
	}
}
