package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/synapseiq/site/component"
	apperrors "github.com/synapseiq/site/errors"
	"github.com/synapseiq/site/logger"
	"github.com/synapseiq/site/testimonial"
)

func makeRecords(n, firstID int) []testimonial.Record {
	out := make([]testimonial.Record, n)
	for i := range out {
		out[i] = testimonial.Record{ID: firstID + i, Name: "Client", Rating: 5, Content: "Great", Featured: true}
	}
	return out
}

// fakeSource serves records by offset and limit. Calls listed in gates
// block until the gate is closed or the context is cancelled.
type fakeSource struct {
	mu      sync.Mutex
	records []testimonial.Record
	queries []testimonial.Query
	gates   map[int]chan struct{}
	failErr error
	failN   int
	started chan int
}

func newFakeSource(records []testimonial.Record) *fakeSource {
	return &fakeSource{records: records, gates: map[int]chan struct{}{}, started: make(chan int, 16)}
}

func (s *fakeSource) Fetch(ctx context.Context, q testimonial.Query) (testimonial.Page, error) {
	s.mu.Lock()
	call := len(s.queries)
	s.queries = append(s.queries, q)
	records := s.records
	gate := s.gates[call]
	fail := s.failN > 0
	if fail {
		s.failN--
	}
	failErr := s.failErr
	s.mu.Unlock()

	s.started <- call
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return testimonial.Page{}, apperrors.Timeout("fetch").WithCause(ctx.Err())
		}
	}
	if fail {
		return testimonial.Page{}, failErr
	}

	start := min(q.Offset, len(records))
	end := min(start+q.Limit, len(records))
	return testimonial.Page{
		Records:    append([]testimonial.Record(nil), records[start:end]...),
		TotalCount: len(records),
		HasMore:    end < len(records),
	}, nil
}

func (s *fakeSource) block(call int) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := make(chan struct{})
	s.gates[call] = g
	return g
}

func (s *fakeSource) failNext(err error, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr, s.failN = err, n
}

func (s *fakeSource) setRecords(records []testimonial.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
}

func (s *fakeSource) calls() []testimonial.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]testimonial.Query(nil), s.queries...)
}

func (s *fakeSource) waitStarted(t *testing.T, call int) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case c := <-s.started:
			if c == call {
				return
			}
		case <-timeout:
			t.Fatalf("call %d never started", call)
		}
	}
}

func newFeed(src testimonial.Source, opts Options) *Feed {
	opts.Logger = logger.Nop()
	return New(src, opts)
}

func ids(items []testimonial.Record) []int {
	out := make([]int, len(items))
	for i, r := range items {
		out[i] = r.ID
	}
	return out
}

func TestInitialLoad_FetchesEverythingAtOnce(t *testing.T) {
	src := newFakeSource(makeRecords(25, 1))
	f := newFeed(src, Options{})
	defer f.Close()

	if f.State() != StateEmpty {
		t.Fatalf("expected empty state, got %s", f.State())
	}
	if err := f.InitialLoad(context.Background()); err != nil {
		t.Fatalf("InitialLoad: %v", err)
	}

	q := src.calls()
	if len(q) != 1 || q[0] != (testimonial.Query{FeaturedOnly: true, Limit: 1000, Offset: 0}) {
		t.Fatalf("unexpected queries %+v", q)
	}
	snap := f.Snapshot()
	if len(snap.Items) != 25 || snap.CurrentIndex != 0 || snap.HasMore || snap.TotalCount != 25 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if snap.Current == nil || snap.Current.ID != 1 {
		t.Errorf("expected current record 1, got %+v", snap.Current)
	}
	if snap.State != StateExhausted {
		t.Errorf("expected exhausted, got %s", snap.State)
	}
}

func TestLoadMore_AppendsWithoutMovingIndex(t *testing.T) {
	src := newFakeSource(makeRecords(25, 1))
	f := newFeed(src, Options{InitialPageSize: 10, PageSize: 10})
	defer f.Close()
	ctx := context.Background()

	if err := f.InitialLoad(ctx); err != nil {
		t.Fatalf("InitialLoad: %v", err)
	}
	if f.State() != StateReady {
		t.Fatalf("expected ready, got %s", f.State())
	}
	f.Next()
	f.Next()
	f.Next()
	before := ids(f.Snapshot().Items)

	if err := f.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore: %v", err)
	}
	snap := f.Snapshot()
	if snap.CurrentIndex != 3 {
		t.Errorf("current index moved to %d", snap.CurrentIndex)
	}
	if len(snap.Items) != 20 {
		t.Fatalf("expected 20 items, got %d", len(snap.Items))
	}
	for i, id := range before {
		if snap.Items[i].ID != id {
			t.Fatalf("prefix changed at %d: %d != %d", i, snap.Items[i].ID, id)
		}
	}
	if got := src.calls()[1]; got != (testimonial.Query{FeaturedOnly: true, Limit: 10, Offset: 10}) {
		t.Errorf("unexpected load-more query %+v", got)
	}

	if err := f.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore: %v", err)
	}
	if n := len(f.Snapshot().Items); n != 25 {
		t.Errorf("expected 25 items, got %d", n)
	}
	if f.State() != StateExhausted {
		t.Errorf("expected exhausted, got %s", f.State())
	}

	if err := f.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore after exhaustion: %v", err)
	}
	if n := len(src.calls()); n != 3 {
		t.Errorf("expected no request once exhausted, got %d calls", n)
	}
}

func TestLoadMore_FollowsServerMetadata(t *testing.T) {
	bodies := map[int]string{
		0: `{"testimonials":[
			{"id":1,"name":"A","rating":5,"content":"a","featured":true},
			{"id":2,"name":"B","rating":4,"content":"b","featured":true},
			{"id":3,"name":"C","rating":5,"content":"c","featured":true}],
			"metadata":{"total_count":5,"has_more":true}}`,
		3: `{"testimonials":[
			{"id":4,"name":"D","rating":5,"content":"d","featured":true},
			{"id":5,"name":"E","rating":3,"content":"e","featured":true}],
			"metadata":{"total_count":5,"has_more":false}}`,
	}
	var (
		mu      sync.Mutex
		queries []testimonial.Query
	)
	src := testimonial.SourceFunc(func(_ context.Context, q testimonial.Query) (testimonial.Page, error) {
		mu.Lock()
		queries = append(queries, q)
		mu.Unlock()
		body, ok := bodies[q.Offset]
		if !ok {
			return testimonial.Page{}, apperrors.NotFound("page", "")
		}
		return testimonial.ParsePage([]byte(body)), nil
	})

	f := newFeed(src, Options{InitialPageSize: 3, PageSize: 3})
	defer f.Close()
	ctx := context.Background()

	if err := f.InitialLoad(ctx); err != nil {
		t.Fatalf("InitialLoad: %v", err)
	}
	snap := f.Snapshot()
	if !snap.HasMore || snap.TotalCount != 5 || snap.State != StateReady {
		t.Fatalf("unexpected first snapshot %+v", snap)
	}
	f.Next()
	f.Next()

	if err := f.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore: %v", err)
	}
	snap = f.Snapshot()
	want := []int{1, 2, 3, 4, 5}
	got := ids(snap.Items)
	if len(got) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, got)
		}
	}
	if snap.CurrentIndex != 2 || snap.Current == nil || snap.Current.Name != "C" {
		t.Errorf("expected index 2 on C, got %d %+v", snap.CurrentIndex, snap.Current)
	}
	if snap.HasMore || snap.TotalCount != 5 || snap.State != StateExhausted {
		t.Errorf("expected exhausted with total 5, got %+v", snap)
	}

	if err := f.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore after exhaustion: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(queries) != 2 {
		t.Fatalf("expected 2 calls, got %d: %+v", len(queries), queries)
	}
	if queries[1] != (testimonial.Query{FeaturedOnly: true, Limit: 3, Offset: 3}) {
		t.Errorf("unexpected load-more query %+v", queries[1])
	}
}

func TestLoadMore_NoRequestWhileLoading(t *testing.T) {
	src := newFakeSource(makeRecords(30, 1))
	f := newFeed(src, Options{InitialPageSize: 10})
	defer f.Close()
	ctx := context.Background()

	if err := f.InitialLoad(ctx); err != nil {
		t.Fatalf("InitialLoad: %v", err)
	}
	gate := src.block(1)

	done := make(chan error, 1)
	go func() { done <- f.LoadMore(ctx) }()
	src.waitStarted(t, 1)

	if f.State() != StateLoadingMore || !f.Snapshot().Loading {
		t.Errorf("expected loading_more, got %s", f.State())
	}
	if err := f.LoadMore(ctx); err != nil {
		t.Errorf("concurrent LoadMore: %v", err)
	}
	if n := len(src.calls()); n != 2 {
		t.Errorf("expected 2 calls, got %d", n)
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("LoadMore: %v", err)
	}
	if n := len(f.Snapshot().Items); n != 20 {
		t.Errorf("expected 20 items, got %d", n)
	}
}

func TestNavigation_Wraps(t *testing.T) {
	f := newFeed(newFakeSource(makeRecords(3, 1)), Options{})
	defer f.Close()
	if err := f.InitialLoad(context.Background()); err != nil {
		t.Fatalf("InitialLoad: %v", err)
	}

	for _, want := range []int{1, 2, 0, 1} {
		if got := f.Next(); got != want {
			t.Errorf("Next() = %d, want %d", got, want)
		}
	}
	for _, want := range []int{0, 2, 1} {
		if got := f.Previous(); got != want {
			t.Errorf("Previous() = %d, want %d", got, want)
		}
	}
}

func TestNavigation_NoopBelowTwoItems(t *testing.T) {
	empty := newFeed(newFakeSource(nil), Options{})
	defer empty.Close()
	if empty.Next() != 0 || empty.Previous() != 0 {
		t.Error("expected navigation to stay at 0 on an empty feed")
	}

	single := newFeed(newFakeSource(makeRecords(1, 7)), Options{})
	defer single.Close()
	if err := single.InitialLoad(context.Background()); err != nil {
		t.Fatalf("InitialLoad: %v", err)
	}
	if single.Next() != 0 || single.Previous() != 0 {
		t.Error("expected navigation to stay at 0 with one item")
	}
	if snap := single.Snapshot(); snap.Current == nil || snap.Current.ID != 7 {
		t.Errorf("unexpected current %+v", snap.Current)
	}
}

func TestJumpTo(t *testing.T) {
	f := newFeed(newFakeSource(makeRecords(4, 1)), Options{})
	defer f.Close()
	if err := f.InitialLoad(context.Background()); err != nil {
		t.Fatalf("InitialLoad: %v", err)
	}

	if err := f.JumpTo(2); err != nil {
		t.Fatalf("JumpTo(2): %v", err)
	}
	if got := f.Snapshot().CurrentIndex; got != 2 {
		t.Errorf("expected index 2, got %d", got)
	}

	for _, bad := range []int{-1, 4, 100} {
		err := f.JumpTo(bad)
		if !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
			t.Errorf("JumpTo(%d): expected INVALID_INPUT, got %v", bad, err)
		}
		if got := f.Snapshot().CurrentIndex; got != 2 {
			t.Errorf("JumpTo(%d) moved index to %d", bad, got)
		}
	}
}

func TestInitialLoad_FailureThenRetry(t *testing.T) {
	src := newFakeSource(makeRecords(5, 1))
	src.failNext(apperrors.ConnectionFailed("testimonials API"), 1)
	f := newFeed(src, Options{})
	defer f.Close()
	ctx := context.Background()

	err := f.InitialLoad(ctx)
	if !apperrors.HasCode(err, apperrors.ErrCodeConnectionFailed) {
		t.Fatalf("expected CONNECTION_FAILED, got %v", err)
	}
	snap := f.Snapshot()
	if snap.State != StateErrored || len(snap.Items) != 0 || snap.Err == nil || snap.Loading {
		t.Errorf("unexpected snapshot after failure %+v", snap)
	}
	if snap.Current != nil {
		t.Errorf("expected no current record, got %+v", snap.Current)
	}

	if err := f.Retry(ctx); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	snap = f.Snapshot()
	if snap.State != StateExhausted || len(snap.Items) != 5 || snap.Err != nil {
		t.Errorf("unexpected snapshot after retry %+v", snap)
	}
	if q := src.calls()[1]; q.Offset != 0 || q.Limit != 1000 {
		t.Errorf("retry should repeat the initial load, got %+v", q)
	}
}

func TestLoadMore_FailureKeepsItemsAndRetries(t *testing.T) {
	src := newFakeSource(makeRecords(15, 1))
	f := newFeed(src, Options{InitialPageSize: 10, PageSize: 10})
	defer f.Close()
	ctx := context.Background()

	if err := f.InitialLoad(ctx); err != nil {
		t.Fatalf("InitialLoad: %v", err)
	}
	f.Next()
	src.failNext(apperrors.ServiceUnavailable("testimonials API"), 1)

	if err := f.LoadMore(ctx); err == nil {
		t.Fatal("expected LoadMore to fail")
	}
	snap := f.Snapshot()
	if len(snap.Items) != 10 || snap.CurrentIndex != 1 || !snap.HasMore || snap.State != StateErrored {
		t.Errorf("unexpected snapshot after failed load-more %+v", snap)
	}

	if err := f.Retry(ctx); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if q := src.calls()[2]; q.Offset != 10 || q.Limit != 10 {
		t.Errorf("retry should repeat load-more, got %+v", q)
	}
	snap = f.Snapshot()
	if len(snap.Items) != 15 || snap.CurrentIndex != 1 || snap.State != StateExhausted {
		t.Errorf("unexpected snapshot after retry %+v", snap)
	}
}

func TestRetry_NothingFailed(t *testing.T) {
	src := newFakeSource(makeRecords(2, 1))
	f := newFeed(src, Options{})
	defer f.Close()
	if err := f.Retry(context.Background()); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if n := len(src.calls()); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}

func TestFallbackSample(t *testing.T) {
	samples := makeRecords(2, 900)
	src := newFakeSource(makeRecords(3, 1))
	src.failNext(apperrors.ConnectionFailed("testimonials API"), 1)
	f := newFeed(src, Options{Fallback: FallbackSample, SampleRecords: samples})
	defer f.Close()
	ctx := context.Background()

	if err := f.InitialLoad(ctx); err == nil {
		t.Fatal("expected the failure to be reported")
	}
	snap := f.Snapshot()
	if !snap.FallbackActive || snap.Err == nil || snap.State != StateErrored {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if got := ids(snap.Items); len(got) != 2 || got[0] != 900 {
		t.Errorf("expected sample items, got %v", got)
	}
	if snap.HasMore {
		t.Error("sample items must not report more")
	}

	if err := f.Retry(ctx); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	snap = f.Snapshot()
	if snap.FallbackActive || len(snap.Items) != 3 {
		t.Errorf("expected live items after retry, got %+v", snap)
	}
}

func TestFallbackSample_DefaultRecords(t *testing.T) {
	src := newFakeSource(nil)
	src.failNext(errors.New("boom"), 1)
	f := newFeed(src, Options{Fallback: FallbackSample})
	defer f.Close()

	_ = f.InitialLoad(context.Background())
	snap := f.Snapshot()
	if len(snap.Items) != defaultSampleCount {
		t.Fatalf("expected %d sample items, got %d", defaultSampleCount, len(snap.Items))
	}
	for _, r := range snap.Items {
		if err := r.Validate(); err != nil {
			t.Errorf("invalid sample record %+v: %v", r, err)
		}
	}
}

func TestInitialLoad_StaleResponseDropped(t *testing.T) {
	src := newFakeSource(makeRecords(3, 1))
	gate := src.block(0)
	f := newFeed(src, Options{})
	defer f.Close()
	ctx := context.Background()

	first := make(chan error, 1)
	go func() { first <- f.InitialLoad(ctx) }()
	src.waitStarted(t, 0)

	src.setRecords(makeRecords(2, 100))
	if err := f.InitialLoad(ctx); err != nil {
		t.Fatalf("second InitialLoad: %v", err)
	}

	close(gate)
	if err := <-first; !errors.Is(err, ErrSuperseded) {
		t.Errorf("expected ErrSuperseded, got %v", err)
	}
	if got := ids(f.Snapshot().Items); len(got) != 2 || got[0] != 100 {
		t.Errorf("stale response was applied: %v", got)
	}
	if f.State() != StateExhausted {
		t.Errorf("expected exhausted, got %s", f.State())
	}
}

func TestLoadMore_DroppedAfterReload(t *testing.T) {
	src := newFakeSource(makeRecords(20, 1))
	f := newFeed(src, Options{InitialPageSize: 10})
	defer f.Close()
	ctx := context.Background()

	if err := f.InitialLoad(ctx); err != nil {
		t.Fatalf("InitialLoad: %v", err)
	}
	gate := src.block(1)
	more := make(chan error, 1)
	go func() { more <- f.LoadMore(ctx) }()
	src.waitStarted(t, 1)

	src.setRecords(makeRecords(4, 50))
	if err := f.InitialLoad(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	close(gate)
	if err := <-more; !errors.Is(err, ErrSuperseded) {
		t.Errorf("expected ErrSuperseded, got %v", err)
	}
	if got := ids(f.Snapshot().Items); len(got) != 4 || got[0] != 50 {
		t.Errorf("stale page was appended: %v", got)
	}
}

func TestClose_CancelsInFlightAndRejectsLoads(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := newFakeSource(makeRecords(3, 1))
	src.block(0)
	f := newFeed(src, Options{})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- f.InitialLoad(ctx) }()
	src.waitStarted(t, 0)

	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	select {
	case err := <-done:
		if !apperrors.HasCode(err, apperrors.ErrCodeClosed) {
			t.Errorf("expected CLOSED, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight load was not cancelled by Close")
	}

	snap := f.Snapshot()
	if snap.State != StateClosed || len(snap.Items) != 0 || snap.Loading {
		t.Errorf("unexpected snapshot after close %+v", snap)
	}
	if err := f.InitialLoad(ctx); !apperrors.HasCode(err, apperrors.ErrCodeClosed) {
		t.Errorf("InitialLoad after Close: expected CLOSED, got %v", err)
	}
	if err := f.LoadMore(ctx); err != nil {
		t.Errorf("LoadMore after Close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestComponentLifecycle(t *testing.T) {
	src := newFakeSource(makeRecords(2, 1))
	src.failNext(apperrors.ConnectionFailed("testimonials API"), 1)
	f := newFeed(src, Options{})
	ctx := context.Background()

	if err := f.Start(ctx); err != nil {
		t.Fatalf("Start should not fail on a load error: %v", err)
	}
	if h := f.Health(ctx); h.Status != component.StatusDegraded || h.Name != "testimonial-feed" {
		t.Errorf("expected degraded health, got %+v", h)
	}
	if err := f.Retry(ctx); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if h := f.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy, got %+v", h)
	}
	if err := f.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if h := f.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy after stop, got %+v", h)
	}
}

func TestParseFallback(t *testing.T) {
	tests := []struct {
		in      string
		want    FallbackPolicy
		wantErr bool
	}{
		{"", FallbackNone, false},
		{"none", FallbackNone, false},
		{" Sample ", FallbackSample, false},
		{"cached", FallbackNone, true},
	}
	for _, tt := range tests {
		got, err := ParseFallback(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFallback(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestStateString(t *testing.T) {
	if StateLoadingMore.String() != "loading_more" || State(42).String() != "unknown" {
		t.Error("unexpected state names")
	}
}
