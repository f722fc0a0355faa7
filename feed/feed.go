package feed

import (
	"context"
	"errors"
	"sync"

	"github.com/synapseiq/site/component"
	apperrors "github.com/synapseiq/site/errors"
	"github.com/synapseiq/site/logger"
	"github.com/synapseiq/site/sampledata"
	"github.com/synapseiq/site/testimonial"
)

const (
	DefaultInitialPageSize = 1000
	DefaultPageSize        = 10
	defaultSampleCount     = 6
	componentName          = "testimonial-feed"
)

// ErrSuperseded is returned when a response arrived after a newer
// InitialLoad had started. The response was not applied.
var ErrSuperseded = errors.New("feed: response superseded by a newer load")

// Options configures a Feed. Zero values select the defaults.
type Options struct {
	// InitialPageSize is the limit of the initial request. Defaults to 1000,
	// large enough to fetch every featured testimonial at once.
	InitialPageSize int
	// PageSize is the limit of each LoadMore request. Defaults to 10.
	PageSize int
	// Fallback selects what an initial load failure leaves in the feed.
	Fallback FallbackPolicy
	// SampleRecords are shown under FallbackSample. Defaults to
	// sampledata.Featured(6).
	SampleRecords []testimonial.Record
	Logger        *logger.Logger
}

func (o *Options) applyDefaults() {
	if o.InitialPageSize <= 0 {
		o.InitialPageSize = DefaultInitialPageSize
	}
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.Fallback == FallbackSample && len(o.SampleRecords) == 0 {
		o.SampleRecords = sampledata.Featured(defaultSampleCount)
	}
	if o.Logger == nil {
		o.Logger = logger.GetGlobalLogger()
	}
}

// Snapshot is a point-in-time copy of the feed state.
type Snapshot struct {
	Items        []testimonial.Record
	CurrentIndex int
	// Current is the record at CurrentIndex, nil when Items is empty.
	Current    *testimonial.Record
	TotalCount int
	HasMore    bool
	Loading    bool
	// Err is the error of the last failed operation, cleared by the next
	// success.
	Err   error
	State State
	// FallbackActive is set while Items holds sample records.
	FallbackActive bool
}

// Feed is the testimonial carousel state.
type Feed struct {
	src  testimonial.Source
	opts Options
	log  *logger.Logger

	baseCtx context.Context
	cancel  context.CancelFunc

	mu         sync.Mutex
	items      []testimonial.Record
	current    int
	totalCount int
	hasMore    bool
	loaded     bool
	loading    op
	err        error
	failed     op
	fallback   bool
	generation uint64
	closed     bool
}

var _ component.Component = (*Feed)(nil)

// New creates an empty feed reading from src.
func New(src testimonial.Source, opts Options) *Feed {
	opts.applyDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	return &Feed{
		src:     src,
		opts:    opts,
		log:     opts.Logger.WithComponent(componentName),
		baseCtx: ctx,
		cancel:  cancel,
	}
}

// InitialLoad fetches the first InitialPageSize featured records and
// replaces the feed contents. On failure the feed is emptied, or filled
// with sample records under FallbackSample, and the error is recorded and
// returned. Overlapping calls are allowed; only the latest one is applied.
func (f *Feed) InitialLoad(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return apperrors.Closed(componentName)
	}
	f.generation++
	gen := f.generation
	f.loading = opInitial
	f.mu.Unlock()

	q := testimonial.Query{FeaturedOnly: true, Limit: f.opts.InitialPageSize, Offset: 0}
	f.log.Debug("initial load", logger.Fields(logger.FieldGeneration, gen, logger.FieldLimit, q.Limit))
	page, err := f.fetch(ctx, q)

	f.mu.Lock()
	defer f.mu.Unlock()
	if discardErr := f.staleLocked(gen, opInitial); discardErr != nil {
		return discardErr
	}
	f.loading = opNone

	if err != nil {
		f.err, f.failed = err, opInitial
		f.items, f.current, f.totalCount, f.hasMore, f.fallback = nil, 0, 0, false, false
		if f.opts.Fallback == FallbackSample {
			f.items = append([]testimonial.Record(nil), f.opts.SampleRecords...)
			f.totalCount = len(f.items)
			f.fallback = true
		}
		f.log.Warn("initial load failed", logger.MergeWithError(logger.Fields(
			logger.FieldGeneration, gen,
			"fallback", f.opts.Fallback.String(),
			logger.FieldCount, len(f.items),
		), err))
		return err
	}

	f.items = append([]testimonial.Record(nil), page.Records...)
	f.current = 0
	f.totalCount, f.hasMore = page.TotalCount, page.HasMore
	f.loaded, f.fallback = true, false
	f.err, f.failed = nil, opNone
	return nil
}

// LoadMore appends the next PageSize featured records, requested at offset
// len(items). It is a no-op without a request when the server reported no
// more records, when a load is in flight or when the feed is closed. The
// current index never changes. On failure the items are left as they were.
func (f *Feed) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if f.closed || !f.hasMore || f.loading != opNone {
		f.mu.Unlock()
		return nil
	}
	gen := f.generation
	offset := len(f.items)
	f.loading = opMore
	f.mu.Unlock()

	q := testimonial.Query{FeaturedOnly: true, Limit: f.opts.PageSize, Offset: offset}
	f.log.Debug("load more", logger.Fields(logger.FieldGeneration, gen, logger.FieldOffset, offset, logger.FieldLimit, q.Limit))
	page, err := f.fetch(ctx, q)

	f.mu.Lock()
	defer f.mu.Unlock()
	if discardErr := f.staleLocked(gen, opMore); discardErr != nil {
		return discardErr
	}
	f.loading = opNone

	if err != nil {
		f.err, f.failed = err, opMore
		f.log.Warn("load more failed", logger.MergeWithError(logger.Fields(logger.FieldOffset, offset), err))
		return err
	}

	f.items = append(f.items, page.Records...)
	f.totalCount, f.hasMore = page.TotalCount, page.HasMore
	f.err, f.failed = nil, opNone
	return nil
}

// Retry re-runs the operation that last failed. It returns nil when
// nothing has failed.
func (f *Feed) Retry(ctx context.Context) error {
	f.mu.Lock()
	failed := f.failed
	f.mu.Unlock()

	switch failed {
	case opInitial:
		return f.InitialLoad(ctx)
	case opMore:
		return f.LoadMore(ctx)
	default:
		return nil
	}
}

// Next advances the current index circularly and returns it. It does
// nothing when fewer than two records are loaded.
func (f *Feed) Next() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n := len(f.items); n > 1 {
		f.current = (f.current + 1) % n
	}
	return f.current
}

// Previous moves the current index back circularly and returns it. It does
// nothing when fewer than two records are loaded.
func (f *Feed) Previous() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n := len(f.items); n > 1 {
		f.current = (f.current - 1 + n) % n
	}
	return f.current
}

// JumpTo sets the current index. Indexes outside [0, len-1] are rejected
// with an INVALID_INPUT error and the current index is left unchanged.
func (f *Feed) JumpTo(index int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if index < 0 || index >= len(f.items) {
		return apperrors.InvalidInput("index", "index out of range").
			WithDetail("index", index).
			WithDetail("length", len(f.items))
	}
	f.current = index
	return nil
}

// Snapshot returns a copy of the current state.
func (f *Feed) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := Snapshot{
		Items:          append([]testimonial.Record(nil), f.items...),
		CurrentIndex:   f.current,
		TotalCount:     f.totalCount,
		HasMore:        f.hasMore,
		Loading:        f.loading != opNone,
		Err:            f.err,
		State:          f.stateLocked(),
		FallbackActive: f.fallback,
	}
	if len(s.Items) > 0 {
		cur := s.Items[s.CurrentIndex]
		s.Current = &cur
	}
	return s
}

// State returns the current state.
func (f *Feed) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stateLocked()
}

// Close discards the feed contents, cancels in-flight fetches and makes
// every later response stale. It is idempotent.
func (f *Feed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	f.generation++
	f.cancel()
	f.items, f.current, f.loading = nil, 0, opNone
	f.log.Debug("feed closed", logger.Fields(logger.FieldGeneration, f.generation))
	return nil
}

// fetch runs one request with a context that is also cancelled by Close.
func (f *Feed) fetch(ctx context.Context, q testimonial.Query) (testimonial.Page, error) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(f.baseCtx, cancel)
	defer func() {
		stop()
		cancel()
	}()
	return f.src.Fetch(ctx, q)
}

// staleLocked reports why a response for gen must be dropped, or nil.
func (f *Feed) staleLocked(gen uint64, o op) error {
	if f.closed {
		f.log.Debug("discarding response after close", logger.Fields(logger.FieldOperation, o.String(), logger.FieldGeneration, gen))
		return apperrors.Closed(componentName)
	}
	if gen != f.generation {
		f.log.Debug("discarding stale response", logger.Fields(
			logger.FieldOperation, o.String(),
			logger.FieldGeneration, gen,
			"current_generation", f.generation,
		))
		return ErrSuperseded
	}
	return nil
}

func (f *Feed) stateLocked() State {
	switch {
	case f.closed:
		return StateClosed
	case f.loading == opInitial:
		return StateLoading
	case f.loading == opMore:
		return StateLoadingMore
	case f.err != nil:
		return StateErrored
	case !f.loaded:
		return StateEmpty
	case f.hasMore:
		return StateReady
	default:
		return StateExhausted
	}
}
