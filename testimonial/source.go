package testimonial

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/synapseiq/site/httpclient"
	"github.com/synapseiq/site/logger"
	"github.com/synapseiq/site/observability"
)

// DefaultPath is the testimonials collection path relative to the API base.
const DefaultPath = "/testimonials"

const serviceName = "testimonials API"

// Source fetches pages of testimonials.
type Source interface {
	Fetch(ctx context.Context, q Query) (Page, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, q Query) (Page, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context, q Query) (Page, error) {
	return f(ctx, q)
}

// HTTPSource reads testimonials from the REST API.
type HTTPSource struct {
	adapter *httpclient.Adapter
	path    string
	log     *logger.Logger
	metrics *observability.FetchMetrics
}

var _ Source = (*HTTPSource)(nil)

// HTTPSourceOption customises an HTTPSource.
type HTTPSourceOption func(*HTTPSource)

// WithLogger sets the logger. Defaults to the "testimonial" component logger.
func WithLogger(l *logger.Logger) HTTPSourceOption {
	return func(s *HTTPSource) { s.log = l.WithComponent("testimonial") }
}

// WithMetrics records fetch metrics.
func WithMetrics(m *observability.FetchMetrics) HTTPSourceOption {
	return func(s *HTTPSource) { s.metrics = m }
}

// WithPath overrides DefaultPath.
func WithPath(path string) HTTPSourceOption {
	return func(s *HTTPSource) { s.path = path }
}

// NewHTTPSource creates a source backed by adapter.
func NewHTTPSource(adapter *httpclient.Adapter, opts ...HTTPSourceOption) *HTTPSource {
	s := &HTTPSource{
		adapter: adapter,
		path:    DefaultPath,
		log:     logger.Get("testimonial"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch requests one page. Transport failures and non-2xx responses are
// returned as *errors.AppError; a malformed body is not an error.
func (s *HTTPSource) Fetch(ctx context.Context, q Query) (Page, error) {
	requestID := uuid.NewString()
	ctx = logger.ContextWithRequestID(ctx, requestID)
	log := s.log.WithContext(ctx)

	ctx, span := observability.StartSpan(ctx, observability.SpanFetchPage, trace.WithAttributes(
		attribute.String(observability.AttrRequestID, requestID),
		attribute.Int(observability.AttrOffset, q.Offset),
		attribute.Int(observability.AttrLimit, q.Limit),
		attribute.Bool(observability.AttrFeaturedOnly, q.FeaturedOnly),
	))
	defer span.End()

	start := time.Now()
	resp, err := s.adapter.Do(ctx, httpclient.Request{
		Path:  s.path,
		Query: q.Params(),
		Headers: map[string]string{
			"Accept":       "application/json",
			"X-Request-ID": requestID,
		},
	})
	if err != nil {
		appErr := httpclient.ToAppError(err, serviceName).WithDetail(logger.FieldRequestID, requestID)
		observability.SetSpanError(ctx, appErr)
		s.metrics.RecordFetch(ctx, string(appErr.Code), 0, time.Since(start))
		log.Error("testimonial fetch failed", logger.MergeWithError(logger.Fields(
			logger.FieldOffset, q.Offset,
			logger.FieldLimit, q.Limit,
			logger.FieldStatus, string(appErr.Code),
		), err))
		return Page{}, appErr
	}

	page := ParsePage(resp.Body)
	status := "ok"
	if page.Malformed {
		status = "malformed"
		log.Warn("malformed testimonials envelope, using defaults", logger.Fields(
			logger.FieldOffset, q.Offset,
			"body_bytes", len(resp.Body),
		))
	}
	if page.Skipped > 0 {
		log.Warn("skipped non-object testimonial entries", logger.Fields(logger.FieldCount, page.Skipped))
	}
	for _, r := range page.Records {
		if verr := r.Validate(); verr != nil {
			log.Warn("invalid testimonial record", logger.Fields("id", r.ID, logger.FieldError, verr.Error()))
		}
	}

	span.SetAttributes(
		attribute.Int(observability.AttrRecords, len(page.Records)),
		attribute.Bool(observability.AttrHasMore, page.HasMore),
		attribute.Bool(observability.AttrMalformed, page.Malformed),
	)
	s.metrics.RecordFetch(ctx, status, len(page.Records), time.Since(start))
	log.Debug("testimonial page fetched", logger.Fields(
		logger.FieldOffset, q.Offset,
		logger.FieldLimit, q.Limit,
		logger.FieldCount, len(page.Records),
		logger.FieldTotal, page.TotalCount,
		logger.FieldHasMore, page.HasMore,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return page, nil
}
