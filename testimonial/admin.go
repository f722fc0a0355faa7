package testimonial

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/synapseiq/site/errors"
	"github.com/synapseiq/site/httpclient"
	"github.com/synapseiq/site/logger"
	"github.com/synapseiq/site/observability"
)

// Admin writes testimonials through the REST API. Records are validated
// before anything is sent.
type Admin struct {
	adapter *httpclient.Adapter
	path    string
	log     *logger.Logger
}

// NewAdmin creates a write client backed by adapter. WithLogger and WithPath
// apply; WithMetrics is ignored.
func NewAdmin(adapter *httpclient.Adapter, opts ...HTTPSourceOption) *Admin {
	s := &HTTPSource{path: DefaultPath, log: logger.Get("testimonial")}
	for _, opt := range opts {
		opt(s)
	}
	return &Admin{adapter: adapter, path: s.path, log: s.log}
}

// Create posts a new testimonial and returns it as stored, with the
// server-assigned ID and date. r.ID is ignored.
func (a *Admin) Create(ctx context.Context, r Record) (Record, error) {
	if err := r.ValidateDraft(); err != nil {
		return Record{}, err
	}
	body, err := writeBody(r)
	if err != nil {
		return Record{}, err
	}
	resp, err := a.send(ctx, "create", http.MethodPost, a.path, 0, body)
	if err != nil {
		return Record{}, err
	}
	return decodeRecord(resp.Body)
}

// Update replaces every writable field of the testimonial r.ID.
func (a *Admin) Update(ctx context.Context, r Record) (Record, error) {
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	body, err := writeBody(r)
	if err != nil {
		return Record{}, err
	}
	resp, err := a.send(ctx, "update", http.MethodPut, a.itemPath(r.ID), r.ID, body)
	if err != nil {
		return Record{}, err
	}
	return decodeRecord(resp.Body)
}

// Delete removes the testimonial id.
func (a *Admin) Delete(ctx context.Context, id int) error {
	if err := checkID(id); err != nil {
		return err
	}
	_, err := a.send(ctx, "delete", http.MethodDelete, a.itemPath(id), id, nil)
	return err
}

// SetFeatured changes only the featured flag of testimonial id.
func (a *Admin) SetFeatured(ctx context.Context, id int, featured bool) (Record, error) {
	if err := checkID(id); err != nil {
		return Record{}, err
	}
	body, err := sjson.SetBytes([]byte(`{}`), "featured", featured)
	if err != nil {
		return Record{}, apperrors.Internal(err)
	}
	resp, err := a.send(ctx, "set_featured", http.MethodPatch, a.itemPath(id)+"/featured", id, body)
	if err != nil {
		return Record{}, err
	}
	return decodeRecord(resp.Body)
}

func (a *Admin) itemPath(id int) string {
	return a.path + "/" + strconv.Itoa(id)
}

func (a *Admin) send(ctx context.Context, op, method, path string, id int, body []byte) (*httpclient.Response, error) {
	requestID := uuid.NewString()
	ctx = logger.ContextWithRequestID(ctx, requestID)
	log := a.log.WithContext(ctx)

	ctx, span := observability.StartSpan(ctx, observability.SpanWrite, trace.WithAttributes(
		attribute.String(observability.AttrRequestID, requestID),
		attribute.String(observability.AttrMethod, method),
		attribute.Int(observability.AttrRecordID, id),
	))
	defer span.End()

	headers := map[string]string{
		"Accept":       "application/json",
		"X-Request-ID": requestID,
	}
	if body != nil {
		headers["Content-Type"] = "application/json"
	}

	start := time.Now()
	resp, err := a.adapter.Do(ctx, httpclient.Request{
		Method:  method,
		Path:    path,
		Headers: headers,
		Body:    body,
	})
	if err != nil {
		appErr := httpclient.ToAppError(err, serviceName).WithDetail(logger.FieldRequestID, requestID)
		if httpclient.IsNotFound(err) {
			appErr = apperrors.NotFound("testimonial", strconv.Itoa(id)).
				WithDetail(logger.FieldRequestID, requestID).WithCause(err)
		}
		observability.SetSpanError(ctx, appErr)
		log.Error("testimonial write failed", logger.MergeWithError(logger.Fields(
			logger.FieldOperation, op,
			"id", id,
			logger.FieldStatus, string(appErr.Code),
		), err))
		return nil, appErr
	}
	log.Info("testimonial written", logger.Fields(
		logger.FieldOperation, op,
		"id", id,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return resp, nil
}

// writeBody encodes the fields the API accepts on create and update.
func writeBody(r Record) ([]byte, error) {
	body := []byte(`{}`)
	fields := []struct {
		key   string
		value any
	}{
		{"name", r.Name},
		{"company", r.Company},
		{"position", r.Position},
		{"rating", r.Rating},
		{"content", r.Content},
		{"featured", r.Featured},
	}
	var err error
	for _, f := range fields {
		if body, err = sjson.SetBytes(body, f.key, f.value); err != nil {
			return nil, apperrors.Internal(err)
		}
	}
	return body, nil
}

func decodeRecord(body []byte) (Record, error) {
	obj := gjson.ParseBytes(body)
	if !gjson.ValidBytes(body) || !obj.IsObject() {
		return Record{}, apperrors.ExternalServiceError(serviceName, nil).
			WithDetail("reason", "response is not a testimonial object")
	}
	return parseRecord(obj), nil
}

func checkID(id int) error {
	if id < 1 {
		return apperrors.InvalidInput("id", "must be at least 1")
	}
	return nil
}
