// Package testimonialtest provides a fixture server that speaks the
// /testimonials contract, reads and admin writes, for tests and local runs
// of the CLI.
package testimonialtest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/synapseiq/site/component"
	apperrors "github.com/synapseiq/site/errors"
	"github.com/synapseiq/site/testimonial"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Mode selects the response shape.
type Mode int

const (
	// ModeEnvelope returns {"testimonials": [...], "metadata": {...}}.
	ModeEnvelope Mode = iota
	// ModeLegacy returns a bare array, as older API versions did.
	ModeLegacy
	// ModeMalformed returns an object without a testimonials array.
	ModeMalformed
)

// Request is one recorded call to the testimonials endpoint.
type Request struct {
	FeaturedOnly bool
	Limit        int
	Offset       int
	RequestID    string
	Accept       string
}

type envelope struct {
	Testimonials []testimonial.Record `json:"testimonials"`
	Metadata     metadata             `json:"metadata"`
}

type metadata struct {
	TotalCount int  `json:"total_count"`
	HasMore    bool `json:"has_more"`
}

// Server is an in-memory testimonials API backed by httptest.Server.
type Server struct {
	mu       sync.Mutex
	records  []testimonial.Record
	requests []Request
	writes   []Write
	failures []int
	mode     Mode
	hold     chan struct{}

	engine *gin.Engine
	ts     *httptest.Server
}

var _ component.Component = (*Server)(nil)

// New creates a server holding records. Call Start, or use NewStarted.
func New(records []testimonial.Record) *Server {
	s := &Server{records: append([]testimonial.Record(nil), records...)}
	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	s.engine.GET(testimonial.DefaultPath, s.list)
	s.registerWrites()
	return s
}

// NewStarted creates and starts a server.
func NewStarted(records []testimonial.Record) *Server {
	s := New(records)
	_ = s.Start(context.Background())
	return s
}

// URL returns the base URL, or "" before Start.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ts == nil {
		return ""
	}
	return s.ts.URL
}

// Name implements component.Component.
func (s *Server) Name() string { return "testimonials-fixture" }

// Start begins serving on a loopback port.
func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ts != nil {
		return fmt.Errorf("testimonials fixture already started")
	}
	s.ts = httptest.NewServer(s.engine)
	return nil
}

// Stop releases any held requests and shuts the server down.
func (s *Server) Stop(_ context.Context) error {
	s.mu.Lock()
	ts := s.ts
	s.ts = nil
	if s.hold != nil {
		close(s.hold)
		s.hold = nil
	}
	s.mu.Unlock()
	if ts != nil {
		ts.Close()
	}
	return nil
}

// Close is Stop without a context.
func (s *Server) Close() {
	_ = s.Stop(context.Background())
}

// Health implements component.Component.
func (s *Server) Health(_ context.Context) component.Health {
	if s.URL() == "" {
		return component.Health{Name: s.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: s.Name(), Status: component.StatusHealthy}
}

// SetRecords replaces the served records.
func (s *Server) SetRecords(records []testimonial.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]testimonial.Record(nil), records...)
}

// SetMode changes the response shape.
func (s *Server) SetMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
}

// FailNext makes the next n requests, reads or writes, answer with status.
func (s *Server) FailNext(status, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.failures = append(s.failures, status)
	}
}

// Hold blocks every subsequent request until the returned release function
// is called. Requests are recorded before they block.
func (s *Server) Hold() (release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{})
	s.hold = ch
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			if s.hold == ch {
				close(ch)
				s.hold = nil
			}
			s.mu.Unlock()
		})
	}
}

// Requests returns the calls received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) list(c *gin.Context) {
	req, err := parseRequest(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	hold := s.hold
	s.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-c.Request.Context().Done():
			return
		}
	}

	s.mu.Lock()
	status := s.nextFailure()
	mode := s.mode
	matched := filter(s.records, req.FeaturedOnly)
	s.mu.Unlock()

	if status != 0 {
		respondWithError(c, apperrors.New(apperrors.ErrCodeExternalService, http.StatusText(status), status))
		return
	}

	page, hasMore := slice(matched, req.Offset, req.Limit)
	switch mode {
	case ModeLegacy:
		c.JSON(http.StatusOK, page)
	case ModeMalformed:
		c.JSON(http.StatusOK, gin.H{"items": page, "metadata": metadata{TotalCount: len(matched), HasMore: hasMore}})
	default:
		c.JSON(http.StatusOK, envelope{
			Testimonials: page,
			Metadata:     metadata{TotalCount: len(matched), HasMore: hasMore},
		})
	}
}

// nextFailure must be called with s.mu held.
func (s *Server) nextFailure() int {
	if len(s.failures) == 0 {
		return 0
	}
	status := s.failures[0]
	s.failures = s.failures[1:]
	return status
}

func parseRequest(c *gin.Context) (Request, error) {
	req := Request{
		Limit:     100,
		RequestID: c.GetHeader("X-Request-ID"),
		Accept:    c.GetHeader("Accept"),
	}
	if v := c.Query("featured_only"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, apperrors.InvalidFormat("featured_only", "boolean")
		}
		req.FeaturedOnly = b
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return req, apperrors.InvalidInput("limit", "must be a non-negative integer")
		}
		req.Limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return req, apperrors.InvalidInput("offset", "must be a non-negative integer")
		}
		req.Offset = n
	}
	return req, nil
}

func respondWithError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		c.JSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}
	c.JSON(http.StatusInternalServerError, apperrors.Internal(err).ToResponse())
}

func filter(records []testimonial.Record, featuredOnly bool) []testimonial.Record {
	if !featuredOnly {
		return append([]testimonial.Record(nil), records...)
	}
	var out []testimonial.Record
	for _, r := range records {
		if r.Featured {
			out = append(out, r)
		}
	}
	return out
}

func slice(records []testimonial.Record, offset, limit int) ([]testimonial.Record, bool) {
	if offset >= len(records) {
		return []testimonial.Record{}, false
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end], end < len(records)
}
