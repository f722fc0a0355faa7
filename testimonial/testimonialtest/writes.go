package testimonialtest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/synapseiq/site/errors"
	"github.com/synapseiq/site/testimonial"
)

// Write is one recorded call to a write endpoint.
type Write struct {
	Method    string
	ID        int
	RequestID string
}

// writeInput mirrors the API's create and update payloads. Nil fields are
// left untouched on update.
type writeInput struct {
	Name     *string `json:"name"`
	Company  *string `json:"company"`
	Position *string `json:"position"`
	Rating   *int    `json:"rating"`
	Content  *string `json:"content"`
	Featured *bool   `json:"featured"`
}

type featuredInput struct {
	Featured *bool `json:"featured" form:"featured" binding:"required"`
}

func (s *Server) registerWrites() {
	s.engine.POST(testimonial.DefaultPath, s.create)
	s.engine.PUT(testimonial.DefaultPath+"/:id", s.update)
	s.engine.DELETE(testimonial.DefaultPath+"/:id", s.remove)
	s.engine.PATCH(testimonial.DefaultPath+"/:id/featured", s.setFeatured)
}

// Writes returns the write calls received so far.
func (s *Server) Writes() []Write {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Write(nil), s.writes...)
}

// Records returns the records currently served.
func (s *Server) Records() []testimonial.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]testimonial.Record(nil), s.records...)
}

func (s *Server) create(c *gin.Context) {
	if !s.beginWrite(c, 0) {
		return
	}
	var in writeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.InvalidFormat("body", "JSON object"))
		return
	}
	r := testimonial.Record{Rating: 5, Date: time.Now().UTC().Format(time.DateOnly)}
	in.apply(&r)
	if err := r.ValidateDraft(); err != nil {
		respondWithError(c, err)
		return
	}

	s.mu.Lock()
	for _, existing := range s.records {
		r.ID = max(r.ID, existing.ID)
	}
	r.ID++
	s.records = append([]testimonial.Record{r}, s.records...)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, r)
}

func (s *Server) update(c *gin.Context) {
	id, ok := s.beginItemWrite(c)
	if !ok {
		return
	}
	var in writeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.InvalidFormat("body", "JSON object"))
		return
	}
	s.modify(c, id, func(r *testimonial.Record) error {
		in.apply(r)
		return r.Validate()
	})
}

func (s *Server) setFeatured(c *gin.Context) {
	id, ok := s.beginItemWrite(c)
	if !ok {
		return
	}
	var in featuredInput
	if err := c.ShouldBind(&in); err != nil {
		respondWithError(c, apperrors.InvalidInput("featured", "is required"))
		return
	}
	s.modify(c, id, func(r *testimonial.Record) error {
		r.Featured = *in.Featured
		return nil
	})
}

func (s *Server) remove(c *gin.Context) {
	id, ok := s.beginItemWrite(c)
	if !ok {
		return
	}
	s.mu.Lock()
	i := s.indexOf(id)
	if i >= 0 {
		s.records = append(s.records[:i], s.records[i+1:]...)
	}
	s.mu.Unlock()

	if i < 0 {
		respondWithError(c, apperrors.NotFound("testimonial", strconv.Itoa(id)))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Testimonial deleted successfully"})
}

// modify applies fn to a copy of record id and stores it when fn succeeds.
func (s *Server) modify(c *gin.Context, id int, fn func(*testimonial.Record) error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		respondWithError(c, apperrors.NotFound("testimonial", strconv.Itoa(id)))
		return
	}
	r := s.records[i]
	err := fn(&r)
	if err == nil {
		s.records[i] = r
	}
	s.mu.Unlock()

	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) beginItemWrite(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		respondWithError(c, apperrors.InvalidInput("id", "must be a positive integer"))
		return 0, false
	}
	return id, s.beginWrite(c, id)
}

// beginWrite records the call and answers with a queued failure, if any.
func (s *Server) beginWrite(c *gin.Context, id int) bool {
	s.mu.Lock()
	s.writes = append(s.writes, Write{
		Method:    c.Request.Method,
		ID:        id,
		RequestID: c.GetHeader("X-Request-ID"),
	})
	status := s.nextFailure()
	s.mu.Unlock()

	if status != 0 {
		respondWithError(c, apperrors.New(apperrors.ErrCodeExternalService, http.StatusText(status), status))
		return false
	}
	return true
}

// indexOf must be called with s.mu held.
func (s *Server) indexOf(id int) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (in writeInput) apply(r *testimonial.Record) {
	if in.Name != nil {
		r.Name = *in.Name
	}
	if in.Company != nil {
		r.Company = *in.Company
	}
	if in.Position != nil {
		r.Position = *in.Position
	}
	if in.Rating != nil {
		r.Rating = *in.Rating
	}
	if in.Content != nil {
		r.Content = *in.Content
	}
	if in.Featured != nil {
		r.Featured = *in.Featured
	}
}
