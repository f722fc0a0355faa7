// Package catalog provides the admin list view over testimonial records:
// text search, a featured filter and clamped page slicing.
package catalog

import (
	"strings"

	"github.com/synapseiq/site/testimonial"
	"github.com/synapseiq/site/util"
	"github.com/synapseiq/site/validation"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
	maxSearchLen   = 200
)

// Query selects a page of records.
type Query struct {
	// Search is matched case-insensitively against name, company and
	// content. Empty matches everything.
	Search       string
	FeaturedOnly bool
	// Page is 1-based and clamped to [1, TotalPages].
	Page int
	// PerPage defaults to DefaultPerPage when <= 0.
	PerPage int
}

// Validate rejects queries a caller should not send.
func (q Query) Validate() error {
	v := validation.New().
		Max("per_page", q.PerPage, MaxPerPage).
		MaxLen("search", q.Search, maxSearchLen)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// Result is one page of the filtered records.
type Result struct {
	Items      []testimonial.Record
	Page       int
	PerPage    int
	TotalPages int
	TotalItems int
}

// View filters records and returns the requested page.
func View(records []testimonial.Record, q Query) Result {
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	filtered := util.Filter(records, matcher(q))
	totalPages := max(1, (len(filtered)+perPage-1)/perPage)
	page := min(max(q.Page, 1), totalPages)

	start := min((page-1)*perPage, len(filtered))
	end := min(start+perPage, len(filtered))
	return Result{
		Items:      filtered[start:end],
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		TotalItems: len(filtered),
	}
}

func matcher(q Query) func(testimonial.Record) bool {
	term := strings.ToLower(util.SanitizeString(q.Search))
	return func(r testimonial.Record) bool {
		if q.FeaturedOnly && !r.Featured {
			return false
		}
		if term == "" {
			return true
		}
		return strings.Contains(strings.ToLower(r.Name), term) ||
			strings.Contains(strings.ToLower(r.Company), term) ||
			strings.Contains(strings.ToLower(r.Content), term)
	}
}
