package testimonial

import "github.com/synapseiq/site/validation"

// Record is a single testimonial.
type Record struct {
	ID       int    `json:"id" validate:"gte=1"`
	Name     string `json:"name" validate:"required"`
	Company  string `json:"company"`
	Position string `json:"position"`
	Rating   int    `json:"rating" validate:"gte=1,lte=5"`
	Content  string `json:"content" validate:"required"`
	// Image is an absolute URL or a path relative to the API base. Empty
	// means the fallback image.
	Image    string `json:"image"`
	Featured bool   `json:"featured"`
	// Date is an ISO-8601 date.
	Date string `json:"date"`
}

// Validate checks the record's tagged constraints. The returned error is an
// *errors.AppError with code INVALID_INPUT.
func (r Record) Validate() error {
	return validation.Validate(r)
}

// ValidateDraft checks r as a create payload, where the ID is not yet
// assigned.
func (r Record) ValidateDraft() error {
	r.ID = 1
	return r.Validate()
}
