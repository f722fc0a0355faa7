// Package validation provides input validation for configuration and
// testimonial records.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection.
//
// # Struct Tag Validation
//
//	type Record struct {
//	    Name   string `json:"name" validate:"required"`
//	    Rating int    `json:"rating" validate:"gte=0,lte=5"`
//	}
//	err := validation.Validate(rec)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Range("feed.page_size", cfg.PageSize, 1, 100)
//	if appErr := v.Validate(); appErr != nil { ... }
package validation
