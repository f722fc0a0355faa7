package validation

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/synapseiq/site/errors"
)

// Validator accumulates field errors from chained checks:
//
//	err := validation.New().
//	    Required("api.base_url", cfg.BaseURL).
//	    Range("feed.page_size", cfg.PageSize, 1, 1000).
//	    Validate()
type Validator struct {
	fields []FieldError
}

// FieldError is one failed check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func New() *Validator {
	return &Validator{}
}

// AddError records a failure for field.
func (v *Validator) AddError(field, message string) {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
}

func (v *Validator) HasErrors() bool { return len(v.fields) > 0 }

func (v *Validator) Errors() []FieldError { return v.fields }

// Validate returns nil when every check passed, otherwise an INVALID_INPUT
// AppError listing each failure and carrying them under the "fields" detail.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}
	parts := make([]string, len(v.fields))
	for i, fe := range v.fields {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return errors.Validation(strings.Join(parts, "; ")).WithDetail("fields", v.fields)
}

// Custom records message for field unless ok.
func (v *Validator) Custom(ok bool, field, message string) *Validator {
	if !ok {
		v.AddError(field, message)
	}
	return v
}

// Required fails on empty or whitespace-only values.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(strings.TrimSpace(value) != "", field, "is required")
}

func (v *Validator) Range(field string, value, minVal, maxVal int) *Validator {
	return v.Custom(value >= minVal && value <= maxVal, field,
		fmt.Sprintf("must be between %d and %d", minVal, maxVal))
}

func (v *Validator) Min(field string, value, minVal int) *Validator {
	return v.Custom(value >= minVal, field, fmt.Sprintf("must be at least %d", minVal))
}

func (v *Validator) Max(field string, value, maxVal int) *Validator {
	return v.Custom(value <= maxVal, field, fmt.Sprintf("must be at most %d", maxVal))
}

// MaxLen counts runes, not bytes.
func (v *Validator) MaxLen(field, value string, maxLen int) *Validator {
	return v.Custom(utf8.RuneCountInString(value) <= maxLen, field,
		fmt.Sprintf("must be at most %d characters", maxLen))
}

// OneOf passes empty values; combine with Required when the field is mandatory.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	return v.Custom(value == "" || slices.Contains(allowed, value), field,
		"must be one of: "+strings.Join(allowed, ", "))
}
