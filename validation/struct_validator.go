package validation

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/synapseiq/site/errors"
)

// structValidator reports fields under their json names, falling back to
// the snake_cased Go name.
var structValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return toSnakeCase(f.Name)
		}
		return name
	})
	return v
})

// Validate checks the `validate` struct tags on s. Failures come back as one
// INVALID_INPUT AppError in the same shape Validator.Validate produces.
func Validate(s any) error {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation("validation failed")
	}

	v := New()
	for _, fe := range verrs {
		v.AddError(fe.Field(), describe(fe))
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func describe(fe validator.FieldError) string {
	unit := " characters"
	if k := fe.Kind(); k >= reflect.Int && k <= reflect.Float64 {
		unit = ""
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + fe.Param() + unit
	case "max", "lte":
		return "must be at most " + fe.Param() + unit
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return "is invalid"
}

// toSnakeCase lowercases s and puts an underscore before every interior
// upper-case letter, so ImageURL becomes image_u_r_l.
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
