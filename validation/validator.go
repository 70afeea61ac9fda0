// Package validation provides struct tag validation for decoded payloads.
//
// Tags follow the validator library conventions:
//
//	type Post struct {
//	    ID    int    `json:"id" validate:"required,gt=0"`
//	    Title string `json:"title" validate:"required"`
//	}
//	err := validation.Validate(post)
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use json tag names for field names in error messages.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return toSnakeCase(fld.Name)
			}
			return name
		})
	})
	return validate
}

// Validate validates a struct (or each element of a slice of structs)
// using struct tags.
func Validate(s any) error {
	v := getValidator()

	rv := reflect.ValueOf(s)
	if rv.Kind() == reflect.Slice {
		for i := 0; i < rv.Len(); i++ {
			if err := v.Struct(rv.Index(i).Interface()); err != nil {
				return describe(fmt.Sprintf("element %d: ", i), err)
			}
		}
		return nil
	}
	return describe("", v.Struct(s))
}

// describe converts validator errors into a single readable error.
func describe(prefix string, err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		messages = append(messages, e.Field()+" "+reason(e))
	}
	return fmt.Errorf("validation: %s%s", prefix, strings.Join(messages, "; "))
}

// reason creates a human-readable message for a field error.
func reason(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be at least " + e.Param()
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}

// toSnakeCase converts a field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(r + 32)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
