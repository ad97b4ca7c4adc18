// Package validation provides input validation helpers for handlers.
package validation

import (
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
	})
	return validate
}

// IsEmail reports whether s is a syntactically valid email address.
func IsEmail(s string) bool {
	return getValidator().Var(s, "required,email") == nil
}
