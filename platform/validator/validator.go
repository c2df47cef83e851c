// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"regexp"
	"strings"

	"funnel_backend/platform/phone"

	"github.com/go-playground/validator/v10"
)

var instagramHandle = regexp.MustCompile(`^@[A-Za-z0-9._]{1,30}$`)

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance with the contact-field rules
// ("whatsapp", "instagram") registered.
func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("whatsapp", func(fl validator.FieldLevel) bool {
		return phone.IsPossibleInternational(fl.Field().String())
	})
	_ = v.RegisterValidation("instagram", func(fl validator.FieldLevel) bool {
		return instagramHandle.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

// FieldErrors flattens validation errors into field -> failed rule pairs
// suitable for a response's details.
func FieldErrors(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
