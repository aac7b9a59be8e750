package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors groups violation messages by JSON field name.
type FieldErrors map[string][]string

// Add appends a message for field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// FieldError is a single failed constraint.
type FieldError = validator.FieldError

// MessageFunc renders a single failed constraint as a user-facing message.
type MessageFunc func(fe FieldError) string

// Validator wraps a go-playground validator configured to report JSON
// field names and to know the shared custom tags.
type Validator struct {
	validate *validator.Validate
	messages MessageFunc
}

// New returns a Validator with the notblank tag registered.
func New(messages MessageFunc) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	if messages == nil {
		messages = DefaultMessage
	}
	out := &Validator{validate: v, messages: messages}
	out.MustRegister("notblank", IsNotBlank)
	return out
}

// MustRegister adds a custom tag and panics if the engine rejects it.
func (v *Validator) MustRegister(tag string, fn validator.Func) {
	if err := v.validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validator: register %q: %v", tag, err))
	}
}

// Engine exposes the underlying validator so callers can register
// domain-specific tags.
func (v *Validator) Engine() *validator.Validate {
	return v.validate
}

// Struct validates s and returns every violation grouped by field. A nil
// result means s is valid.
func (v *Validator) Struct(s any) (FieldErrors, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	grouped := FieldErrors{}
	for _, fe := range verrs {
		grouped.Add(fe.Field(), v.messages(fe))
	}
	return grouped, nil
}

// IsNotBlank reports whether a string field has non-whitespace content.
func IsNotBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return !field.IsZero()
	}
	return strings.TrimSpace(field.String()) != ""
}

// DefaultMessage renders a generic message for a failed constraint.
func DefaultMessage(fe FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " must not exceed " + fe.Param() + " characters"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "oneof":
		return fe.Field() + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return fe.Field() + " is invalid"
	}
}
