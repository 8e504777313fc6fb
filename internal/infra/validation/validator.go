// Package validation adapts go-playground/validator to the signup schema and to echo's Validator.
package validation

import (
	"reflect"
	"strconv"
	"strings"

	"authgate/internal/domain/errors"
	"authgate/internal/domain/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// signupSchema is the registration schema. Field order is the order messages are reported in.
type signupSchema struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=2,maxbytes=72"`
}

// Validator validates request payloads. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports JSON field names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})
	// bcrypt limits input by bytes while max counts runes.
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(err)
	}

	return &Validator{validate: v}
}

// NewSignupValidator exposes the Validator as the domain's SignupValidator.
func NewSignupValidator(v *Validator) service.SignupValidator {
	return v
}

// ValidateSignup normalizes the fields and checks them against the signup schema.
// It never returns an error: violations are reported in the result.
func (v *Validator) ValidateSignup(fields service.SignupFields) service.ValidationResult {
	normalized := service.SignupFields{
		Username: strings.TrimSpace(fields.Username),
		Email:    strings.ToLower(strings.TrimSpace(fields.Email)),
		Password: fields.Password,
	}

	err := v.validate.Struct(signupSchema{
		Username: normalized.Username,
		Email:    normalized.Email,
		Password: normalized.Password,
	})

	return service.ValidationResult{
		Fields:   normalized,
		Messages: messagesFor(err),
	}
}

// Validate implements echo.Validator; failures come back as a domain ValidationError.
func (v *Validator) Validate(i any) error {
	if msgs := messagesFor(v.validate.Struct(i)); len(msgs) > 0 {
		return errors.NewValidationError(msgs)
	}

	return nil
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	return len(fl.Field().String()) <= limit
}

func messagesFor(err error) []string {
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, messageFor(fe))
	}

	return msgs
}

func messageFor(fe validator.FieldError) string {
	label := displayName(fe.Field())

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Invalid email address"
	case "min":
		return label + " must be at least " + fe.Param() + " characters"
	case "max":
		return label + " must be at most " + fe.Param() + " characters"
	case "maxbytes":
		return label + " must be at most " + fe.Param() + " bytes"
	default:
		return label + " is invalid"
	}
}

func displayName(field string) string {
	if field == "" {
		return field
	}

	return strings.ToUpper(field[:1]) + field[1:]
}

// NewEchoValidator exposes the Validator as echo's request validator.
func NewEchoValidator(v *Validator) echo.Validator {
	return v
}
