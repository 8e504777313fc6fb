package service

// SignupFields is the registration payload, raw on input and normalized on output.
type SignupFields struct {
	Username string
	Email    string
	Password string
}

// ValidationResult is either Ok (Messages empty, Fields normalized) or
// ValidationFailed (Messages holds one entry per violated rule, in schema order).
type ValidationResult struct {
	Fields   SignupFields
	Messages []string
}

// Valid reports whether the result is the Ok variant.
func (r ValidationResult) Valid() bool {
	return len(r.Messages) == 0
}

// SignupValidator validates and normalizes registration input without raising.
type SignupValidator interface {
	ValidateSignup(fields SignupFields) ValidationResult
}
