package validation

import (
	"strings"
	"testing"

	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSignup_Ok(t *testing.T) {
	v := New()

	result := v.ValidateSignup(service.SignupFields{
		Username: "  al ",
		Email:    " A@X.com ",
		Password: "p1",
	})

	require.True(t, result.Valid(), result.Messages)
	assert.Equal(t, "al", result.Fields.Username)
	assert.Equal(t, "a@x.com", result.Fields.Email)
	assert.Equal(t, "p1", result.Fields.Password)
}

func TestValidateSignup_PasswordIsNotTrimmed(t *testing.T) {
	result := New().ValidateSignup(service.SignupFields{
		Username: "alice",
		Email:    "alice@example.com",
		Password: " secret ",
	})

	require.True(t, result.Valid())
	assert.Equal(t, " secret ", result.Fields.Password)
}

func TestValidateSignup_Violations(t *testing.T) {
	tests := []struct {
		name   string
		fields service.SignupFields
		want   []string
	}{
		{
			name:   "bad email",
			fields: service.SignupFields{Username: "alice", Email: "not-an-email", Password: "secret"},
			want:   []string{"Invalid email address"},
		},
		{
			name:   "short username",
			fields: service.SignupFields{Username: "a", Email: "a@x.com", Password: "secret"},
			want:   []string{"Username must be at least 2 characters"},
		},
		{
			name:   "long password",
			fields: service.SignupFields{Username: "alice", Email: "a@x.com", Password: strings.Repeat("p", 73)},
			want:   []string{"Password must be at most 72 bytes"},
		},
		{
			name:   "multibyte password over 72 bytes",
			fields: service.SignupFields{Username: "alice", Email: "a@x.com", Password: strings.Repeat("é", 40)},
			want:   []string{"Password must be at most 72 bytes"},
		},
		{
			name:   "blank username after trim",
			fields: service.SignupFields{Username: "   ", Email: "a@x.com", Password: "secret"},
			want:   []string{"Username is required"},
		},
		{
			name:   "schema order",
			fields: service.SignupFields{Username: "a", Email: "nope", Password: "p"},
			want: []string{
				"Username must be at least 2 characters",
				"Invalid email address",
				"Password must be at least 2 characters",
			},
		},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateSignup(tt.fields)

			assert.False(t, result.Valid())
			assert.Equal(t, tt.want, result.Messages)
		})
	}
}

func TestValidate_ReturnsValidationError(t *testing.T) {
	type payload struct {
		Email string `json:"email" validate:"required,email"`
	}

	v := New()
	require.NoError(t, v.Validate(&payload{Email: "a@x.com"}))

	err := v.Validate(&payload{Email: ""})
	require.Error(t, err)

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"Email is required"}, validationErr.Messages())
}

func TestValidate_MaxBytesCountsBytes(t *testing.T) {
	type payload struct {
		Password string `json:"password" validate:"maxbytes=72"`
	}

	v := New()
	require.NoError(t, v.Validate(&payload{Password: strings.Repeat("é", 36)}))

	err := v.Validate(&payload{Password: strings.Repeat("é", 37)})
	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"Password must be at most 72 bytes"}, validationErr.Messages())
}

func TestNewSignupValidator(t *testing.T) {
	v := New()
	assert.Same(t, v, NewSignupValidator(v))
}
