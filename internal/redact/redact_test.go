package redact_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tiendalab/tienda-bff/internal/redact"
)

func TestRedactString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no sensitive data",
			input:    "GET /products/1 returned 200",
			expected: "GET /products/1 returned 200",
		},
		{
			name:     "login payload",
			input:    `{"username":"mor_2314","password":"83r5^_"}`,
			expected: `{"username":"mor_2314","password":"[REDACTED]"}`,
		},
		{
			name:     "login response",
			input:    `{"token": "abc"}`,
			expected: `{"token":"[REDACTED]"}`,
		},
		{
			name:     "opaque bearer token",
			input:    "Authorization: Bearer abc.def-123",
			expected: "Authorization: Bearer [REDACTED_TOKEN]",
		},
		{
			name:     "bare JWT",
			input:    "token eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0.abc_def",
			expected: "token [REDACTED_JWT]",
		},
		{
			name:     "bearer JWT",
			input:    "Bearer eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0.abc_def",
			expected: "Bearer [REDACTED_JWT]",
		},
		{
			name:     "query string password",
			input:    "login?user=a&password=hunter2&x=1",
			expected: "login?user=a&password=[REDACTED]&x=1",
		},
		{
			name:     "url credentials",
			input:    "GET https://admin:pw@fakestoreapi.com/users",
			expected: "GET https://[REDACTED_CREDENTIAL]@fakestoreapi.com/users",
		},
		{
			name:     "email",
			input:    "user john@example.com not found",
			expected: "user [REDACTED_EMAIL] not found",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, redact.String(tc.input))
		})
	}
}

func TestRedactError(t *testing.T) {
	assert.Equal(t, "", redact.Error(nil))

	err := fmt.Errorf("wrap: %w", errors.New("password=abc"))
	assert.Equal(t, "wrap: password=[REDACTED]", redact.Error(err))
}
