package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePrompt(t *testing.T) {
	tests := []struct {
		name    string
		prompt  string
		wantErr string
	}{
		{"empty allowed", "", ""},
		{"typical", "What's the mean of 1, 2, 3?", ""},
		{"unicode", "Divide 10 ÷ 2 − 1", ""},
		{"at limit", strings.Repeat("a", MaxPromptLength), ""},
		{"too long", strings.Repeat("a", MaxPromptLength+1), "prompt exceeds maximum length of 8192 bytes"},
		{"invalid utf8", "mean of \xff", "prompt contains invalid UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrompt(tt.prompt)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestValidateSeed(t *testing.T) {
	assert.NoError(t, ValidateSeed("the"))
	assert.EqualError(t, ValidateSeed(""), "seed is required")
	assert.Error(t, ValidateSeed(strings.Repeat("w", MaxSeedLength+1)))
}

func TestValidateStringMinLength(t *testing.T) {
	assert.EqualError(t, ValidateString("ab", "name", 3, 10, true), "name must be at least 3 characters")
	assert.NoError(t, ValidateString("ab", "name", 2, 10, true))
}
