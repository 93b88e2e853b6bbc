package utils

import (
	"fmt"
	"unicode/utf8"
)

// Request size limits (in bytes)
const (
	MaxBodySize     = 64 * 1024 // whole JSON request body
	MaxPromptLength = 8 * 1024  // prompt text
	MaxSeedLength   = 256       // generator seed word
)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if value == "" {
		if required {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}

	if !utf8.ValidString(value) {
		return fmt.Errorf("%s contains invalid UTF-8", fieldName)
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if maxLen > 0 && len(value) > maxLen {
		return fmt.Errorf("%s exceeds maximum length of %d bytes", fieldName, maxLen)
	}

	return nil
}

// ValidatePrompt validates a calculator prompt. Empty prompts are allowed
// and answered with guidance.
func ValidatePrompt(prompt string) error {
	return ValidateString(prompt, "prompt", 0, MaxPromptLength, false)
}

// ValidateSeed validates a generator seed word
func ValidateSeed(seed string) error {
	return ValidateString(seed, "seed", 1, MaxSeedLength, true)
}
