package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePostInput(t *testing.T) {
	tests := []struct {
		name      string
		input     PostInput
		ok        bool
		failField string
	}{
		{
			name:  "Valid",
			input: PostInput{Text: "a post of reasonable length", Name: "Ada"},
			ok:    true,
		},
		{
			name:      "Empty Text",
			input:     PostInput{Name: "Ada"},
			ok:        false,
			failField: "text",
		},
		{
			name:      "Whitespace Only",
			input:     PostInput{Text: "    \t  ", Name: "Ada"},
			ok:        false,
			failField: "text",
		},
		{
			name:      "Too Short",
			input:     PostInput{Text: "short", Name: "Ada"},
			ok:        false,
			failField: "text",
		},
		{
			name:      "Too Long",
			input:     PostInput{Text: strings.Repeat("x", 301), Name: "Ada"},
			ok:        false,
			failField: "text",
		},
		{
			name:  "Exactly 300 Runes",
			input: PostInput{Text: strings.Repeat("x", 300), Name: "Ada"},
			ok:    true,
		},
		{
			name: "Multibyte Runes Counted As Characters",
			// 10 runes, far more than 10 bytes
			input: PostInput{Text: strings.Repeat("ü", 10), Name: "Ada"},
			ok:    true,
		},
		{
			name:  "Missing Name Still Valid",
			input: PostInput{Text: "a post of reasonable length"},
			ok:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, ok := ValidatePostInput(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.failField != "" {
				assert.Contains(t, errs, tt.failField)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestValidateRegisterInput(t *testing.T) {
	tests := []struct {
		name       string
		input      RegisterInput
		ok         bool
		failFields []string
	}{
		{
			name:  "Valid",
			input: RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "password123"},
			ok:    true,
		},
		{
			name:       "All Missing",
			input:      RegisterInput{},
			ok:         false,
			failFields: []string{"name", "email", "password"},
		},
		{
			name:       "Bad Email",
			input:      RegisterInput{Name: "Ada", Email: "not-an-email", Password: "password123"},
			ok:         false,
			failFields: []string{"email"},
		},
		{
			name:       "Short Password",
			input:      RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "123"},
			ok:         false,
			failFields: []string{"password"},
		},
		{
			name:       "Password Above Bcrypt Limit",
			input:      RegisterInput{Name: "Ada", Email: "ada@example.com", Password: strings.Repeat("x", 73)},
			ok:         false,
			failFields: []string{"password"},
		},
		{
			name:       "Single Rune Name",
			input:      RegisterInput{Name: "A", Email: "ada@example.com", Password: "password123"},
			ok:         false,
			failFields: []string{"name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, ok := ValidateRegisterInput(tt.input)
			assert.Equal(t, tt.ok, ok)
			for _, f := range tt.failFields {
				assert.Contains(t, errs, f)
			}
		})
	}
}

func TestValidateProfileInput(t *testing.T) {
	tests := []struct {
		name      string
		input     ProfileInput
		ok        bool
		failField string
	}{
		{
			name:  "Valid",
			input: ProfileInput{Handle: "ada", Skills: []string{"Go"}},
			ok:    true,
		},
		{
			name:      "Missing Handle",
			input:     ProfileInput{Skills: []string{"Go"}},
			ok:        false,
			failField: "handle",
		},
		{
			name:      "No Skills",
			input:     ProfileInput{Handle: "ada"},
			ok:        false,
			failField: "skills",
		},
		{
			name:      "Blank Skills Only",
			input:     ProfileInput{Handle: "ada", Skills: []string{" ", ""}},
			ok:        false,
			failField: "skills",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, ok := ValidateProfileInput(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.failField != "" {
				assert.Contains(t, errs, tt.failField)
			}
		})
	}
}
