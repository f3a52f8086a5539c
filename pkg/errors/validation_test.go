package errors

import (
	"strings"
	"testing"
)

func TestValidateResourceID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"numeric", "1234", false},
		{"alphanumeric", "abc123", false},
		{"with dash", "form-12", false},

		{"empty", "", true},
		{"too long", strings.Repeat("1", 65), true},
		{"slash", "12/34", true},
		{"path traversal", "..", true},
		{"query", "12?x=1", true},
		{"fragment", "12#a", true},
		{"percent", "12%2F", true},
		{"space", "12 34", true},
		{"newline", "12\n", true},
		{"null byte", "12\x00", true},
		{"backslash", "12\\34", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResourceID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateResourceID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidID) {
				t.Errorf("ValidateResourceID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidID)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://pi.pardot.com/api", false},
		{"http", "http://localhost:8080", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"no scheme", "pi.pardot.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
