package normalize_test

import (
	"testing"

	"github.com/pitchside/pitchside/internal/app/system/normalize"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"user@example.com", "user@example.com"},
		{"USER@EXAMPLE.COM", "user@example.com"},
		{"  User@Example.Com  ", "user@example.com"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := normalize.Email(tt.input); got != tt.want {
				t.Errorf("Email(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"John Doe", "John Doe"},
		{"  John Doe  ", "John Doe"},
		{"UPPERCASE NAME", "UPPERCASE NAME"}, // Name preserves case
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := normalize.Name(tt.input); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSportType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Basketball", "basketball"},
		{"  TENNIS ", "tennis"},
		{"table_tennis", "table_tennis"},
	}

	for _, tt := range tests {
		if got := normalize.SportType(tt.input); got != tt.want {
			t.Errorf("SportType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
