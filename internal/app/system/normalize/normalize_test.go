package normalize

import (
	"testing"
	"time"
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
			if got := Email(tt.input); got != tt.want {
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
		{"Abdul Karim", "Abdul Karim"},
		{"  Abdul   Karim  ", "Abdul Karim"},
		{"", ""},
		{"UPPER", "UPPER"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Name(tt.input); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPhone(t *testing.T) {
	if got := Phone(" 017 1100 0000 "); got != "01711000000" {
		t.Errorf("got %q", got)
	}
}

func TestRole(t *testing.T) {
	if got := Role("  Admin "); got != "admin" {
		t.Errorf("got %q", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"2024-03-15T18:30", time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC), true},
		{"2024-03-15T18:30:00+06:00", time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC), true},
		{"2024-03-15T12:30:00.5Z", time.Date(2024, 3, 15, 12, 30, 0, 500_000_000, time.UTC), true},
		{"15/03/2024", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if (err == nil) != tt.ok {
				t.Fatalf("err: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
