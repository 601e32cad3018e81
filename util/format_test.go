package util

import "testing"

func TestFmtMs(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0ms"},
		{85, "85ms"},
		{999.4, "999ms"},
		{1250, "1.25s"},
		{12500, "12.5s"},
	}
	for _, tt := range tests {
		if got := FmtMs(tt.in); got != tt.want {
			t.Errorf("FmtMs(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFmtKB(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0KB"},
		{1024, "1KB"},
		{300000, "292KB"}, // truncated, not rounded
		{1300000, "1269KB"},
	}
	for _, tt := range tests {
		if got := FmtKB(tt.in); got != tt.want {
			t.Errorf("FmtKB(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "short", 5, "short"},
		{"cut", "a long string", 7, "a long…"},
		{"zero", "anything", 0, ""},
		{"one", "anything", 1, "…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestShortURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/", "example.com"},
		{"http://example.com/path", "example.com/path"},
		{"example.com", "example.com"},
	}
	for _, tt := range tests {
		if got := ShortURL(tt.in); got != tt.want {
			t.Errorf("ShortURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
