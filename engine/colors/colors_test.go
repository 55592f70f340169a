package colors_test

import (
	"testing"

	"github.com/hubastard/canopy/engine/colors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want colors.Color
	}{
		{"white", colors.White},
		{"DarkGray", colors.DarkGray},
		{"#ff0000", colors.Red},
		{"#f00", colors.Red},
		{"#00ff0080", colors.FromRGBA8(0, 255, 0, 128)},
	}
	for _, tt := range tests {
		got, err := colors.Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "#12", "#zzzzzz", "notacolor"} {
		if _, err := colors.Parse(in); err == nil {
			t.Errorf("Parse(%q) should fail", in)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	c := colors.FromRGBA8(12, 34, 56, 78)
	got, err := colors.Parse(c.String())
	if err != nil {
		t.Fatal(err)
	}
	if got != c {
		t.Errorf("round trip = %v, want %v", got, c)
	}
}
