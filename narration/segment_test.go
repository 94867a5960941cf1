package narration

import (
	"strings"
	"testing"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two sentences",
			text: "See the arch. Built in 1900!",
			want: []string{"See the arch.", "Built in 1900!"},
		},
		{
			name: "question mark",
			text: "Is it open? Check the hours.",
			want: []string{"Is it open?", "Check the hours."},
		},
		{
			name: "no terminator yields single unit",
			text: "A plaza with no punctuation",
			want: []string{"A plaza with no punctuation"},
		},
		{
			name: "trailing remainder kept",
			text: "First one. then the rest",
			want: []string{"First one.", "then the rest"},
		},
		{
			name: "terminator mid token does not split",
			text: "Founded in 1.5 years. Really!",
			want: []string{"Founded in 1.5 years.", "Really!"},
		},
		{
			name: "newlines count as whitespace",
			text: "Line one.\nLine two.",
			want: []string{"Line one.", "Line two."},
		},
		{
			name: "empty text yields placeholder",
			text: "",
			want: []string{Placeholder},
		},
		{
			name: "whitespace only yields placeholder",
			text: "  \n\t ",
			want: []string{Placeholder},
		},
		{
			name: "runs of terminators stay together",
			text: "Wait... What?! Go.",
			want: []string{"Wait...", "What?!", "Go."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Segment(%q) = %q, want %q", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("unit %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSegmentUnitsAreTrimmed(t *testing.T) {
	for _, unit := range Segment("  Padded start. Padded end!  ") {
		if unit != strings.TrimSpace(unit) {
			t.Errorf("unit %q has surrounding whitespace", unit)
		}
	}
}

func TestSegmentReconstruction(t *testing.T) {
	// Joining the units back together must reproduce the original text up
	// to whitespace, so no narration content is lost or duplicated.
	text := "The fountain dates to 1780. It froze solid in 1893! Still works? Yes."
	joined := strings.Join(Segment(text), " ")
	if joined != text {
		t.Errorf("reconstructed %q, want %q", joined, text)
	}
}
