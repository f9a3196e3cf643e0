package internal

import (
	"testing"
)

func TestScrubMarkup(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "reactid attributes",
			input:    `<div data-reactid=".0"><span data-reactid=".0.1">x</span></div>`,
			expected: `<div><span>x</span></div>`,
		},
		{
			name:     "checksum attribute",
			input:    `<div data-reactid=".0" data-react-checksum="12345">x</div>`,
			expected: `<div>x</div>`,
		},
		{
			name:     "no bookkeeping attributes",
			input:    `<div class="clean">x</div>`,
			expected: `<div class="clean">x</div>`,
		},
		{
			name:     "placeholder survives scrub",
			input:    `<div data-reactid=".0">@0@</div>`,
			expected: `<div>@0@</div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScrubMarkup(tt.input); got != tt.expected {
				t.Errorf("ScrubMarkup(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
