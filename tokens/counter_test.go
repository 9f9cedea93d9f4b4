package tokens

import (
	"strings"
	"testing"
)

func TestEstimatingCounter_Count(t *testing.T) {
	counter := NewEstimatingCounter()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"exact multiple", "abcd", 1},
		{"rounds up", "abcde", 2},
		{"eight chars", "12345678", 2},
		{"forty chars", strings.Repeat("x", 40), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := counter.Count(tt.text); got != tt.want {
				t.Errorf("Count(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestEstimatingCounter_CountsRunesNotBytes(t *testing.T) {
	counter := NewEstimatingCounter()

	// 4 runes, 12 bytes.
	text := "日本語文"
	if got := counter.Count(text); got != 1 {
		t.Errorf("Count(%q) = %d, want 1", text, got)
	}
}

func TestNewEstimatingCounterWithRatio(t *testing.T) {
	counter := NewEstimatingCounterWithRatio(2.0)
	if got := counter.Count("abcd"); got != 2 {
		t.Errorf("Count with ratio 2.0 = %d, want 2", got)
	}

	// Invalid ratio falls back to the default.
	counter = NewEstimatingCounterWithRatio(-1)
	if counter.CharsPerToken != DefaultCharsPerToken {
		t.Errorf("expected default ratio, got %v", counter.CharsPerToken)
	}
}

func TestEstimatingCounter_FitsInLimit(t *testing.T) {
	counter := NewEstimatingCounter()

	if !counter.FitsInLimit("abcd", 1) {
		t.Error("expected 4 chars to fit in 1 token")
	}
	if counter.FitsInLimit(strings.Repeat("x", 100), 10) {
		t.Error("expected 100 chars not to fit in 10 tokens")
	}
}

func TestEstimateTokens(t *testing.T) {
	if got := EstimateTokens(strings.Repeat("a", 400)); got != 100 {
		t.Errorf("EstimateTokens = %d, want 100", got)
	}
}
