package metrics_test

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/temirov/lc/internal/metrics"
	"github.com/temirov/lc/internal/types"
)

func TestCompute(t *testing.T) {
	testCases := []struct {
		name           string
		text           string
		skipEmptyLines bool
		expected       types.TextMetrics
	}{
		{
			name:     "empty text",
			text:     "",
			expected: types.TextMetrics{},
		},
		{
			name:           "empty text skipping empty lines",
			text:           "",
			skipEmptyLines: true,
			expected:       types.TextMetrics{},
		},
		{
			name:     "trailing terminator adds no line",
			text:     "a\nb\n",
			expected: types.TextMetrics{Lines: 2, Characters: 4, Words: 2},
		},
		{
			name:     "missing trailing terminator",
			text:     "a\nb",
			expected: types.TextMetrics{Lines: 2, Characters: 3, Words: 1},
		},
		{
			name:     "blank lines counted",
			text:     "a\n\n  \nb",
			expected: types.TextMetrics{Lines: 4, Characters: 7, Words: 3},
		},
		{
			name:           "blank lines skipped",
			text:           "a\n\n  \nb",
			skipEmptyLines: true,
			expected:       types.TextMetrics{Lines: 2, Characters: 7, Words: 3},
		},
		{
			name:     "tabs and carriage returns are characters",
			text:     "one\ttwo\r\n",
			expected: types.TextMetrics{Lines: 1, Characters: 9, Words: 3},
		},
		{
			name:     "only blank lines clamps words at zero",
			text:     "\n\n\n",
			expected: types.TextMetrics{Lines: 3, Characters: 3, Words: 0},
		},
		{
			name:           "only blank lines skipped",
			text:           "\n\n\n",
			skipEmptyLines: true,
			expected:       types.TextMetrics{Lines: 0, Characters: 3, Words: 0},
		},
		{
			name:     "multibyte characters count once",
			text:     "héllo wörld\n",
			expected: types.TextMetrics{Lines: 1, Characters: 12, Words: 2},
		},
		{
			name:     "unicode whitespace",
			text:     "a b　c",
			expected: types.TextMetrics{Lines: 1, Characters: 5, Words: 2},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := metrics.Compute(testCase.text, testCase.skipEmptyLines)
			if actual != testCase.expected {
				t.Fatalf("Compute(%q, %t) = %+v, want %+v", testCase.text, testCase.skipEmptyLines, actual, testCase.expected)
			}
		})
	}
}

func TestComputeCharactersMatchRuneCount(t *testing.T) {
	samples := []string{"", "x", "\n", "a b\tc\r\n", "日本語\n\n", "  \n\t\n"}
	for _, sample := range samples {
		actual := metrics.Compute(sample, false)
		if int(actual.Characters) != utf8.RuneCountInString(sample) {
			t.Fatalf("characters for %q = %d, want %d", sample, actual.Characters, utf8.RuneCountInString(sample))
		}
	}
}

func TestComputeSkipEmptyLinesSubtractsEmptyLines(t *testing.T) {
	samples := []string{"a\n\nb\n", " \n\t\nx", "x\ny\nz", "\n", "a\n   \n"}
	for _, sample := range samples {
		allLines := metrics.Compute(sample, false)
		nonEmptyLines := metrics.Compute(sample, true)
		if allLines.Lines < nonEmptyLines.Lines {
			t.Fatalf("skipping empty lines increased the count for %q", sample)
		}
		if allLines.Words != nonEmptyLines.Words || allLines.Characters != nonEmptyLines.Characters {
			t.Fatalf("skip policy changed characters or words for %q", sample)
		}
	}
}

func TestComputeBytesRejectsInvalidEncoding(t *testing.T) {
	_, computeError := metrics.ComputeBytes([]byte{0xff, 0xfe, 'a'}, false)
	if !errors.Is(computeError, metrics.ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", computeError)
	}

	computed, computeError := metrics.ComputeBytes([]byte("a b\n"), false)
	if computeError != nil {
		t.Fatalf("unexpected error: %v", computeError)
	}
	expected := types.TextMetrics{Lines: 1, Characters: 4, Words: 2}
	if computed != expected {
		t.Fatalf("ComputeBytes = %+v, want %+v", computed, expected)
	}
}

func TestIsEmptyLine(t *testing.T) {
	testCases := map[string]bool{
		"":       true,
		"   ":    true,
		"\t\r":   true,
		" x ":    false,
		"\u3000": true,
	}
	for line, expected := range testCases {
		if actual := metrics.IsEmptyLine(line); actual != expected {
			t.Fatalf("IsEmptyLine(%q) = %t, want %t", line, actual, expected)
		}
	}
}
