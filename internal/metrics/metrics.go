// Package metrics computes line, character, and word counts for text.
package metrics

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/temirov/lc/internal/types"
)

const lineTerminator = '\n'

// ErrInvalidEncoding is returned when content is not valid UTF-8 text.
var ErrInvalidEncoding = errors.New("stream did not contain valid UTF-8")

// Compute returns the metrics of text.
//
// A line is a maximal run of characters without a newline; a trailing newline
// does not start another line. A line is empty when it is all whitespace.
// With skipEmptyLines set, empty lines are excluded from the line count.
// Every code point is counted as a character. The word count is the number of
// whitespace code points minus the number of empty lines, floored at zero.
func Compute(text string, skipEmptyLines bool) types.TextMetrics {
	if text == "" {
		return types.TextMetrics{}
	}

	totalLines, emptyLines := countLines(text)
	lineCount := totalLines
	if skipEmptyLines {
		lineCount = totalLines - emptyLines
	}

	characterCount := uint(utf8.RuneCountInString(text))
	whitespaceCount := countWhitespace(text)

	var wordCount uint
	if whitespaceCount > emptyLines {
		wordCount = whitespaceCount - emptyLines
	}

	return types.TextMetrics{
		Lines:      lineCount,
		Characters: characterCount,
		Words:      wordCount,
	}
}

// ComputeBytes validates data as UTF-8 and returns its metrics.
func ComputeBytes(data []byte, skipEmptyLines bool) (types.TextMetrics, error) {
	if !utf8.Valid(data) {
		return types.TextMetrics{}, ErrInvalidEncoding
	}
	return Compute(string(data), skipEmptyLines), nil
}

// countLines returns the number of lines in text and how many of them are empty.
func countLines(text string) (uint, uint) {
	var totalLines uint
	var emptyLines uint
	remaining := text
	for len(remaining) > 0 {
		line := remaining
		terminatorIndex := strings.IndexByte(remaining, lineTerminator)
		if terminatorIndex >= 0 {
			line = remaining[:terminatorIndex]
			remaining = remaining[terminatorIndex+1:]
		} else {
			remaining = ""
		}
		totalLines++
		if IsEmptyLine(line) {
			emptyLines++
		}
	}
	return totalLines, emptyLines
}

func countWhitespace(text string) uint {
	var whitespaceCount uint
	for _, character := range text {
		if unicode.IsSpace(character) {
			whitespaceCount++
		}
	}
	return whitespaceCount
}

// IsEmptyLine reports whether line has no content after trimming whitespace.
func IsEmptyLine(line string) bool {
	return strings.TrimSpace(line) == ""
}
