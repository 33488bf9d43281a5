// Package utils contains general helper functions used across the lc tool.
package utils

import "strings"

// Ignore file constants used across the project.
const (
	// IgnoreFileName is the default name of the per-directory ignore list.
	IgnoreFileName = ".lcignore"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
)

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// NormalizeNames trims every name, drops blanks, and removes duplicates.
func NormalizeNames(names []string) []string {
	trimmedNames := make([]string, 0, len(names))
	for _, name := range names {
		trimmedName := strings.TrimSpace(name)
		if trimmedName == "" {
			continue
		}
		trimmedNames = append(trimmedNames, trimmedName)
	}
	return DeduplicatePatterns(trimmedNames)
}
