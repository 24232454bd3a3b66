// Package utils contains general helpers shared across the projtree command.
package utils

import "strings"

// GitDirectoryName is the name of the Git repository directory.
const GitDirectoryName = ".git"

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

// SplitPatternList expands entries that carry several comma-separated patterns
// into individual trimmed patterns. Empty fragments are dropped.
func SplitPatternList(entries []string) []string {
	var patterns []string
	for _, entry := range entries {
		for _, fragment := range strings.Split(entry, ",") {
			trimmedFragment := strings.TrimSpace(fragment)
			if trimmedFragment != "" {
				patterns = append(patterns, trimmedFragment)
			}
		}
	}
	return patterns
}
