// Package projecttree renders a filtered, indented listing of a project's directory hierarchy.
package projecttree

import (
	"sort"
	"strings"

	"github.com/temirov/projtree/internal/utils"
)

// commonIgnorePatterns apply to every project regardless of its type.
var commonIgnorePatterns = []string{
	utils.GitDirectoryName,
	"coverage",
	".DS_Store",
	"Thumbs.db",
	".idea",
	".vscode",
}

// projectTypeIgnorePatterns extends the common patterns for each recognized project type.
var projectTypeIgnorePatterns = map[string][]string{
	"python": {".venv", "__pycache__"},
	"nodejs": {"node_modules"},
	"vue":    {"node_modules", "dist"},
	"react":  {"node_modules", "build"},
	"ruby":   {".bundle"},
	"rails":  {"vendor", "log", "tmp"},
}

// IgnoreRuleSet is an ordered, immutable list of substring patterns.
// A path is ignored when any pattern occurs anywhere within it.
type IgnoreRuleSet struct {
	patterns []string
}

// BuildIgnoreRuleSet returns the common patterns followed by the patterns registered
// for projectType. Unrecognized project types, including the empty string, contribute nothing.
func BuildIgnoreRuleSet(projectType string) IgnoreRuleSet {
	specificPatterns := projectTypeIgnorePatterns[projectType]
	patterns := make([]string, 0, len(commonIgnorePatterns)+len(specificPatterns))
	patterns = append(patterns, commonIgnorePatterns...)
	patterns = append(patterns, specificPatterns...)
	return IgnoreRuleSet{patterns: patterns}
}

// WithPatterns returns a new rule set with the additional patterns appended.
// Blank patterns and patterns already present are dropped. The receiver is not modified.
func (rules IgnoreRuleSet) WithPatterns(additionalPatterns ...string) IgnoreRuleSet {
	combined := make([]string, 0, len(rules.patterns)+len(additionalPatterns))
	combined = append(combined, rules.patterns...)
	for _, additionalPattern := range additionalPatterns {
		trimmedPattern := strings.TrimSpace(additionalPattern)
		if trimmedPattern == "" {
			continue
		}
		combined = append(combined, trimmedPattern)
	}
	return IgnoreRuleSet{patterns: utils.DeduplicatePatterns(combined)}
}

// Patterns returns a copy of the patterns in evaluation order.
func (rules IgnoreRuleSet) Patterns() []string {
	return append([]string(nil), rules.patterns...)
}

// Matches reports whether any pattern is a substring of path.
func (rules IgnoreRuleSet) Matches(path string) bool {
	for _, pattern := range rules.patterns {
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

// ShouldIgnore reports whether path contains any pattern of rules.
// The full path is tested, so a pattern naming an ancestor directory matches every descendant.
func ShouldIgnore(path string, rules IgnoreRuleSet) bool {
	return rules.Matches(path)
}

// KnownProjectTypes lists the project types with dedicated ignore patterns, sorted by name.
func KnownProjectTypes() []string {
	projectTypes := make([]string, 0, len(projectTypeIgnorePatterns))
	for projectType := range projectTypeIgnorePatterns {
		projectTypes = append(projectTypes, projectType)
	}
	sort.Strings(projectTypes)
	return projectTypes
}
