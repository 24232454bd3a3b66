package projecttree

import "strings"

// IndentStyle names the rule that turns a depth into a line prefix.
type IndentStyle string

const (
	IndentStyleSpace IndentStyle = "space"
	IndentStyleDash  IndentStyle = "dash"
	IndentStyleDot   IndentStyle = "dot"
	IndentStyleTree  IndentStyle = "tree"
)

const (
	indentWidth     = 4
	spaceUnit       = "    "
	treeContinuator = "│   "
	// treeBranch is always the closing glyph; sibling position is not tracked.
	treeBranch = "└── "
)

// KnownIndentStyles lists the recognized indent styles.
func KnownIndentStyles() []IndentStyle {
	return []IndentStyle{IndentStyleSpace, IndentStyleDash, IndentStyleDot, IndentStyleTree}
}

// Prefix returns the indentation for an entry at depth. Unrecognized styles indent with spaces.
func (style IndentStyle) Prefix(depth int) string {
	if depth <= 0 {
		return ""
	}
	switch style {
	case IndentStyleDash:
		return strings.Repeat("-", indentWidth*depth)
	case IndentStyleDot:
		return strings.Repeat(".", indentWidth*depth)
	case IndentStyleTree:
		return strings.Repeat(treeContinuator, depth-1) + treeBranch
	default:
		return strings.Repeat(spaceUnit, depth)
	}
}
