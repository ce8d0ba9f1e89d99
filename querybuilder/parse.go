package querybuilder

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	fromPattern     = regexp.MustCompile("(?i)\\bFROM\\s+(?:([\\w$]+|\"[^\"]+\"|`[^`]+`)\\s*\\.\\s*)?([\\w$]+|\"[^\"]+\"|`[^`]+`)")
	limitPattern    = regexp.MustCompile(`(?i)\bLIMIT\s+(\d+)`)
	offsetPattern   = regexp.MustCompile(`(?i)\bOFFSET\s+(\d+)`)
	distinctPattern = regexp.MustCompile(`(?i)\bSELECT\s+DISTINCT\b`)
)

// ParseSQL extracts the coarse shape of a SELECT statement back into a
// builder state: target table, optional schema qualifier, DISTINCT, LIMIT,
// and OFFSET. Filters, joins, grouping, and ordering are deliberately not
// reconstructed; this is a lossy convenience for re-opening arbitrary SQL
// text in the builder.
//
// ParseSQL returns nil when no FROM clause can be located. It never panics
// and never returns an error, so callers can treat a nil result as "skip
// reconstruction" and fall back to a plain text editor.
func ParseSQL(sqlText string) *State {
	m := fromPattern.FindStringSubmatch(sqlText)
	if m == nil {
		return nil
	}

	state := NewEmptyState(unquoteIdentifier(m[2]))
	if m[1] != "" {
		state.Schema = unquoteIdentifier(m[1])
	}
	state.Distinct = distinctPattern.MatchString(sqlText)

	if lm := limitPattern.FindStringSubmatch(sqlText); lm != nil {
		if n, err := strconv.Atoi(lm[1]); err == nil {
			state.Limit = &n
		}
	}
	if om := offsetPattern.FindStringSubmatch(sqlText); om != nil {
		if n, err := strconv.Atoi(om[1]); err == nil {
			state.Offset = &n
		}
	}
	return state
}

// unquoteIdentifier strips one layer of backtick or double-quote wrapping
// and collapses doubled quote characters back to singles.
func unquoteIdentifier(s string) string {
	if len(s) < 2 {
		return s
	}
	switch {
	case s[0] == '"' && s[len(s)-1] == '"':
		return strings.ReplaceAll(s[1:len(s)-1], `""`, `"`)
	case s[0] == '`' && s[len(s)-1] == '`':
		return strings.ReplaceAll(s[1:len(s)-1], "``", "`")
	default:
		return s
	}
}
