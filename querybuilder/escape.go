package querybuilder

import (
	"strconv"
	"strings"
)

// EscapeValue renders a raw filter value as a SQL literal.
//
// Values already wrapped in single quotes pass through unchanged (an escape
// hatch for callers that pre-quote), numeric strings are emitted bare, and
// everything else is single-quoted with embedded quotes doubled. It always
// returns a string, including for empty input.
//
// This is string-substitution escaping for display SQL built from trusted
// tooling input. It is not a substitute for bound parameters.
func EscapeValue(raw string) string {
	if len(raw) >= 2 && strings.HasPrefix(raw, "'") && strings.HasSuffix(raw, "'") {
		return raw
	}
	if _, err := strconv.ParseFloat(raw, 64); err == nil {
		return raw
	}
	return "'" + strings.ReplaceAll(raw, "'", "''") + "'"
}
