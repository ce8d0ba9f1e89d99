package querybuilder

import (
	"strconv"
	"strings"
)

// GenerateSQL compiles the state into a single SELECT statement for the
// given dialect. Clauses are emitted in standard SQL precedence order
// (SELECT, FROM, JOIN, WHERE, GROUP BY, ORDER BY, LIMIT, OFFSET), joined by
// newlines, and terminated by a semicolon.
//
// GenerateSQL is deterministic: the same state and dialect always yield a
// byte-identical statement. It performs no validation; callers are expected
// to run Validate first and block execution on an invalid state, because an
// invalid state here renders malformed SQL rather than an error.
func GenerateSQL(state *State, dialect Dialect) string {
	clauses := []string{
		buildSelectClause(state, dialect),
		buildFromClause(state, dialect),
	}
	if len(state.Joins) > 0 {
		clauses = append(clauses, buildJoinClause(state.Joins, dialect))
	}
	if len(state.Filters) > 0 {
		clauses = append(clauses, buildWhereClause(state.Filters, dialect))
	}
	if len(state.GroupBy) > 0 {
		clauses = append(clauses, buildGroupByClause(state.GroupBy, dialect))
	}
	if len(state.OrderBy) > 0 {
		clauses = append(clauses, buildOrderByClause(state.OrderBy, dialect))
	}
	if state.Limit != nil {
		clauses = append(clauses, "LIMIT "+strconv.Itoa(*state.Limit))
	}
	if state.Offset != nil {
		clauses = append(clauses, "OFFSET "+strconv.Itoa(*state.Offset))
	}
	return strings.Join(clauses, "\n") + ";"
}
