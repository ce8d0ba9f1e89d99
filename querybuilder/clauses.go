package querybuilder

import (
	"sort"
	"strings"
)

// The clause builders below each render one syntactic segment of the final
// statement and nothing else. None of them validate: Validate is the single
// place where structural checks live, and GenerateSQL only invokes a builder
// when its slice of the state is non-empty.

func buildSelectClause(state *State, d Dialect) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	if state.Distinct {
		b.WriteString("DISTINCT ")
	}
	if len(state.SelectColumns) == 0 {
		b.WriteString("*")
		return b.String()
	}
	cols := make([]string, len(state.SelectColumns))
	for i, c := range state.SelectColumns {
		expr := quoteColumn(d, c.Column)
		if c.Aggregate != "" && c.Aggregate != AggregateNone {
			expr = string(c.Aggregate) + "(" + expr + ")"
		}
		if c.Alias != "" {
			expr += " AS " + d.QuoteIdentifier(c.Alias)
		}
		cols[i] = expr
	}
	b.WriteString(strings.Join(cols, ", "))
	return b.String()
}

func buildFromClause(state *State, d Dialect) string {
	table := d.QuoteIdentifier(state.Table)
	if state.Schema != "" && d.SupportsSchema() {
		return "FROM " + d.QuoteIdentifier(state.Schema) + "." + table
	}
	return "FROM " + table
}

func buildJoinClause(joins []JoinClause, d Dialect) string {
	lines := make([]string, len(joins))
	for i, j := range joins {
		lines[i] = string(j.Type) + " JOIN " + d.QuoteIdentifier(j.Table) +
			" ON " + quoteColumn(d, j.LeftColumn) + " = " + quoteColumn(d, j.RightColumn)
	}
	return strings.Join(lines, "\n")
}

func buildWhereClause(filters []FilterCondition, d Dialect) string {
	var b strings.Builder
	b.WriteString("WHERE ")
	for i, f := range filters {
		col := quoteColumn(d, f.Column)
		switch {
		case !f.Operator.TakesValue():
			b.WriteString(col + " " + string(f.Operator))
		case f.Operator.TakesList():
			parts := strings.Split(f.Value, ",")
			vals := make([]string, 0, len(parts))
			for _, p := range parts {
				vals = append(vals, EscapeValue(strings.TrimSpace(p)))
			}
			b.WriteString(col + " " + string(f.Operator) + " (" + strings.Join(vals, ", ") + ")")
		default:
			b.WriteString(col + " " + string(f.Operator) + " " + EscapeValue(f.Value))
		}
		if i < len(filters)-1 {
			logical := f.LogicalOperator
			if logical == "" {
				logical = LogicalAnd
			}
			b.WriteString(" " + string(logical) + " ")
		}
	}
	return b.String()
}

func buildGroupByClause(groupBy []string, d Dialect) string {
	cols := make([]string, len(groupBy))
	for i, c := range groupBy {
		cols[i] = quoteColumn(d, c)
	}
	return "GROUP BY " + strings.Join(cols, ", ")
}

func buildOrderByClause(orderBy []OrderByClause, d Dialect) string {
	// Render order is governed by priority, not insertion order. The sort is
	// stable so equal priorities keep their relative positions.
	sorted := make([]OrderByClause, len(orderBy))
	copy(sorted, orderBy)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})
	parts := make([]string, len(sorted))
	for i, o := range sorted {
		dir := o.Direction
		if dir == "" {
			dir = SortAsc
		}
		parts[i] = quoteColumn(d, o.Column) + " " + string(dir)
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}
