package querybuilder

import (
	"fmt"
	"strings"
)

// Result reports the outcome of Validate. Valid is true exactly when Errors
// is empty.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate runs the structural and semantic checks on a builder state and
// collects every violation as a human-readable message. The rules are
// independent: nothing short-circuits, so the UI can surface the full list
// at once. Validate has no side effects and is cheap enough to run on every
// state mutation.
//
// The mixed-aggregate rule is deliberately lenient: it only requires that
// GROUP BY is non-empty when aggregated and plain columns are mixed, without
// checking that every plain column actually appears in it.
func Validate(state *State) Result {
	errs := []string{}

	if strings.TrimSpace(state.Table) == "" {
		errs = append(errs, "table name is required")
	}
	if state.Limit != nil && *state.Limit < 0 {
		errs = append(errs, "limit must be a non-negative integer")
	}
	if state.Offset != nil && *state.Offset < 0 {
		errs = append(errs, "offset must be a non-negative integer")
	}

	for i, f := range state.Filters {
		if strings.TrimSpace(f.Column) == "" {
			errs = append(errs, fmt.Sprintf("filter %d: column is required", i+1))
		}
		if f.Operator.TakesValue() && strings.TrimSpace(f.Value) == "" {
			errs = append(errs, fmt.Sprintf("filter %d: value is required for operator %s", i+1, f.Operator))
		}
	}

	for i, j := range state.Joins {
		if strings.TrimSpace(j.Table) == "" ||
			strings.TrimSpace(j.LeftColumn) == "" ||
			strings.TrimSpace(j.RightColumn) == "" {
			errs = append(errs, fmt.Sprintf("join %d: table, left column, and right column are required", i+1))
		}
	}

	for i, o := range state.OrderBy {
		if strings.TrimSpace(o.Column) == "" {
			errs = append(errs, fmt.Sprintf("order by %d: column is required", i+1))
		}
	}

	if mixesAggregates(state.SelectColumns) && len(state.GroupBy) == 0 {
		errs = append(errs, "GROUP BY is required when mixing aggregated and non-aggregated columns")
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

func mixesAggregates(cols []SelectColumn) bool {
	var aggregated, plain bool
	for _, c := range cols {
		if c.Aggregate != "" && c.Aggregate != AggregateNone {
			aggregated = true
		} else {
			plain = true
		}
	}
	return aggregated && plain
}
