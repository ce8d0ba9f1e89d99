// Package querybuilder compiles a structured description of a SELECT query
// into dialect-specific SQL text and validates that description ahead of
// compilation.
//
// Everything in this package is a pure function over plain data: no I/O, no
// shared mutable state, safe to call concurrently from any number of
// sessions. The generated text is display SQL for the workbench UI; queries
// the service executes on its own behalf use bound parameters instead (see
// the database package).
package querybuilder

// Aggregate identifies the aggregate function applied to a selected column.
type Aggregate string

const (
	AggregateNone  Aggregate = "NONE"
	AggregateCount Aggregate = "COUNT"
	AggregateSum   Aggregate = "SUM"
	AggregateAvg   Aggregate = "AVG"
	AggregateMin   Aggregate = "MIN"
	AggregateMax   Aggregate = "MAX"
)

// Operator is a comparison operator usable in a filter condition.
type Operator string

const (
	OpEq        Operator = "="
	OpNotEq     Operator = "!="
	OpLt        Operator = "<"
	OpGt        Operator = ">"
	OpLte       Operator = "<="
	OpGte       Operator = ">="
	OpLike      Operator = "LIKE"
	OpNotLike   Operator = "NOT LIKE"
	OpIn        Operator = "IN"
	OpNotIn     Operator = "NOT IN"
	OpIsNull    Operator = "IS NULL"
	OpIsNotNull Operator = "IS NOT NULL"
)

// TakesValue reports whether the operator requires a comparison value.
// The null-checking operators render without one.
func (o Operator) TakesValue() bool {
	return o != OpIsNull && o != OpIsNotNull
}

// TakesList reports whether the operator compares against a value list.
func (o Operator) TakesList() bool {
	return o == OpIn || o == OpNotIn
}

// LogicalOperator glues a filter condition to the next one in sequence.
type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "AND"
	LogicalOr  LogicalOperator = "OR"
)

// JoinType identifies the SQL join variant.
type JoinType string

const (
	JoinInner JoinType = "INNER"
	JoinLeft  JoinType = "LEFT"
	JoinRight JoinType = "RIGHT"
	JoinFull  JoinType = "FULL"
)

// SortDirection identifies the ORDER BY direction.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// State is the complete, serializable description of one SELECT query under
// construction. It carries no reference to a live connection and is safe to
// persist and replay.
type State struct {
	Table         string            `json:"table"`
	Schema        string            `json:"schema,omitempty"`
	Distinct      bool              `json:"distinct"`
	SelectColumns []SelectColumn    `json:"selectColumns"`
	Filters       []FilterCondition `json:"filters"`
	Joins         []JoinClause      `json:"joins"`
	OrderBy       []OrderByClause   `json:"orderBy"`
	GroupBy       []string          `json:"groupBy"`
	Limit         *int              `json:"limit,omitempty"`
	Offset        *int              `json:"offset,omitempty"`
}

// SelectColumn is one projected column. An empty SelectColumns slice on the
// state means "all columns" (SELECT *).
type SelectColumn struct {
	Column    string    `json:"column"`
	Alias     string    `json:"alias,omitempty"`
	Aggregate Aggregate `json:"aggregate"`
}

// FilterCondition is one WHERE predicate. LogicalOperator glues this
// condition to the next one in sequence and defaults to AND; it is never
// emitted after the last condition.
type FilterCondition struct {
	Column          string          `json:"column"`
	Operator        Operator        `json:"operator"`
	Value           string          `json:"value"`
	LogicalOperator LogicalOperator `json:"logicalOperator,omitempty"`
}

// JoinClause is a single-condition join, always rendered as
// "<TYPE> JOIN <table> ON <leftColumn> = <rightColumn>".
type JoinClause struct {
	Table       string   `json:"table"`
	Type        JoinType `json:"type"`
	LeftColumn  string   `json:"leftColumn"`
	RightColumn string   `json:"rightColumn"`
}

// OrderByClause is one ORDER BY entry. Priority determines render order
// (ascending), decoupled from slice position so the UI can reorder entries
// without reindexing.
type OrderByClause struct {
	Column    string        `json:"column"`
	Direction SortDirection `json:"direction"`
	Priority  int           `json:"priority"`
}

// NewEmptyState returns a fresh builder state targeting the given table.
// All collections are initialized empty so the state marshals as [] rather
// than null.
func NewEmptyState(table string) *State {
	return &State{
		Table:         table,
		SelectColumns: []SelectColumn{},
		Filters:       []FilterCondition{},
		Joins:         []JoinClause{},
		OrderBy:       []OrderByClause{},
		GroupBy:       []string{},
	}
}
