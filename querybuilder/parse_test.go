package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSQLRecoversTableAndLimit(t *testing.T) {
	state := NewEmptyState("t")
	state.Limit = intPtr(10)

	parsed := ParseSQL(GenerateSQL(state, PostgreSQL))

	require.NotNil(t, parsed)
	assert.Equal(t, "t", parsed.Table)
	require.NotNil(t, parsed.Limit)
	assert.Equal(t, 10, *parsed.Limit)
	assert.Nil(t, parsed.Offset)
}

func TestParseSQLExtractsSchemaQualifier(t *testing.T) {
	parsed := ParseSQL(`SELECT * FROM "analytics"."events" LIMIT 5 OFFSET 15`)

	require.NotNil(t, parsed)
	assert.Equal(t, "analytics", parsed.Schema)
	assert.Equal(t, "events", parsed.Table)
	require.NotNil(t, parsed.Limit)
	assert.Equal(t, 5, *parsed.Limit)
	require.NotNil(t, parsed.Offset)
	assert.Equal(t, 15, *parsed.Offset)
}

func TestParseSQLDetectsDistinct(t *testing.T) {
	parsed := ParseSQL("SELECT DISTINCT name FROM users")

	require.NotNil(t, parsed)
	assert.True(t, parsed.Distinct)
	assert.Equal(t, "users", parsed.Table)
}

func TestParseSQLHandlesBacktickedIdentifiers(t *testing.T) {
	parsed := ParseSQL("SELECT * FROM `user data`")

	require.NotNil(t, parsed)
	assert.Equal(t, "user data", parsed.Table)
}

func TestParseSQLReturnsNilNeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"DROP TABLE users",
		"not sql at all",
		"SELECT 1",
		"FROM",
	}

	for _, input := range inputs {
		assert.Nil(t, ParseSQL(input), "input %q", input)
	}
}

func TestParseSQLIsLossy(t *testing.T) {
	state := NewEmptyState("users")
	state.Filters = []FilterCondition{{Column: "age", Operator: OpGt, Value: "25"}}
	state.OrderBy = []OrderByClause{{Column: "age", Direction: SortDesc, Priority: 1}}

	parsed := ParseSQL(GenerateSQL(state, PostgreSQL))

	require.NotNil(t, parsed)
	assert.Equal(t, "users", parsed.Table)
	assert.Empty(t, parsed.Filters)
	assert.Empty(t, parsed.OrderBy)
}
