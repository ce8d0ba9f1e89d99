package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CharlieGitDB/database-studio/database/types"
)

func TestNewQueryBuilderPlaceholderFormats(t *testing.T) {
	pg := NewQueryBuilder(types.PostgreSQL)
	query, args, err := pg.Select("id").From("users").Where("name = ?", "a").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM users WHERE name = $1", query)
	assert.Equal(t, []any{"a"}, args)

	my := NewQueryBuilder(types.MySQL)
	query, _, err = my.Select("id").From("users").Where("name = ?", "a").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM users WHERE name = ?", query)
}

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		vendor     types.Vendor
		identifier string
		expected   string
	}{
		{"postgresql simple", types.PostgreSQL, "users", `"users"`},
		{"postgresql qualified", types.PostgreSQL, "public.users", `"public"."users"`},
		{"postgresql embedded quote", types.PostgreSQL, `odd"name`, `"odd""name"`},
		{"postgresql already quoted", types.PostgreSQL, `"users"`, `"users"`},
		{"mysql simple", types.MySQL, "users", "`users`"},
		{"mysql qualified", types.MySQL, "app.users", "`app`.`users`"},
		{"mysql already quoted", types.MySQL, "`users`", "`users`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qb := NewQueryBuilder(tt.vendor)
			assert.Equal(t, tt.expected, qb.QuoteIdentifier(tt.identifier))
		})
	}
}

func TestQualifiedTable(t *testing.T) {
	qb := NewQueryBuilder(types.PostgreSQL)
	assert.Equal(t, `"public"."users"`, qb.QualifiedTable("public", "users"))
	assert.Equal(t, `"users"`, qb.QualifiedTable("", "users"))
}

func TestVendor(t *testing.T) {
	assert.Equal(t, types.MySQL, NewQueryBuilder(types.MySQL).Vendor())
}
