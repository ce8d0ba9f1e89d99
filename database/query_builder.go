// Package database provides the connection pool and parameterized query
// building for the SQL the service runs on its own behalf (schema
// introspection and data browsing). Display SQL assembled from UI state is
// the querybuilder package's job; everything here goes through bound
// parameters.
package database

import (
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/CharlieGitDB/database-studio/database/types"
)

// QueryBuilder wraps squirrel.StatementBuilderType with vendor-specific
// placeholder formats and identifier quoting.
type QueryBuilder struct {
	vendor           types.Vendor
	statementBuilder squirrel.StatementBuilderType
}

// NewQueryBuilder creates a query builder for the given SQL vendor.
// PostgreSQL uses $1, $2, ... placeholders; MySQL keeps question marks.
func NewQueryBuilder(vendor types.Vendor) *QueryBuilder {
	sb := squirrel.StatementBuilder
	if vendor == types.PostgreSQL {
		sb = sb.PlaceholderFormat(squirrel.Dollar)
	}
	return &QueryBuilder{
		vendor:           vendor,
		statementBuilder: sb,
	}
}

// Vendor returns the database vendor string
func (qb *QueryBuilder) Vendor() string {
	return qb.vendor
}

// Select creates a SELECT builder for the given columns.
func (qb *QueryBuilder) Select(columns ...string) squirrel.SelectBuilder {
	return qb.statementBuilder.Select(columns...)
}

// Update creates an UPDATE builder for the given table.
func (qb *QueryBuilder) Update(table string) squirrel.UpdateBuilder {
	return qb.statementBuilder.Update(table)
}

// Delete creates a DELETE builder for the given table.
func (qb *QueryBuilder) Delete(table string) squirrel.DeleteBuilder {
	return qb.statementBuilder.Delete(table)
}

// Insert creates an INSERT builder for the given table.
func (qb *QueryBuilder) Insert(table string) squirrel.InsertBuilder {
	return qb.statementBuilder.Insert(table)
}

// QuoteIdentifier escapes a possibly dot-qualified identifier according to
// vendor rules, skipping segments that are already quoted.
func (qb *QueryBuilder) QuoteIdentifier(identifier string) string {
	quote := `"`
	if qb.vendor == types.MySQL {
		quote = "`"
	}
	parts := strings.Split(identifier, ".")
	for i, part := range parts {
		if len(part) >= 2 && strings.HasPrefix(part, quote) && strings.HasSuffix(part, quote) {
			continue
		}
		parts[i] = quote + strings.ReplaceAll(part, quote, quote+quote) + quote
	}
	return strings.Join(parts, ".")
}

// QualifiedTable renders a schema-qualified, quoted table reference. The
// schema part is omitted when empty.
func (qb *QueryBuilder) QualifiedTable(schema, table string) string {
	if schema == "" {
		return qb.QuoteIdentifier(table)
	}
	return qb.QuoteIdentifier(schema) + "." + qb.QuoteIdentifier(table)
}
