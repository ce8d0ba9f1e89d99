package explorer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"golang.org/x/sync/errgroup"

	"github.com/CharlieGitDB/database-studio/database"
	"github.com/CharlieGitDB/database-studio/database/types"
)

// SQLIntrospector reads schema metadata for MySQL and PostgreSQL through
// information_schema (plus pg_catalog for index details). All queries use
// bound parameters via the vendor-aware query builder.
type SQLIntrospector struct {
	db types.Interface
	qb *database.QueryBuilder
}

// NewSQLIntrospector creates an introspector bound to one SQL connection.
func NewSQLIntrospector(db types.Interface) *SQLIntrospector {
	return &SQLIntrospector{
		db: db,
		qb: database.NewQueryBuilder(db.DatabaseType()),
	}
}

func (si *SQLIntrospector) vendor() string {
	return si.qb.Vendor()
}

// Schemas lists user-visible schemas (databases, in MySQL terms), hiding
// the engine's own catalogs.
func (si *SQLIntrospector) Schemas(ctx context.Context) ([]string, error) {
	b := si.qb.Select("schema_name").
		From("information_schema.schemata").
		OrderBy("schema_name")

	if si.vendor() == types.MySQL {
		b = b.Where(squirrel.NotEq{"schema_name": []string{
			"information_schema", "performance_schema", "mysql", "sys",
		}})
	} else {
		b = b.Where("schema_name NOT LIKE 'pg_%'").
			Where(squirrel.NotEq{"schema_name": "information_schema"})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build schema query: %w", err)
	}
	return si.queryStrings(ctx, query, args)
}

// Tables lists base tables in a schema.
func (si *SQLIntrospector) Tables(ctx context.Context, schema string) ([]string, error) {
	query, args, err := si.qb.Select("table_name").
		From("information_schema.tables").
		Where(squirrel.Eq{"table_schema": schema}).
		Where(squirrel.Eq{"table_type": "BASE TABLE"}).
		OrderBy("table_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build table query: %w", err)
	}
	return si.queryStrings(ctx, query, args)
}

// Columns lists a table's columns with nullability and key flags. Two
// catalog queries run: one for the column shapes, one for the key usage
// that marks primary and foreign keys.
func (si *SQLIntrospector) Columns(ctx context.Context, schema, table string) ([]Column, error) {
	query, args, err := si.qb.Select("column_name", "data_type", "is_nullable").
		From("information_schema.columns").
		Where(squirrel.Eq{"table_schema": schema}).
		Where(squirrel.Eq{"table_name": table}).
		OrderBy("ordinal_position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build column query: %w", err)
	}

	rows, err := si.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var name, dataType, nullable string
		if err := rows.Scan(&name, &dataType, &nullable); err != nil {
			return nil, fmt.Errorf("failed to scan column row: %w", err)
		}
		columns = append(columns, Column{
			Name:     name,
			DataType: dataType,
			Nullable: nullable == "YES",
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	keys, err := si.keyUsage(ctx, schema, table)
	if err != nil {
		return nil, err
	}
	for i := range columns {
		if k, ok := keys[columns[i].Name]; ok {
			columns[i].PrimaryKey = k.primary
			columns[i].ForeignKey = k.foreign
			columns[i].ReferencedTable = k.refTable
			columns[i].ReferencedColumn = k.refColumn
		}
	}
	return columns, nil
}

type keyFlags struct {
	primary   bool
	foreign   bool
	refTable  string
	refColumn string
}

func (si *SQLIntrospector) keyUsage(ctx context.Context, schema, table string) (map[string]keyFlags, error) {
	var b squirrel.SelectBuilder
	if si.vendor() == types.MySQL {
		b = si.qb.Select(
			"kcu.column_name",
			"tc.constraint_type",
			"kcu.referenced_table_name",
			"kcu.referenced_column_name",
		).
			From("information_schema.key_column_usage kcu").
			Join("information_schema.table_constraints tc ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema").
			Where(squirrel.Eq{"kcu.table_schema": schema}).
			Where(squirrel.Eq{"kcu.table_name": table})
	} else {
		b = si.qb.Select(
			"kcu.column_name",
			"tc.constraint_type",
			"ccu.table_name",
			"ccu.column_name",
		).
			From("information_schema.table_constraints tc").
			Join("information_schema.key_column_usage kcu ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema").
			LeftJoin("information_schema.constraint_column_usage ccu ON ccu.constraint_name = tc.constraint_name AND tc.constraint_type = 'FOREIGN KEY'").
			Where(squirrel.Eq{"tc.table_schema": schema}).
			Where(squirrel.Eq{"tc.table_name": table})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build key usage query: %w", err)
	}

	rows, err := si.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query key usage: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]keyFlags)
	for rows.Next() {
		var column, constraintType string
		var refTable, refColumn sql.NullString
		if err := rows.Scan(&column, &constraintType, &refTable, &refColumn); err != nil {
			return nil, fmt.Errorf("failed to scan key usage row: %w", err)
		}
		k := keys[column]
		switch constraintType {
		case "PRIMARY KEY":
			k.primary = true
		case "FOREIGN KEY":
			k.foreign = true
			k.refTable = refTable.String
			k.refColumn = refColumn.String
		}
		keys[column] = k
	}
	return keys, rows.Err()
}

// Indexes lists a table's indexes. MySQL reads information_schema.statistics;
// PostgreSQL walks pg_catalog since information_schema omits index columns.
func (si *SQLIntrospector) Indexes(ctx context.Context, schema, table string) ([]Index, error) {
	var b squirrel.SelectBuilder
	if si.vendor() == types.MySQL {
		b = si.qb.Select("index_name", "column_name", "non_unique").
			From("information_schema.statistics").
			Where(squirrel.Eq{"table_schema": schema}).
			Where(squirrel.Eq{"table_name": table}).
			OrderBy("index_name", "seq_in_index")
	} else {
		b = si.qb.Select("i.relname", "a.attname", "ix.indisunique").
			From("pg_index ix").
			Join("pg_class i ON i.oid = ix.indexrelid").
			Join("pg_class t ON t.oid = ix.indrelid").
			Join("pg_namespace n ON n.oid = t.relnamespace").
			Join("pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)").
			Where(squirrel.Eq{"n.nspname": schema}).
			Where(squirrel.Eq{"t.relname": table}).
			OrderBy("i.relname")
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build index query: %w", err)
	}

	rows, err := si.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query indexes: %w", err)
	}
	defer rows.Close()

	byName := make(map[string]*Index)
	var order []string
	for rows.Next() {
		var index Index
		var name, column string
		if si.vendor() == types.MySQL {
			var nonUnique int
			if err := rows.Scan(&name, &column, &nonUnique); err != nil {
				return nil, fmt.Errorf("failed to scan index row: %w", err)
			}
			index.Unique = nonUnique == 0
		} else {
			var unique bool
			if err := rows.Scan(&name, &column, &unique); err != nil {
				return nil, fmt.Errorf("failed to scan index row: %w", err)
			}
			index.Unique = unique
		}

		existing, ok := byName[name]
		if !ok {
			index.Name = name
			byName[name] = &index
			order = append(order, name)
			existing = &index
		}
		existing.Columns = append(existing.Columns, column)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	indexes := make([]Index, 0, len(order))
	for _, name := range order {
		indexes = append(indexes, *byName[name])
	}
	return indexes, nil
}

// Details fetches a table's columns and indexes concurrently.
func (si *SQLIntrospector) Details(ctx context.Context, schema, table string) (*TableDetails, error) {
	details := &TableDetails{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		columns, err := si.Columns(gctx, schema, table)
		if err != nil {
			return err
		}
		details.Columns = columns
		return nil
	})
	g.Go(func() error {
		indexes, err := si.Indexes(gctx, schema, table)
		if err != nil {
			return err
		}
		details.Indexes = indexes
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}

func (si *SQLIntrospector) queryStrings(ctx context.Context, query string, args []any) ([]string, error) {
	rows, err := si.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("introspection query failed: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan introspection row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
