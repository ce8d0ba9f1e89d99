package explorer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Browse pages through a table's rows with LIMIT/OFFSET, returning rows as
// generic column-to-value maps alongside a total row count.
func (si *SQLIntrospector) Browse(ctx context.Context, schema, table string, limit, offset int) (*RowPage, error) {
	target := si.qb.QualifiedTable(schema, table)

	countQuery, countArgs, err := si.qb.Select("COUNT(*)").From(target).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count query: %w", err)
	}
	var total int64
	if err := si.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	query, args, err := si.qb.Select("*").
		From(target).
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build browse query: %w", err)
	}

	rows, err := si.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to browse rows: %w", err)
	}
	defer rows.Close()

	page, err := ScanRows(rows, limit)
	if err != nil {
		return nil, err
	}
	page.Total = total
	return page, nil
}

// UpdateRow updates the columns in changes on the single row identified by
// key (typically the primary key). Returns the number of affected rows.
func (si *SQLIntrospector) UpdateRow(ctx context.Context, schema, table string, key, changes map[string]any) (int64, error) {
	if len(key) == 0 {
		return 0, fmt.Errorf("update requires a row key")
	}
	if len(changes) == 0 {
		return 0, fmt.Errorf("update requires at least one changed column")
	}

	b := si.qb.Update(si.qb.QualifiedTable(schema, table)).SetMap(changes)
	for column, value := range key {
		b = b.Where(squirrel.Eq{si.qb.QuoteIdentifier(column): value})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build update query: %w", err)
	}
	result, err := si.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update row: %w", err)
	}
	return result.RowsAffected()
}

// DeleteRow deletes the single row identified by key. Returns the number of
// affected rows.
func (si *SQLIntrospector) DeleteRow(ctx context.Context, schema, table string, key map[string]any) (int64, error) {
	if len(key) == 0 {
		return 0, fmt.Errorf("delete requires a row key")
	}

	b := si.qb.Delete(si.qb.QualifiedTable(schema, table))
	for column, value := range key {
		b = b.Where(squirrel.Eq{si.qb.QuoteIdentifier(column): value})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}
	result, err := si.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete row: %w", err)
	}
	return result.RowsAffected()
}

// ScanRows drains up to max rows from a generic result set into
// column-to-value maps. Byte slices are converted to strings so the result
// marshals as text rather than base64.
func ScanRows(rows *sql.Rows, max int) (*RowPage, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	page := &RowPage{Columns: columns, Rows: []map[string]any{}}
	for rows.Next() {
		if max > 0 && len(page.Rows) >= max {
			break
		}
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[col] = v
		}
		page.Rows = append(page.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	page.Total = int64(len(page.Rows))
	return page, nil
}
