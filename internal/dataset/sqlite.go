package dataset

import (
	"context"
	"database/sql"
	"fmt"

	"gridsite/internal/nodes"
	"gridsite/internal/safety"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// LoadSQLite reads the node table from a SQLite database file, in rowid
// order. The database is opened read-only.
func LoadSQLite(ctx context.Context, path, table string) (nodes.Table, error) {
	conn, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nodes.Table{}, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	defer conn.Close()
	conn.SetMaxOpenConns(1)

	rows, err := conn.QueryContext(ctx, "SELECT * FROM "+safety.QuoteIdent(table)+" ORDER BY rowid")
	if err != nil {
		return nodes.Table{}, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nodes.Table{}, err
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[nodes.NormalizeColumn(h)] = i
	}
	t := nodes.Table{Columns: nodes.KnownColumns(header)}
	vals := make([]any, len(header))
	ptrs := make([]any, len(header))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nodes.Table{}, err
		}
		n, err := nodes.DecodeRow(lookup(index, vals))
		if err != nil {
			return nodes.Table{}, fmt.Errorf("row %d: %w", len(t.Rows)+1, err)
		}
		t.Rows = append(t.Rows, n)
	}
	if err := rows.Err(); err != nil {
		return nodes.Table{}, err
	}
	return t, nil
}
