package dataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gridsite/internal/db"
	serr "gridsite/internal/errors"
	"gridsite/internal/nodes"
	"gridsite/internal/safety"
)

// LoadPostgres reads the node table from PostgreSQL. When query is set it
// is run as given (it must be read-only); otherwise the known columns of
// table are selected, ordered by node id so reloads are deterministic.
func LoadPostgres(ctx context.Context, pool *pgxpool.Pool, table, query string) (nodes.Table, error) {
	if query == "" {
		info, err := db.DescribeTable(ctx, pool, table)
		if err != nil {
			return nodes.Table{}, fmt.Errorf("describe %s: %w", table, err)
		}
		if len(info.Columns) == 0 {
			return nodes.Table{}, serr.NewDataUnavailable(table, fmt.Errorf("table %s not found", table))
		}
		query = selectKnown(table, nodes.KnownColumns(info.Columns))
	} else if err := safety.RequireReadOnlyQuery(query); err != nil {
		return nodes.Table{}, err
	}

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nodes.Table{}, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func selectKnown(table string, cols []string) string {
	quoted := make([]string, len(cols))
	hasNode := false
	for i, c := range cols {
		quoted[i] = safety.QuoteIdent(c)
		hasNode = hasNode || c == nodes.ColNode
	}
	if len(quoted) == 0 {
		quoted = []string{"*"}
	}
	q := "SELECT " + strings.Join(quoted, ", ") + " FROM " + safety.QuoteQualified(table)
	if hasNode {
		q += " ORDER BY " + safety.QuoteIdent(nodes.ColNode)
	}
	return q
}

func scanRows(rows pgx.Rows) (nodes.Table, error) {
	fields := rows.FieldDescriptions()
	header := make([]string, len(fields))
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		header[i] = f.Name
		index[nodes.NormalizeColumn(f.Name)] = i
	}
	t := nodes.Table{Columns: nodes.KnownColumns(header)}
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
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

func lookup(index map[string]int, vals []any) nodes.Getter {
	return func(col string) (any, bool) {
		i, ok := index[col]
		if !ok || i >= len(vals) {
			return nil, false
		}
		return vals[i], true
	}
}
