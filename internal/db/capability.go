package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	dbsql "gridsite/internal/db/sql"
)

// TableInfo describes the node table as PostgreSQL sees it.
type TableInfo struct {
	Name            string   `json:"name"`
	Columns         []string `json:"columns"`
	EstimatedRows   int64    `json:"estimated_rows"`
	PostgresVersion string   `json:"postgres_version"`
}

// DescribeTable lists the columns of a possibly schema-qualified table.
// A table that does not exist yields no columns and no error.
func DescribeTable(ctx context.Context, pool *pgxpool.Pool, name string) (*TableInfo, error) {
	schema, table := splitQualified(name)
	rows, err := pool.Query(ctx, dbsql.QueryTableColumns, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	info := &TableInfo{Name: name}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		info.Columns = append(info.Columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := pool.QueryRow(ctx, dbsql.QueryTableRowEstimate, name).Scan(&info.EstimatedRows); err != nil {
		return nil, err
	}
	v, err := GetServerVersion(ctx, pool)
	if err != nil {
		return nil, err
	}
	info.PostgresVersion = v
	return info, nil
}

func GetServerVersion(ctx context.Context, pool *pgxpool.Pool) (string, error) {
	var v string
	if err := pool.QueryRow(ctx, dbsql.QueryServerVersion).Scan(&v); err != nil {
		return "", err
	}
	return v, nil
}

func splitQualified(name string) (*string, string) {
	if i := strings.LastIndex(name, "."); i > 0 {
		schema := name[:i]
		return &schema, name[i+1:]
	}
	return nil, name
}
