package dbsql

const (
	QueryServerVersion = "SHOW server_version"
	// $1 schema (NULL searches the search_path), $2 table name
	QueryTableColumns = `SELECT column_name
FROM information_schema.columns
WHERE table_name = $2
  AND ($1::text IS NULL AND table_schema = ANY (current_schemas(false)) OR table_schema = $1)
ORDER BY ordinal_position`
	QueryTableRowEstimate = "SELECT COALESCE((SELECT GREATEST(reltuples, 0)::bigint FROM pg_class WHERE oid = to_regclass($1)), 0)"
)
