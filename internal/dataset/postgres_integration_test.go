// gridsite: interconnection node siting engine and MCP server
// SPDX-License-Identifier: MIT
//
// PostgreSQL loader tests against a live database.

//go:build integration

package dataset

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridsite/internal/config"
	"gridsite/internal/db"
)

func TestLoadPostgres(t *testing.T) {
	dsn := os.Getenv("GRIDSITE_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("GRIDSITE_TEST_PG_DSN not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := config.Config{
		NodesSource:           dsn,
		ConnectTimeoutSeconds: 5,
		StatementTimeoutMs:    10000,
		AppName:               "gridsite-test",
	}
	pool, err := db.NewPool(ctx, cfg)
	require.NoError(t, err)
	defer pool.Close()

	tbl, err := LoadPostgres(ctx, pool, "", `SELECT 'N1' AS node, 'TX' AS state, 24.5::float8 AS avg_lmp
		UNION ALL SELECT 'N2', 'CA', NULL`)
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "N1", tbl.Rows[0].Node)
	assert.Equal(t, 24.5, tbl.Rows[0].AvgLMP.Float64)
	assert.False(t, tbl.Rows[1].AvgLMP.Valid)

	_, err = LoadPostgres(ctx, pool, "", "DELETE FROM nodes")
	require.Error(t, err)
}
