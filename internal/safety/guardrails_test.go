// gridsite: interconnection node siting engine and MCP server
// SPDX-License-Identifier: MIT
//
// Unit tests for node query checks and identifier quoting.

package safety

import "testing"

func TestQueryIsReadOnly(t *testing.T) {
	cases := []struct {
		q  string
		ro bool
	}{
		{"SELECT * FROM nodes", true},
		{"\n  -- comment\nSELECT * FROM nodes WHERE iso = 'ERCOT'", true},
		{"WITH x AS (SELECT * FROM nodes) SELECT * FROM x", true},
		{"SELECT * FROM nodes;", true},
		{"WITH gone AS (DELETE FROM nodes RETURNING *) SELECT * FROM gone", false},
		{"SELECT 1; DROP TABLE nodes", false},
		{"SHOW work_mem", false},
		{"INSERT INTO t VALUES (1)", false},
		{"UPDATE t SET a=1", false},
		{"COPY t TO '/tmp/x'", false},
	}
	for _, c := range cases {
		if QueryIsReadOnly(c.q) != c.ro {
			t.Fatalf("expected %v for %q", c.ro, c.q)
		}
	}
}

func TestRequireReadOnlyQuery(t *testing.T) {
	if err := RequireReadOnlyQuery("  -- nothing\n"); err == nil {
		t.Fatalf("expected error for empty query")
	}
	if err := RequireReadOnlyQuery("DELETE FROM nodes"); err == nil {
		t.Fatalf("expected error for write query")
	}
	if err := RequireReadOnlyQuery("SELECT * FROM nodes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQuoteQualified(t *testing.T) {
	if got := QuoteQualified("grid.nodes"); got != `"grid"."nodes"` {
		t.Fatalf("got %s", got)
	}
	if got := QuoteIdent(`we"ird`); got != `"we""ird"` {
		t.Fatalf("got %s", got)
	}
}
