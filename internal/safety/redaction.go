// gridsite: interconnection node siting engine and MCP server
// SPDX-License-Identifier: MIT
//
// Sensitive data redaction and identifier quoting for dataset sources.

package safety

import (
	"net/url"
	"strings"
)

func RedactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return dsn
	}
	if u.User != nil {
		if _, hasPwd := u.User.Password(); hasPwd {
			u.User = url.UserPassword(u.User.Username(), "***")
		}
	}
	return u.String()
}

// QuoteIdent performs a minimal identifier quoting for SQL identifiers.
// For safety, it doubles internal quotes.
func QuoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// QuoteQualified quotes a possibly schema-qualified name such as
// "grid.nodes" part by part.
func QuoteQualified(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = QuoteIdent(strings.TrimSpace(p))
	}
	return strings.Join(parts, ".")
}
