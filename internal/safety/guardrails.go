package safety

import (
	"strings"

	serr "gridsite/internal/errors"
)

// writeKeywords disqualify a statement anywhere in its text, which catches
// data-modifying CTEs such as WITH x AS (DELETE ...) SELECT ...
var writeKeywords = []string{"insert", "update", "delete", "merge", "truncate", "drop", "alter", "create", "grant", "copy", "call"}

// RequireReadOnlyQuery rejects a configured node query unless it is a
// single read-only statement.
func RequireReadOnlyQuery(sql string) error {
	if strings.TrimSpace(stripLeadingComments(sql)) == "" {
		return serr.NewConfiguration("nodes_query is empty", "provide a SELECT statement", nil)
	}
	if !QueryIsReadOnly(sql) {
		return serr.NewConfiguration("nodes_query must be a single read-only SELECT", "write statements are never executed against the node source", nil)
	}
	return nil
}

// QueryIsReadOnly returns true if the statement appears to be read-only (best-effort classification).
func QueryIsReadOnly(sql string) bool {
	kw := firstKeyword(sql)
	if kw == "" {
		return true
	}
	switch strings.ToLower(kw) {
	case "select", "values":
	case "with":
		if containsWord(sql, writeKeywords) {
			return false
		}
	default:
		return false
	}
	// one statement only; a trailing semicolon is fine
	body := strings.TrimRight(strings.TrimSpace(sql), ";")
	return !strings.Contains(body, ";")
}

// firstKeyword strips leading comments/whitespace and returns the first token.
func firstKeyword(sql string) string {
	s := stripLeadingComments(sql)
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// split on whitespace or '(' or ';'
	for i, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '(' || r == ';' {
			return s[:i]
		}
	}
	return s
}

func containsWord(sql string, words []string) bool {
	fields := strings.FieldsFunc(strings.ToLower(sql), func(r rune) bool {
		return !(r == '_' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	for _, f := range fields {
		for _, w := range words {
			if f == w {
				return true
			}
		}
	}
	return false
}

// stripLeadingComments removes leading SQL comments (-- or /* */) and whitespace.
func stripLeadingComments(sql string) string {
	s := sql
	for {
		s = strings.TrimLeft(s, "\t\n\r ")
		if strings.HasPrefix(s, "--") {
			if idx := strings.IndexAny(s, "\n\r"); idx >= 0 {
				s = s[idx:]
			} else {
				return ""
			}
			continue
		}
		if strings.HasPrefix(s, "/*") {
			if idx := strings.Index(s, "*/"); idx >= 0 {
				s = s[idx+2:]
				continue
			}
			return ""
		}
		return s
	}
}
