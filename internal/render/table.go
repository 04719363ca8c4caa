// gridsite: interconnection node siting engine and MCP server
// SPDX-License-Identifier: MIT
//
// Plain column layout on top of lipgloss styles.

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// table is a header row plus data rows. Columns listed in right are
// right-aligned.
type table struct {
	title   string
	headers []string
	rows    [][]string
	right   map[int]bool
}

func (t *table) add(cells ...string) { t.rows = append(t.rows, cells) }

func (t *table) widths() []int {
	w := make([]int, len(t.headers))
	for i, h := range t.headers {
		w[i] = lipgloss.Width(h)
	}
	for _, r := range t.rows {
		for i := range w {
			if i < len(r) && lipgloss.Width(r[i]) > w[i] {
				w[i] = lipgloss.Width(r[i])
			}
		}
	}
	return w
}

func (t *table) line(style lipgloss.Style, cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		s := style.Width(w + 2)
		if t.right[i] {
			s = s.Align(lipgloss.Right)
		}
		parts[i] = s.Render(cell)
	}
	return strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, parts...), " ")
}

func (t *table) String() string {
	widths := t.widths()
	var b strings.Builder
	if t.title != "" {
		b.WriteString(styleTitle.Render(t.title))
		b.WriteByte('\n')
	}
	b.WriteString(t.line(styleHeader, t.headers, widths))
	b.WriteByte('\n')
	for _, r := range t.rows {
		b.WriteString(t.line(styleCell, r, widths))
		b.WriteByte('\n')
	}
	return b.String()
}

func (t *table) write(w io.Writer) error {
	_, err := io.WriteString(w, t.String())
	return err
}

func f3(v float64) string { return fmt.Sprintf("%.3f", v) }

func pct(v float64) string { return fmt.Sprintf("%.1f%%", v*100) }
