// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

// parsedTable is a GFM table reduced to plain cell text.
type parsedTable struct {
	header []string
	rows   [][]string
	align  []extast.Alignment
}

// tableFrom reduces a goldmark table node to its cell text.
func tableFrom(tbl *extast.Table, source []byte) parsedTable {
	pt := parsedTable{align: tbl.Alignments}
	for row := tbl.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, strings.TrimSpace(inlineText(cell, source)))
		}
		switch row.(type) {
		case *extast.TableHeader:
			pt.header = cells
		case *extast.TableRow:
			pt.rows = append(pt.rows, cells)
		}
	}
	return pt
}

// inlineText flattens the inline children of n to text.
func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		case *ast.AutoLink:
			b.Write(v.URL(source))
		default:
			b.WriteString(inlineText(c, source))
		}
	}
	return b.String()
}

// renderTable draws a GFM table with bordered cells.
func (r *Renderer) renderTable(pt parsedTable, width int) string {
	cols := len(pt.header)
	mathStyle := r.style(ElementMath)
	cell := func(s string) string {
		if r.opts.Extensions.Has(ExtMath) {
			s, spans := extractInlineMath(s)
			return restoreInlineMath(s, spans, mathStyle)
		}
		return s
	}

	header := make([]string, cols)
	for i, h := range pt.header {
		header[i] = cell(h)
	}
	rows := make([][]string, 0, len(pt.rows))
	for _, row := range pt.rows {
		padded := make([]string, cols)
		for i := 0; i < cols && i < len(row); i++ {
			padded[i] = cell(row[i])
		}
		rows = append(rows, padded)
	}

	headerStyle := r.style(ElementTableHeaderCell)
	dataStyle := r.style(ElementTableDataCell)
	build := func() *table.Table {
		return table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(r.style(ElementTable)).
			BorderRow(true).
			Headers(header...).
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				s := dataStyle
				if row == table.HeaderRow {
					s = headerStyle
				}
				if col < len(pt.align) {
					s = s.Align(position(pt.align[col]))
				}
				return s
			})
	}

	out := build().Render()
	if lipgloss.Width(out) > width {
		out = build().Width(width).Render()
	}
	return out
}

func position(a extast.Alignment) lipgloss.Position {
	switch a {
	case extast.AlignRight:
		return lipgloss.Right
	case extast.AlignCenter:
		return lipgloss.Center
	default:
		return lipgloss.Left
	}
}
