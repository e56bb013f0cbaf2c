// Copyright (C) 2024  The tidymd Authors
//
// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE.  See the GNU General Public License for more
// details.
//
// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <https://www.gnu.org/licenses/>.

package markdown

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// visitTable pads every column to the display width of its widest cell.
func visitTable(c *Compiler, n ast.Node) (string, error) {
	table := n.(*east.Table)
	var rows [][]string
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			s, err := c.Inlines(cell)
			if err != nil {
				return "", err
			}
			cells = append(cells, strings.TrimSpace(strings.ReplaceAll(s, "\n", " ")))
		}
		rows = append(rows, cells)
	}
	columns := len(table.Alignments)
	for _, cells := range rows {
		if len(cells) > columns {
			columns = len(cells)
		}
	}
	widths := make([]int, columns)
	for i := range widths {
		widths[i] = 3
	}
	for _, cells := range rows {
		for i, cell := range cells {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	align := func(i int) east.Alignment {
		if i < len(table.Alignments) {
			return table.Alignments[i]
		}
		return east.AlignNone
	}

	var lines []string
	for r, cells := range rows {
		padded := make([]string, columns)
		for i := range padded {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			padded[i] = pad(cell, widths[i], align(i))
		}
		lines = append(lines, "| "+strings.Join(padded, " | ")+" |")
		if r == 0 {
			lines = append(lines, delimiterRow(widths, align))
		}
	}
	return strings.Join(lines, "\n"), nil
}

func pad(s string, width int, a east.Alignment) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	switch a {
	case east.AlignRight:
		return strings.Repeat(" ", gap) + s
	case east.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}

func delimiterRow(widths []int, align func(int) east.Alignment) string {
	cells := make([]string, len(widths))
	for i, w := range widths {
		switch align(i) {
		case east.AlignLeft:
			cells[i] = ":" + strings.Repeat("-", w-1)
		case east.AlignRight:
			cells[i] = strings.Repeat("-", w-1) + ":"
		case east.AlignCenter:
			cells[i] = ":" + strings.Repeat("-", w-2) + ":"
		default:
			cells[i] = strings.Repeat("-", w)
		}
	}
	return "| " + strings.Join(cells, " | ") + " |"
}
