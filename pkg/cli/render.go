package cli

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var (
	styleDefault = tcell.StyleDefault
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// A row of screen cells.
type row struct {
	runes []rune
	style tcell.Style
}

// Splits runes into rows no wider than width. The returned function maps a
// rune index to its row and column; index len(runes) is the position just
// past the last rune. If that position is past the right edge and withEnd is
// true, an empty row is added to hold it.
func wrap(runes []rune, width int, style tcell.Style, withEnd bool) ([]row, func(int) (int, int)) {
	var rows []row
	var pos [][2]int
	cur := row{style: style}
	col := 0
	for _, r := range runes {
		w := runewidth.RuneWidth(r)
		if col+w > width && col > 0 {
			rows = append(rows, cur)
			cur = row{style: style}
			col = 0
		}
		pos = append(pos, [2]int{len(rows), col})
		cur.runes = append(cur.runes, r)
		col += w
	}
	if withEnd && col >= width {
		rows = append(rows, cur)
		cur = row{style: style}
		col = 0
	}
	pos = append(pos, [2]int{len(rows), col})
	rows = append(rows, cur)
	return rows, func(i int) (int, int) { return pos[i][0], pos[i][1] }
}

// Lays out a snapshot on a screen of the given size. Returns the visible rows
// and the cursor position.
func layout(snap Snapshot, width, height int) (rows []row, cursorX, cursorY int) {
	if width < 1 || height < 1 {
		return nil, 0, 0
	}
	for _, line := range snap.Lines {
		style := styleDefault
		if line.Err {
			style = styleError
		}
		r, _ := wrap([]rune(line.Text), width, style, false)
		rows = append(rows, r...)
	}
	prompt := []rune(snap.Prompt)
	input, locate := wrap(append(prompt, snap.Line...), width, styleDefault, true)
	cy, cx := locate(len(prompt) + snap.Dot)
	cy += len(rows)
	rows = append(rows, input...)

	if skip := len(rows) - height; skip > 0 {
		rows = rows[skip:]
		cy -= skip
	}
	return rows, cx, cy
}

func draw(s tcell.Screen, snap Snapshot) {
	w, h := s.Size()
	s.Clear()
	rows, cx, cy := layout(snap, w, h)
	for y, r := range rows {
		x := 0
		for _, c := range r.runes {
			s.SetContent(x, y, c, nil, r.style)
			x += runewidth.RuneWidth(c)
		}
	}
	s.ShowCursor(cx, cy)
	s.Show()
}
