package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/mj1618/hud-a11y/internal/hud"
	"github.com/mj1618/hud-a11y/internal/model"
)

var (
	styleDefault = tcell.StyleDefault
	styleHeader  = tcell.StyleDefault.Bold(true)
	styleFocused = tcell.StyleDefault.Reverse(true)
	styleMuted   = tcell.StyleDefault.Dim(true)
	styleMenu    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

const (
	menuWidth      = 28
	narrationLines = 5
)

// Draw renders the accessible tree, the open context menu and the most
// recent narration.
func Draw(screen tcell.Screen, snap hud.Snapshot, nodes []model.FlatNode) {
	screen.Clear()
	w, h := screen.Size()

	header := model.RootName
	if snap.State.Focused {
		header += " (focused)"
	} else {
		header += " (tab: enter, m: menu, q: quit)"
	}
	drawText(screen, 0, 0, w, header, styleHeader)

	treeWidth := w
	if snap.ContextMenu != nil && w > menuWidth*2 {
		treeWidth = w - menuWidth - 1
	}
	bottom := h - narrationLines - 1
	for i, n := range nodes {
		y := i + 2
		if y >= bottom {
			break
		}
		style := styleDefault
		if n.Path == snap.State.Path {
			style = styleMuted
			if snap.State.Focused {
				style = styleFocused
			}
		}
		drawText(screen, n.Depth*2, y, treeWidth, nodeLine(n), style)
	}

	if snap.ContextMenu != nil {
		drawMenu(screen, treeWidth+1, 2, snap)
	}

	if bottom > 0 {
		drawText(screen, 0, bottom, w, strings.Repeat("─", w), styleMuted)
	}
	msgs := snap.Narration
	if len(msgs) > narrationLines {
		msgs = msgs[len(msgs)-narrationLines:]
	}
	for i, m := range msgs {
		drawText(screen, 0, bottom+1+i, w, m, styleDefault)
	}
	screen.Show()
}

func nodeLine(n model.FlatNode) string {
	line := n.Role.String() + " " + n.Name
	if n.State != "" {
		line += " [" + n.State + "]"
	}
	return line
}

func drawMenu(screen tcell.Screen, x, y int, snap hud.Snapshot) {
	menu := snap.ContextMenu
	right := x + menuWidth
	drawText(screen, x, y, right, "┌ "+menu.WidgetID, styleMenu)
	for i, b := range menu.Buttons {
		drawText(screen, x, y+1+i, right, "│ "+b, styleMenu)
	}
	drawText(screen, x, y+1+len(menu.Buttons), right, "└", styleMenu)
}

// drawText writes s at (x, y), clipped before column right.
func drawText(screen tcell.Screen, x, y, right int, s string, style tcell.Style) {
	if x < 0 || right <= x {
		return
	}
	s = runewidth.Truncate(s, right-x, "…")
	col := x
	for _, r := range s {
		screen.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
}
