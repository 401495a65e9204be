package elementslist

import (
	"context"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// tabLabels names the four tabs in switchTab's fixed order, used only for
// rendering.
var tabLabels = [4]string{"Headings", "Links", "Landmarks", "Form Fields"}

// Run drives the dialog's on-screen loop: render, poll one key, translate
// it, feed the Controller, repeat until a Result is produced. Grounded on
// the teacher's ui.Screen/ui.Termbox split (github.com/peco/peco/ui): all
// terminal calls are isolated here so Controller stays unit-testable
// without a real terminal (see dialog_test.go).
func Run(ctx context.Context, screen tcell.Screen, c *Controller) Result {
	for {
		draw(screen, c)

		select {
		case <-ctx.Done():
			return Result{Cancelled: true}
		default:
		}

		ev := screen.PollEvent()
		key, r, isRune := translateEvent(ev)
		if isRune {
			c.Type(r)
			continue
		}
		if res := c.HandleKey(key); res != nil {
			return *res
		}
	}
}

func translateEvent(ev tcell.Event) (Key, rune, bool) {
	ke, ok := ev.(*tcell.EventKey)
	if !ok {
		return KeyNone, 0, false
	}
	switch ke.Key() {
	case tcell.KeyUp:
		return KeyUp, 0, false
	case tcell.KeyDown:
		return KeyDown, 0, false
	case tcell.KeyTab:
		return KeyNextTab, 0, false
	case tcell.KeyBacktab:
		return KeyPrevTab, 0, false
	case tcell.KeyEnter:
		return KeyEnter, 0, false
	case tcell.KeyEscape:
		return KeyEscape, 0, false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace, 0, false
	case tcell.KeyRune:
		return KeyNone, ke.Rune(), true
	default:
		return KeyNone, 0, false
	}
}

func draw(screen tcell.Screen, c *Controller) {
	screen.Clear()
	width, height := screen.Size()

	header := tabLabels[c.Tab()] + "  filter: " + c.FilterText()
	drawText(screen, 0, 0, width, header, tcell.StyleDefault.Bold(true))

	entries := c.Entries()
	selected := c.Selected()
	for row := 1; row < height-1 && row-1 < len(entries); row++ {
		style := tcell.StyleDefault
		if row-1 == selected {
			style = style.Reverse(true)
		}
		line := strconv.Itoa(row) + ". " + entries[row-1].Display
		drawText(screen, 0, row, width, line, style)
	}

	screen.Show()
}

// drawText advances by each rune's display width rather than one column per
// rune, matching the teacher's runewidth.RuneWidth accounting (layout.go),
// so a row of wide (e.g. CJK) element names truncates at the dialog's true
// column boundary instead of overflowing it.
func drawText(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		if col+w > maxWidth {
			break
		}
		screen.SetContent(col, y, r, nil, style)
		col += w
	}
}
