package match3

import (
	"fmt"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

const (
	cellWidth   = 3 // Marker, glyph, marker
	hudHeight   = 3
	hudMinWidth = 32
)

// tokenGlyph returns the rune and color used to draw a token.
func tokenGlyph(t core.TokenType) (rune, platformcore.Color) {
	switch t {
	case core.TokenCar:
		return 'C', platformcore.ColorRed
	case core.TokenFuel:
		return 'F', platformcore.ColorYellow
	case core.TokenFlower:
		return '✿', platformcore.ColorMagenta
	case core.TokenBlock:
		return '■', platformcore.ColorGray
	default:
		return ' ', platformcore.ColorDefault
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	if g.view.grid == nil {
		g.renderOverlays(dst, platformcore.NewRect(0, 0, g.screenW, g.screenH))
		return
	}

	rows, cols := g.view.grid.Rows(), g.view.grid.Cols()
	boardW := cols*cellWidth + 2
	boardH := rows + 2
	hudW := max(boardW, hudMinWidth)
	hudX := (g.screenW - hudW) / 2
	board := platformcore.NewRect((g.screenW-boardW)/2, hudHeight+1, boardW, boardH)

	g.renderHUD(dst, hudX, hudW)
	g.renderBoard(dst, board)
	g.renderMessage(dst, board)
	g.renderOverlays(dst, board)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", platformcore.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", platformcore.ColorGray)
}

// renderHUD draws level info, the progress bar and run totals.
func (g *Game) renderHUD(dst *platformcore.Screen, x, w int) {
	var title string
	if lvl := g.currentLevel(); lvl != nil {
		title = fmt.Sprintf("Level %d/%d: %s", g.levelIndex+1, len(g.levels), lvl.Name)
	} else {
		title = fmt.Sprintf("Endless: board %d", g.board+1)
	}
	dst.DrawTextColored(x, 0, title, platformcore.ColorWhite)

	label := fmt.Sprintf(" %d/%d %3d%%", g.view.progress, g.view.goal, g.view.percent)
	barW := max(w-utf8.RuneCountInString(label), 4)
	filled := barW * g.view.percent / 100
	for i := range barW {
		if i < filled {
			dst.SetColored(x+i, 1, '█', platformcore.ColorGreen)
		} else {
			dst.SetColored(x+i, 1, '░', platformcore.ColorGray)
		}
	}
	dst.DrawText(x+barW, 1, label)

	stats := fmt.Sprintf("✿ %d  Moves %d  Chain %d", g.currency+g.view.currency, g.moves, g.view.chain)
	dst.DrawTextColored(x, 2, stats, platformcore.ColorMagenta)
}

// renderBoard draws the frame, the tokens and the cursor markers.
func (g *Game) renderBoard(dst *platformcore.Screen, r platformcore.Rect) {
	dst.DrawBox(r, platformcore.ColorGray)

	blink := (g.tick/8)%2 == 0
	for row := 0; row < g.view.grid.Rows(); row++ {
		for col := 0; col < g.view.grid.Cols(); col++ {
			at := core.C(row, col)
			x := r.X + 1 + col*cellWidth
			y := r.Y + 1 + row

			glyph, color := tokenGlyph(g.view.grid.At(at))
			bold := g.view.fresh.Contains(at)
			if g.view.flashing.Contains(at) {
				color, bold = platformcore.ColorWhite, true
				if blink {
					glyph = '*'
				}
			}
			dst.SetCell(x+1, y, platformcore.Cell{Rune: glyph, Color: color, Bold: bold})

			left, right, mc := g.markers(at, blink)
			if left != ' ' {
				dst.SetCell(x, y, platformcore.Cell{Rune: left, Color: mc, Bold: true})
				dst.SetCell(x+2, y, platformcore.Cell{Rune: right, Color: mc, Bold: true})
			}
		}
	}
}

// markers returns the bracket pair drawn around a cell, if any.
func (g *Game) markers(at core.Coord, blink bool) (rune, rune, platformcore.Color) {
	switch {
	case g.view.rejected && g.view.swapped.Contains(at):
		return '!', '!', platformcore.ColorRed
	case g.view.swapped.Contains(at):
		return '<', '>', platformcore.ColorCyan
	case g.anim.Busy():
		return ' ', ' ', platformcore.ColorDefault
	case at == g.cursor && g.selecting && at == g.selected:
		return '{', '}', platformcore.ColorCyan
	case at == g.cursor:
		return '[', ']', platformcore.ColorWhite
	case g.selecting && at == g.selected:
		return '(', ')', platformcore.ColorCyan
	case g.hintTicks > 0 && blink && (at == g.hint.A || at == g.hint.B):
		return '·', '·', platformcore.ColorGreen
	}
	return ' ', ' ', platformcore.ColorDefault
}

// renderMessage draws the transient status line under the board.
func (g *Game) renderMessage(dst *platformcore.Screen, board platformcore.Rect) {
	y := board.Bottom()
	switch {
	case g.view.shuffled:
		dst.DrawTextCentered(y, "No moves left: shuffling", platformcore.ColorYellow)
	case g.messageTicks > 0:
		dst.DrawTextCentered(y, g.message, platformcore.ColorYellow)
	case g.view.chain > 1 && g.anim.Busy():
		dst.DrawTextCentered(y, fmt.Sprintf("Chain x%d!", g.view.chain), platformcore.ColorOrange)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *platformcore.Screen, area platformcore.Rect) {
	cx, cy := area.Center()

	switch {
	case g.paused:
		g.drawOverlay(dst, cx, cy, platformcore.ColorWhite, "PAUSED", "Press P to resume")

	case g.err != nil:
		g.drawOverlay(dst, cx, cy, platformcore.ColorRed,
			"GAME OVER", truncate(g.err.Error(), g.screenW-6), "Press R to restart")

	case g.won:
		g.drawOverlay(dst, cx, cy, platformcore.ColorYellow,
			"CAMPAIGN COMPLETE!",
			fmt.Sprintf("Score %d  Bouquets %d", g.score(), g.totalCurrency()),
			"Press R to restart")

	case g.levelCleared:
		lines := []string{g.settings.Victory.Title}
		if g.victoryMsg != "" {
			lines = append(lines, g.victoryMsg)
		}
		lines = append(lines, fmt.Sprintf("Bouquets: %d", g.totalCurrency()))
		switch {
		case g.mode == ModeEndless:
			lines = append(lines, fmt.Sprintf("Next: board %d", g.board+2))
		case g.levelIndex >= len(g.levels)-1:
			lines = append(lines, "Final level complete!")
		default:
			lines = append(lines, fmt.Sprintf("Next: Level %d", g.levelIndex+2))
		}
		g.drawOverlay(dst, cx, cy, platformcore.ColorGreen, lines...)
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *platformcore.Screen, cx, cy int, color platformcore.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	box := platformcore.NewRect(cx-(maxLen+4)/2, cy-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.FillRect(box, ' ')
	dst.DrawBox(box, color)

	for i, line := range lines {
		x := cx - utf8.RuneCountInString(line)/2
		c := platformcore.ColorDefault
		if i == 0 {
			c = color
		}
		dst.DrawTextColored(x, box.Y+1+i, line, c)
	}
}

func truncate(s string, n int) string {
	if n <= 3 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space/Enter: Select | Esc: Deselect | H: Hint | P: Pause | R: Restart | Q: Quit"
}
