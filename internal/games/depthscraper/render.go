package depthscraper

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/depthscraper/internal/config"
	"github.com/vovakirdan/depthscraper/internal/core"
	"github.com/vovakirdan/depthscraper/internal/games/depthscraper/tower"
)

const (
	segWidth   = 4 // Glyph columns per segment, including the gap
	glyphWidth = 3
	labelWidth = 5 // Cursor marker and floor number
	hudHeight  = 3
	footHeight = 4 // Ring marker, scroll hint, status, help
	panelGap   = 4
	minFloors  = 4
)

// Glyphs
const (
	blockGlyph    = '█'
	previewGlyph  = '░'
	conflictGlyph = '╳'
	emptyGlyph    = '·'
)

// layoutSize returns the smallest screen that fits a ring of n segments.
func layoutSize(n int) (int, int) {
	towerW := labelWidth + n*segWidth + 2
	panelW := 4 + n*segWidth
	w := 2 + towerW + panelGap + panelW + 1

	// Hand title, tiles, challenge block
	panelH := 2 + 2*config.MaxHandSize + 1 + 4
	h := hudHeight + 1 + max(minFloors+2+footHeight, panelH+2)
	return w, h
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall || g.session == nil {
		g.renderTooSmall(dst)
		return
	}

	snap := g.session.Snapshot()

	g.renderHUD(dst, snap)
	towerRight := g.renderTower(dst, snap)
	g.renderPanel(dst, snap, towerRight+panelGap)
	g.renderFooter(dst)

	if snap.GameOver {
		lines := []string{"GAME OVER", fmt.Sprintf("Score: %d", snap.Score)}
		if snap.Mode == tower.ModeMoves && snap.MovesLeft <= 0 {
			lines = append(lines, "Out of moves")
		} else {
			lines = append(lines, "No tile fits anywhere")
		}
		lines = append(lines, "R restart  B menu")
		g.drawOverlay(dst, g.screenW/2, g.screenH/2, lines...)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := layoutSize(g.cfg.Board.Segments)
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", minW, minH), core.ColorGray)
}

// renderHUD draws the title, score and move budget.
func (g *Game) renderHUD(dst *core.Screen, snap tower.Snapshot) {
	dst.DrawTextCentered(0, "DEPTHSCRAPER", core.ColorCyan)

	left := fmt.Sprintf("Score: %d", snap.Score)
	dst.DrawText(2, 1, left)

	var right string
	if snap.Mode == tower.ModeMoves {
		right = fmt.Sprintf("Moves: %d", snap.MovesLeft)
	} else {
		right = fmt.Sprintf("Endless  Move %d", snap.Move+1)
	}
	rc := core.ColorDefault
	if snap.Mode == tower.ModeMoves && snap.MovesLeft <= 5 {
		rc = core.ColorRed
	}
	dst.DrawTextColor(g.screenW-2-utf8.RuneCountInString(right), 1, right, rc)
}

// visibleFloors returns the lowest visible floor and the number of rows
// shown, keeping the cursor floor in view.
func (g *Game) visibleFloors(height int) (int, int) {
	avail := g.screenH - hudHeight - 1 - 2 - footHeight
	if avail < 1 {
		avail = 1
	}
	if height <= avail {
		return 0, height
	}
	lo := core.Clamp(g.cursor.Y-avail/2, 0, height-avail)
	return lo, avail
}

// renderTower draws the floors top-down inside a frame and returns the
// frame's right edge.
func (g *Game) renderTower(dst *core.Screen, snap tower.Snapshot) int {
	n := g.cfg.Board.Segments
	lo, rows := g.visibleFloors(len(snap.Floors))

	frame := core.NewRect(2, hudHeight+1, labelWidth+n*segWidth+2, rows+2)
	dst.DrawBox(frame, core.ColorGray)
	dst.DrawTextColor(frame.X+2, frame.Y, " Tower ", core.ColorGray)

	x0 := frame.X + 1 + labelWidth
	for i := range rows {
		y := lo + rows - 1 - i
		row := frame.Y + 1 + i
		fv := snap.Floors[y]

		label := fmt.Sprintf("%3d ", y+1)
		lc := core.ColorGray
		if y == g.cursor.Y {
			label = "▶" + label[1:]
			lc = core.ColorWhite
		}
		dst.DrawTextColor(frame.X+1, row, label, lc)

		for x, sv := range fv.Segments {
			g.drawSegment(dst, x0+x*segWidth, row, sv, fv.Previewing)
		}
		if fv.Completed {
			dst.SetCell(x0+n*segWidth-1, row, core.Cell{Rune: '✓', Color: core.ColorGreen})
		}
		if fv.Previewing && !fv.PreviewFits {
			dst.SetCell(frame.Right(), row, core.Cell{Rune: '✗', Color: core.ColorMagenta})
		}
	}

	// Ring cursor under the frame.
	markX := x0 + g.cursor.X*segWidth
	dst.DrawTextColor(markX, frame.Bottom(), strings.Repeat("^", glyphWidth), core.ColorWhite)

	var hints []string
	if lo+rows < len(snap.Floors) {
		hints = append(hints, fmt.Sprintf("↑ %d more", len(snap.Floors)-lo-rows))
	}
	if lo > 0 {
		hints = append(hints, fmt.Sprintf("↓ %d more", lo))
	}
	if len(hints) > 0 {
		dst.DrawTextColor(frame.X, frame.Bottom()+1, strings.Join(hints, "  "), core.ColorGray)
	}

	return frame.Right()
}

// drawSegment draws one board cell at (x, y).
func (g *Game) drawSegment(dst *core.Screen, x, y int, sv tower.SegmentView, previewing bool) {
	switch {
	case previewing && sv.Preview.IsSet() && sv.Color.IsSet():
		dst.DrawTextColor(x, y, strings.Repeat(string(conflictGlyph), glyphWidth), core.ColorMagenta)
	case previewing && sv.Preview.IsSet():
		dst.DrawTextColor(x, y, strings.Repeat(string(previewGlyph), glyphWidth), segmentColor(sv.Preview, true))
	case !sv.Color.IsSet():
		dst.DrawTextColor(x, y, " "+string(emptyGlyph)+" ", core.ColorGray)
	default:
		c := segmentColor(sv.Color, sv.GroupCompleted)
		text := strings.Repeat(string(blockGlyph), glyphWidth)
		if sv.Representative {
			text = sizeLabel(sv.Size)
		}
		dst.DrawTextColor(x, y, text, c)
	}
}

// renderPanel draws the hand and the challenge to the right of the tower.
func (g *Game) renderPanel(dst *core.Screen, snap tower.Snapshot, x int) {
	y := hudHeight + 1
	dst.DrawTextColor(x, y, "Hand", core.ColorGray)
	y += 2

	for i, t := range snap.Tiles {
		marker := "  "
		lc := core.ColorGray
		if i == snap.Selected {
			marker = "▶ "
			lc = core.ColorWhite
		}
		dst.DrawTextColor(x, y, marker+strconv.Itoa(i+1), lc)
		for j, seg := range t.Rotated().Segments {
			sx := x + 4 + j*segWidth
			if seg.Empty() {
				dst.DrawTextColor(sx, y, " "+string(emptyGlyph)+" ", core.ColorGray)
				continue
			}
			dst.DrawTextColor(sx, y, strings.Repeat(string(blockGlyph), glyphWidth), segmentColor(seg.Color, false))
		}
		y += 2
	}

	y++
	dst.DrawTextColor(x, y, "Challenge", core.ColorGray)
	ch := snap.Challenge
	dst.DrawTextColor(x, y+1, fmt.Sprintf("Grow a %s group", ch.Color), segmentColor(ch.Color, false))
	dst.DrawText(x, y+2, fmt.Sprintf("to size %d", ch.TargetSize))
	unit := "moves"
	if snap.Mode == tower.ModeScore {
		unit = "points"
	}
	dst.DrawTextColor(x, y+3, fmt.Sprintf("Reward: +%d %s", ch.RewardMoves, unit), core.ColorYellow)
}

// renderFooter draws the status line and key help.
func (g *Game) renderFooter(dst *core.Screen) {
	if g.status != "" {
		dst.DrawTextColor(2, g.screenH-2, g.status, core.ColorYellow)
	}
	dst.DrawTextColor(2, g.screenH-1, "1-3 pick  ←→ rotate  ↑↓ floor  Enter place  Esc drop  Q quit", core.ColorGray)
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorWhite)

	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}

// segmentColor maps a tower color to the screen palette.
func segmentColor(c tower.Color, dim bool) core.Color {
	switch c {
	case tower.ColorRed:
		if dim {
			return core.ColorDimRed
		}
		return core.ColorRed
	case tower.ColorYellow:
		if dim {
			return core.ColorDimYellow
		}
		return core.ColorYellow
	case tower.ColorGreen:
		if dim {
			return core.ColorDimGreen
		}
		return core.ColorGreen
	default:
		return core.ColorGray
	}
}

// sizeLabel centers a group size in block glyphs, e.g. "█7█" or "12█".
func sizeLabel(size int) string {
	s := strconv.Itoa(size)
	if len(s) > glyphWidth {
		s = strings.Repeat("9", glyphWidth)
	}
	pad := glyphWidth - len(s)
	left := pad / 2
	return strings.Repeat(string(blockGlyph), left) + s + strings.Repeat(string(blockGlyph), pad-left)
}
