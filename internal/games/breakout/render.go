package breakout

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vovakirdan/bricks/internal/core"
	"github.com/vovakirdan/bricks/internal/economy"
	"github.com/vovakirdan/bricks/internal/engine"
)

// Visual characters for rendering
const (
	PaddleChar = '▀'
	BallChar   = '●'
	BrickChar  = '█'
)

// Draw paints the latest snapshot onto the screen.
func (g *Game) Draw(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorDefault)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH), core.ColorGray)
		return
	}

	snap := g.last
	v := g.view

	g.drawHUD(dst, snap)

	field := v.field()
	dst.DrawBox(core.NewRect(field.X-1, field.Y-1, field.W+2, field.H+2), core.ColorGray)

	for _, b := range snap.Bricks {
		if !b.Alive() {
			continue
		}
		dst.FillRect(v.rect(b.X, b.Y, b.Width, b.Height), BrickChar, core.RowColor(b.Row))
	}

	p := snap.Paddle
	dst.FillRect(v.rect(p.X, p.Y, p.Width, p.Height), PaddleChar, core.ColorWhite)

	if snap.Phase != engine.PhaseIdle {
		bx, by := v.cell(snap.Ball.X, snap.Ball.Y)
		dst.SetColored(bx, by, BallChar, core.ColorYellow)
	}

	g.drawOverlay(dst, snap)
}

func (g *Game) drawHUD(dst *core.Screen, snap engine.Snapshot) {
	left := fmt.Sprintf("Score: %d", snap.Score)
	dst.DrawText(1, 0, left)

	coins := fmt.Sprintf("Coins: +%s  Total: %s",
		economy.Format(snap.CoinsEarned), economy.Format(snap.TotalCoins.Add(liveCoins(snap))))
	dst.DrawTextCentered(0, coins, core.ColorYellow)

	right := fmt.Sprintf("Bricks: %d", snap.Alive)
	if g.paused {
		right = "PAUSED"
	}
	dst.DrawText(dst.Width()-len(right)-1, 0, right)
}

// liveCoins is what the HUD adds to the persisted total while a round is
// still running; once settled the total already includes it.
func liveCoins(snap engine.Snapshot) decimal.Decimal {
	if snap.Phase == engine.PhaseRunning {
		return snap.CoinsEarned
	}
	return decimal.Zero
}

func (g *Game) drawOverlay(dst *core.Screen, snap engine.Snapshot) {
	switch {
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case snap.Phase == engine.PhaseIdle:
		g.drawCenteredBox(dst, "BRICKS", fmt.Sprintf("SPACE to start  |  %s coins", g.Rule().Name()))

	case snap.Phase == engine.PhaseEnded:
		title := "GAME OVER"
		if snap.Outcome == engine.OutcomeWon {
			title = "YOU WIN!"
		}
		sub := fmt.Sprintf("Score: %d  |  +%s coins  |  SPACE to play again",
			snap.Score, economy.Format(snap.CoinsEarned))
		g.drawCenteredBox(dst, title, sub)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := min(max(runeLen(title), runeLen(subtitle))+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	if box.Empty() {
		return
	}
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawHLine(boxX+1, boxY+2, boxW-2, '─', core.ColorGray)

	dst.DrawTextColored(boxX+(boxW-runeLen(title))/2, boxY+1, title, core.ColorYellow)
	dst.DrawTextColored(boxX+(boxW-runeLen(subtitle))/2, boxY+3, subtitle, core.ColorDefault)
}

func runeLen(s string) int {
	return len([]rune(s))
}
