package main

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/wricardo/escaperoom/desktop/client"
)

var (
	colorBackground = color.RGBA{192, 192, 192, 255}
	colorWall       = color.RGBA{0, 0, 0, 255}
	colorTrap       = color.RGBA{220, 30, 30, 255}
	colorPrize      = color.RGBA{240, 210, 0, 255}
	colorPlayer     = color.RGBA{30, 80, 220, 255}
	colorStatus     = color.RGBA{40, 40, 48, 255}
	colorBanner     = color.RGBA{0, 0, 0, 200}
)

// Draw renders the board, the status area and the banner
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	if g.state == nil {
		ebitenutil.DebugPrint(screen, "Loading...")
		return
	}

	for _, wall := range g.state.Walls {
		fillRect(screen, wall.Bounds, colorWall)
	}
	for _, trap := range g.state.Traps {
		if trap.Sprung {
			fillRect(screen, trap.Bounds, colorTrap)
		}
	}
	for _, prize := range g.state.Prizes {
		if !prize.Collected {
			fillRect(screen, prize.Bounds, colorPrize)
		}
	}

	r := float32(g.room.CellSize) / 4
	vector.DrawFilledCircle(screen, g.x+r, g.y+r, r, colorPlayer, true)

	g.drawStatus(screen)
	g.drawBanner(screen)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	top := float32(g.room.Height)
	vector.DrawFilledRect(screen, 0, top, float32(g.room.Width), statusHeight, colorStatus, false)

	s := g.state
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d  Steps: %d  Prizes left: %d  Round %d: %s",
		s.Score, s.Steps, s.PrizesLeft, s.RoundNumber, s.Round), 8, g.room.Height+4)
	ebitenutil.DebugPrintAt(screen, firstLine(s.Message), 8, g.room.Height+22)
	ebitenutil.DebugPrintAt(screen, "Arrows/WASD move  Shift jump  Space pickup  R replay  F1 about  Esc exit", 8, g.room.Height+42)
}

func (g *Game) drawBanner(screen *ebiten.Image) {
	if g.banner.text == "" || time.Now().After(g.banner.until) {
		return
	}

	lines := strings.Split(g.banner.text, "\n")
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}

	// debug font glyphs are 6x16
	w, h := float32(width*6+32), float32(len(lines)*16+24)
	x, y := (float32(g.room.Width)-w)/2, (float32(g.room.Height)-h)/2
	vector.DrawFilledRect(screen, x, y, w, h, colorBanner, false)
	ebitenutil.DebugPrintAt(screen, g.banner.text, int(x)+16, int(y)+12)
}

func fillRect(screen *ebiten.Image, r client.Rect, clr color.Color) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return line
}
