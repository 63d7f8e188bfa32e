package asteroids

import (
	"fmt"
	"math"

	"github.com/vovakirdan/astroidz/internal/core"
)

// Glyphs
const (
	BulletChar   = '•'
	FlameChar    = '*'
	AsteroidChar = '#'
)

// shipGlyphs maps heading octants, starting at +X and turning clockwise
// (screen Y grows downwards).
var shipGlyphs = []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// Minimum playable screen size in cells.
const (
	MinScreenW = 30
	MinScreenH = 10
	hudRows    = 2
)

// viewport maps world coordinates onto the cells below the HUD.
type viewport struct {
	world  core.Vec2
	w, h   int
	offset int
}

func (v viewport) cell(p core.Vec2) (int, int) {
	x := int(math.Floor(p.X / v.world.X * float64(v.w)))
	y := int(math.Floor(p.Y/v.world.Y*float64(v.h))) + v.offset
	return x, y
}

// Draw renders a snapshot. It only reads the snapshot.
func Draw(dst *core.Screen, snap Snapshot) {
	dst.Clear()
	drawHUD(dst, snap.State)

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		drawOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	vp := viewport{
		world:  snap.World,
		w:      dst.Width(),
		h:      dst.Height() - hudRows,
		offset: hudRows,
	}

	for _, a := range snap.Asteroids {
		drawAsteroid(dst, vp, a)
	}
	for _, p := range snap.Particles {
		x, y := vp.cell(p.Pos)
		dst.SetColored(x, y, particleGlyph(p.Fade), p.Color)
	}
	for _, b := range snap.Bullets {
		x, y := vp.cell(b)
		dst.SetColored(x, y, BulletChar, core.ColorBrightYellow)
	}
	if !snap.State.GameOver() && snap.State.Phase != core.PhaseIdle {
		drawShip(dst, vp, snap.Ship)
	}

	switch snap.State.Phase {
	case core.PhaseIdle:
		drawOverlay(dst, "ASTROIDZ", "Press Enter to start")
	case core.PhasePaused:
		drawOverlay(dst, "Paused", "P to continue  -  X to quit to title")
	case core.PhaseGameOver:
		drawOverlay(dst, "GAME OVER", fmt.Sprintf("Final Score: %d  -  Press R to restart", snap.State.Score))
	}
}

// drawHUD draws the status line and separator.
func drawHUD(dst *core.Screen, st core.GameState) {
	hud := fmt.Sprintf(" Score: %d  Lives: %d  Level: %d  Server: %s", st.Score, st.Lives, st.Level, st.ServerStatus)
	dst.DrawTextColored(0, 0, hud, core.ColorGreen)
	for x := range dst.Width() {
		dst.SetColored(x, 1, '─', core.ColorGray)
	}
}

// drawAsteroid traces the jagged outline through its shape vertices.
func drawAsteroid(dst *core.Screen, vp viewport, a AsteroidView) {
	n := len(a.Shape)
	if n == 0 {
		x, y := vp.cell(a.Pos)
		dst.SetColored(x, y, AsteroidChar, core.ColorGreen)
		return
	}

	px := make([]int, n)
	py := make([]int, n)
	for i, k := range a.Shape {
		theta := a.Angle + float64(i)/float64(n)*2*math.Pi
		px[i], py[i] = vp.cell(a.Pos.Add(core.FromAngle(theta).Scale(a.Radius * k)))
	}
	for i := range n {
		j := (i + 1) % n
		dst.DrawLine(px[i], py[i], px[j], py[j], AsteroidChar, core.ColorGreen)
	}
}

// drawShip draws the heading glyph and, while thrusting, a flame behind it.
func drawShip(dst *core.Screen, vp viewport, ship ShipView) {
	color := core.ColorBrightGreen
	if ship.Grace > 0 {
		color = core.ColorGray
	}

	if ship.Thrust {
		tail := ship.Pos.Sub(core.FromAngle(ship.Heading).Scale(ship.Radius * 2))
		x, y := vp.cell(tail)
		dst.SetColored(x, y, FlameChar, core.ColorOrange)
	}

	x, y := vp.cell(ship.Pos)
	dst.SetColored(x, y, shipGlyph(ship.Heading), color)
}

// shipGlyph picks the arrow closest to heading.
func shipGlyph(heading float64) rune {
	octant := int(math.Round(heading/(math.Pi/4))) % len(shipGlyphs)
	if octant < 0 {
		octant += len(shipGlyphs)
	}
	return shipGlyphs[octant]
}

// particleGlyph fades a particle out as its life runs down.
func particleGlyph(fade float64) rune {
	switch {
	case fade > 0.66:
		return '*'
	case fade > 0.33:
		return '+'
	default:
		return '.'
	}
}

// drawOverlay draws a centered two-line message box.
func drawOverlay(dst *core.Screen, line1, line2 string) {
	boxW := core.Clamp(max(len([]rune(line1)), len([]rune(line2)))+4, 0, dst.Width())
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
