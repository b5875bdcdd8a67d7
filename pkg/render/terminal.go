package render

import (
	"io"
	"math"
	"strings"

	"github.com/opd-ai/go-broadside/pkg/entity"
	"github.com/opd-ai/go-broadside/pkg/physics"
)

// headingGlyphs marks a craft's bow, indexed by heading.
var headingGlyphs = [physics.Octants]rune{'^', '/', '>', '\\', 'v', '/', '<', '\\'}

// SideGlyph returns the character drawn for a craft of side.
func SideGlyph(side entity.Side) rune {
	if side == entity.SideOpponent {
		return 'E'
	}
	return 'P'
}

// BowGlyph returns the character drawn ahead of a craft facing h.
func BowGlyph(h physics.Heading) rune {
	return headingGlyphs[physics.Normalize(int(h))]
}

// TerminalRenderer provides a simple ASCII-based rendering for terminals
type TerminalRenderer struct {
	width     int
	height    int
	buffer    [][]rune
	scale     float64
	centerPos physics.Vector2D
	out       io.Writer
	hud       []string

	// ClearScreen emits an ANSI clear before each frame.
	ClearScreen bool
}

// NewTerminalRenderer creates a new terminal renderer with the specified
// dimensions. scale is the number of world units per character cell.
func NewTerminalRenderer(out io.Writer, width, height int, scale float64) *TerminalRenderer {
	r := &TerminalRenderer{out: out}
	r.Resize(width, height, scale)
	return r
}

// Resize replaces the buffer with an empty one of the given size.
func (r *TerminalRenderer) Resize(width, height int, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	width, height = max(width, 0), max(height, 0)
	r.buffer = make([][]rune, height)
	for i := range r.buffer {
		r.buffer[i] = make([]rune, width)
	}
	r.width, r.height, r.scale = width, height, scale
	r.Clear()
}

// Size returns the buffer size in cells.
func (r *TerminalRenderer) Size() (width, height int) {
	return r.width, r.height
}

// Cell returns the character at column x, row y, or a space outside the
// buffer.
func (r *TerminalRenderer) Cell(x, y int) rune {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return ' '
	}
	return r.buffer[y][x]
}

// FitScale returns the scale that shows the whole arena in width x height
// cells.
func FitScale(extent physics.Vector2D, width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return math.Max(2*extent.X/float64(width), 2*extent.Y/float64(height))
}

// SetCenter sets the center position of the view
func (r *TerminalRenderer) SetCenter(pos physics.Vector2D) {
	r.centerPos = pos
}

// SetHUD sets the lines printed below the next frame.
func (r *TerminalRenderer) SetHUD(lines []string) {
	r.hud = append(r.hud[:0], lines...)
}

// worldToScreen converts world coordinates to a cell. North is up.
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	screenX := int(math.Floor((pos.X-r.centerPos.X)/r.scale + float64(r.width)/2))
	screenY := int(math.Floor(float64(r.height)/2 - (pos.Y-r.centerPos.Y)/r.scale))
	return screenX, screenY
}

func (r *TerminalRenderer) set(x, y int, ch rune) {
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = ch
	}
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
}

// Frame returns the current buffer with a border, one line per row.
func (r *TerminalRenderer) Frame() string {
	var b strings.Builder
	border := "+" + strings.Repeat("-", r.width) + "+\n"

	b.WriteString(border)
	for y := range r.buffer {
		b.WriteByte('|')
		b.WriteString(string(r.buffer[y]))
		b.WriteString("|\n")
	}
	b.WriteString(border)
	for _, line := range r.hud {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	if r.out == nil {
		return
	}
	if r.ClearScreen {
		io.WriteString(r.out, "\033[H\033[2J")
	}
	io.WriteString(r.out, r.Frame())
}

// RenderCraft implements entity.Renderer
func (r *TerminalRenderer) RenderCraft(craft *entity.Craft) {
	x, y := r.worldToScreen(craft.Pose.Position)
	r.set(x, y, SideGlyph(craft.Side))

	dx, dy := physics.Forward(craft.Heading).Sign()
	r.set(x+dx, y-dy, BowGlyph(craft.Heading))
}

// RenderRock implements entity.Renderer
func (r *TerminalRenderer) RenderRock(rock *entity.Rock) {
	c := rock.GetCollider()
	x0, y0 := r.worldToScreen(c.Center.Add(physics.Vector2D{X: -c.Radius, Y: c.Radius}))
	x1, y1 := r.worldToScreen(c.Center.Add(physics.Vector2D{X: c.Radius, Y: -c.Radius}))

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if r.cellCenter(x, y).Distance(c.Center) <= c.Radius {
				r.set(x, y, '#')
			}
		}
	}
	// Small rocks still show up.
	cx, cy := r.worldToScreen(c.Center)
	r.set(cx, cy, '#')
}

// cellCenter is the world position at the middle of a cell.
func (r *TerminalRenderer) cellCenter(x, y int) physics.Vector2D {
	return physics.Vector2D{
		X: (float64(x)+0.5-float64(r.width)/2)*r.scale + r.centerPos.X,
		Y: (float64(r.height)/2-float64(y)-0.5)*r.scale + r.centerPos.Y,
	}
}

// RenderProjectile implements entity.Renderer
func (r *TerminalRenderer) RenderProjectile(projectile *entity.Projectile) {
	x, y := r.worldToScreen(projectile.Pose.Position)
	r.set(x, y, '*')
}
