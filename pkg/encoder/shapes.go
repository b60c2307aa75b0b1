package encoder

import (
	"golang.org/x/image/vector"

	"github.com/goliatone/go-qrform/pkg/style"
)

const (
	// kappa places cubic control points so four curves approximate a circle.
	kappa     = 0.5522847
	gapRatio  = 0.12
	dotRatio  = 0.05
	barsRatio = 0.12
)

type cellRect struct {
	x, y, s float32
}

type adjacency struct {
	up, down, left, right bool
}

// radii holds corner radii clockwise from the top-left corner.
type radii struct {
	tl, tr, br, bl float32
}

func uniform(r float32) radii { return radii{r, r, r, r} }

func drawModule(z *vector.Rasterizer, shape style.Shape, c cellRect, adj adjacency) {
	switch shape {
	case style.Gapped:
		g := c.s * gapRatio
		roundRect(z, c.x+g, c.y+g, c.x+c.s-g, c.y+c.s-g, radii{})
	case style.Circle:
		d := c.s * dotRatio
		roundRect(z, c.x+d, c.y+d, c.x+c.s-d, c.y+c.s-d, uniform(c.s/2-d))
	case style.Rounded:
		r := c.s / 2
		var rr radii
		if !adj.up && !adj.left {
			rr.tl = r
		}
		if !adj.up && !adj.right {
			rr.tr = r
		}
		if !adj.down && !adj.right {
			rr.br = r
		}
		if !adj.down && !adj.left {
			rr.bl = r
		}
		roundRect(z, c.x, c.y, c.x+c.s, c.y+c.s, rr)
	case style.VerticalBars:
		inset := c.s * barsRatio
		r := (c.s - 2*inset) / 2
		var rr radii
		if !adj.up {
			rr.tl, rr.tr = r, r
		}
		if !adj.down {
			rr.bl, rr.br = r, r
		}
		roundRect(z, c.x+inset, c.y, c.x+c.s-inset, c.y+c.s, rr)
	case style.HorizontalBars:
		inset := c.s * barsRatio
		r := (c.s - 2*inset) / 2
		var rr radii
		if !adj.left {
			rr.tl, rr.bl = r, r
		}
		if !adj.right {
			rr.tr, rr.br = r, r
		}
		roundRect(z, c.x, c.y+inset, c.x+c.s, c.y+c.s-inset, rr)
	default:
		roundRect(z, c.x, c.y, c.x+c.s, c.y+c.s, radii{})
	}
}

// roundRect adds a clockwise rectangle path with per-corner radii.
func roundRect(z *vector.Rasterizer, x0, y0, x1, y1 float32, r radii) {
	z.MoveTo(x0+r.tl, y0)
	z.LineTo(x1-r.tr, y0)
	corner(z, x1-r.tr, y0, x1, y0, x1, y0+r.tr, r.tr)
	z.LineTo(x1, y1-r.br)
	corner(z, x1, y1-r.br, x1, y1, x1-r.br, y1, r.br)
	z.LineTo(x0+r.bl, y1)
	corner(z, x0+r.bl, y1, x0, y1, x0, y1-r.bl, r.bl)
	z.LineTo(x0, y0+r.tl)
	corner(z, x0, y0+r.tl, x0, y0, x0+r.tl, y0, r.tl)
	z.ClosePath()
}

// corner curves from (fx, fy) to (tx, ty) around the corner point (cx, cy).
// A zero radius leaves the corner sharp.
func corner(z *vector.Rasterizer, fx, fy, cx, cy, tx, ty, r float32) {
	if r <= 0 {
		return
	}
	z.CubeTo(
		fx+kappa*(cx-fx), fy+kappa*(cy-fy),
		tx+kappa*(cx-tx), ty+kappa*(cy-ty),
		tx, ty,
	)
}
