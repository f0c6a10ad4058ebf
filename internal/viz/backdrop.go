package viz

import (
	"math"
	"math/rand"
)

const (
	gridSpacing = 6
	// gridPeriod is how long the grid takes to scroll one spacing, in seconds.
	gridPeriod   = 20.0
	scanlineRate = 4.0
)

type floater struct {
	x, y   float64
	drift  float64
	period float64
	phase  float64
	big    bool
	hue    int
}

// Backdrop animates the decorative layers behind the content: a scrolling
// grid, floating dots and a scanline. It is independent of the card.
type Backdrop struct {
	t        float64
	floaters []floater
}

func NewBackdrop(n int, seed int64) *Backdrop {
	rng := rand.New(rand.NewSource(seed))
	b := &Backdrop{floaters: make([]floater, n)}
	for i := range b.floaters {
		b.floaters[i] = floater{
			x:      rng.Float64(),
			y:      rng.Float64(),
			drift:  rng.Float64()*0.04 + 0.02,
			period: rng.Float64()*15 + 10,
			phase:  rng.Float64() * 5,
			big:    rng.Intn(3) == 0,
			hue:    i % 3,
		}
	}
	return b
}

// Step advances the animation by dt seconds.
func (b *Backdrop) Step(dt float64) {
	if dt > 0 {
		b.t += dt
	}
}

func (b *Backdrop) Elapsed() float64 { return b.t }

// GridOffset is the current scroll of the grid in cells.
func (b *Backdrop) GridOffset() int {
	return int(math.Mod(b.t, gridPeriod) / gridPeriod * gridSpacing)
}

// Draw paints the backdrop onto f.
func (b *Backdrop) Draw(f *Frame, th Theme) {
	off := b.GridOffset()
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			onRow := (y+off)%gridSpacing == 0
			onCol := (x+off*2)%(gridSpacing*2) == 0
			switch {
			case onRow && onCol:
				f.Put(x, y, '┼', th.Grid)
			case onRow:
				f.Put(x, y, '─', th.Grid)
			case onCol:
				f.Put(x, y, '│', th.Grid)
			}
		}
	}

	if f.Height > 0 {
		scan := int(b.t*scanlineRate) % f.Height
		bg := Blend(th.Background, th.Text, 0.05)
		for x := 0; x < f.Width; x++ {
			f.Tint(x, scan, bg)
		}
	}

	hues := [3]*Canvas{NewCanvas(f.Width, f.Height), NewCanvas(f.Width, f.Height), NewCanvas(f.Width, f.Height)}
	b.plot(hues, f.Width, f.Height)
	f.Overlay(hues[0], Blend(th.Background, th.Primary, 0.6))
	f.Overlay(hues[1], Blend(th.Background, th.Secondary, 0.6))
	f.Overlay(hues[2], Blend(th.Background, th.Accent, 0.6))
}

// Dots returns the floating dots of the current instant on a single w x h
// cell canvas.
func (b *Backdrop) Dots(w, h int) *Canvas {
	c := NewCanvas(w, h)
	b.plot([3]*Canvas{c, c, c}, w, h)
	return c
}

func (b *Backdrop) plot(hues [3]*Canvas, w, h int) {
	for _, fl := range b.floaters {
		cycle := (b.t + fl.phase) / fl.period * 2 * math.Pi
		x := fl.x + fl.drift*math.Sin(cycle)*0.5
		y := fl.y - fl.drift*(1-math.Cos(cycle))
		px := int(x * float64(w*2))
		py := int(y * float64(h*4))
		c := hues[fl.hue]
		c.Set(px, py)
		if fl.big {
			c.Set(px+1, py)
			c.Set(px, py+1)
			c.Set(px+1, py+1)
		}
	}
}
