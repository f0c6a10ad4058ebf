package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/folio/internal/interact"
	"github.com/san-kum/folio/internal/viz"
)

// Scene is what gets drawn into an SVG. Coordinates are pointer space px.
type Scene struct {
	Snapshot interact.Snapshot
	CardSize interact.Vec2
	Theme    viz.Theme
	Width    int
	Height   int
	// Path is the card's travel, drawn as a faint polyline through its centre.
	Path []interact.Vec2
	// Dots is an optional backdrop layer scaled to fill the image.
	Dots *viz.Canvas
}

// SceneToSVG renders a snapshot as a standalone SVG document.
func SceneToSVG(s Scene) string {
	th := s.Theme
	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<defs>
<radialGradient id="glow"><stop offset="0" stop-color="%s" stop-opacity="0.25"/><stop offset="1" stop-color="%s" stop-opacity="0"/></radialGradient>
</defs>
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, th.Primary, th.Primary, th.Background)

	if s.Dots != nil && s.Dots.Width > 0 {
		scale := float64(s.Width) / float64(s.Dots.Width*2)
		writeDots(&sb, s.Dots, scale, string(th.Secondary))
	}

	if g := s.Snapshot.Glow; finite(g) {
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="192" fill="url(#glow)"/>
`, g.X, g.Y)
	}

	center := s.CardSize.Scale(0.5)
	if len(s.Path) >= 2 {
		sb.WriteString(`<path fill="none" stroke="` + string(th.Muted) + `" stroke-width="1" stroke-dasharray="4 4" d="`)
		n := 0
		for _, p := range s.Path {
			c := p.Add(center)
			if !finite(c) {
				continue
			}
			if n == 0 {
				fmt.Fprintf(&sb, "M%.1f,%.1f", c.X, c.Y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", c.X, c.Y)
			}
			n++
		}
		sb.WriteString("\"/>\n")
	}

	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", th.Primary)
	for _, p := range s.Snapshot.Trail {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			continue
		}
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill-opacity="%.2f"/>
`, p.X, p.Y, 2+6*p.Opacity, p.Opacity)
	}
	sb.WriteString("</g>\n")

	card := s.Snapshot.Card
	if finite(card.Position) && finite(card.Rotation) {
		stroke := viz.Blend(th.Muted, th.Primary, 0.4)
		if card.Dragging {
			stroke = th.Primary
		}
		// A 2D stand-in for the 3D lean: skew by the vertical-axis tilt and
		// squash by the horizontal-axis tilt.
		sy := math.Cos(card.Rotation.X * math.Pi / 180)
		fmt.Fprintf(&sb, `<g transform="translate(%.1f %.1f) skewY(%.2f) scale(1 %.3f)">
<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="24" fill="%s" stroke="%s" stroke-width="2"/>
</g>
`, card.Position.X+center.X, card.Position.Y+center.Y, card.Rotation.Y*0.5, sy,
			-center.X, -center.Y, s.CardSize.X, s.CardSize.Y,
			viz.Blend(th.Background, th.Primary, 0.08), stroke)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func finite(v interact.Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Braille dot-to-bit mapping, row by row.
var pixelMap = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func writeDots(sb *strings.Builder, canvas *viz.Canvas, scale float64, fill string) {
	dotRadius := scale * 0.4
	fmt.Fprintf(sb, "<g fill=\"%s\" fill-opacity=\"0.5\">\n", fill)
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
					}
				}
			}
		}
	}
	sb.WriteString("</g>\n")
}
