package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/san-kum/folio/internal/content"
	"github.com/san-kum/folio/internal/interact"
)

// glowRadius matches a 384px ambient glow centred on the pointer.
const glowRadius = 192.0

// Input is everything the view needs for one frame. Render is a pure
// function of it.
type Input struct {
	Snapshot interact.Snapshot
	CardSize interact.Vec2
	Profile  *content.Profile
	Theme    Theme
	Backdrop *Backdrop
	Layout   Layout
	// Aura is the eased drag highlight in [0,1].
	Aura     float64
	Status   string
	ShowHelp bool
}

func Render(in Input) string {
	return Compose(in).String()
}

// Compose paints all layers into a frame, back to front.
func Compose(in Input) *Frame {
	l, th := in.Layout, in.Theme
	f := NewFrame(l.Width, l.Height, th.Background)
	if l.Width <= 0 || l.Height <= 0 {
		return f
	}

	if in.Backdrop != nil {
		in.Backdrop.Draw(f, th)
	}
	drawGlow(f, l, th, in.Snapshot.Glow)
	if in.Profile != nil && l.StageX > 0 {
		drawHero(f, th, in.Profile, 3, 2, l.StageX-5, l.Height-2)
	}
	drawTrail(f, l, th, in.Snapshot.Trail)
	drawCard(f, l, th, in.Snapshot.Card, in.CardSize, in.Profile, in.Aura)
	drawStatus(f, th, in.Snapshot, in.Status)
	if in.ShowHelp {
		drawHelp(f, th)
	}
	return f
}

func drawGlow(f *Frame, l Layout, th Theme, p interact.Vec2) {
	col, row := l.ToCell(p.X, p.Y)
	if col < 0 && row < 0 {
		return
	}
	rx, ry := glowRadius/l.CellW, glowRadius/l.CellH
	for y := row - int(ry); y <= row+int(ry); y++ {
		for x := col - int(rx); x <= col+int(rx); x++ {
			dx, dy := float64(x-col)/rx, float64(y-row)/ry
			d := math.Sqrt(dx*dx + dy*dy)
			if d >= 1 {
				continue
			}
			f.Tint(x, y, Blend(f.Background(x, y), th.Primary, 0.12*(1-d)))
		}
	}
}

func drawHero(f *Frame, th Theme, p *content.Profile, x, y, w, bottom int) {
	if w < 10 {
		return
	}
	line := func(s string, fg lipgloss.Color, bold bool) {
		if y < bottom {
			f.PutString(x, y, runewidth.Truncate(s, w, "…"), fg, bold)
		}
		y++
	}
	para := func(s string, fg lipgloss.Color) {
		for _, ln := range strings.Split(ansi.Wordwrap(s, w, ""), "\n") {
			line(ln, fg, false)
		}
	}

	greet := p.Tagline + " "
	if y < bottom {
		n := f.PutString(x, y, greet, th.Text, true)
		name := []rune(p.DisplayName())
		for i, r := range name {
			t := 0.0
			if len(name) > 1 {
				t = float64(i) / float64(len(name)-1)
			}
			n += f.put(x+n, y, r, Blend(th.Primary, th.Secondary, t), true)
		}
	}
	y++
	line(p.Role, th.Muted, false)
	y++
	para(p.Bio, th.Text)
	if p.BioAccent != "" {
		para(p.BioAccent, th.Accent)
	}
	y++

	cx := x
	for _, s := range p.Skills {
		pill := "⟨ " + s + " ⟩"
		pw := runewidth.StringWidth(pill)
		if cx > x && cx+pw > x+w {
			cx = x
			y++
		}
		if y < bottom {
			f.PutString(cx, y, pill, th.Secondary, false)
		}
		cx += pw + 1
	}
	y += 2

	line("♥ Things I Love", th.Text, true)
	half := w / 2
	for i, h := range p.Hobbies {
		hx := x
		if i%2 == 1 {
			hx = x + half
		}
		if y < bottom {
			accent := lipgloss.Color(h.Accent)
			if h.Accent == "" {
				accent = th.Accent
			}
			n := f.PutString(hx, y, h.Icon+" ", accent, false)
			f.PutString(hx+n, y, runewidth.Truncate(h.Label, half-n-1, "…"), th.Text, false)
		}
		if i%2 == 1 || i == len(p.Hobbies)-1 {
			y++
		}
	}
	y++

	cx = x
	for i, c := range p.Contacts {
		fg := th.Muted
		if i == 0 {
			fg = th.Primary
		}
		if y < bottom {
			cx += f.PutString(cx, y, "[ "+c.Label+" ]", fg, i == 0) + 2
		}
	}
	y++
	if primary := p.Primary(); primary != "" {
		line(primary, th.Muted, false)
	}

	if p.Footer != "" && f.Height >= 3 {
		f.PutString(x, f.Height-2, runewidth.Truncate(p.Footer, w, "…"), th.Muted, false)
	}
}

func trailGlyph(opacity float64) rune {
	switch {
	case opacity > 0.75:
		return '●'
	case opacity > 0.5:
		return '•'
	case opacity > 0.25:
		return '∙'
	}
	return '·'
}

func drawTrail(f *Frame, l Layout, th Theme, trail []interact.TrailParticle) {
	for _, p := range trail {
		col, row := l.ToCell(p.X, p.Y)
		f.Put(col, row, trailGlyph(p.Opacity), Blend(th.Background, th.Primary, p.Opacity))
	}
}

// shear returns how many cells row r of an h-row card is shifted to suggest
// a lean around the vertical axis.
func shear(rotY float64, r, h int) int {
	if h <= 1 {
		return 0
	}
	frac := float64(r)/float64(h-1) - 0.5
	return int(math.Round(rotY * frac * 0.4))
}

func drawCard(f *Frame, l Layout, th Theme, card interact.CardView, size interact.Vec2, p *content.Profile, aura float64) {
	x0, y0 := l.ToCell(card.Position.X, card.Position.Y)
	if x0 == -1 && y0 == -1 {
		return
	}
	w, h := l.Cells(size.X, size.Y)
	if w < 4 || h < 3 {
		return
	}

	surface := Blend(th.Background, th.Primary, 0.08)
	border := Blend(th.Muted, th.Primary, 0.4+0.6*aura)
	top, bottom := border, border
	switch {
	case card.Rotation.X > 1:
		top = Blend(border, th.Text, 0.5)
	case card.Rotation.X < -1:
		bottom = Blend(border, th.Text, 0.5)
	}

	if aura > 0 {
		halo := Blend(th.Background, th.Primary, 0.25*aura)
		for r := -1; r <= h; r++ {
			s := shear(card.Rotation.Y, max(0, min(r, h-1)), h)
			for c := -1; c <= w; c++ {
				if r == -1 || r == h || c == -1 || c == w {
					f.Tint(x0+c+s, y0+r, halo)
				}
			}
		}
	}

	lines := cardLines(p, w-4)
	for r := 0; r < h; r++ {
		y := y0 + r
		x := x0 + shear(card.Rotation.Y, r, h)
		f.Fill(x, y, w, 1, ' ', th.Text, surface)
		switch r {
		case 0:
			f.Put(x, y, '╭', top)
			f.PutString(x+1, y, strings.Repeat("─", w-2), top, false)
			f.Put(x+w-1, y, '╮', top)
			continue
		case h - 1:
			f.Put(x, y, '╰', bottom)
			f.PutString(x+1, y, strings.Repeat("─", w-2), bottom, false)
			f.Put(x+w-1, y, '╯', bottom)
			continue
		}
		f.Put(x, y, '│', border)
		f.Put(x+w-1, y, '│', border)
		if i := r - 1; i < len(lines) {
			ln := lines[i]
			f.PutString(x+2, y, runewidth.Truncate(ln.text, w-4, "…"), ln.color(th), ln.bold)
		}
	}
}

type cardLine struct {
	text string
	role int
	bold bool
}

const (
	roleText = iota
	roleMuted
	rolePrimary
	roleAccent
)

func (c cardLine) color(th Theme) lipgloss.Color {
	switch c.role {
	case roleMuted:
		return th.Muted
	case rolePrimary:
		return th.Primary
	case roleAccent:
		return th.Accent
	}
	return th.Text
}

func cardLines(p *content.Profile, w int) []cardLine {
	if p == nil {
		return nil
	}
	avatar := "[ ▓▓ ]"
	if g := p.AvatarGlyph(); g != "" {
		avatar = "[ " + g + " ]"
	}
	out := []cardLine{
		{text: "", role: roleText},
		{text: avatar, role: rolePrimary, bold: true},
		{text: "", role: roleText},
		{text: p.Name, role: roleText, bold: true},
		{text: p.Role, role: rolePrimary},
		{text: "", role: roleText},
	}
	for _, s := range p.Stats {
		gap := max(1, w/2-runewidth.StringWidth(s.Label))
		out = append(out, cardLine{text: s.Label + strings.Repeat(" ", gap) + s.Value, role: roleMuted})
	}
	out = append(out, cardLine{text: "", role: roleText})
	if p.Featured.Name != "" {
		out = append(out,
			cardLine{text: "★ " + p.Featured.Title, role: roleAccent},
			cardLine{text: p.Featured.Name, role: roleText, bold: true},
			cardLine{text: p.Featured.Summary, role: roleMuted},
			cardLine{text: "", role: roleText},
		)
	}
	if len(p.Recognitions) > 0 {
		out = append(out, cardLine{text: "Research Recognitions", role: roleMuted})
		for _, r := range p.Recognitions {
			out = append(out, cardLine{text: "· " + r, role: roleText})
		}
	}
	return out
}

func drawStatus(f *Frame, th Theme, s interact.Snapshot, extra string) {
	y := f.Height - 1
	bg := Blend(th.Background, th.Text, 0.08)
	f.Fill(0, y, f.Width, 1, ' ', th.Muted, bg)

	mode, fg := " IDLE ", th.Muted
	if s.Card.Dragging {
		mode, fg = " DRAG ", th.Primary
	}
	x := f.PutString(0, y, mode, fg, true)
	info := fmt.Sprintf(" ptr %s  card %s  tilt %s  trail %d ",
		s.Glow, s.Card.Position, s.Card.Rotation, len(s.Trail))
	x += f.PutString(x, y, info, th.Muted, false)
	if extra != "" {
		x += f.PutString(x, y, " "+extra+" ", th.Accent, true)
	}
	hint := "?:help q:quit"
	if hx := f.Width - runewidth.StringWidth(hint) - 1; hx > x {
		f.PutString(hx, y, hint, th.Muted, false)
	}
}

var helpLines = []string{
	"KEYBOARD & MOUSE",
	"",
	"drag card  - move it around",
	"t          - cycle themes",
	"r          - reset card",
	"g          - toggle session recording",
	"c          - copy contact",
	"?          - toggle this help",
	"q          - quit",
}

func drawHelp(f *Frame, th Theme) {
	w := 0
	for _, ln := range helpLines {
		w = max(w, runewidth.StringWidth(ln))
	}
	w += 4
	h := len(helpLines) + 2
	x0, y0 := (f.Width-w)/2, (f.Height-h)/2
	bg := Blend(th.Background, th.Primary, 0.15)
	f.Fill(x0, y0, w, h, ' ', th.Text, bg)
	for i, ln := range helpLines {
		fg := th.Text
		if i == 0 {
			fg = th.Primary
		}
		f.PutString(x0+2, y0+1+i, ln, fg, i == 0)
	}
}
