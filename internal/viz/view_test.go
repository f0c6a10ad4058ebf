package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/folio/internal/content"
	"github.com/san-kum/folio/internal/interact"
)

func baseInput() Input {
	p := interact.DefaultParams()
	return Input{
		Snapshot: interact.Snapshot{
			Card: interact.CardView{Position: p.Start},
		},
		CardSize: p.CardSize,
		Profile:  content.Default(),
		Theme:    ThemeHolo,
		Backdrop: NewBackdrop(10, 1),
		Layout:   NewLayout(120, 40, 10, 20),
	}
}

func TestComposeCardCorners(t *testing.T) {
	in := baseInput()
	f := Compose(in)

	x0, y0 := in.Layout.ToCell(150, 80)
	if got := f.Rune(x0, y0); got != '╭' {
		t.Errorf("expected top-left corner at (%d,%d), got %q", x0, y0, got)
	}
	if got := f.Rune(x0+31, y0+17); got != '╯' {
		t.Errorf("expected bottom-right corner, got %q", got)
	}
}

func TestComposeTrail(t *testing.T) {
	in := baseInput()
	in.Snapshot.Trail = []interact.TrailParticle{
		{X: -200, Y: 30, ID: 1, Opacity: 1},
		{X: -300, Y: 30, ID: 2, Opacity: 0.1},
	}
	f := Compose(in)

	col, row := in.Layout.ToCell(-200, 30)
	if got := f.Rune(col, row); got != '●' {
		t.Errorf("expected bright particle, got %q", got)
	}
	col, row = in.Layout.ToCell(-300, 30)
	if got := f.Rune(col, row); got != '·' {
		t.Errorf("expected faint particle, got %q", got)
	}
}

func TestComposeHeroAndStatus(t *testing.T) {
	in := baseInput()
	in.Snapshot.Card.Dragging = true
	in.Status = "REC"
	out := Compose(in).Plain()

	for _, want := range []string{"Hi, I'm Ada", "Business Analyst", "Things I Love", "DRAG", "REC", "Evalu8"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in frame", want)
		}
	}
}

func TestComposeAvatarPlaceholder(t *testing.T) {
	in := baseInput()
	in.Profile.Avatar = "/definitely/missing.jpg"
	if out := Compose(in).Plain(); !strings.Contains(out, "[ A ]") {
		t.Error("expected textual avatar placeholder")
	}
}

func TestComposeHelp(t *testing.T) {
	in := baseInput()
	in.ShowHelp = true
	if out := Compose(in).Plain(); !strings.Contains(out, "KEYBOARD & MOUSE") {
		t.Error("expected help overlay")
	}
}

func TestComposeOffscreenCard(t *testing.T) {
	in := baseInput()
	in.Snapshot.Card.Position = interact.Vec2{X: 1e9, Y: -1e9}
	in.Snapshot.Glow = interact.Vec2{X: -1e9, Y: 1e9}
	f := Compose(in)
	if f.Width != 120 || f.Height != 40 {
		t.Errorf("unexpected frame size %dx%d", f.Width, f.Height)
	}
}

func TestComposeEmpty(t *testing.T) {
	in := baseInput()
	in.Layout = NewLayout(0, 0, 10, 20)
	if out := Render(in); out != "" {
		t.Errorf("expected empty render, got %q", out)
	}
}

func TestShear(t *testing.T) {
	if shear(0, 0, 10) != 0 || shear(10, 5, 1) != 0 {
		t.Error("expected no shear without tilt or height")
	}
	top, bottom := shear(20, 0, 18), shear(20, 17, 18)
	if top >= 0 || bottom <= 0 || top != -bottom {
		t.Errorf("expected symmetric shear, got %d/%d", top, bottom)
	}
}

func TestTrailGlyph(t *testing.T) {
	tests := []struct {
		opacity float64
		want    rune
	}{
		{1, '●'}, {0.7, '•'}, {0.3, '∙'}, {0.05, '·'},
	}
	for _, tt := range tests {
		if got := trailGlyph(tt.opacity); got != tt.want {
			t.Errorf("opacity %v: expected %q, got %q", tt.opacity, tt.want, got)
		}
	}
}

func TestBlend(t *testing.T) {
	if got := Blend("#000000", "#ffffff", 0.5); got != "#808080" {
		t.Errorf("expected #808080, got %s", got)
	}
	if got := Blend("#102030", "#ffffff", -1); got != "#102030" {
		t.Errorf("expected clamp to start, got %s", got)
	}
}

func TestNextTheme(t *testing.T) {
	names := ThemeNames()
	if NextTheme(names[len(names)-1]).Name != names[0] {
		t.Error("expected wrap-around")
	}
	if GetTheme("missing").Name != ThemeHolo.Name {
		t.Error("expected default theme fallback")
	}
}

func TestBackdropGridScroll(t *testing.T) {
	b := NewBackdrop(0, 1)
	if b.GridOffset() != 0 {
		t.Fatal("expected zero offset at start")
	}
	b.Step(gridPeriod / 2)
	if b.GridOffset() != gridSpacing/2 {
		t.Errorf("expected half offset, got %d", b.GridOffset())
	}
	b.Step(-5)
	if b.Elapsed() != gridPeriod/2 {
		t.Error("negative step moved the backdrop")
	}
}
