package interact

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultTiltFactor   = 0.5
	DefaultDecayFactor  = 0.8
	DefaultDecayDelay   = 50 * time.Millisecond
	DefaultTickInterval = 50 * time.Millisecond
	DefaultMaxTrail     = 15
	DefaultFadeStep     = 0.05
)

// opacityEpsilon absorbs float drift so a particle that has faded for
// exactly 1/FadeStep ticks is treated as gone.
const opacityEpsilon = 1e-9

var ErrUnknownDecayMode = errors.New("interact: unknown decay mode")

type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) IsZero() bool         { return v.X == 0 && v.Y == 0 }
func (v Vec2) String() string       { return fmt.Sprintf("(%.1f, %.1f)", v.X, v.Y) }

// CardState is the full card model. DragOffset is only meaningful while
// Dragging is true.
type CardState struct {
	Position   Vec2
	Rotation   Vec2
	Dragging   bool
	DragOffset Vec2
}

type TrailParticle struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	ID      uint64  `json:"id"`
	Opacity float64 `json:"opacity"`
}

type CardView struct {
	Position Vec2 `json:"position"`
	Rotation Vec2 `json:"rotation"`
	Dragging bool `json:"dragging"`
}

// Snapshot is the render state handed to the view layer. It shares no
// memory with the controller.
type Snapshot struct {
	Glow  Vec2            `json:"glow"`
	Card  CardView        `json:"card"`
	Trail []TrailParticle `json:"trail"`
}

// DecayMode selects how the tilt relaxes after a drag move.
type DecayMode int

const (
	// DecayRecurrence scales the rotation once per Tick. It has a single
	// writer and cannot race with new moves.
	DecayRecurrence DecayMode = iota
	// DecayLegacy arms an independent one-shot timer per move that scales
	// whatever rotation is current when it fires. Timers are never cancelled.
	DecayLegacy
)

func (d DecayMode) String() string {
	switch d {
	case DecayRecurrence:
		return "recurrence"
	case DecayLegacy:
		return "legacy"
	}
	return fmt.Sprintf("DecayMode(%d)", int(d))
}

func ParseDecayMode(s string) (DecayMode, error) {
	switch s {
	case "", "recurrence":
		return DecayRecurrence, nil
	case "legacy":
		return DecayLegacy, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDecayMode, s)
}

// Params tunes a Controller. The zero value is not useful; start from
// DefaultParams.
type Params struct {
	Start        Vec2
	CardSize     Vec2
	TiltFactor   float64
	DecayFactor  float64
	DecayDelay   time.Duration
	TickInterval time.Duration
	MaxTrail     int
	FadeStep     float64
	Decay        DecayMode
}

func DefaultParams() Params {
	return Params{
		Start:        Vec2{X: 150, Y: 80},
		CardSize:     Vec2{X: 320, Y: 360},
		TiltFactor:   DefaultTiltFactor,
		DecayFactor:  DefaultDecayFactor,
		DecayDelay:   DefaultDecayDelay,
		TickInterval: DefaultTickInterval,
		MaxTrail:     DefaultMaxTrail,
		FadeStep:     DefaultFadeStep,
		Decay:        DecayRecurrence,
	}
}

// CenterOffset is where trail particles spawn relative to the card anchor.
func (p Params) CenterOffset() Vec2 { return p.CardSize.Scale(0.5) }
