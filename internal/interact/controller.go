package interact

import (
	"log/slog"

	"github.com/san-kum/folio/internal/clock"
)

type particle struct {
	pos Vec2
	id  uint64
	age int
}

// Controller owns the drag loop state. Create one per mounted view.
type Controller struct {
	params  Params
	sched   clock.Scheduler
	pointer Vec2
	card    CardState
	trail   []particle
	nextID  uint64

	stopTick clock.CancelFunc
}

func New(sched clock.Scheduler, p Params) *Controller {
	if p.MaxTrail < 0 {
		p.MaxTrail = 0
	}
	return &Controller{
		params: p,
		sched:  sched,
		card:   CardState{Position: p.Start},
		trail:  make([]particle, 0, p.MaxTrail+1),
	}
}

func (c *Controller) Params() Params    { return c.params }
func (c *Controller) Pointer() Vec2     { return c.pointer }
func (c *Controller) Card() CardState   { return c.card }
func (c *Controller) Dragging() bool    { return c.card.Dragging }
func (c *Controller) TrailLen() int     { return len(c.trail) }
func (c *Controller) TickRunning() bool { return c.stopTick != nil }

// HitTest reports whether (x, y) lies on the card.
func (c *Controller) HitTest(x, y float64) bool {
	p, s := c.card.Position, c.params.CardSize
	return x >= p.X && x <= p.X+s.X && y >= p.Y && y <= p.Y+s.Y
}

// Press engages a drag if (x, y) hits the card.
func (c *Controller) Press(x, y float64) bool {
	if !c.HitTest(x, y) {
		return false
	}
	c.PointerDown(x, y)
	return true
}

// PointerMove records the pointer and, while dragging, moves and tilts the
// card and appends a trail particle. movementX/Y is the pointer delta since
// the previous sample.
func (c *Controller) PointerMove(x, y, movementX, movementY float64) {
	c.pointer = Vec2{X: x, Y: y}
	if !c.card.Dragging {
		c.card.Rotation = Vec2{}
		return
	}

	pos := c.pointer.Sub(c.card.DragOffset)
	c.card.Position = pos
	c.card.Rotation = Vec2{
		X: -movementY * c.params.TiltFactor,
		Y: movementX * c.params.TiltFactor,
	}
	if c.params.Decay == DecayLegacy {
		c.sched.After(c.params.DecayDelay, c.decayRotation)
	}

	c.nextID++
	c.trail = append(c.trail, particle{pos: pos.Add(c.params.CenterOffset()), id: c.nextID})
	if over := len(c.trail) - c.params.MaxTrail; over > 0 {
		c.trail = append(c.trail[:0], c.trail[over:]...)
	}
}

// PointerDown engages a drag. Hosts only call it for presses on the card;
// see Press.
func (c *Controller) PointerDown(x, y float64) {
	if c.stopTick != nil {
		c.stopTick()
	}
	c.card.Dragging = true
	c.card.DragOffset = Vec2{X: x, Y: y}.Sub(c.card.Position)
	c.stopTick = c.sched.Every(c.params.TickInterval, c.Tick)
	slog.Debug("drag engaged", "offset", c.card.DragOffset, "position", c.card.Position)
}

// PointerUp releases the drag wherever it happens and wipes the trail.
func (c *Controller) PointerUp() {
	if c.stopTick != nil {
		c.stopTick()
		c.stopTick = nil
	}
	if c.card.Dragging {
		slog.Debug("drag released", "position", c.card.Position, "trail", len(c.trail))
	}
	c.card.Dragging = false
	c.trail = c.trail[:0]
}

// Reset releases any drag and returns the card to its start position.
func (c *Controller) Reset() {
	c.PointerUp()
	c.card = CardState{Position: c.params.Start}
}

// Tick ages every trail particle by one fade step and drops the ones that
// reached zero opacity. With DecayRecurrence it also relaxes the tilt.
func (c *Controller) Tick() {
	if !c.card.Dragging {
		return
	}
	live := c.trail[:0]
	for _, p := range c.trail {
		p.age++
		if c.opacity(p) > 0 {
			live = append(live, p)
		}
	}
	c.trail = live
	if c.params.Decay == DecayRecurrence {
		c.decayRotation()
	}
}

func (c *Controller) decayRotation() {
	c.card.Rotation = c.card.Rotation.Scale(c.params.DecayFactor)
}

func (c *Controller) opacity(p particle) float64 {
	o := 1 - float64(p.age)*c.params.FadeStep
	if o <= opacityEpsilon {
		return 0
	}
	if o > 1 {
		return 1
	}
	return o
}

// Trail returns the live particles oldest first.
func (c *Controller) Trail() []TrailParticle {
	out := make([]TrailParticle, len(c.trail))
	for i, p := range c.trail {
		out[i] = TrailParticle{X: p.pos.X, Y: p.pos.Y, ID: p.id, Opacity: c.opacity(p)}
	}
	return out
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Glow: c.pointer,
		Card: CardView{
			Position: c.card.Position,
			Rotation: c.card.Rotation,
			Dragging: c.card.Dragging,
		},
		Trail: c.Trail(),
	}
}
