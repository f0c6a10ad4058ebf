package record

import (
	"context"

	"github.com/san-kum/folio/internal/clock"
	"github.com/san-kum/folio/internal/interact"
)

// Result is the outcome of replaying a session.
type Result struct {
	Final     interact.Snapshot
	Times     []float64
	TrailLens []float64
	// Path holds the card position after every event applied mid-drag.
	Path       []interact.Vec2
	Presses    int
	Engaged    int
	MaxTrail   int
	Controller *interact.Controller
}

// Replay drives a fresh controller through events on a simulated clock. The
// clock is advanced to each event's timestamp before the event is applied,
// so fade ticks interleave exactly as they would live.
func Replay(ctx context.Context, events []Event, p interact.Params) (*Result, error) {
	clk := clock.NewManual()
	ctrl := interact.New(clk, p)
	res := &Result{
		Times:      make([]float64, 0, len(events)),
		TrailLens:  make([]float64, 0, len(events)),
		Controller: ctrl,
	}

	for _, e := range events {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if wait := e.At - clk.Now(); wait > 0 {
			clk.Advance(wait)
		}
		switch e.Kind {
		case KindMove:
			ctrl.PointerMove(e.X, e.Y, e.DX, e.DY)
		case KindDown:
			res.Presses++
			if ctrl.Press(e.X, e.Y) {
				res.Engaged++
			}
		case KindUp:
			ctrl.PointerUp()
		}
		if ctrl.Dragging() {
			res.Path = append(res.Path, ctrl.Card().Position)
		}
		n := ctrl.TrailLen()
		if n > res.MaxTrail {
			res.MaxTrail = n
		}
		res.Times = append(res.Times, clk.Now().Seconds())
		res.TrailLens = append(res.TrailLens, float64(n))
	}

	res.Final = ctrl.Snapshot()
	return res, nil
}
