package interact_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/folio/internal/clock"
	"github.com/san-kum/folio/internal/interact"
)

var _ = Describe("Controller", func() {
	var (
		clk  *clock.Manual
		ctrl *interact.Controller
	)

	tick := interact.DefaultTickInterval

	BeforeEach(func() {
		clk = clock.NewManual()
		ctrl = interact.New(clk, interact.DefaultParams())
	})

	Describe("dragging", func() {
		It("keeps the grab point under the cursor", func() {
			start := ctrl.Card().Position
			ctrl.PointerDown(175, 95)
			for _, p := range []interact.Vec2{{X: 10, Y: 10}, {X: 400, Y: -30}, {X: 177.5, Y: 93.25}} {
				ctrl.PointerMove(p.X, p.Y, 3, -2)
				Expect(ctrl.Card().Position).To(Equal(interact.Vec2{
					X: p.X - (175 - start.X),
					Y: p.Y - (95 - start.Y),
				}))
			}
		})

		It("fixes the drag offset at press time", func() {
			ctrl.PointerDown(200, 100)
			offset := ctrl.Card().DragOffset
			for i := 0; i < 30; i++ {
				ctrl.PointerMove(float64(200+i*7), float64(100-i*3), 7, -3)
				clk.Advance(10 * time.Millisecond)
				Expect(ctrl.Card().DragOffset).To(Equal(offset))
			}
		})

		It("tilts away from the motion", func() {
			ctrl.PointerDown(200, 100)
			ctrl.PointerMove(210, 96, 10, -4)
			Expect(ctrl.Card().Rotation).To(Equal(interact.Vec2{X: 2, Y: 5}))
		})

		It("spawns particles at the card centre", func() {
			ctrl.PointerDown(200, 100)
			ctrl.PointerMove(260, 130, 60, 30)
			trail := ctrl.Trail()
			Expect(trail).To(HaveLen(1))
			Expect(trail[0].X).To(Equal(210.0 + 160))
			Expect(trail[0].Y).To(Equal(110.0 + 180))
			Expect(trail[0].Opacity).To(Equal(1.0))
		})

		It("gives every particle a fresh id", func() {
			ctrl.PointerDown(200, 100)
			seen := map[uint64]bool{}
			for i := 0; i < 40; i++ {
				ctrl.PointerMove(float64(200+i), 100, 1, 0)
				for _, p := range ctrl.Trail() {
					seen[p.ID] = true
				}
			}
			Expect(seen).To(HaveLen(40))
		})
	})

	Describe("trail bound", func() {
		DescribeTable("holds min(N, 15) particles after N moves",
			func(n int) {
				ctrl.PointerDown(200, 100)
				for i := 0; i < n; i++ {
					ctrl.PointerMove(float64(200+i), 100, 1, 0)
					Expect(ctrl.TrailLen()).To(BeNumerically("<=", interact.DefaultMaxTrail))
				}
				Expect(ctrl.TrailLen()).To(Equal(min(n, interact.DefaultMaxTrail)))
			},
			Entry("none", 0),
			Entry("one", 1),
			Entry("just under", 14),
			Entry("exactly", 15),
			Entry("one over", 16),
			Entry("many", 200),
		)

		It("evicts the oldest particles first", func() {
			ctrl.PointerDown(200, 100)
			for i := 0; i < 20; i++ {
				ctrl.PointerMove(float64(200+i), 100, 1, 0)
			}
			trail := ctrl.Trail()
			Expect(trail[0].ID).To(Equal(uint64(6)))
			Expect(trail[len(trail)-1].ID).To(Equal(uint64(20)))
		})
	})

	Describe("release", func() {
		It("clears the trail regardless of its length", func() {
			ctrl.PointerDown(200, 100)
			for i := 0; i < 9; i++ {
				ctrl.PointerMove(float64(200+i), 100, 1, 0)
			}
			ctrl.PointerUp()
			Expect(ctrl.Trail()).To(BeEmpty())
			Expect(ctrl.Dragging()).To(BeFalse())
		})

		It("stops the fade tick", func() {
			ctrl.PointerDown(200, 100)
			Expect(ctrl.TickRunning()).To(BeTrue())
			ctrl.PointerUp()
			Expect(ctrl.TickRunning()).To(BeFalse())
			Expect(clk.Pending()).To(BeZero())
		})

		It("does not move the card", func() {
			ctrl.PointerDown(200, 100)
			ctrl.PointerMove(260, 130, 60, 30)
			pos := ctrl.Card().Position
			ctrl.PointerUp()
			Expect(ctrl.Card().Position).To(Equal(pos))
		})

		It("is safe without a drag", func() {
			ctrl.PointerUp()
			ctrl.PointerUp()
			Expect(ctrl.Dragging()).To(BeFalse())
		})
	})

	Describe("fading", func() {
		It("decays opacity by 0.05 per tick", func() {
			ctrl.PointerDown(200, 100)
			ctrl.PointerMove(201, 100, 1, 0)
			for k := 1; k < 20; k++ {
				clk.Advance(tick)
				trail := ctrl.Trail()
				Expect(trail).To(HaveLen(1))
				Expect(trail[0].Opacity).To(BeNumerically("~", 1-0.05*float64(k), 1e-9))
			}
			clk.Advance(tick)
			Expect(ctrl.Trail()).To(BeEmpty())
		})

		It("fades late particles on their own schedule", func() {
			ctrl.PointerDown(200, 100)
			ctrl.PointerMove(201, 100, 1, 0)
			clk.Advance(10 * tick)
			ctrl.PointerMove(202, 100, 1, 0)
			clk.Advance(10 * tick)

			trail := ctrl.Trail()
			Expect(trail).To(HaveLen(1))
			Expect(trail[0].ID).To(Equal(uint64(2)))
			Expect(trail[0].Opacity).To(BeNumerically("~", 0.5, 1e-9))
		})

		It("keeps every opacity inside [0, 1]", func() {
			ctrl.PointerDown(200, 100)
			for i := 0; i < 100; i++ {
				ctrl.PointerMove(float64(200+i), 100, 1, 0)
				clk.Advance(17 * time.Millisecond)
				for _, p := range ctrl.Trail() {
					Expect(p.Opacity).To(And(BeNumerically(">", 0), BeNumerically("<=", 1)))
				}
			}
		})

		It("never ticks while idle", func() {
			ctrl.PointerDown(200, 100)
			ctrl.PointerMove(201, 100, 1, 0)
			ctrl.PointerUp()
			clk.Advance(5 * time.Second)
			Expect(clk.Pending()).To(BeZero())
		})
	})

	Describe("idle rotation", func() {
		It("resets tilt on any move without a drag", func() {
			ctrl.PointerDown(200, 100)
			ctrl.PointerMove(230, 80, 30, -20)
			ctrl.PointerUp()
			Expect(ctrl.Card().Rotation.IsZero()).To(BeFalse())

			ctrl.PointerMove(300, 150, 70, 70)
			Expect(ctrl.Card().Rotation).To(Equal(interact.Vec2{}))
		})
	})

	Describe("decay modes", func() {
		It("relaxes tilt once per tick with the recurrence", func() {
			ctrl.PointerDown(200, 100)
			ctrl.PointerMove(210, 100, 10, 0)
			clk.Advance(tick)
			Expect(ctrl.Card().Rotation.Y).To(BeNumerically("~", 4, 1e-9))
			clk.Advance(tick)
			Expect(ctrl.Card().Rotation.Y).To(BeNumerically("~", 3.2, 1e-9))
		})

		It("lets stale legacy timers interleave with newer moves", func() {
			p := interact.DefaultParams()
			p.Decay = interact.DecayLegacy
			ctrl = interact.New(clk, p)

			ctrl.PointerDown(200, 100)
			ctrl.PointerMove(210, 100, 10, 0)
			clk.Advance(30 * time.Millisecond)
			ctrl.PointerMove(230, 100, 20, 0)
			Expect(ctrl.Card().Rotation.Y).To(Equal(10.0))

			// the first move's timer fires at 50ms and scales the newer tilt
			clk.Advance(20 * time.Millisecond)
			Expect(ctrl.Card().Rotation.Y).To(BeNumerically("~", 8, 1e-9))
			clk.Advance(30 * time.Millisecond)
			Expect(ctrl.Card().Rotation.Y).To(BeNumerically("~", 6.4, 1e-9))
		})

		It("does not cancel legacy timers on release", func() {
			p := interact.DefaultParams()
			p.Decay = interact.DecayLegacy
			ctrl = interact.New(clk, p)

			ctrl.PointerDown(200, 100)
			ctrl.PointerMove(210, 100, 10, 0)
			ctrl.PointerUp()
			Expect(clk.Pending()).To(Equal(1))
			clk.Advance(tick)
			Expect(clk.Pending()).To(BeZero())
			Expect(ctrl.Card().Rotation.Y).To(BeNumerically("~", 4, 1e-9))
		})
	})

	Describe("hit testing", func() {
		It("only engages presses on the card", func() {
			Expect(ctrl.Press(10, 10)).To(BeFalse())
			Expect(ctrl.Dragging()).To(BeFalse())
			Expect(ctrl.Press(150+320, 80+360)).To(BeTrue())
			Expect(ctrl.Dragging()).To(BeTrue())
		})
	})

	It("walks through the press, move, release scenario", func() {
		ctrl.PointerDown(200, 100)
		Expect(ctrl.Card().DragOffset).To(Equal(interact.Vec2{X: 50, Y: 20}))

		ctrl.PointerMove(260, 130, 60, 30)
		Expect(ctrl.Card().Position).To(Equal(interact.Vec2{X: 210, Y: 110}))

		ctrl.PointerUp()
		Expect(ctrl.Trail()).To(BeEmpty())
		Expect(ctrl.Dragging()).To(BeFalse())

		ctrl.PointerMove(300, 150, 40, 20)
		Expect(ctrl.Card().Position).To(Equal(interact.Vec2{X: 210, Y: 110}))
		Expect(ctrl.Card().Rotation).To(Equal(interact.Vec2{}))

		snap := ctrl.Snapshot()
		Expect(snap.Glow).To(Equal(interact.Vec2{X: 300, Y: 150}))
		Expect(snap.Card.Dragging).To(BeFalse())
	})
})
