// Package interact implements the pointer-driven drag loop of the profile
// card.
//
// A [Controller] owns the pointer position, the card state and the trail
// particle buffer. Hosts feed it raw pointer events and read a [Snapshot]
// back for rendering:
//
//   - [Controller.PointerMove]: re-anchors the card under the cursor, tilts it
//     and drops a trail particle while a drag is engaged
//   - [Controller.PointerDown]: engages a drag, fixing the grab offset
//   - [Controller.PointerUp]: releases the drag and wipes the trail
//   - [Controller.Tick]: fades the trail, runs every TickInterval while dragging
//
// # Timers
//
// The controller never touches wall-clock time. It arms its callbacks on a
// [clock.Scheduler], so tests drive it with a [clock.Manual] and the terminal
// host advances the same kind of clock from its frame loop.
//
// # Thread Safety
//
// Controller instances are NOT thread-safe. Events and scheduler callbacks
// must be delivered from a single goroutine.
package interact
