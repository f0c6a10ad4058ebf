// Package viz renders the portfolio into a terminal frame.
//
// Rendering is a pure function of an [Input]: the controller [interact.Snapshot],
// the profile content, a [Theme], the decorative [Backdrop] and a [Layout]
// that maps pointer space onto cells. Layers are painted back to front into a
// [Frame]:
//
//   - backdrop grid, scanline and floating dots (braille [Canvas])
//   - ambient glow around the pointer
//   - hero column with greeting, bio, skills, hobbies and contacts
//   - trail particles, one glyph per opacity band
//   - the profile card, sheared by its tilt
//   - status line and help overlay
//
// Cell width is measured with go-runewidth so wide glyphs occupy two cells.
package viz
