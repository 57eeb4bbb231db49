// Package viz runs a ball world in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live world view with a stats panel and mouse input
//   - [Canvas]: braille pixel canvas with per-cell color
//   - [Viewport]: maps world coordinates to canvas sub-pixels and back
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	a/A   - Add a random ball / the selected type
//	c     - Clear
//	g t x - Toggle gravity, trails, collisions
//	1-5   - Select the type spawned by clicks
//	T     - Cycle color themes
//	R     - Toggle GIF recording
//	?     - Show help overlay
//
// Clicking empty space adds a ball; dragging a ball and letting go throws it.
//
// # Recording
//
// Recordings are written to ballpit.gif in the current directory.
package viz
