// Package viz renders wave packets in the terminal.
//
// The live view is a Bubble Tea program that animates a packet frame by
// frame:
//
//   - [Model]: the animation, stepping the packet through its frame times
//   - [Canvas]: Braille-based pixel canvas, 2x4 dots per cell
//   - Theme selection with built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset to t = 0
//	M     - Cycle wave / spectrum / both
//	A     - Toggle spectrum axis convention
//	T     - Cycle color themes
//	+/-   - Frames advanced per tick
//	[]    - Step one frame back/forward
//	?     - Show help overlay
package viz
