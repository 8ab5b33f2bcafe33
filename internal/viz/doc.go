// Package viz draws cloths in the terminal.
//
// A [Canvas] packs 2x4 sub-pixels into each braille character. A [Camera]
// orbits the cloth and projects particles onto the canvas, and [Model] is the
// Bubble Tea program that steps a cloth at 60 Hz and renders it next to a
// status panel and a stretch chart.
//
// # Key Bindings
//
//	Space       - Pause/Resume
//	R           - Reset to the rest pose
//	W           - Cycle wind mode
//	P           - Toggle pins
//	+/-         - Relaxation iterations
//	Arrows, X/Y - Orbit the camera
//	z/Z         - Zoom in/out
//	Q           - Quit
package viz
