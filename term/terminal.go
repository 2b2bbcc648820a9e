// Package term provides the Terminal facade that wires a parser.Parser to
// a screen.Screen: the shape ptyio/cmd consumers actually hold onto,
// mirroring gopyte's top-level Stream+Screen pairing (examples/
// interactive_terminal/main.go) but built on this core's byte-oriented
// parser/screen packages instead of gopyte's string-based Draw API.
package term

import (
	"log"
	"sync"

	"github.com/halcyon-term/vtcore/buffer"
	"github.com/halcyon-term/vtcore/parser"
	"github.com/halcyon-term/vtcore/screen"
)

// Terminal owns one Parser/Screen pair and the lock a renderer must hold
// while reading a Snapshot concurrently with Feed calls (spec.md §5:
// "single-threaded core, external lock for renderer snapshot").
type Terminal struct {
	mu     sync.Mutex
	parser *parser.Parser
	screen *screen.Screen
}

// New creates a Terminal of the given geometry. reply receives DSR/DA/
// DECRQSS/mouse write-back bytes; it may be nil.
func New(cols, rows int, reply screen.ReplySink) *Terminal {
	scr := screen.New(cols, rows, reply)
	return &Terminal{
		parser: parser.New(scr),
		screen: scr,
	}
}

// SetLogger routes the Screen's unknown-sequence diagnostics through l.
func (t *Terminal) SetLogger(l *log.Logger) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Logger = l
}

// SetBell overrides the BEL callback (default no-op).
func (t *Terminal) SetBell(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.BellFunc = fn
}

// Feed processes one chunk of host output. Safe to call repeatedly with
// arbitrarily split chunks (spec.md §8 chunk independence).
func (t *Terminal) Feed(data []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.parser.Feed(data)
}

// Resize changes the terminal's geometry.
func (t *Terminal) Resize(cols, rows int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Resize(cols, rows)
}

// Snapshot returns a deep copy of the active screen's cells, safe to use
// without holding Terminal's lock afterward.
func (t *Terminal) Snapshot() [][]buffer.Cell {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Snapshot()
}

// Cursor reports the live cursor position and visibility.
func (t *Terminal) Cursor() (x, y int, visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	x, y = t.screen.CursorPos()
	return x, y, t.screen.CursorVisible()
}

// Title returns the current window title (OSC 0/2).
func (t *Terminal) Title() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Title()
}

// ReportMouse encodes a semantic mouse event (spec.md §6 report_mouse) and
// writes it to the reply sink, if and how the active tracking modes
// (1000/1002/1003/1005/1006) call for.
func (t *Terminal) ReportMouse(x, y int, button screen.MouseButton, action screen.MouseAction, mods screen.Modifiers) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.ReportMouse(x, y, button, action, mods)
}
