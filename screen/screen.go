// Package screen implements the terminal's grid-and-cursor model: the
// single point of mutation the parser dispatches into (parser.Sink), owning
// the primary and alternate Buffers, cursor state, scroll region, tab
// stops, mode table, character-set state and title. Modeled on gopyte's
// NativeScreen/HistoryScreen/AlternateScreen/WideCharScreen family, folded
// into one cohesive type the way spec.md's Screen module describes it
// rather than gopyte's layered embedding chain.
package screen

import (
	"container/list"
	"log"

	"github.com/halcyon-term/vtcore/buffer"
	"github.com/halcyon-term/vtcore/parser"
	"github.com/halcyon-term/vtcore/style"
)

// ReplySink receives bytes the Screen writes back to the host (DSR/DA
// reports, DECRQSS replies, mouse reports). Implementations must never
// block the core: a full outbound buffer drops bytes rather than stalling
// (spec.md §5 "write-back... never blocks; drop-on-full").
type ReplySink interface {
	WriteReply(p []byte)
}

type nopReplySink struct{}

func (nopReplySink) WriteReply(p []byte) {}

// maxScrollback bounds the in-memory scrollback ring (spec.md's "scrollback
// persistence beyond an in-memory ring" Non-goal implies a ring exists; it
// is just never persisted to disk).
const maxScrollback = 10000

// savedCursor is the DECSC/DECRC save slot, kept once per buffer (primary
// and alternate each have their own, per spec.md §3).
type savedCursor struct {
	valid       bool
	x, y        int
	style       style.Style
	origin      bool
	charset     charsetState
	pendingWrap bool
}

// Cursor is the live cursor: position, drawing style, and the
// pending-wrap latch DECAWM needs to defer a wrap until the next printable
// character actually arrives (spec.md §4.1).
type Cursor struct {
	X, Y        int
	Style       style.Style
	PendingWrap bool
	Hidden      bool
}

// Screen is the terminal core's screen model: parser.Sink implementation,
// owner of both buffers and all addressable state.
type Screen struct {
	cols, rows int

	primary *buffer.Buffer
	alt     *buffer.Buffer
	active  *buffer.Buffer
	onAlt   bool

	cursor Cursor

	savedPrimary savedCursor
	savedAlt     savedCursor

	// scrollTop/scrollBottom are 0-based, inclusive, and always a valid
	// sub-range of [0,rows-1] (spec.md §4.1 DECSTBM validation).
	scrollTop, scrollBottom int

	tabStops []bool

	ansiModes map[int]bool
	decModes  map[int]bool

	charset charsetState

	title      string
	titleStack []string
	iconName   string

	history *list.List // of []buffer.Cell, oldest first

	reply  ReplySink
	Logger *log.Logger

	// BellFunc is invoked on BEL (0x07). Default is a no-op, mirroring
	// gopyte's Screen.Bell stub but made embedder-overridable (bittty's
	// devices/bell.py collaborator shape).
	BellFunc func()

	dcsActive bool
	dcsFinal  byte
	dcsParams []style.Param
	dcsPayload []byte
}

// New creates a Screen with the given geometry. reply may be nil, in which
// case DSR/DA/mouse reports are silently discarded.
func New(cols, rows int, reply ReplySink) *Screen {
	if reply == nil {
		reply = nopReplySink{}
	}
	s := &Screen{
		cols: cols, rows: rows,
		primary: buffer.New(cols, rows),
		alt:     buffer.New(cols, rows),
		ansiModes: map[int]bool{},
		decModes:  map[int]bool{},
		history:   list.New(),
		reply:     reply,
		BellFunc:  func() {},
	}
	s.active = s.primary
	s.resetTabStops()
	s.scrollTop, s.scrollBottom = 0, rows-1
	s.charset = newCharsetState()
	s.decModes[modeDECAWM] = true
	s.decModes[modeDECTCEM] = true
	return s
}

// Cols and Rows report the current geometry.
func (s *Screen) Cols() int { return s.cols }
func (s *Screen) Rows() int { return s.rows }

// CursorPos reports the live cursor, clamped to the current grid.
func (s *Screen) CursorPos() (x, y int) { return s.cursor.X, s.cursor.Y }

// CursorVisible reports whether DECTCEM currently shows the cursor.
func (s *Screen) CursorVisible() bool { return !s.cursor.Hidden }

// Snapshot returns a deep copy of the active buffer's cells, safe to hand
// to a renderer running under its own lock (spec.md §5).
func (s *Screen) Snapshot() [][]buffer.Cell { return s.active.Snapshot() }

// Title returns the current window title (OSC 0/2).
func (s *Screen) Title() string { return s.title }

// OnAlternate reports whether the alternate screen buffer is active.
func (s *Screen) OnAlternate() bool { return s.onAlt }

func (s *Screen) logf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}

func (s *Screen) resetTabStops() {
	s.tabStops = make([]bool, s.cols)
	for x := 0; x < s.cols; x += 8 {
		s.tabStops[x] = true
	}
}

// --- parser.Sink -----------------------------------------------------

var _ parser.Sink = (*Screen)(nil)

// Print writes one displayable code point at the cursor: charset
// translation, pending-wrap resolution, the write itself, then cursor
// advance (spec.md §4.1).
func (s *Screen) Print(r rune) {
	r = s.charset.translate(r)
	w := buffer.RuneWidth(r)
	if w == 0 {
		// Zero-width combining mark: discarded. It is not merged into the
		// previous cell, since a cell holds exactly one code point and this
		// core does not cluster graphemes (spec.md §1 Non-goal).
		return
	}

	if s.cursor.PendingWrap {
		s.lineWrap()
	}

	if s.cursor.X+w > s.cols {
		if s.decModes[modeDECAWM] {
			s.lineWrap()
		} else {
			s.cursor.X = s.cols - w
			if s.cursor.X < 0 {
				s.cursor.X = 0
			}
		}
	}

	x, y := s.cursor.X, s.cursor.Y
	s.active.Set(x, y, buffer.Cell{Char: r, Style: s.cursor.Style, Width: w})
	for i := 1; i < w; i++ {
		s.active.Set(x+i, y, buffer.Cell{Char: 0, Style: s.cursor.Style, Width: 0})
	}

	if x+w >= s.cols {
		s.cursor.X = s.cols - 1
		if s.decModes[modeDECAWM] {
			s.cursor.PendingWrap = true
		}
	} else {
		s.cursor.X = x + w
	}
}

func (s *Screen) lineWrap() {
	s.cursor.PendingWrap = false
	s.cursor.X = 0
	s.lineFeedNoCR()
}

// Execute runs a C0/C1 control function.
func (s *Screen) Execute(b byte) {
	switch b {
	case 0x07: // BEL
		s.BellFunc()
	case 0x08: // BS
		if s.cursor.X > 0 {
			s.cursor.X--
		}
		s.cursor.PendingWrap = false
	case 0x09: // HT
		s.tabForward(1)
	case 0x0A: // LF
		s.lineFeedNoCR()
		if s.ansiModes[modeLNM] {
			s.cursor.X = 0
		}
	case 0x0B, 0x0C: // VT, FF: treated as LF
		s.lineFeedNoCR()
	case 0x0D: // CR
		s.cursor.X = 0
		s.cursor.PendingWrap = false
	case 0x0E: // SO (Shift Out) -> GL = G1
		s.charset.gl = 1
	case 0x0F: // SI (Shift In) -> GL = G0
		s.charset.gl = 0
	case 0x84: // IND (C1)
		s.index()
	case 0x85: // NEL (C1)
		s.cursor.X = 0
		s.index()
	case 0x88: // HTS (C1)
		s.setTabStop()
	case 0x8D: // RI (C1)
		s.reverseIndex()
	default:
		s.logf("screen: unhandled control 0x%02X", b)
	}
}

func (s *Screen) tabForward(n int) {
	s.cursor.PendingWrap = false
	for ; n > 0; n-- {
		x := s.cursor.X + 1
		for x < s.cols && !s.tabStops[x] {
			x++
		}
		if x >= s.cols {
			x = s.cols - 1
		}
		s.cursor.X = x
	}
}

func (s *Screen) setTabStop() {
	if s.cursor.X >= 0 && s.cursor.X < s.cols {
		s.tabStops[s.cursor.X] = true
	}
}

// lineFeedNoCR advances the cursor one row, scrolling the scroll region
// when already at its bottom (spec.md §4.1 LF/IND).
func (s *Screen) lineFeedNoCR() {
	s.cursor.PendingWrap = false
	if s.cursor.Y == s.scrollBottom {
		s.scrollUp(1)
		return
	}
	if s.cursor.Y < s.rows-1 {
		s.cursor.Y++
	}
}

func (s *Screen) index() { s.lineFeedNoCR() }

func (s *Screen) reverseIndex() {
	s.cursor.PendingWrap = false
	if s.cursor.Y == s.scrollTop {
		s.scrollDown(1)
		return
	}
	if s.cursor.Y > 0 {
		s.cursor.Y--
	}
}

func (s *Screen) scrollUp(n int) {
	if !s.onAlt && s.scrollTop == 0 {
		s.collectHistory(n)
	}
	s.active.ScrollUp(s.scrollTop, s.scrollBottom, n, s.cursor.Style.Blank())
}

func (s *Screen) scrollDown(n int) {
	s.active.ScrollDown(s.scrollTop, s.scrollBottom, n, s.cursor.Style.Blank())
}

func (s *Screen) collectHistory(n int) {
	for i := 0; i < n; i++ {
		row := s.active.Row(i)
		if row == nil {
			continue
		}
		cp := make([]buffer.Cell, len(row))
		copy(cp, row)
		s.history.PushBack(cp)
		if s.history.Len() > maxScrollback {
			s.history.Remove(s.history.Front())
		}
	}
}

// HistoryLen reports the number of scrollback lines retained.
func (s *Screen) HistoryLen() int { return s.history.Len() }

// clampCursor keeps the cursor inside the grid (and, when DECOM is set,
// inside the scroll region) after any motion. target coordinates are
// already 0-based.
func (s *Screen) clampCursor() {
	if s.decModes[modeDECOM] {
		if s.cursor.Y < s.scrollTop {
			s.cursor.Y = s.scrollTop
		}
		if s.cursor.Y > s.scrollBottom {
			s.cursor.Y = s.scrollBottom
		}
	} else {
		if s.cursor.Y < 0 {
			s.cursor.Y = 0
		}
		if s.cursor.Y > s.rows-1 {
			s.cursor.Y = s.rows - 1
		}
	}
	if s.cursor.X < 0 {
		s.cursor.X = 0
	}
	if s.cursor.X > s.cols-1 {
		s.cursor.X = s.cols - 1
	}
}

// originTop/originBottom give the vertical bounds cursor motion is clamped
// to: the scroll region under DECOM, the whole screen otherwise.
func (s *Screen) originTop() int {
	if s.decModes[modeDECOM] {
		return s.scrollTop
	}
	return 0
}

func (s *Screen) originBottom() int {
	if s.decModes[modeDECOM] {
		return s.scrollBottom
	}
	return s.rows - 1
}

// Resize changes the terminal's geometry. Per spec.md §9's resolved open
// question, tab stops reset to every-8th-column and the scroll region
// resets to the full new height; both buffers independently preserve their
// top-left content overlap.
func (s *Screen) Resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	s.primary.Resize(cols, rows, style.DefaultStyle)
	s.alt.Resize(cols, rows, style.DefaultStyle)
	s.cols, s.rows = cols, rows
	s.resetTabStops()
	s.scrollTop, s.scrollBottom = 0, rows-1
	s.clampCursor()
}

// RIS performs a full terminal reset (ESC c): clear both screens, reset
// modes, cursor to origin, drop scrollback (bittty's command_parser.py
// behavior; spec.md implies a Screen teardown-Reset without naming RIS
// explicitly — see SPEC_FULL.md §7.3).
func (s *Screen) RIS() {
	s.primary = buffer.New(s.cols, s.rows)
	s.alt = buffer.New(s.cols, s.rows)
	s.active = s.primary
	s.onAlt = false
	s.cursor = Cursor{}
	s.savedPrimary = savedCursor{}
	s.savedAlt = savedCursor{}
	s.scrollTop, s.scrollBottom = 0, s.rows-1
	s.resetTabStops()
	s.ansiModes = map[int]bool{}
	s.decModes = map[int]bool{modeDECAWM: true, modeDECTCEM: true}
	s.charset = newCharsetState()
	s.title = ""
	s.titleStack = nil
	s.history.Init()
}
