package screen

import (
	"fmt"

	"github.com/halcyon-term/vtcore/parser"
	"github.com/halcyon-term/vtcore/style"
)

// countParam reads params[i], defaulting to def when the slot is missing,
// empty, or explicitly 0 — the ECMA-48 convention for repeat counts (CUU,
// ICH, DCH, ...), where a literal 0 means "use the default" rather than
// "do nothing".
func countParam(params []style.Param, i, def int) int {
	if i >= len(params) || params[i].Empty || params[i].Value == 0 {
		return def
	}
	return params[i].Value
}

// rawParam reads params[i], defaulting to def only when the slot is
// missing or empty — used for selector-style parameters (ED/EL's "which
// region", TBC, DSR/DA request codes) where 0 is itself a meaningful value.
func rawParam(params []style.Param, i, def int) int {
	if i >= len(params) || params[i].Empty {
		return def
	}
	return params[i].Value
}

// CSIDispatch runs one fully parsed CSI command (spec.md §4.1/§4.3).
func (s *Screen) CSIDispatch(cmd parser.CSICommand) {
	private := cmd.Private == '?'
	p := cmd.Params

	switch cmd.Final {
	case 'A': // CUU
		s.moveCursor(0, -countParam(p, 0, 1))
	case 'B': // CUD
		s.moveCursor(0, countParam(p, 0, 1))
	case 'C': // CUF
		s.moveCursor(countParam(p, 0, 1), 0)
	case 'D': // CUB
		s.moveCursor(-countParam(p, 0, 1), 0)
	case 'E': // CNL
		s.moveCursor(0, countParam(p, 0, 1))
		s.cursor.X = 0
	case 'F': // CPL
		s.moveCursor(0, -countParam(p, 0, 1))
		s.cursor.X = 0
	case 'G', '`': // CHA / HPA
		s.setColumn(countParam(p, 0, 1) - 1)
	case 'd': // VPA
		s.setLine(countParam(p, 0, 1) - 1)
	case 'H', 'f': // CUP / HVP
		row := countParam(p, 0, 1)
		col := countParam(p, 1, 1)
		s.setLine(s.originTop() + row - 1)
		s.setColumn(col - 1)
	case 'I': // CHT
		s.tabForward(countParam(p, 0, 1))
	case 'Z': // CBT
		s.tabBackward(countParam(p, 0, 1))
	case 'g': // TBC
		s.clearTabStop(rawParam(p, 0, 0))
	case 'J': // ED
		s.eraseInDisplay(rawParam(p, 0, 0))
	case 'K': // EL
		s.eraseInLine(rawParam(p, 0, 0))
	case 'L': // IL
		s.active.InsertLines(s.cursor.Y, countParam(p, 0, 1), s.scrollTop, s.scrollBottom, s.cursor.Style.Blank())
	case 'M': // DL
		s.active.DeleteLines(s.cursor.Y, countParam(p, 0, 1), s.scrollTop, s.scrollBottom, s.cursor.Style.Blank())
	case '@': // ICH
		s.active.InsertCells(s.cursor.X, s.cursor.Y, countParam(p, 0, 1), s.cursor.Style.Blank())
	case 'P': // DCH
		s.active.DeleteCells(s.cursor.X, s.cursor.Y, countParam(p, 0, 1), s.cursor.Style.Blank())
	case 'X': // ECH
		n := countParam(p, 0, 1)
		s.active.ClearRegion(s.cursor.X, s.cursor.Y, s.cursor.X+n-1, s.cursor.Y, s.cursor.Style.Blank())
	case 'S': // SU
		s.scrollUp(countParam(p, 0, 1))
	case 'T': // SD
		s.scrollDown(countParam(p, 0, 1))
	case 'm': // SGR
		s.cursor.Style = style.MergeSGR(s.cursor.Style, p)
	case 'r': // DECSTBM
		s.setScrollRegion(rawParam(p, 0, 1), rawParam(p, 1, s.rows))
	case 'h':
		s.setModes(private, p)
	case 'l':
		s.resetModes(private, p)
	case 's':
		if private {
			s.setLeftRightMargins(p) // DECSLRM, unsupported: accept and ignore.
		} else {
			s.saveCursorState() // ANSI.SYS SCOSC
		}
	case 'u':
		if !private {
			s.restoreCursorState() // ANSI.SYS SCORC
		}
	case 'n':
		s.deviceStatusReport(private, rawParam(p, 0, 0))
	case 'c':
		s.deviceAttributes(cmd.Private, rawParam(p, 0, 0))
	case 't':
		s.windowOp(rawParam(p, 0, 0), rawParam(p, 1, 0))
	default:
		s.logf("screen: unhandled CSI %q (private=%v params=%v)", string(cmd.Final), cmd.Private, p)
	}
}

func (s *Screen) moveCursor(dx, dy int) {
	s.cursor.PendingWrap = false
	s.cursor.X += dx
	s.cursor.Y += dy
	s.clampCursor()
}

func (s *Screen) setColumn(x int) {
	s.cursor.PendingWrap = false
	s.cursor.X = x
	s.clampCursor()
}

func (s *Screen) setLine(y int) {
	s.cursor.PendingWrap = false
	s.cursor.Y = y
	s.clampCursor()
}

func (s *Screen) tabBackward(n int) {
	s.cursor.PendingWrap = false
	for ; n > 0; n-- {
		x := s.cursor.X - 1
		for x > 0 && !s.tabStops[x] {
			x--
		}
		if x < 0 {
			x = 0
		}
		s.cursor.X = x
	}
}

func (s *Screen) clearTabStop(how int) {
	switch how {
	case 0:
		if s.cursor.X >= 0 && s.cursor.X < s.cols {
			s.tabStops[s.cursor.X] = false
		}
	case 3:
		for i := range s.tabStops {
			s.tabStops[i] = false
		}
	}
}

func (s *Screen) eraseInDisplay(how int) {
	fill := s.cursor.Style.Blank()
	switch how {
	case 0:
		s.eraseInLine(0)
		s.active.ClearRegion(0, s.cursor.Y+1, s.cols-1, s.rows-1, fill)
	case 1:
		s.eraseInLine(1)
		s.active.ClearRegion(0, 0, s.cols-1, s.cursor.Y-1, fill)
	case 2:
		s.active.ClearRegion(0, 0, s.cols-1, s.rows-1, fill)
	case 3:
		s.active.ClearRegion(0, 0, s.cols-1, s.rows-1, fill)
		s.history.Init()
	}
}

func (s *Screen) eraseInLine(how int) {
	fill := s.cursor.Style.Blank()
	switch how {
	case 0:
		s.active.ClearRegion(s.cursor.X, s.cursor.Y, s.cols-1, s.cursor.Y, fill)
	case 1:
		s.active.ClearRegion(0, s.cursor.Y, s.cursor.X, s.cursor.Y, fill)
	case 2:
		s.active.ClearRegion(0, s.cursor.Y, s.cols-1, s.cursor.Y, fill)
	}
}

// setScrollRegion implements DECSTBM. top/bottom are 1-based as received;
// an invalid region (top>=bottom, out of range) resets the region to the
// full screen (0, rows-1) rather than keeping whatever was set before,
// per spec.md §4.1 and the §8 testable property "invalid params restore
// (0, H-1)". Either way, the cursor homes to the region's top-left
// (DECOM-aware).
func (s *Screen) setScrollRegion(top, bottom int) {
	if bottom > s.rows {
		bottom = s.rows
	}
	t, b := top-1, bottom-1
	if t < 0 {
		t = 0
	}
	if b >= s.rows {
		b = s.rows - 1
	}
	if t >= b {
		t, b = 0, s.rows-1
	}
	s.scrollTop, s.scrollBottom = t, b
	s.cursor.X, s.cursor.Y = 0, s.originTop()
}

func (s *Screen) setLeftRightMargins(p []style.Param) {}

func (s *Screen) setModes(private bool, p []style.Param) {
	for _, param := range p {
		s.setMode(private, param.Value)
	}
}

func (s *Screen) resetModes(private bool, p []style.Param) {
	for _, param := range p {
		s.resetMode(private, param.Value)
	}
}

// deviceStatusReport answers DSR (CSI n / CSI ? n).
func (s *Screen) deviceStatusReport(private bool, code int) {
	if private {
		if code == 6 {
			s.reportCursorPosition(true)
		}
		return
	}
	switch code {
	case 5:
		s.reply.WriteReply([]byte("\x1b[0n")) // device OK
	case 6:
		s.reportCursorPosition(false)
	}
}

func (s *Screen) reportCursorPosition(dec bool) {
	row := s.cursor.Y - s.originTop() + 1
	col := s.cursor.X + 1
	if dec {
		s.reply.WriteReply([]byte(fmt.Sprintf("\x1b[?%d;%dR", row, col)))
	} else {
		s.reply.WriteReply([]byte(fmt.Sprintf("\x1b[%d;%dR", row, col)))
	}
}

// deviceAttributes answers primary DA (CSI c) and secondary DA (CSI > c).
// marker carries the request's private-marker byte (0 for plain "CSI c",
// '>' for secondary DA) so the two never collapse into the same branch
// (spec.md §4.3, §6; original bittty csi.py's DA handling).
func (s *Screen) deviceAttributes(marker byte, code int) {
	if code != 0 {
		return
	}
	switch marker {
	case '>':
		s.reply.WriteReply([]byte("\x1b[>1;10;0c"))
	case 0:
		s.reply.WriteReply([]byte("\x1b[?62;1;6c"))
	}
}

// windowOp handles the XTWINOPS subset SPEC_FULL.md adds: 22/23 push/pop
// the window title onto Screen's title stack (bittty's command_parser.py
// behavior; see SPEC_FULL.md §7.3).
func (s *Screen) windowOp(op, sub int) {
	switch op {
	case 22:
		if sub == 0 || sub == 2 {
			s.titleStack = append(s.titleStack, s.title)
		}
	case 23:
		if (sub == 0 || sub == 2) && len(s.titleStack) > 0 {
			s.title = s.titleStack[len(s.titleStack)-1]
			s.titleStack = s.titleStack[:len(s.titleStack)-1]
		}
	}
}
