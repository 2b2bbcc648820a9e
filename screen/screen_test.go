package screen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-term/vtcore/buffer"
	"github.com/halcyon-term/vtcore/parser"
	"github.com/halcyon-term/vtcore/screen"
	"github.com/halcyon-term/vtcore/style"
)

type fakeReply struct {
	writes [][]byte
}

func (f *fakeReply) WriteReply(p []byte) {
	f.writes = append(f.writes, append([]byte(nil), p...))
}

func feed(t *testing.T, s *screen.Screen, text string) {
	t.Helper()
	parser.New(s).Feed([]byte(text))
}

func lineText(t *testing.T, snap [][]buffer.Cell, y int) string {
	t.Helper()
	var out []rune
	for _, c := range snap[y] {
		if c.Width == 0 {
			continue
		}
		out = append(out, c.Char)
	}
	return strings.TrimRight(string(out), " ")
}

func TestPrintAdvancesCursor(t *testing.T) {
	s := screen.New(10, 3, nil)
	feed(t, s, "AB")
	x, y := s.CursorPos()
	assert.Equal(t, 2, x)
	assert.Equal(t, 0, y)
}

func TestAutowrapAdvancesLineOnNextPrint(t *testing.T) {
	s := screen.New(3, 3, nil)
	feed(t, s, "ABC")
	x, y := s.CursorPos()
	assert.Equal(t, 2, x)
	assert.Equal(t, 0, y)
	feed(t, s, "D")
	x, y = s.CursorPos()
	assert.Equal(t, 1, x)
	assert.Equal(t, 1, y)
	snap := s.Snapshot()
	assert.Equal(t, "ABC", lineText(t, snap, 0))
	assert.Equal(t, "D", lineText(t, snap, 1))
}

func TestCRLFMovesToNextLineColumnZero(t *testing.T) {
	s := screen.New(10, 3, nil)
	feed(t, s, "AB\r\nCD")
	x, y := s.CursorPos()
	assert.Equal(t, 2, x)
	assert.Equal(t, 1, y)
	snap := s.Snapshot()
	assert.Equal(t, "CD", lineText(t, snap, 1))
}

func TestLinefeedAtBottomScrollsRegion(t *testing.T) {
	s := screen.New(5, 2, nil)
	feed(t, s, "AA\r\nBB\r\nCC")
	snap := s.Snapshot()
	assert.Equal(t, "BB", lineText(t, snap, 0))
	assert.Equal(t, "CC", lineText(t, snap, 1))
	assert.Equal(t, 1, s.HistoryLen())
}

func TestCUPIsOneBasedAndClamped(t *testing.T) {
	s := screen.New(5, 5, nil)
	feed(t, s, "\x1b[3;2H")
	x, y := s.CursorPos()
	assert.Equal(t, 1, x)
	assert.Equal(t, 2, y)

	feed(t, s, "\x1b[100;100H")
	x, y = s.CursorPos()
	assert.Equal(t, 4, x)
	assert.Equal(t, 4, y)
}

func TestSGRStyleAffectsSubsequentPrint(t *testing.T) {
	s := screen.New(10, 1, nil)
	feed(t, s, "\x1b[1;31mA")
	snap := s.Snapshot()
	cell := snap[0][0]
	assert.Equal(t, 'A', cell.Char)
	assert.True(t, cell.Style.Has(0x1)) // AttrBold bit position matches style pkg's iota layout
}

func TestEDFromCursorToEnd(t *testing.T) {
	s := screen.New(5, 2, nil)
	feed(t, s, "ABCDE\r\nFGHIJ")
	feed(t, s, "\x1b[1;3H\x1b[0J")
	snap := s.Snapshot()
	assert.Equal(t, "AB", lineText(t, snap, 0))
	assert.Equal(t, "", lineText(t, snap, 1))
}

func TestDECSTBMConstrainsScrolling(t *testing.T) {
	s := screen.New(5, 5, nil)
	feed(t, s, "\x1b[2;4r")
	feed(t, s, "\x1b[5;1H") // bottom row, outside region
	feed(t, s, "Z\n")       // LF on the last row outside the region: no scroll
	x, y := s.CursorPos()
	assert.Equal(t, 1, x)
	assert.Equal(t, 4, y)
	assert.Equal(t, "Z", lineText(t, s.Snapshot(), 4))
}

func TestDECSTBMInvalidRegionResetsToFullScreen(t *testing.T) {
	s := screen.New(5, 5, nil)
	feed(t, s, "\x1b[2;4r") // valid region: rows 1..3 (0-based), scrollTop=1
	feed(t, s, "\x1b[0;0r") // invalid (top>=bottom once clamped): must reset to (0, rows-1)
	feed(t, s, "\x1b[5;1H") // bottom row of the full screen
	feed(t, s, "\n")        // linefeed at the bottom scrolls the whole screen now
	assert.Equal(t, 1, s.HistoryLen(), "a full-screen scroll collects scrollback; a still-active sub-region wouldn't")
}

func TestAlternateScreen1049SaveAndRestore(t *testing.T) {
	s := screen.New(5, 2, nil)
	feed(t, s, "AA")
	feed(t, s, "\x1b[?1049h")
	require.True(t, s.OnAlternate())
	feed(t, s, "BB")
	feed(t, s, "\x1b[?1049l")
	require.False(t, s.OnAlternate())
	snap := s.Snapshot()
	assert.Equal(t, "AA", lineText(t, snap, 0))
	x, _ := s.CursorPos()
	assert.Equal(t, 2, x)
}

func TestDECOMClampsCursorMotionToScrollRegion(t *testing.T) {
	s := screen.New(5, 5, nil)
	feed(t, s, "\x1b[2;4r")
	feed(t, s, "\x1b[?6h") // DECOM
	feed(t, s, "\x1b[1;1H")
	x, y := s.CursorPos()
	assert.Equal(t, 0, x)
	assert.Equal(t, 1, y) // region top, not absolute row 0
}

func TestDSRCursorPositionReport(t *testing.T) {
	reply := &fakeReply{}
	s := screen.New(10, 10, reply)
	feed(t, s, "\x1b[4;5H\x1b[6n")
	require.Len(t, reply.writes, 1)
	assert.Equal(t, "\x1b[4;5R", string(reply.writes[0]))
}

func TestOSCTitle(t *testing.T) {
	s := screen.New(10, 2, nil)
	feed(t, s, "\x1b]0;hello\x07")
	assert.Equal(t, "hello", s.Title())
}

func TestBellFuncInvoked(t *testing.T) {
	s := screen.New(5, 2, nil)
	rang := false
	s.BellFunc = func() { rang = true }
	feed(t, s, "\x07")
	assert.True(t, rang)
}

func TestResizeResetsTabStopsAndScrollRegion(t *testing.T) {
	s := screen.New(5, 5, nil)
	feed(t, s, "\x1b[2;4r")
	s.Resize(10, 6)
	assert.Equal(t, 10, s.Cols())
	assert.Equal(t, 6, s.Rows())

	feed(t, s, "\t") // tab stops are every 8th column of the new width
	x, _ := s.CursorPos()
	assert.Equal(t, 8, x)

	feed(t, s, "\x1b[6;1H\n") // LF on the new bottom row scrolls the full screen
	assert.Equal(t, 1, s.HistoryLen())
}

func TestRISClearsScreenAndScrollback(t *testing.T) {
	s := screen.New(5, 2, nil)
	feed(t, s, "AA\r\nBB\r\nCC")
	require.True(t, s.HistoryLen() > 0)
	feed(t, s, "\x1bc")
	assert.Equal(t, 0, s.HistoryLen())
	x, y := s.CursorPos()
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}

func TestDECSpecialGraphicsTranslatesLineDrawing(t *testing.T) {
	s := screen.New(5, 1, nil)
	feed(t, s, "\x1b(0q") // designate G0 as DEC special graphics, GL already 0
	snap := s.Snapshot()
	assert.Equal(t, '─', snap[0][0].Char)
}

func TestPrimaryAndSecondaryDeviceAttributesReports(t *testing.T) {
	reply := &fakeReply{}
	s := screen.New(10, 10, reply)
	feed(t, s, "\x1b[c")
	require.Len(t, reply.writes, 1)
	assert.Equal(t, "\x1b[?62;1;6c", string(reply.writes[0]))

	feed(t, s, "\x1b[>c")
	require.Len(t, reply.writes, 2)
	assert.Equal(t, "\x1b[>1;10;0c", string(reply.writes[1]))
}

func TestEraseFillIsBackgroundOnly(t *testing.T) {
	s := screen.New(5, 2, nil)
	feed(t, s, "\x1b[1;7;31m") // bold, reverse, red foreground
	feed(t, s, "\x1b[2J")      // ED: clear entire screen
	snap := s.Snapshot()
	assert.Equal(t, style.DefaultStyle, snap[0][0].Style)
	assert.Equal(t, style.DefaultStyle, snap[1][4].Style)
}

func TestScrollFillIsBackgroundOnly(t *testing.T) {
	s := screen.New(5, 2, nil)
	feed(t, s, "AA\r\n")     // first CRLF just moves to row 1, no scroll yet
	feed(t, s, "\x1b[1;44m") // bold, blue background
	feed(t, s, "BB\r\n")     // this linefeed is at the bottom: scrolls the region
	snap := s.Snapshot()
	want := style.Style{Bg: style.Indexed(4)}
	assert.Equal(t, want, snap[1][0].Style)
}

func TestRestoreCursorStateRestoresPendingWrap(t *testing.T) {
	s := screen.New(3, 3, nil)
	feed(t, s, "ABC")    // fills the last column, latches pending-wrap
	feed(t, s, "\x1b7")  // DECSC: save, including the pending-wrap latch
	feed(t, s, "\x1b[H") // home the cursor, clearing pending-wrap
	feed(t, s, "\x1b8")  // DECRC: restore position AND the latch
	feed(t, s, "D")      // a pending wrap at restore means this wraps first
	snap := s.Snapshot()
	assert.Equal(t, "ABC", lineText(t, snap, 0))
	assert.Equal(t, "D", lineText(t, snap, 1))
}

func TestReportMouseX10Encoding(t *testing.T) {
	reply := &fakeReply{}
	s := screen.New(80, 24, reply)
	feed(t, s, "\x1b[?1000h")
	s.ReportMouse(9, 4, screen.MouseButtonLeft, screen.MousePress, 0)
	require.Len(t, reply.writes, 1)
	assert.Equal(t, []byte{0x1b, '[', 'M', 32, 9 + 1 + 32, 4 + 1 + 32}, reply.writes[0])

	s.ReportMouse(9, 4, screen.MouseButtonLeft, screen.MouseRelease, 0)
	require.Len(t, reply.writes, 2)
	assert.Equal(t, []byte{0x1b, '[', 'M', 32 + 3, 9 + 1 + 32, 4 + 1 + 32}, reply.writes[1])
}

func TestReportMouseSGREncoding(t *testing.T) {
	reply := &fakeReply{}
	s := screen.New(80, 24, reply)
	feed(t, s, "\x1b[?1000h\x1b[?1006h")
	s.ReportMouse(9, 4, screen.MouseButtonLeft, screen.MousePress, screen.ModShift)
	require.Len(t, reply.writes, 1)
	assert.Equal(t, "\x1b[<4;10;5M", string(reply.writes[0]))

	s.ReportMouse(9, 4, screen.MouseButtonLeft, screen.MouseRelease, screen.ModShift)
	require.Len(t, reply.writes, 2)
	assert.Equal(t, "\x1b[<4;10;5m", string(reply.writes[1]))
}

func TestReportMouseSuppressedWithoutTrackingMode(t *testing.T) {
	reply := &fakeReply{}
	s := screen.New(80, 24, reply)
	s.ReportMouse(0, 0, screen.MouseButtonLeft, screen.MousePress, 0)
	assert.Empty(t, reply.writes)
}

func TestDECCOLMSameWidthStillClearsAndHomes(t *testing.T) {
	s := screen.New(132, 5, nil)
	feed(t, s, "ABC")
	feed(t, s, "\x1b[3;3H")
	feed(t, s, "\x1b[?3h") // DECCOLM set: already 132 columns, must still clear+home
	x, y := s.CursorPos()
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
	snap := s.Snapshot()
	assert.Equal(t, "", lineText(t, snap, 0))
}

func TestCHTClearsPendingWrap(t *testing.T) {
	s := screen.New(3, 3, nil)
	feed(t, s, "ABC")    // fills the last column, latches pending-wrap
	feed(t, s, "\x1b[I") // CHT: must clear the latch
	feed(t, s, "D")
	snap := s.Snapshot()
	assert.Equal(t, "ABD", lineText(t, snap, 0), "D must overwrite in place, not wrap to row 1")
	assert.Equal(t, "", lineText(t, snap, 1))
}

func TestCBTClearsPendingWrap(t *testing.T) {
	s := screen.New(3, 3, nil)
	feed(t, s, "ABC")    // latches pending-wrap at column 2
	feed(t, s, "\x1b[Z") // CBT: must clear the latch
	feed(t, s, "D")
	_, y := s.CursorPos()
	assert.Equal(t, 0, y, "pending wrap must not have carried through CBT")
	snap := s.Snapshot()
	assert.Equal(t, "", lineText(t, snap, 1))
}

func TestReportMouseMotionNeedsButtonOrAnyEventMode(t *testing.T) {
	reply := &fakeReply{}
	s := screen.New(80, 24, reply)
	feed(t, s, "\x1b[?1000h")
	s.ReportMouse(1, 1, screen.MouseButtonNone, screen.MouseMove, 0)
	assert.Empty(t, reply.writes, "plain 1000 tracking never reports motion")

	feed(t, s, "\x1b[?1003h")
	s.ReportMouse(1, 1, screen.MouseButtonNone, screen.MouseMove, 0)
	assert.Len(t, reply.writes, 1, "any-event tracking reports motion with no button held")
}
