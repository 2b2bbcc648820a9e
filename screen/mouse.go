package screen

import "fmt"

// MouseButton identifies which physical button or wheel produced a mouse
// event, the semantic event shape spec.md §6's report_mouse takes (as
// opposed to the raw host-input bytes a keyboard/mouse driver would
// translate — that translation stays out of the core per spec.md §1).
type MouseButton int

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
	MouseWheelUp
	MouseWheelDown
)

// MouseAction is the kind of mouse event being reported.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMove
)

// Modifiers is a bitset of keyboard modifiers held during a mouse event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModMeta
	ModCtrl
)

// ReportMouse encodes one semantic mouse event and writes it to the reply
// sink, per spec.md §6's report_mouse(x, y, button, action, modifiers) and
// the active tracking modes: 1000/1002/1003 decide which events are sent
// at all, 1005/1006 decide how the coordinates and button code are wire
// encoded. x and y are 0-based. Grounded on original bittty's
// devices/input.py _encode_mouse, generalized to the SGR (1006) and
// UTF-8-extended (1005) forms the original tracked the mode bits for but
// never actually encoded.
func (s *Screen) ReportMouse(x, y int, button MouseButton, action MouseAction, mods Modifiers) {
	if !s.mouseTrackingActive() {
		return
	}
	if action == MouseMove {
		wantsDrag := s.decModes[modeMouseButtonEvt] && button != MouseButtonNone
		wantsAny := s.decModes[modeMouseAnyEvt]
		if !wantsDrag && !wantsAny {
			return
		}
	}

	cb := mouseButtonCode(button, action) + mouseModifierBits(mods)

	if s.decModes[modeMouseSGR] {
		final := byte('M')
		if action == MouseRelease {
			final = 'm'
		}
		s.reply.WriteReply([]byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", cb, x+1, y+1, final)))
		return
	}

	if action == MouseRelease {
		// X10/UTF-8 mode can't identify which button was released; the
		// fixed code 3 is the documented "release" marker.
		cb = 3 + mouseModifierBits(mods)
	}
	s.reply.WriteReply(s.encodeLegacyMouse(cb, x, y))
}

func (s *Screen) mouseTrackingActive() bool {
	return s.decModes[modeMouseNormal] || s.decModes[modeMouseButtonEvt] || s.decModes[modeMouseAnyEvt]
}

// mouseButtonCode computes the base Cb value (before modifier bits) for a
// press or drag event. Release in legacy (non-SGR) mode overrides this to
// the fixed code 3 in the caller.
func mouseButtonCode(button MouseButton, action MouseAction) int {
	var code int
	switch button {
	case MouseButtonLeft:
		code = 0
	case MouseButtonMiddle:
		code = 1
	case MouseButtonRight:
		code = 2
	case MouseWheelUp:
		return 64
	case MouseWheelDown:
		return 65
	default:
		code = 0
	}
	if action == MouseMove {
		code += 32
	}
	return code
}

func mouseModifierBits(mods Modifiers) int {
	n := 0
	if mods&ModShift != 0 {
		n += 4
	}
	if mods&ModMeta != 0 {
		n += 8
	}
	if mods&ModCtrl != 0 {
		n += 16
	}
	return n
}

// encodeLegacyMouse builds the X10/VT200 "CSI M Cb Cx Cy" report. Under
// mode 1005 (UTF-8 extended coordinates), Cx/Cy are emitted as UTF-8 code
// points, lifting the 223-column/row cap the plain X10 form is stuck with;
// otherwise the coordinates saturate at 223 per the original protocol.
func (s *Screen) encodeLegacyMouse(cb, x, y int) []byte {
	buf := []byte{0x1b, '[', 'M', byte(32 + cb)}
	if s.decModes[modeMouseUTF8] {
		buf = append(buf, []byte(string(rune(x+1+32)))...)
		buf = append(buf, []byte(string(rune(y+1+32)))...)
	} else {
		buf = append(buf, mouseCoordByte(x), mouseCoordByte(y))
	}
	return buf
}

func mouseCoordByte(v int) byte {
	c := v + 1 + 32
	if c > 255 {
		c = 255
	}
	return byte(c)
}
