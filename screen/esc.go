package screen

// EscDispatch runs a non-CSI escape sequence (spec.md §4.3). intermediates
// is nil for the bare C1-equivalent forms (IND/NEL/HTS/RI dispatched
// directly from the parser's dispatchC1, which hands EscDispatch a nil
// slice and the already-computed final byte).
func (s *Screen) EscDispatch(intermediates []byte, final byte) {
	if len(intermediates) == 1 {
		if slot, ok := charsetSlot(intermediates[0]); ok {
			s.charset.designate(slot, final)
			return
		}
	}

	switch final {
	case 'D': // IND
		s.index()
	case 'E': // NEL
		s.cursor.X = 0
		s.index()
	case 'H': // HTS
		s.setTabStop()
	case 'M': // RI
		s.reverseIndex()
	case '7': // DECSC
		s.saveCursorState()
	case '8': // DECRC
		s.restoreCursorState()
	case 'c': // RIS
		s.RIS()
	case 'N': // SS2
		s.charset.singleShift = 2
	case 'O': // SS3
		s.charset.singleShift = 3
	case '=', '>': // DECKPAM / DECKPNM: keypad application/numeric mode.
		// No distinct keypad model in this core (input translation is out
		// of scope per spec.md §1); accepted and ignored.
	default:
		s.logf("screen: unhandled ESC %q (intermediates=%v)", string(final), intermediates)
	}
}

// charsetSlot maps an intermediate byte to the G0-G3 slot it designates.
func charsetSlot(b byte) (int, bool) {
	switch b {
	case '(':
		return 0, true
	case ')':
		return 1, true
	case '*':
		return 2, true
	case '+':
		return 3, true
	}
	return 0, false
}
