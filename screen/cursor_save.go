package screen

// saveCursorState implements DECSC (ESC 7) and the save half of modes
// 1048/1049: position, style, DECOM, charset state, and the pending-wrap
// latch, kept once per buffer (spec.md §3 "Snapshot of (x, y, Style,
// character-set state, origin_relative, pending_wrap)").
func (s *Screen) saveCursorState() {
	sc := s.savedSlot()
	*sc = savedCursor{
		valid:       true,
		x:           s.cursor.X,
		y:           s.cursor.Y,
		style:       s.cursor.Style,
		origin:      s.decModes[modeDECOM],
		charset:     s.charset,
		pendingWrap: s.cursor.PendingWrap,
	}
}

// restoreCursorState implements DECRC (ESC 8) and the restore half of
// modes 1048/1049. A restore with nothing saved is a no-op (spec.md §4.1).
func (s *Screen) restoreCursorState() {
	sc := s.savedSlot()
	if !sc.valid {
		return
	}
	s.cursor.X, s.cursor.Y = sc.x, sc.y
	s.cursor.Style = sc.style
	s.charset = sc.charset
	s.decModes[modeDECOM] = sc.origin
	s.cursor.PendingWrap = sc.pendingWrap
	s.clampCursor()
}

func (s *Screen) savedSlot() *savedCursor {
	if s.onAlt {
		return &s.savedAlt
	}
	return &s.savedPrimary
}
