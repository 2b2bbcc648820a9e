package screen

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/halcyon-term/vtcore/style"
)

// OSCDispatch runs one complete OSC payload: "<code>;<text>" (spec.md
// §4.3). Only 0/2 (title), 1 (icon name) and 52 (clipboard, as a stub) are
// recognized; everything else is logged and ignored.
func (s *Screen) OSCDispatch(data []byte) {
	sep := bytes.IndexByte(data, ';')
	var code int
	var rest []byte
	if sep < 0 {
		code, _ = strconv.Atoi(string(data))
	} else {
		code, _ = strconv.Atoi(string(data[:sep]))
		rest = data[sep+1:]
	}

	switch code {
	case 0, 2:
		s.title = string(rest)
	case 1:
		s.iconName = string(rest)
	case 52:
		// Clipboard access (OSC 52): accepted as a stub, per spec.md §4.3 —
		// no host clipboard integration lives in this core.
	default:
		s.logf("screen: unhandled OSC %d", code)
	}
}

// Hook/Put/Unhook implement the "accept and discard" DCS minimum
// (spec.md §9), enriched with a minimal DECRQSS that answers an SGR
// status request (bittty's parser/csi.py; see SPEC_FULL.md §7.3).
func (s *Screen) Hook(params []style.Param, intermediates []byte, final byte) {
	s.dcsActive = len(intermediates) == 1 && intermediates[0] == '$' && final == 'q'
	s.dcsFinal = final
	s.dcsParams = params
	s.dcsPayload = s.dcsPayload[:0]
}

func (s *Screen) Put(b byte) {
	if s.dcsActive && len(s.dcsPayload) < 64 {
		s.dcsPayload = append(s.dcsPayload, b)
	}
}

func (s *Screen) Unhook() {
	if !s.dcsActive {
		return
	}
	s.dcsActive = false
	if len(s.dcsPayload) == 1 && s.dcsPayload[0] == 'm' {
		s.replyDECRQSS_SGR()
	}
}

func (s *Screen) replyDECRQSS_SGR() {
	groups := style.Diff(style.DefaultStyle, s.cursor.Style)
	var parts []string
	for _, g := range groups {
		for _, n := range g {
			parts = append(parts, strconv.Itoa(n))
		}
	}
	sgr := ""
	for i, p := range parts {
		if i > 0 {
			sgr += ";"
		}
		sgr += p
	}
	s.reply.WriteReply([]byte(fmt.Sprintf("\x1bP1$r%sm\x1b\\", sgr)))
}
