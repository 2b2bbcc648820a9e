package parser

import "github.com/halcyon-term/vtcore/style"

// CSICommand is what the state machine hands to Sink.CSIDispatch on the
// terminal byte of a CSI sequence: a private-marker byte (0 if none),
// the accumulated parameter list (sub-parameters preserved per slot),
// intermediate bytes, and the final byte. Mirrors spec.md §4.4's
// "(private-flag byte or none, parameter list, intermediate bytes, final
// byte)" tuple.
type CSICommand struct {
	Private       byte // '?', '>', '<', '=' or 0
	Params        []style.Param
	Intermediates []byte
	Final         byte
}

// Sink is the narrow interface the Parser dispatches into. screen.Screen
// is the only production implementation; the core never talks to a
// Buffer directly (spec.md §2: "The Parser never touches the Buffer
// directly; the Screen is the single point of mutation").
type Sink interface {
	// Print writes one displayable, already-decoded code point at the
	// cursor (charset translation and wrap handling are the sink's job).
	Print(r rune)
	// Execute runs a C0 control function (BEL, BS, HT, LF, CR, SO, SI,
	// ...). 8-bit C1 controls such as IND, NEL, HTS and RI are delivered
	// through EscDispatch as their ESC+final equivalents, not through
	// Execute.
	Execute(b byte)
	// CSIDispatch runs a fully parsed CSI command.
	CSIDispatch(cmd CSICommand)
	// EscDispatch runs a non-CSI escape sequence: ESC plus intermediates
	// plus a final byte (DECSC, DECRC, RIS, character-set designation...).
	EscDispatch(intermediates []byte, final byte)
	// OSCDispatch runs one complete OSC payload (the bytes between
	// "ESC ]" and the ST/BEL terminator). A dropped (overflowed) OSC is
	// never dispatched at all.
	OSCDispatch(data []byte)
	// Hook begins a DCS sequence: params/intermediates/final are the same
	// as a CSI command's, but what follows is an opaque byte stream
	// terminated by ST, fed byte-by-byte to Put and finished by Unhook.
	Hook(params []style.Param, intermediates []byte, final byte)
	// Put forwards one payload byte of an active DCS string.
	Put(b byte)
	// Unhook ends the active DCS string.
	Unhook()
}
