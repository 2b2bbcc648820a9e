// Package parser implements the byte-driven VT/ANSI state machine
// described in spec.md §4.4: a DEC-compatible parser (the public
// "Paul Williams" table) that turns a raw octet stream into calls on a
// Sink, almost always a *screen.Screen. The parser never interprets grid
// semantics itself — it only recognizes sequence shapes and dispatches.
package parser

import "github.com/halcyon-term/vtcore/style"

// Parser is a table-driven-in-spirit (switch-dispatched, per corpus idiom)
// VT state machine. It is not safe for concurrent use; per spec.md §5 all
// core mutation happens on one logical execution context.
type Parser struct {
	sink Sink

	st            state
	intermediates []byte
	params        paramCollector
	private       byte

	// DCS/OSC payload accumulation, shared by both since only one is ever
	// active at a time.
	payload     []byte
	overflowed  bool
	dcsParams   []style.Param
	dcsInterm   []byte
	dcsFinal    byte

	utf8 utf8Decoder
}

// New creates a Parser that dispatches into sink.
func New(sink Sink) *Parser {
	return &Parser{sink: sink, st: stateGround}
}

// Feed processes data synchronously and returns only once every byte has
// been dispatched. Feeding B1 then B2 is observationally equivalent to
// feeding B1∥B2 in one call (spec.md §8, chunk independence): all parser
// state that could split across a boundary (UTF-8 partials, in-progress
// escape/CSI/DCS/OSC sequences, collected params) lives in the Parser
// struct, not on the call stack.
func (p *Parser) Feed(data []byte) {
	for _, b := range data {
		p.feedByte(b)
	}
}

func (p *Parser) feedByte(b byte) {
	if p.st == stateGround {
		if p.utf8.pending() || isUTF8Eligible(b) {
			r, ready, invalidLead, reconsume := p.utf8.feed(b)
			if invalidLead {
				// Not UTF-8 at all: fall through to control/print handling
				// below for this same byte.
			} else {
				if ready {
					p.sink.Print(r)
				}
				if reconsume {
					p.feedByte(b)
				}
				return
			}
		}
	}
	p.step(b)
}

// isUTF8Eligible reports whether b is routed through the UTF-8 front-end
// while idle: any byte 0xA0-0xFF. Only 0xC2-0xF4 start a sequence; the
// decoder reports the others as invalid leads and stepGround replaces them
// with U+FFFD. A continuation byte while a sequence is already pending is
// handled by the p.utf8.pending() check in feedByte. Bytes 0x00-0x9F are
// always routed through the control-byte state machine instead, even
// though some (0x80-0x9F) are numerically inside the UTF-8 continuation
// range — spec.md §4.4 resolves that ambiguity in favor of C1 controls
// when no sequence is already in progress.
func isUTF8Eligible(b byte) bool {
	return b >= 0xA0
}

func (p *Parser) step(b byte) {
	switch p.st {
	case stateGround:
		p.stepGround(b)
	case stateEscape:
		p.stepEscape(b)
	case stateEscapeIntermediate:
		p.stepEscapeIntermediate(b)
	case stateCSIEntry:
		p.stepCSIEntry(b)
	case stateCSIParam:
		p.stepCSIParam(b)
	case stateCSIIntermediate:
		p.stepCSIIntermediate(b)
	case stateCSIIgnore:
		p.stepCSIIgnore(b)
	case stateDCSEntry:
		p.stepDCSEntry(b)
	case stateDCSParam:
		p.stepDCSParam(b)
	case stateDCSIntermediate:
		p.stepDCSIntermediate(b)
	case stateDCSPassthrough:
		p.stepDCSPassthrough(b)
	case stateDCSIgnore:
		p.stepDCSIgnore(b)
	case stateOSCString:
		p.stepOSCString(b)
	case stateSOSPMAPCString:
		p.stepSOSPMAPCString(b)
	}
}

func (p *Parser) clear() {
	p.intermediates = p.intermediates[:0]
	p.params.reset()
	p.private = 0
	p.payload = p.payload[:0]
	p.overflowed = false
}

func (p *Parser) toGround() { p.st = stateGround }

// abort handles CAN/SUB: cancel whatever sequence is in progress and
// return to GROUND (spec.md §4.4 Cancellation).
func (p *Parser) abort(b byte) {
	p.clear()
	p.toGround()
	if b == 0x1A { // SUB: substitute character, implementation-defined.
		p.sink.Print(replacementChar)
	}
}

func (p *Parser) collectIntermediate(b byte) {
	if len(p.intermediates) < maxIntermediates {
		p.intermediates = append(p.intermediates, b)
	}
}

// --- GROUND -----------------------------------------------------------

func (p *Parser) stepGround(b byte) {
	switch {
	case b == 0x1B:
		p.clear()
		p.st = stateEscape
	case b == 0x18 || b == 0x1A:
		p.abort(b)
	case b <= 0x1F:
		p.sink.Execute(b)
	case b == 0x7F:
		// DEL: ignored.
	case b >= 0x20 && b <= 0x7E:
		p.sink.Print(rune(b))
	case b >= 0x80 && b <= 0x9F:
		p.dispatchC1(b)
	default:
		// 0xA0-0xFF not otherwise consumed by the UTF-8 front-end (e.g. an
		// invalid lead byte) is replaced.
		p.sink.Print(replacementChar)
	}
}

// dispatchC1 handles an 8-bit C1 control byte identically to its
// ESC+(byte+0x40) two-byte form (spec.md §4.4).
func (p *Parser) dispatchC1(b byte) {
	final := b - 0x40
	switch final {
	case '[':
		p.clear()
		p.st = stateCSIEntry
	case ']':
		p.clear()
		p.st = stateOSCString
	case 'P':
		p.clear()
		p.st = stateDCSEntry
	case 'X', '^', '_':
		p.clear()
		p.st = stateSOSPMAPCString
	default:
		p.sink.EscDispatch(nil, final)
	}
}

// --- ESCAPE -------------------------------------------------------------

func (p *Parser) stepEscape(b byte) {
	switch {
	case b == 0x1B:
		p.clear()
	case b == 0x18 || b == 0x1A:
		p.abort(b)
	case b <= 0x1F:
		p.sink.Execute(b)
	case b == 0x7F:
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
		p.st = stateEscapeIntermediate
	case b == '[':
		p.clear()
		p.st = stateCSIEntry
	case b == ']':
		p.clear()
		p.st = stateOSCString
	case b == 'P':
		p.clear()
		p.st = stateDCSEntry
	case b == 'X' || b == '^' || b == '_':
		p.clear()
		p.st = stateSOSPMAPCString
	case b >= 0x30 && b <= 0x7E:
		final := b
		interm := p.intermediates
		p.toGround()
		p.sink.EscDispatch(interm, final)
	}
}

func (p *Parser) stepEscapeIntermediate(b byte) {
	switch {
	case b == 0x1B:
		p.clear()
		p.st = stateEscape
	case b == 0x18 || b == 0x1A:
		p.abort(b)
	case b <= 0x1F:
		p.sink.Execute(b)
	case b == 0x7F:
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
	case b >= 0x30 && b <= 0x7E:
		final := b
		interm := p.intermediates
		p.toGround()
		p.sink.EscDispatch(interm, final)
	}
}

// --- CSI ------------------------------------------------------------

func (p *Parser) stepCSIEntry(b byte) {
	switch {
	case b == 0x1B:
		p.clear()
		p.st = stateEscape
	case b == 0x18 || b == 0x1A:
		p.abort(b)
	case b <= 0x1F:
		p.sink.Execute(b)
	case b == 0x7F:
	case b >= '0' && b <= '9':
		p.params.digit(b)
		p.st = stateCSIParam
	case b == ';':
		p.params.semicolon()
		p.st = stateCSIParam
	case b == ':':
		p.params.colon()
		p.st = stateCSIParam
	case b >= 0x3C && b <= 0x3F:
		p.private = b
		p.st = stateCSIParam
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
		p.st = stateCSIIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.dispatchCSI(b)
	default:
		p.st = stateCSIIgnore
	}
}

func (p *Parser) stepCSIParam(b byte) {
	switch {
	case b == 0x1B:
		p.clear()
		p.st = stateEscape
	case b == 0x18 || b == 0x1A:
		p.abort(b)
	case b <= 0x1F:
		p.sink.Execute(b)
	case b == 0x7F:
	case b >= '0' && b <= '9':
		p.params.digit(b)
	case b == ';':
		p.params.semicolon()
	case b == ':':
		p.params.colon()
	case b >= 0x3C && b <= 0x3F:
		p.st = stateCSIIgnore
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
		p.st = stateCSIIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.dispatchCSI(b)
	default:
		p.st = stateCSIIgnore
	}
}

func (p *Parser) stepCSIIntermediate(b byte) {
	switch {
	case b == 0x1B:
		p.clear()
		p.st = stateEscape
	case b == 0x18 || b == 0x1A:
		p.abort(b)
	case b <= 0x1F:
		p.sink.Execute(b)
	case b == 0x7F:
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
	case b >= 0x30 && b <= 0x3F:
		p.st = stateCSIIgnore
	case b >= 0x40 && b <= 0x7E:
		p.dispatchCSI(b)
	default:
		p.st = stateCSIIgnore
	}
}

func (p *Parser) stepCSIIgnore(b byte) {
	switch {
	case b == 0x1B:
		p.clear()
		p.st = stateEscape
	case b == 0x18 || b == 0x1A:
		p.abort(b)
	case b <= 0x1F:
		p.sink.Execute(b)
	case b >= 0x40 && b <= 0x7E:
		p.toGround()
	}
}

func (p *Parser) dispatchCSI(final byte) {
	cmd := CSICommand{
		Private:       p.private,
		Params:        p.params.finish(),
		Intermediates: append([]byte(nil), p.intermediates...),
		Final:         final,
	}
	p.toGround()
	p.sink.CSIDispatch(cmd)
}

// --- DCS ------------------------------------------------------------

func (p *Parser) stepDCSEntry(b byte) {
	switch {
	case b == 0x1B:
		p.clear()
		p.st = stateEscape
	case b == 0x18 || b == 0x1A:
		p.abort(b)
	case b <= 0x1F:
	case b == 0x7F:
	case b >= '0' && b <= '9':
		p.params.digit(b)
		p.st = stateDCSParam
	case b == ';':
		p.params.semicolon()
		p.st = stateDCSParam
	case b == ':':
		p.params.colon()
		p.st = stateDCSParam
	case b >= 0x3C && b <= 0x3F:
		p.private = b
		p.st = stateDCSParam
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
		p.st = stateDCSIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.hookDCS(b)
	default:
		p.st = stateDCSIgnore
	}
}

func (p *Parser) stepDCSParam(b byte) {
	switch {
	case b == 0x1B:
		p.clear()
		p.st = stateEscape
	case b == 0x18 || b == 0x1A:
		p.abort(b)
	case b <= 0x1F:
	case b == 0x7F:
	case b >= '0' && b <= '9':
		p.params.digit(b)
	case b == ';':
		p.params.semicolon()
	case b == ':':
		p.params.colon()
	case b >= 0x3C && b <= 0x3F:
		p.st = stateDCSIgnore
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
		p.st = stateDCSIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.hookDCS(b)
	default:
		p.st = stateDCSIgnore
	}
}

func (p *Parser) stepDCSIntermediate(b byte) {
	switch {
	case b == 0x1B:
		p.clear()
		p.st = stateEscape
	case b == 0x18 || b == 0x1A:
		p.abort(b)
	case b <= 0x1F:
	case b == 0x7F:
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
	case b >= 0x30 && b <= 0x3F:
		p.st = stateDCSIgnore
	case b >= 0x40 && b <= 0x7E:
		p.hookDCS(b)
	default:
		p.st = stateDCSIgnore
	}
}

func (p *Parser) hookDCS(final byte) {
	p.dcsParams = p.params.finish()
	p.dcsInterm = append([]byte(nil), p.intermediates...)
	p.dcsFinal = final
	p.st = stateDCSPassthrough
	p.sink.Hook(p.dcsParams, p.dcsInterm, p.dcsFinal)
}

func (p *Parser) stepDCSPassthrough(b byte) {
	switch {
	case b == 0x1B:
		p.st = stateEscape // may be the start of ST; ESC also aborts per spec.
		p.sink.Unhook()
	case b == 0x18 || b == 0x1A:
		p.sink.Unhook()
		p.abort(b)
	case b == 0x7F:
	default:
		if len(p.payload) >= maxStringPayload {
			p.st = stateDCSIgnore
			p.sink.Unhook()
			return
		}
		p.payload = append(p.payload, b)
		p.sink.Put(b)
	}
}

func (p *Parser) stepDCSIgnore(b byte) {
	switch {
	case b == 0x1B:
		p.clear()
		p.st = stateEscape
	case b == 0x18 || b == 0x1A:
		p.abort(b)
	}
}

// --- OSC / SOS / PM / APC ------------------------------------------------

func (p *Parser) stepOSCString(b byte) {
	switch {
	case b == 0x07:
		p.finishOSC()
		p.toGround()
	case b == 0x1B:
		p.st = stateEscape
		// If the next byte is '\\' this completes ST; handled by looking
		// ahead via a tiny lookahead flag would complicate Feed's
		// byte-at-a-time contract, so instead we finish OSC eagerly here
		// and let a lone ESC that turns out not to be ST behave like any
		// other ESC (matches real-world leniency: OSC strings never
		// legitimately contain a bare ESC that isn't ST).
		p.finishOSC()
	case b == 0x18 || b == 0x1A:
		p.overflowed = true
		p.abort(b)
	default:
		if len(p.payload) < maxStringPayload {
			p.payload = append(p.payload, b)
		} else {
			p.overflowed = true
		}
	}
}

func (p *Parser) finishOSC() {
	if !p.overflowed {
		data := append([]byte(nil), p.payload...)
		p.sink.OSCDispatch(data)
	}
	p.payload = p.payload[:0]
	p.overflowed = false
}

func (p *Parser) stepSOSPMAPCString(b byte) {
	switch {
	case b == 0x07:
		p.toGround()
	case b == 0x1B:
		p.st = stateEscape
	case b == 0x18 || b == 0x1A:
		p.abort(b)
	default:
		// accept and discard, per spec.md §4.5/§9 minimum.
	}
}
