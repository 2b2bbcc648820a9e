package screen

// charsetID identifies one of the designatable character sets. This core
// only needs to distinguish ASCII from DEC Special Graphics (the line-
// drawing set almost every full-screen curses app switches into for box
// borders); spec.md §3 names G0-G3/GL/GR/SS2/SS3 state without requiring
// the full ISO 2022 national-set catalogue.
type charsetID uint8

const (
	charsetASCII charsetID = iota
	charsetDECSpecialGraphics
)

// charsetState holds the G0-G3 designations and the GL/GR pointers, plus
// the SS2/SS3 single-shift latch (spec.md §3).
type charsetState struct {
	g          [4]charsetID
	gl, gr     int // index into g, 0-3
	singleShift int // -1 (none), 2, or 3
}

func newCharsetState() charsetState {
	return charsetState{gl: 0, gr: 2, singleShift: -1}
}

// designate sets G[slot] (0-3) from an ESC intermediate+final pair, e.g.
// "ESC ( 0" designates DEC Special Graphics into G0.
func (c *charsetState) designate(slot int, final byte) {
	if slot < 0 || slot > 3 {
		return
	}
	switch final {
	case '0':
		c.g[slot] = charsetDECSpecialGraphics
	default:
		c.g[slot] = charsetASCII
	}
}

// translate maps r through the currently-selected charset, consuming a
// pending single shift if one is latched (spec.md §3 "SS2/SS3").
func (c *charsetState) translate(r rune) rune {
	slot := c.gl
	if c.singleShift >= 0 {
		slot = c.singleShift
		c.singleShift = -1
	}
	if c.g[slot] == charsetDECSpecialGraphics {
		if mapped, ok := decSpecialGraphics[r]; ok {
			return mapped
		}
	}
	return r
}

// decSpecialGraphics is the DEC Special Graphics line-drawing translation
// table, keyed by the ASCII byte that selects each glyph.
var decSpecialGraphics = map[rune]rune{
	'`': '◆', 'a': '▒', 'b': '␉', 'c': '␌', 'd': '␍', 'e': '␊',
	'f': '°', 'g': '±', 'h': '␤', 'i': '␋', 'j': '┘', 'k': '┐',
	'l': '┌', 'm': '└', 'n': '┼', 'o': '⎺', 'p': '⎻', 'q': '─',
	'r': '⎼', 's': '⎽', 't': '├', 'u': '┤', 'v': '┴', 'w': '┬',
	'x': '│', 'y': '≤', 'z': '≥', '{': 'π', '|': '≠', '}': '£',
	'~': '·',
}
