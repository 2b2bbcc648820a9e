// Package style holds the immutable text-attribute value applied to each
// cell of a Buffer: a foreground/background Color pair plus a bitset of
// SGR attributes, decoded from CSI "m" parameter lists.
package style

import "fmt"

// ColorKind tags the variant held by a Color.
type ColorKind uint8

const (
	ColorDefault ColorKind = iota
	ColorIndexed
	ColorRGB
)

// Color is Default | Indexed(0..255) | Rgb(r,g,b), per spec.md §3.
type Color struct {
	Kind ColorKind
	Idx  uint8 // valid when Kind == ColorIndexed
	R, G, B uint8 // valid when Kind == ColorRGB
}

// Default is the zero-value Color: no foreground/background override.
var Default = Color{Kind: ColorDefault}

// Indexed builds a palette-indexed Color (0..255).
func Indexed(n int) Color {
	if n < 0 {
		n = 0
	}
	if n > 255 {
		n = 255
	}
	return Color{Kind: ColorIndexed, Idx: uint8(n)}
}

// RGB builds a 24-bit true-color Color.
func RGB(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// Attr is a single bit in the Style attribute set.
type Attr uint16

const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrConceal
	AttrStrike
	AttrDoubleUnderline
)

// Style is an immutable value: two colors plus an attribute bitset.
// Two styles compare by value (Go struct equality suffices; no hidden state).
type Style struct {
	Fg, Bg Color
	Attrs  Attr
}

// DefaultStyle is the zero-value Style: default/default colors, no attributes.
var DefaultStyle = Style{Fg: Default, Bg: Default}

func (s Style) Has(a Attr) bool { return s.Attrs&a != 0 }

// Blank returns the background-only style newly exposed cells should carry
// after a scroll, erase, or clear: the current background color with no
// foreground override and no attributes (spec.md §4.1 "LF/IND" and §4.3
// "ED/EL" both specify filling with the current background, not the full
// current Style — a reverse-video or bold SGR in effect at the time must
// not leak onto cells the write never actually touched).
func (s Style) Blank() Style { return Style{Bg: s.Bg} }

func (s Style) set(a Attr) Style   { s.Attrs |= a; return s }
func (s Style) clear(a Attr) Style { s.Attrs &^= a; return s }

// Param is one slot of an SGR/DECRQSS parameter list. An empty CSI slot
// (e.g. the "" between two ';') decodes to Param{Empty: true}, which is
// equivalent to 0 at the head of a subcommand per spec.md §4.1.
type Param struct {
	Value int
	Empty bool
	// Sub holds colon-separated sub-parameters of this slot (e.g. the
	// "2;255;128;0" that follows "38:" in "38:2:255:128:0"). Sub is empty
	// for a bare semicolon-separated parameter.
	Sub []Param
}

func (p Param) orZero() int {
	if p.Empty {
		return 0
	}
	return p.Value
}

// MergeSGR applies one SGR command's parameter list to style, returning the
// updated Style. params may be empty, meaning "CSI m" alone, equivalent to
// a single default (reset) parameter.
func MergeSGR(s Style, params []Param) Style {
	if len(params) == 0 {
		return DefaultStyle
	}
	i := 0
	for i < len(params) {
		p := params[i]
		code := p.orZero()
		switch {
		case code == 0:
			s = DefaultStyle
		case code == 1:
			s = s.set(AttrBold)
		case code == 2:
			s = s.set(AttrDim)
		case code == 3:
			s = s.set(AttrItalic)
		case code == 4:
			s = s.set(AttrUnderline)
		case code == 5, code == 6:
			s = s.set(AttrBlink)
		case code == 7:
			s = s.set(AttrReverse)
		case code == 8:
			s = s.set(AttrConceal)
		case code == 9:
			s = s.set(AttrStrike)
		case code == 21:
			s = s.set(AttrDoubleUnderline)
		case code == 22:
			s = s.clear(AttrBold).clear(AttrDim)
		case code == 23:
			s = s.clear(AttrItalic)
		case code == 24:
			s = s.clear(AttrUnderline).clear(AttrDoubleUnderline)
		case code == 25:
			s = s.clear(AttrBlink)
		case code == 27:
			s = s.clear(AttrReverse)
		case code == 28:
			s = s.clear(AttrConceal)
		case code == 29:
			s = s.clear(AttrStrike)
		case code == 53:
			// overline: no dedicated bit in this core; accepted and ignored,
			// matching spec.md's "unknown codes silently ignored".
		case code >= 30 && code <= 37:
			s.Fg = Indexed(code - 30)
		case code >= 90 && code <= 97:
			s.Fg = Indexed(code - 90 + 8)
		case code >= 40 && code <= 47:
			s.Bg = Indexed(code - 40)
		case code >= 100 && code <= 107:
			s.Bg = Indexed(code - 100 + 8)
		case code == 39:
			s.Fg = Default
		case code == 49:
			s.Bg = Default
		case code == 38, code == 48:
			consumed, ok := applyExtendedColor(&s, code == 38, params, i)
			if !ok {
				// malformed truncation: stop processing this subcommand,
				// leave style unchanged for the remainder of the slot.
				return s
			}
			i += consumed
		default:
			// unknown code: ignore, continue at next subcommand.
		}
		i++
	}
	return s
}

// applyExtendedColor handles the "38"/"48" subcommand, which may consume 3
// tokens (5;N form) or 5 tokens (2;R;G;B form), either as separate
// semicolon-delimited params[i+1], params[i+2]... or packed into
// params[i].Sub via the colon form. Returns how many EXTRA params[] slots
// (beyond the "38"/"48" one itself) were consumed from the semicolon form.
func applyExtendedColor(s *Style, fg bool, params []Param, i int) (extra int, ok bool) {
	head := params[i]
	if len(head.Sub) > 0 {
		return 0, applyExtendedColorTokens(s, fg, head.Sub)
	}
	if i+1 >= len(params) {
		return 0, false
	}
	mode := params[i+1].orZero()
	switch mode {
	case 5:
		if i+2 >= len(params) {
			return 0, false
		}
		n := params[i+2].orZero()
		if fg {
			s.Fg = Indexed(n)
		} else {
			s.Bg = Indexed(n)
		}
		return 2, true
	case 2:
		if i+4 >= len(params) {
			return 0, false
		}
		r := params[i+2].orZero()
		g := params[i+3].orZero()
		b := params[i+4].orZero()
		c := RGB(clampByte(r), clampByte(g), clampByte(b))
		if fg {
			s.Fg = c
		} else {
			s.Bg = c
		}
		return 4, true
	default:
		return 0, false
	}
}

// applyExtendedColorTokens handles the colon sub-parameter form, e.g.
// "38:2::R:G:B" (empty colorspace-id slot before R) or "38:5:N".
func applyExtendedColorTokens(s *Style, fg bool, tokens []Param) bool {
	if len(tokens) == 0 {
		return false
	}
	switch tokens[0].orZero() {
	case 5:
		if len(tokens) < 2 {
			return false
		}
		n := tokens[1].orZero()
		if fg {
			s.Fg = Indexed(n)
		} else {
			s.Bg = Indexed(n)
		}
		return true
	case 2:
		// tokens: [2, colorspace-id(optional/empty), R, G, B]
		rest := tokens[1:]
		if len(rest) == 4 {
			rest = rest[1:] // drop colorspace-id slot
		}
		if len(rest) < 3 {
			return false
		}
		c := RGB(clampByte(rest[0].orZero()), clampByte(rest[1].orZero()), clampByte(rest[2].orZero()))
		if fg {
			s.Fg = c
		} else {
			s.Bg = c
		}
		return true
	default:
		return false
	}
}

func clampByte(n int) uint8 {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// SGRGroup is one emitted SGR subcommand from Diff, e.g. []int{38,2,255,128,0}.
type SGRGroup []int

// Diff returns the sequence of SGR parameter groups which, applied to a in
// order, produces b. Used by external renderers; not required for core
// correctness (spec.md §4.1).
func Diff(a, b Style) []SGRGroup {
	if a == b {
		return nil
	}
	if b == DefaultStyle {
		return []SGRGroup{{0}}
	}
	var groups []SGRGroup
	resetNeeded := attrsRemoved(a.Attrs, b.Attrs) != 0
	if resetNeeded {
		groups = append(groups, SGRGroup{0})
		a = DefaultStyle
	}
	for _, bit := range []struct {
		a    Attr
		code int
	}{
		{AttrBold, 1}, {AttrDim, 2}, {AttrItalic, 3}, {AttrUnderline, 4},
		{AttrBlink, 5}, {AttrReverse, 7}, {AttrConceal, 8}, {AttrStrike, 9},
		{AttrDoubleUnderline, 21},
	} {
		if b.Has(bit.a) && !a.Has(bit.a) {
			groups = append(groups, SGRGroup{bit.code})
		}
	}
	if a.Fg != b.Fg {
		groups = append(groups, colorGroup(38, 39, b.Fg))
	}
	if a.Bg != b.Bg {
		groups = append(groups, colorGroup(48, 49, b.Bg))
	}
	return groups
}

func attrsRemoved(from, to Attr) Attr { return from &^ to }

func colorGroup(extCode, defaultCode int, c Color) SGRGroup {
	switch c.Kind {
	case ColorDefault:
		return SGRGroup{defaultCode}
	case ColorIndexed:
		return SGRGroup{extCode, 5, int(c.Idx)}
	case ColorRGB:
		return SGRGroup{extCode, 2, int(c.R), int(c.G), int(c.B)}
	default:
		return SGRGroup{defaultCode}
	}
}

func (c Color) String() string {
	switch c.Kind {
	case ColorDefault:
		return "default"
	case ColorIndexed:
		return fmt.Sprintf("idx(%d)", c.Idx)
	case ColorRGB:
		return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	default:
		return "?"
	}
}
