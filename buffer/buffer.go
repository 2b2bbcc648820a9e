// Package buffer implements the rectangular cell grid gopyte's
// NativeScreen kept as parallel [][]rune / [][]Attributes slices. Here the
// two are fused into a single [][]Cell grid addressed (x,y), with the
// region operations (scroll/insert/delete) spec.md §4.2 requires.
package buffer

import (
	runewidth "github.com/mattn/go-runewidth"

	"github.com/halcyon-term/vtcore/style"
)

// Cell is (character, Style) plus a display-width tag. Width is 1 for a
// normal cell, 2 for the leading cell of a wide (CJK/emoji) glyph, and 0
// for the placeholder continuation cell immediately following a wide
// glyph — the same three-way tag gopyte's WideCharScreen.cellWidths uses.
type Cell struct {
	Char  rune
	Style style.Style
	Width int
}

// Empty is the default cell: a space in the default style.
var Empty = Cell{Char: ' ', Style: style.DefaultStyle, Width: 1}

// RuneWidth reports the terminal column width of r (0, 1, or 2), matching
// gopyte's use of mattn/go-runewidth for wide-character layout.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// Buffer is a W×H grid of Cells, row-major, addressed 0<=x<W, 0<=y<H.
type Buffer struct {
	w, h  int
	rows  [][]Cell
}

// New creates a W×H buffer filled with Empty cells.
func New(w, h int) *Buffer {
	b := &Buffer{w: w, h: h, rows: make([][]Cell, h)}
	for y := range b.rows {
		b.rows[y] = newRow(w)
	}
	return b
}

func newRow(w int) []Cell {
	row := make([]Cell, w)
	for i := range row {
		row[i] = Empty
	}
	return row
}

func (b *Buffer) Width() int  { return b.w }
func (b *Buffer) Height() int { return b.h }

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.w && y >= 0 && y < b.h
}

// Get returns the cell at (x,y). Out-of-bounds coordinates return Empty
// rather than panicking, since the Screen layer is responsible for
// clamping per spec.md §7 and callers sometimes probe one past an edge.
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Empty
	}
	return b.rows[y][x]
}

// Set writes a cell at (x,y). Out-of-bounds writes are silently dropped.
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.inBounds(x, y) {
		return
	}
	b.rows[y][x] = c
}

// Row returns the live backing slice for row y (callers must not retain it
// past the next mutating Buffer call). Used by Screen for bulk scans
// (e.g. title-bar-free line rendering) without a copy.
func (b *Buffer) Row(y int) []Cell {
	if y < 0 || y >= b.h {
		return nil
	}
	return b.rows[y]
}

// ClearRegion fills the rectangle [x0,x1]×[y0,y1] (inclusive) with
// (space, fillStyle).
func (b *Buffer) ClearRegion(x0, y0, x1, y1 int, fillStyle style.Style) {
	x0, x1 = clampRange(x0, x1, b.w-1)
	y0, y1 = clampRange(y0, y1, b.h-1)
	fill := Cell{Char: ' ', Style: fillStyle, Width: 1}
	for y := y0; y <= y1; y++ {
		row := b.rows[y]
		for x := x0; x <= x1; x++ {
			row[x] = fill
		}
	}
}

func clampRange(lo, hi, max int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > max {
		hi = max
	}
	if lo > hi {
		return 0, -1 // empty range
	}
	return lo, hi
}

// ScrollUp shifts rows [top,bottom] (inclusive) up by n, filling the bottom
// n rows with (space, fillStyle). Rows outside [top,bottom] are untouched.
// n may exceed the region height, in which case the region is fully
// cleared (spec.md §4.2).
func (b *Buffer) ScrollUp(top, bottom, n int, fillStyle style.Style) {
	top, bottom = b.clampRegion(top, bottom)
	if top > bottom || n <= 0 {
		return
	}
	height := bottom - top + 1
	if n >= height {
		b.ClearRegion(0, top, b.w-1, bottom, fillStyle)
		return
	}
	for y := top; y <= bottom-n; y++ {
		copy(b.rows[y], b.rows[y+n])
	}
	b.ClearRegion(0, bottom-n+1, b.w-1, bottom, fillStyle)
}

// ScrollDown is the symmetric counterpart of ScrollUp (spec.md §4.2).
func (b *Buffer) ScrollDown(top, bottom, n int, fillStyle style.Style) {
	top, bottom = b.clampRegion(top, bottom)
	if top > bottom || n <= 0 {
		return
	}
	height := bottom - top + 1
	if n >= height {
		b.ClearRegion(0, top, b.w-1, bottom, fillStyle)
		return
	}
	for y := bottom; y >= top+n; y-- {
		copy(b.rows[y], b.rows[y-n])
	}
	b.ClearRegion(0, top, b.w-1, top+n-1, fillStyle)
}

func (b *Buffer) clampRegion(top, bottom int) (int, int) {
	if top < 0 {
		top = 0
	}
	if bottom > b.h-1 {
		bottom = b.h - 1
	}
	return top, bottom
}

// InsertLines inserts n blank lines at row y, pushing [y,bottom] down;
// lines pushed past bottom are discarded. Region-respecting per spec.md
// §4.2 — equivalent to a downward scroll of the sub-region [y,bottom].
func (b *Buffer) InsertLines(y, n, top, bottom int, fillStyle style.Style) {
	if y < top || y > bottom {
		return
	}
	b.ScrollDown(y, bottom, n, fillStyle)
}

// DeleteLines deletes n lines at row y within [top,bottom], pulling lines
// below y upward and filling the vacated bottom lines.
func (b *Buffer) DeleteLines(y, n, top, bottom int, fillStyle style.Style) {
	if y < top || y > bottom {
		return
	}
	b.ScrollUp(y, bottom, n, fillStyle)
}

// InsertCells shifts the n-cell-wide gap open at (x,y), pushing cells from
// x onward right by n; cells pushed past the row's right edge are dropped.
func (b *Buffer) InsertCells(x, y, n int, fillStyle style.Style) {
	if y < 0 || y >= b.h || n <= 0 {
		return
	}
	row := b.rows[y]
	if x < 0 {
		x = 0
	}
	if x >= b.w {
		return
	}
	if n > b.w-x {
		n = b.w - x
	}
	copy(row[x+n:], row[x:b.w-n])
	fill := Cell{Char: ' ', Style: fillStyle, Width: 1}
	for i := x; i < x+n; i++ {
		row[i] = fill
	}
}

// DeleteCells removes n cells at (x,y), pulling the remainder of the row
// left and filling the vacated right edge.
func (b *Buffer) DeleteCells(x, y, n int, fillStyle style.Style) {
	if y < 0 || y >= b.h || n <= 0 {
		return
	}
	row := b.rows[y]
	if x < 0 {
		x = 0
	}
	if x >= b.w {
		return
	}
	if n > b.w-x {
		n = b.w - x
	}
	copy(row[x:], row[x+n:])
	fill := Cell{Char: ' ', Style: fillStyle, Width: 1}
	for i := b.w - n; i < b.w; i++ {
		row[i] = fill
	}
}

// Resize changes the buffer's dimensions in place, preserving the
// top-left W'×H' overlap and filling any newly exposed area with
// (space, defaultStyle). Rejects non-positive dimensions by being a no-op
// (the Screen layer enforces spec.md §7's "reject, keep previous
// dimensions" policy before ever calling Resize).
func (b *Buffer) Resize(newW, newH int, defaultStyle style.Style) {
	if newW <= 0 || newH <= 0 {
		return
	}
	newRows := make([][]Cell, newH)
	for y := 0; y < newH; y++ {
		row := newRowWithStyle(newW, defaultStyle)
		if y < b.h {
			n := newW
			if n > b.w {
				n = b.w
			}
			copy(row, b.rows[y][:n])
		}
		newRows[y] = row
	}
	b.rows = newRows
	b.w, b.h = newW, newH
}

func newRowWithStyle(w int, s style.Style) []Cell {
	row := make([]Cell, w)
	for i := range row {
		row[i] = Cell{Char: ' ', Style: s, Width: 1}
	}
	return row
}

// Snapshot returns a deep copy of the grid's cells, safe to hand to a
// renderer running under its own lock (spec.md §5).
func (b *Buffer) Snapshot() [][]Cell {
	out := make([][]Cell, b.h)
	for y := range out {
		row := make([]Cell, b.w)
		copy(row, b.rows[y])
		out[y] = row
	}
	return out
}
