package buffer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halcyon-term/vtcore/buffer"
	"github.com/halcyon-term/vtcore/style"
)

func TestNewBufferAllCellsEmpty(t *testing.T) {
	b := buffer.New(5, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			assert.Equal(t, buffer.Empty, b.Get(x, y))
		}
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	b := buffer.New(4, 4)
	c := buffer.Cell{Char: 'X', Style: style.Style{Fg: style.Indexed(1)}, Width: 1}
	b.Set(2, 1, c)
	assert.Equal(t, c, b.Get(2, 1))
}

func TestOutOfBoundsIsNoop(t *testing.T) {
	b := buffer.New(2, 2)
	b.Set(-1, 0, buffer.Cell{Char: 'z'})
	b.Set(5, 5, buffer.Cell{Char: 'z'})
	assert.Equal(t, buffer.Empty, b.Get(-1, 0))
}

func TestClearRegionOutsideUntouched(t *testing.T) {
	b := buffer.New(5, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			b.Set(x, y, buffer.Cell{Char: 'A', Width: 1})
		}
	}
	before := snapshotOutside(b, 1, 1, 3, 3)
	b.ClearRegion(1, 1, 3, 3, style.DefaultStyle)
	after := snapshotOutside(b, 1, 1, 3, 3)
	assert.Equal(t, before, after)
	assert.Equal(t, buffer.Cell{Char: ' ', Style: style.DefaultStyle, Width: 1}, b.Get(2, 2))
}

func snapshotOutside(b *buffer.Buffer, x0, y0, x1, y1 int) []buffer.Cell {
	var out []buffer.Cell
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if x >= x0 && x <= x1 && y >= y0 && y <= y1 {
				continue
			}
			out = append(out, b.Get(x, y))
		}
	}
	return out
}

func TestScrollUpWithinRegionLeavesOutsideUntouched(t *testing.T) {
	b := buffer.New(3, 5)
	for y := 0; y < 5; y++ {
		b.Set(0, y, buffer.Cell{Char: rune('0' + y), Width: 1})
	}
	b.ScrollUp(1, 3, 1, style.DefaultStyle)
	assert.Equal(t, rune('0'), b.Get(0, 0).Char, "row 0 outside region untouched")
	assert.Equal(t, rune('4'), b.Get(0, 4).Char, "row 4 outside region untouched")
	assert.Equal(t, rune('2'), b.Get(0, 1).Char)
	assert.Equal(t, rune('3'), b.Get(0, 2).Char)
	assert.Equal(t, ' ', b.Get(0, 3).Char)
}

func TestScrollUpExceedingHeightClearsRegion(t *testing.T) {
	b := buffer.New(2, 4)
	for y := 0; y < 4; y++ {
		b.Set(0, y, buffer.Cell{Char: 'X', Width: 1})
	}
	b.ScrollUp(1, 2, 10, style.DefaultStyle)
	assert.Equal(t, 'X', b.Get(0, 0).Char)
	assert.Equal(t, ' ', b.Get(0, 1).Char)
	assert.Equal(t, ' ', b.Get(0, 2).Char)
	assert.Equal(t, 'X', b.Get(0, 3).Char)
}

func TestInsertDeleteCellsRowLocal(t *testing.T) {
	b := buffer.New(5, 1)
	for x := 0; x < 5; x++ {
		b.Set(x, 0, buffer.Cell{Char: rune('a' + x), Width: 1})
	}
	b.InsertCells(1, 0, 2, style.DefaultStyle)
	assert.Equal(t, []rune{'a', ' ', ' ', 'b', 'c'}, rowChars(b, 0))

	b2 := buffer.New(5, 1)
	for x := 0; x < 5; x++ {
		b2.Set(x, 0, buffer.Cell{Char: rune('a' + x), Width: 1})
	}
	b2.DeleteCells(1, 0, 2, style.DefaultStyle)
	assert.Equal(t, []rune{'a', 'd', 'e', ' ', ' '}, rowChars(b2, 0))
}

func rowChars(b *buffer.Buffer, y int) []rune {
	out := make([]rune, b.Width())
	for x := 0; x < b.Width(); x++ {
		out[x] = b.Get(x, y).Char
	}
	return out
}

func TestResizePreservesTopLeftOverlap(t *testing.T) {
	b := buffer.New(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			b.Set(x, y, buffer.Cell{Char: rune('0' + y*3 + x), Width: 1})
		}
	}
	b.Resize(5, 2, style.DefaultStyle)
	assert.Equal(t, 5, b.Width())
	assert.Equal(t, 2, b.Height())
	assert.Equal(t, '0', b.Get(0, 0).Char)
	assert.Equal(t, '2', b.Get(2, 0).Char)
	assert.Equal(t, ' ', b.Get(3, 0).Char)
	assert.Equal(t, '3', b.Get(0, 1).Char)
}

func TestRuneWidthWideGlyph(t *testing.T) {
	assert.Equal(t, 2, buffer.RuneWidth('世'))
	assert.Equal(t, 1, buffer.RuneWidth('a'))
}
