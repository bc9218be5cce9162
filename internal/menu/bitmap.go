package menu

import (
	"strings"
)

const (
	// DefaultWidth is the width of the default display, in cells.
	DefaultWidth = 21

	// DefaultHeight is the height of the default display, in rows.
	DefaultHeight = 8

	cellOff   = ' '
	gaugeFull = '#'
	gaugeNone = '-'
)

// Bitmap is a fixed-size monochrome display buffer. Every cell holds one
// glyph and an inversion flag; an inverted cell is drawn lit on dark.
type Bitmap struct {
	width    int
	height   int
	cells    []rune
	inverted []bool
}

// NewBitmap returns a pointer to a new, blank [Bitmap]. Dimensions smaller
// than one are raised to one.
func NewBitmap(width, height int) *Bitmap {
	width = max(width, 1)
	height = max(height, 1)

	b := &Bitmap{
		width:    width,
		height:   height,
		cells:    make([]rune, width*height),
		inverted: make([]bool, width*height),
	}

	for i := range b.cells {
		b.cells[i] = cellOff
	}

	return b
}

// Width returns the width of the [Bitmap] in cells.
func (b *Bitmap) Width() int {
	return b.width
}

// Height returns the height of the [Bitmap] in rows.
func (b *Bitmap) Height() int {
	return b.height
}

// DrawText writes text into the given row, starting at column x. Text running
// past the right edge is clipped, and rows outside the bitmap are ignored.
func (b *Bitmap) DrawText(x, y int, text string) {
	if y < 0 || y >= b.height {
		return
	}

	col := x
	for _, r := range text {
		if col >= b.width {
			return
		}
		if col >= 0 {
			b.cells[y*b.width+col] = r
		}
		col++
	}
}

// InvertRow toggles the inversion of an entire row, used for highlighting the
// entry under a cursor.
func (b *Bitmap) InvertRow(y int) {
	if y < 0 || y >= b.height {
		return
	}

	for col := range b.width {
		b.inverted[y*b.width+col] = !b.inverted[y*b.width+col]
	}
}

// IsInverted reports whether the cell at the given position is inverted.
func (b *Bitmap) IsInverted(x, y int) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false
	}

	return b.inverted[y*b.width+x]
}

// Cell returns the glyph at the given position, or a blank outside of the
// bitmap.
func (b *Bitmap) Cell(x, y int) rune {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return cellOff
	}

	return b.cells[y*b.width+x]
}

// DrawGauge draws a horizontal bar over the full width of a row, filled
// according to the fraction (clamped to [0, 1]).
func (b *Bitmap) DrawGauge(y int, fraction float64) {
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction*float64(b.width) + 0.5) //nolint:mnd

	b.DrawText(0, y, strings.Repeat(string(gaugeFull), filled)+strings.Repeat(string(gaugeNone), b.width-filled))
}

// Lines returns the glyphs of every row, with trailing blanks removed.
func (b *Bitmap) Lines() []string {
	lines := make([]string, b.height)

	for y := range b.height {
		lines[y] = strings.TrimRight(string(b.cells[y*b.width:(y+1)*b.width]), string(cellOff))
	}

	return lines
}

// String returns the glyphs of every row joined by newlines.
func (b *Bitmap) String() string {
	return strings.Join(b.Lines(), "\n")
}
