package rxinggo

import (
	"fmt"
	"strings"
)

// BitMatrix is a rectangular grid of modules. x is the column position, y is
// the row position, and the origin is at the top-left. A set bit is a dark
// module. A BitMatrix never changes after construction.
type BitMatrix struct {
	width   int
	height  int
	rowSize int
	data    []uint32

	// preferred rendered size in pixels, from the encode request
	renderWidth  int
	renderHeight int
}

func newBitMatrix(width, height int) *BitMatrix {
	if width < 1 || height < 1 {
		panic("bitmatrix: dimensions must be greater than 0")
	}
	rowSize := (width + 31) / 32
	return &BitMatrix{
		width:   width,
		height:  height,
		rowSize: rowSize,
		data:    make([]uint32, rowSize*height),
	}
}

// NewBitMatrix creates a width x height matrix whose module (x, y) is dark
// when dark(x, y) returns true.
func NewBitMatrix(width, height int, dark func(x, y int) bool) *BitMatrix {
	bm := newBitMatrix(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if dark(x, y) {
				bm.set(x, y)
			}
		}
	}
	return bm
}

// ParseBitMatrix creates a BitMatrix from a string representation in which
// each row is a line made of setStr and unsetStr tokens.
func ParseBitMatrix(repr, setStr, unsetStr string) (*BitMatrix, error) {
	var rows [][]bool
	for _, line := range strings.Split(strings.ReplaceAll(repr, "\r", "\n"), "\n") {
		if line == "" {
			continue
		}
		var row []bool
		for pos := 0; pos < len(line); {
			switch {
			case strings.HasPrefix(line[pos:], setStr):
				row = append(row, true)
				pos += len(setStr)
			case strings.HasPrefix(line[pos:], unsetStr):
				row = append(row, false)
				pos += len(unsetStr)
			default:
				return nil, fmt.Errorf("bitmatrix: illegal character at row %d offset %d", len(rows), pos)
			}
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("bitmatrix: row %d has %d modules, want %d", len(rows), len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("bitmatrix: empty representation")
	}
	return NewBitMatrix(len(rows[0]), len(rows), func(x, y int) bool { return rows[y][x] }), nil
}

// Get returns true if the module at (x, y) is dark.
func (bm *BitMatrix) Get(x, y int) bool {
	offset := y*bm.rowSize + x/32
	return (bm.data[offset]>>uint(x&0x1f))&1 != 0
}

func (bm *BitMatrix) set(x, y int) {
	offset := y*bm.rowSize + x/32
	bm.data[offset] |= 1 << uint(x&0x1f)
}

// Width returns the width in modules.
func (bm *BitMatrix) Width() int { return bm.width }

// Height returns the height in modules.
func (bm *BitMatrix) Height() int { return bm.height }

// RenderSize returns the pixel size requested when the matrix was encoded.
// Zero means no preference.
func (bm *BitMatrix) RenderSize() (width, height int) {
	return bm.renderWidth, bm.renderHeight
}

// withMargin returns a copy surrounded by margin light modules on every side.
func (bm *BitMatrix) withMargin(margin int) *BitMatrix {
	if margin <= 0 {
		return bm
	}
	out := newBitMatrix(bm.width+2*margin, bm.height+2*margin)
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			if bm.Get(x, y) {
				out.set(x+margin, y+margin)
			}
		}
	}
	out.renderWidth, out.renderHeight = bm.renderWidth, bm.renderHeight
	return out
}

func (bm *BitMatrix) withRenderSize(width, height int) *BitMatrix {
	out := *bm
	out.renderWidth, out.renderHeight = width, height
	return &out
}

// Bools returns the modules as rows of booleans.
func (bm *BitMatrix) Bools() [][]bool {
	rows := make([][]bool, bm.height)
	for y := range rows {
		rows[y] = make([]bool, bm.width)
		for x := range rows[y] {
			rows[y][x] = bm.Get(x, y)
		}
	}
	return rows
}

// String returns a terminal rendering with two glyphs per module.
func (bm *BitMatrix) String() string {
	return bm.StringWithChars("██", "  ")
}

// StringWithChars returns a string representation using the given set/unset strings.
func (bm *BitMatrix) StringWithChars(setString, unsetString string) string {
	var sb strings.Builder
	sb.Grow(bm.height * (bm.width*len(setString) + 1))
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			if bm.Get(x, y) {
				sb.WriteString(setString)
			} else {
				sb.WriteString(unsetString)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Equal reports whether two matrices have the same dimensions and modules.
func (bm *BitMatrix) Equal(other *BitMatrix) bool {
	if other == nil || bm.width != other.width || bm.height != other.height {
		return false
	}
	for i := range bm.data {
		if bm.data[i] != other.data[i] {
			return false
		}
	}
	return true
}
