package viz

import "strings"

const brailleBlank = 0x2800

// dotBits maps a sub-pixel (row, col) inside a cell to its braille bit.
var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of Width x Height braille cells, addressed in sub-pixels
// of size (2*Width) x (4*Height).
type Canvas struct {
	Width, Height int
	cells         []uint8
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Canvas{Width: w, Height: h, cells: make([]uint8, w*h)}
}

// Size returns the canvas size in sub-pixels.
func (c *Canvas) Size() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) cell(x, y int) (int, uint8, bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row*c.Width + col, dotBits[y%4][x%2], true
}

// Set lights a sub-pixel. Out of range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if i, bit, ok := c.cell(x, y); ok {
		c.cells[i] |= bit
	}
}

func (c *Canvas) Get(x, y int) bool {
	i, bit, ok := c.cell(x, y)
	return ok && c.cells[i]&bit != 0
}

// Dot lights a 2x2 block anchored at (x, y).
func (c *Canvas) Dot(x, y int) {
	c.Set(x, y)
	c.Set(x+1, y)
	c.Set(x, y+1)
	c.Set(x+1, y+1)
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = 0
	}
}

// DrawLine draws a Bresenham line between two sub-pixels.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), -absInt(y1-y0)
	sx, sy := 1, 1
	if x1 < x0 {
		sx = -1
	}
	if y1 < y0 {
		sy = -1
	}
	err := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Lines renders each cell row as a string of braille runes.
func (c *Canvas) Lines() []string {
	out := make([]string, c.Height)
	row := make([]rune, c.Width)
	for r := 0; r < c.Height; r++ {
		for col := 0; col < c.Width; col++ {
			row[col] = rune(brailleBlank + int(c.cells[r*c.Width+col]))
		}
		out[r] = string(row)
	}
	return out
}

func (c *Canvas) String() string {
	return strings.Join(c.Lines(), "\n")
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
