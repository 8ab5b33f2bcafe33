package viz

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasSetGet(t *testing.T) {
	c := NewCanvas(2, 1)
	w, h := c.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, h)

	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	assert.True(t, c.Get(0, 0))
	assert.True(t, c.Get(3, 3))
	assert.False(t, c.Get(1, 0))
	assert.Equal(t, "⠁⢀", c.String())

	c.Clear()
	assert.Equal(t, "⠀⠀", c.String())
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19)
	for i := 0; i < 20; i++ {
		assert.True(t, c.Get(i, i), "diagonal pixel %d", i)
	}

	c.Clear()
	c.DrawLine(15, 2, 3, 2)
	for x := 3; x <= 15; x++ {
		assert.True(t, c.Get(x, 2))
	}
	assert.False(t, c.Get(2, 2))
}

func TestCanvasLines(t *testing.T) {
	c := NewCanvas(7, 3)
	lines := c.Lines()
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Equal(t, 7, utf8.RuneCountInString(l))
	}
	assert.Equal(t, 2, strings.Count(c.String(), "\n"))
}

func TestCanvasDot(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Dot(2, 5)
	for _, p := range [][2]int{{2, 5}, {3, 5}, {2, 6}, {3, 6}} {
		assert.True(t, c.Get(p[0], p[1]))
	}
}
