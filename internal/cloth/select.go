package cloth

import (
	"fmt"
	"sort"
)

var selectors = map[string]func(c *Cloth, x, y, z int) bool{
	"top":    func(c *Cloth, x, y, z int) bool { return y == c.H-1 },
	"bottom": func(c *Cloth, x, y, z int) bool { return y == 0 },
	"left":   func(c *Cloth, x, y, z int) bool { return x == 0 },
	"right":  func(c *Cloth, x, y, z int) bool { return x == c.W-1 },
	"back":   func(c *Cloth, x, y, z int) bool { return z == 0 },
	"front":  func(c *Cloth, x, y, z int) bool { return z == c.D-1 },
	"top-corners": func(c *Cloth, x, y, z int) bool {
		return y == c.H-1 && (x == 0 || x == c.W-1) && (z == 0 || z == c.D-1)
	},
}

// Selectors lists the names accepted by Select.
func Selectors() []string {
	names := make([]string, 0, len(selectors))
	for name := range selectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select returns the slots of the lattice face or corner set named by sel.
func (c *Cloth) Select(sel string) ([]int, error) {
	match, ok := selectors[sel]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSelector, sel)
	}
	var out []int
	for i := range c.Particles {
		x, y, z := c.Coord(i)
		if match(c, x, y, z) {
			out = append(out, i)
		}
	}
	return out, nil
}

// PinSelection pins every slot named by sel.
func (c *Cloth) PinSelection(sel string) error {
	idx, err := c.Select(sel)
	if err != nil {
		return err
	}
	return c.Pin(idx...)
}
