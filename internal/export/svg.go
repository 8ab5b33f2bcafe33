package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/clothsim/internal/viz"
)

// CanvasSVG writes a braille canvas as SVG, one circle per lit sub-pixel.
func CanvasSVG(w io.Writer, canvas *viz.Canvas, scale float64) error {
	if canvas == nil {
		return fmt.Errorf("nil canvas")
	}
	pw, ph := canvas.Size()
	width, height := float64(pw)*scale, float64(ph)*scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ffcc">
`, width, height, width, height)

	r := scale * 0.4
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if canvas.Get(x, y) {
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
					(float64(x)+0.5)*scale, (float64(y)+0.5)*scale, r)
			}
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// SeriesSVG writes a metric series against time as an SVG polyline.
func SeriesSVG(w io.Writer, times, values []float64, width, height int, stroke string) error {
	if len(values) < 2 || len(times) != len(values) {
		return fmt.Errorf("need at least two samples with matching times, got %d/%d", len(times), len(values))
	}

	minX, maxX := times[0], times[len(times)-1]
	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY, maxY = min(minY, v), max(maxY, v)
	}
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`, width, height, width, height, stroke)

	for i := range values {
		x := (times[i] - minX) / rangeX * float64(width)
		y := float64(height) - (values[i]-minY)/rangeY*float64(height)
		cmd := " L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&sb, "%s%.1f,%.1f", cmd, x, y)
	}

	sb.WriteString("\"/>\n</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
