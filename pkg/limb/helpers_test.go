package limb

import(
	"image"
	"math"
)

// newDiskImage draws a disk on a black background; pixels within `r`
// of the centre get f(d/r).
func newDiskImage(w, h, cx, cy, r int, f func(rel float64) uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			d := math.Hypot(float64(x-cx), float64(y-cy))
			if d <= float64(r) {
				img.Pix[img.PixOffset(x, y)] = f(d / float64(r))
			}
		}
	}
	return img
}

func uniform(v uint8) func(float64) uint8 { return func(float64) uint8 { return v } }

// darkened is the synthetic limb darkened disk, 200*(1 - 0.5*rel^2).
func darkened(rel float64) uint8 { return uint8(math.Round(200 * (1 - 0.5*rel*rel))) }

// newStackFromRows builds a stack with the given rows, which must all be the same length.
func newStackFromRows(rows ...[]float64) *Stack {
	s := NewStack(len(rows), len(rows[0]))
	for i, row := range rows {
		copy(s.Row(i), row)
	}
	return s
}

func constRow(n int, v float64) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = v
	}
	return row
}

// flatModel is a polynomial that is `level` everywhere, in absolute terms.
func flatModel(level float64) *Polynomial {
	p := NewPolynomial(1)
	p.SetCenterIntensity(level)
	return p
}
