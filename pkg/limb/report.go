package limb

import(
	"fmt"
	"image"

	"github.com/codahale/hdrhistogram"
)

// Flatness summarises the brightness of the pixels inside a disk. A
// well corrected disk has a small spread, centred on the bias.
type Flatness struct {
	N             int64
	Mean, StdDev  float64
	Min, Max      int64
	P5, P50, P95  int64
}

func (f Flatness)String() string {
	return fmt.Sprintf("n=%d, mean=%.1f, std=%.2f, min=%d, p5=%d, p50=%d, p95=%d, max=%d",
		f.N, f.Mean, f.StdDev, f.Min, f.P5, f.P50, f.P95, f.Max)
}

// MeasureFlatness histograms every pixel with a relative distance
// below 1.
func MeasureFlatness(img image.Image, d Disk) (Flatness, error) {
	gray, err := AsRaster(img)
	if err != nil {
		return Flatness{}, fmt.Errorf("flatness: %w", err)
	}
	if d.R <= 0 {
		return Flatness{}, fmt.Errorf("flatness %s: %w", d, ErrInvalidArgument)
	}

	// The histogram wants values >= 1, so everything is recorded one up
	h := hdrhistogram.New(1, 256, 3)
	box := d.Clip(gray.Rect)
	for y:=box.Min.Y; y<box.Max.Y; y++ {
		for x:=box.Min.X; x<box.Max.X; x++ {
			if d.RelDist(x, y) >= 1 {
				continue
			}
			if err := h.RecordValue(int64(gray.Pix[gray.PixOffset(x, y)]) + 1); err != nil {
				return Flatness{}, fmt.Errorf("flatness: %v", err)
			}
		}
	}

	if h.TotalCount() == 0 {
		return Flatness{}, fmt.Errorf("flatness %s: no pixels inside the disk: %w", d, ErrInvalidArgument)
	}

	return Flatness{
		N:      h.TotalCount(),
		Mean:   h.Mean() - 1,
		StdDev: h.StdDev(),
		Min:    h.Min() - 1,
		Max:    h.Max() - 1,
		P5:     h.ValueAtQuantile(5) - 1,
		P50:    h.ValueAtQuantile(50) - 1,
		P95:    h.ValueAtQuantile(95) - 1,
	}, nil
}
