package limb

import(
	"fmt"
	"image"
	"math"

	"github.com/abworrall/limbdark/pkg/emath"
)

// A Disk is where we think the sun is in the image: a centre and a
// radius, in whole pixels.
type Disk struct {
	X, Y int
	R    int
}

func (d Disk)Center() image.Point { return image.Point{d.X, d.Y} }
func (d Disk)String() string      { return fmt.Sprintf("disk[x:%d, y:%d, r:%d]", d.X, d.Y, d.R) }

// Bounds is the square around the disk; Max is exclusive, so the
// pixels at exactly X+R or Y+R are outside it.
func (d Disk)Bounds() image.Rectangle {
	return image.Rect(d.X - d.R, d.Y - d.R, d.X + d.R, d.Y + d.R)
}

// Clip is the part of the bounding square that lies within `r`.
func (d Disk)Clip(r image.Rectangle) image.Rectangle { return d.Bounds().Intersect(r) }

// RelDist is the distance of the pixel from the centre, as a fraction of the radius.
func (d Disk)RelDist(x, y int) float64 {
	return math.Hypot(float64(x - d.X), float64(y - d.Y)) / float64(d.R)
}

// DetectDisk finds the biggest bright blob in the image, and fits the
// smallest circle around it. The image is blurred with a 5x5 gaussian
// first, then pixels at or above `threshold` are considered to be part
// of the disk.
func DetectDisk(img image.Image, threshold uint8) (Disk, error) {
	gray, err := AsRaster(img)
	if err != nil {
		return Disk{}, fmt.Errorf("detect disk: %w", err)
	}

	fg := emath.NewFloatGridFromGray(gray)
	blurred := fg.GaussianBlur().GaussianBlur()

	m := newMask(blurred.Dx(), blurred.Dy())
	for y:=0; y<blurred.Dy(); y++ {
		for x:=0; x<blurred.Dx(); x++ {
			m.on[y*m.w + x] = uint8(math.Round(blurred.Get(x,y))) >= threshold
		}
	}

	best := circle{R: -1}
	for _, contour := range m.outerContours() {
		if c := minEnclosingCircle(contour); c.R > best.R {
			best = c
		}
	}

	if best.R < 0 {
		return Disk{}, fmt.Errorf("detect disk, threshold %d: nothing bright enough: %w", threshold, ErrNotFound)
	}

	min := gray.Bounds().Min
	d := Disk{
		X: int(math.Round(best.X)) + min.X,
		Y: int(math.Round(best.Y)) + min.Y,
		R: int(math.Round(best.R)),
	}
	if d.R == 0 {
		return Disk{}, fmt.Errorf("detect disk, threshold %d: largest blob is a single pixel: %w", threshold, ErrNotFound)
	}

	return d, nil
}
