package limb

import(
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"      // replace by "image/draw" at some point
	"golang.org/x/image/math/f64"  // replace by "image/math/f64" at some point

	"github.com/abworrall/limbdark/pkg/emath"
)

// A SampleFunc pulls `numSlices` radial slices out of a disk.
type SampleFunc func(img image.Image, d Disk, numSlices int) (*Stack, error)

// ExtractStack reads slices along rays from the centre, at angles
// i*2pi/n, clockwise from the positive x axis (y grows downwards). Ray
// positions are truncated to whole pixels, no interpolation is done;
// samples that fall off the image read as 0.
func ExtractStack(img image.Image, d Disk, numSlices int) (*Stack, error) {
	return extractStack(img, d, numSlices, DefaultWorkers)
}

func extractStack(img image.Image, d Disk, numSlices, nWorkers int) (*Stack, error) {
	gray, err := checkSampleArgs(img, d, numSlices)
	if err != nil {
		return nil, err
	}

	s := NewStack(numSlices, d.R)
	cx, cy := float64(d.X), float64(d.Y)

	forEachRow(numSlices, nWorkers, func(i int) {
		theta := float64(i) * 2.0 * math.Pi / float64(numSlices)
		cos, sin := math.Cos(theta), math.Sin(theta)
		row := s.Row(i)
		for r := range row {
			x := int(float64(r)*cos + cx)
			y := int(float64(r)*sin + cy)
			row[r] = float64(grayAt(gray, x, y))
		}
	})

	return s, nil
}

// ExtractStackRotated gets the same slices as ExtractStack, but by
// rotating the whole image about the disk centre n/4 times, and reading
// the four axis-aligned rays (right, down, left, up) out of each
// rotation. Ray k of rotation i becomes slice i + k*n/4. `numSlices`
// must be a multiple of 4.
func ExtractStackRotated(img image.Image, d Disk, numSlices int) (*Stack, error) {
	return extractStackRotated(img, d, numSlices, DefaultWorkers)
}

var rays = []image.Point{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

func extractStackRotated(img image.Image, d Disk, numSlices, nWorkers int) (*Stack, error) {
	gray, err := checkSampleArgs(img, d, numSlices)
	if err != nil {
		return nil, err
	}
	if numSlices % 4 != 0 {
		return nil, fmt.Errorf("rotated sampler needs a multiple of 4 slices, got %d: %w", numSlices, ErrInvalidArgument)
	}

	s := NewStack(numSlices, d.R)
	quarter := numSlices / 4

	forEachRow(quarter, nWorkers, func(i int) {
		rot := rotateAboutDisk(gray, d, float64(i) * 360.0 / float64(numSlices))
		for k, ray := range rays {
			row := s.Row(i + k*quarter)
			for r := range row {
				row[r] = float64(grayAt(rot, d.X + r*ray.X, d.Y + r*ray.Y))
			}
		}
	})

	return s, nil
}

// rotateAboutDisk turns the image so that whatever was at `deg`
// (clockwise) from the centre ends up on the positive x axis. The
// rotation is about the middle of the centre pixel, so quarter turns
// just move pixels around.
func rotateAboutDisk(gray *image.Gray, d Disk, deg float64) *image.Gray {
	m := emath.RotateAbout(-1*deg, float64(d.X) + 0.5, float64(d.Y) + 0.5)
	dst := image.NewGray(gray.Bounds())
	draw.NearestNeighbor.Transform(dst, f64.Aff3(m), gray, gray.Bounds(), draw.Src, nil)
	return dst
}

func checkSampleArgs(img image.Image, d Disk, numSlices int) (*image.Gray, error) {
	gray, err := AsRaster(img)
	if err != nil {
		return nil, fmt.Errorf("sample: %w", err)
	}
	if numSlices <= 0 {
		return nil, fmt.Errorf("sample: need a positive number of slices, got %d: %w", numSlices, ErrInvalidArgument)
	}
	if d.R <= 0 {
		return nil, fmt.Errorf("sample %s: radius must be positive: %w", d, ErrInvalidArgument)
	}
	return gray, nil
}
