//go:build gocv

package limb

import(
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"
)

// DetectDiskCV is DetectDisk done by OpenCV, for when it is installed
// (build with -tags gocv). Results can differ from DetectDisk by a
// pixel, as OpenCV rounds the blur in fixed point.
func DetectDiskCV(img image.Image, threshold uint8) (Disk, error) {
	gray, err := AsRaster(img)
	if err != nil {
		return Disk{}, fmt.Errorf("detect disk: %w", err)
	}

	b := gray.Bounds()
	pix := make([]byte, 0, b.Dx()*b.Dy())
	for y:=b.Min.Y; y<b.Max.Y; y++ {
		off := gray.PixOffset(b.Min.X, y)
		pix = append(pix, gray.Pix[off:off+b.Dx()]...)
	}

	src, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC1, pix)
	if err != nil {
		return Disk{}, fmt.Errorf("detect disk, to Mat: %v", err)
	}
	defer src.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(src, &blurred, image.Point{5, 5}, 0, 0, gocv.BorderDefault)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.InRangeWithScalar(blurred,
		gocv.NewScalar(float64(threshold), 0, 0, 0),
		gocv.NewScalar(255, 0, 0, 0),
		&mask)

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var bx, by, br float32 = 0, 0, -1
	for i:=0; i<contours.Size(); i++ {
		if x, y, r := gocv.MinEnclosingCircle(contours.At(i)); r > br {
			bx, by, br = x, y, r
		}
	}

	if br < 0 {
		return Disk{}, fmt.Errorf("detect disk, threshold %d: nothing bright enough: %w", threshold, ErrNotFound)
	}

	d := Disk{
		X: int(math.Round(float64(bx))) + b.Min.X,
		Y: int(math.Round(float64(by))) + b.Min.Y,
		R: int(math.Round(float64(br))),
	}
	if d.R == 0 {
		return Disk{}, fmt.Errorf("detect disk, threshold %d: largest blob is a single pixel: %w", threshold, ErrNotFound)
	}

	return d, nil
}
