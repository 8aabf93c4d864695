package limb

import(
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"  // replace by "image/draw" at some point
)

// AsRaster hands back `img` as an 8-bit single channel raster. Gray
// and Gray16 images are accepted (Gray16 is scaled down to 8 bits);
// anything carrying colour is refused with ErrInvalidInput. The
// pipeline never writes into the returned raster.
func AsRaster(img image.Image) (*image.Gray, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image: %w", ErrInvalidInput)
	}

	if gray, ok := img.(*image.Gray); ok {
		return gray, nil
	}

	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		b := img.Bounds()
		gray := image.NewGray(b)
		draw.Draw(gray, b, img, b.Min, draw.Src)
		return gray, nil
	}

	return nil, fmt.Errorf("expected a single channel (grayscale) image, got %T: %w", img, ErrInvalidInput)
}

// grayAt reads a pixel, with anything off the raster reading as black.
func grayAt(img *image.Gray, x, y int) uint8 {
	if !(image.Point{x, y}).In(img.Rect) {
		return 0
	}
	return img.Pix[img.PixOffset(x, y)]
}
