//go:build !gocv

package limb

import(
	"fmt"
	"image"
)

// DetectDiskCV needs OpenCV; build with -tags gocv to get it.
func DetectDiskCV(img image.Image, threshold uint8) (Disk, error) {
	return Disk{}, fmt.Errorf("opencv detector: built without the gocv tag: %w", ErrInvalidArgument)
}
