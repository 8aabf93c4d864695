package limb

import(
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
)

// DrawDiskOverlay draws the detected circle, a marker at its centre
// and a caption onto a copy of the image, for eyeballing the detector.
func DrawDiskOverlay(img image.Image, d Disk) image.Image {
	t := math.Max(1, math.Round(float64(d.R) / 200)) // line thickness that works across image sizes
	x, y, r := float64(d.X - img.Bounds().Min.X), float64(d.Y - img.Bounds().Min.Y), float64(d.R)

	dc := gg.NewContextForImage(img)
	dc.SetRGB(0, 1, 0)
	dc.SetLineWidth(t)
	dc.DrawCircle(x, y, r)
	dc.Stroke()

	dc.DrawRectangle(x-t, y-t, 2*t+1, 2*t+1)
	dc.Fill()

	dc.DrawString(fmt.Sprintf("x: %d, y: %d, r: %d", d.X, d.Y, d.R), 20, float64(img.Bounds().Dy()) - 20)

	return dc.Image()
}

// StackImage renders the stack one slice per row, with a line down
// column `limb` (normally R-1) to show where the limb is.
func StackImage(s *Stack, limb int) image.Image {
	dc := gg.NewContextForImage(s.ToGray())
	dc.SetRGB(0, 1, 0)
	dc.SetLineWidth(1)
	dc.DrawLine(float64(limb) + 0.5, 0, float64(limb) + 0.5, float64(s.NumSlices()))
	dc.Stroke()
	return dc.Image()
}
