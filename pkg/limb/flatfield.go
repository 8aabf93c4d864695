package limb

import(
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
)

// FlatFieldImage renders a flat field over the square around a disk,
// as an HDR image with values in units of full scale (255). Outside
// the disk it is black. Implements the image.Image and hdr.Image
// interfaces, so it can be written out as Radiance RGBE.
type FlatFieldImage struct {
	Disk   Disk
	values []float64
}

var _ hdr.Image = (*FlatFieldImage)(nil)

func NewFlatFieldImage(d Disk, flat FlatField) (*FlatFieldImage, error) {
	if d.R <= 0 {
		return nil, fmt.Errorf("flat field image %s: %w", d, ErrInvalidArgument)
	}

	w := 2 * d.R
	fi := &FlatFieldImage{Disk: d, values: make([]float64, w*w)}
	for y:=0; y<w; y++ {
		for x:=0; x<w; x++ {
			rel := d.RelDist(x + d.X - d.R, y + d.Y - d.R)
			if rel >= 1 {
				continue
			}
			f, err := flat.FlatAt(rel)
			if err != nil {
				return nil, fmt.Errorf("flat field image: %w", err)
			}
			fi.values[y*w + x] = f / 255.0
		}
	}
	return fi, nil
}

// Implement image.Image
func (fi *FlatFieldImage)ColorModel() color.Model  { return hdrcolor.RGBModel }
func (fi *FlatFieldImage)Bounds() image.Rectangle  { return image.Rect(0, 0, 2*fi.Disk.R, 2*fi.Disk.R) }
func (fi *FlatFieldImage)At(x, y int) color.Color  { return fi.HDRAt(x, y) }

// Implement hdr.Image
func (fi *FlatFieldImage)Size() int                { return len(fi.values) }
func (fi *FlatFieldImage)HDRAt(x, y int) hdrcolor.Color {
	v := fi.values[y * 2*fi.Disk.R + x]
	return hdrcolor.RGB{R: v, G: v, B: v}
}

// WriteToHDR outputs the flat field as a .hdr file
func (fi *FlatFieldImage)WriteToHDR(filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("FlatFieldImage.WriteToHDR, open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		err := rgbe.Encode(writer, fi)
		if err != nil {
			log.Printf("FlatFieldImage.WriteToHDR, encoding RGBE file: %v\n", err)
		}
		return err
	}
}
