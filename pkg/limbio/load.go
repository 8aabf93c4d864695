package limbio

import(
	"fmt"
	"image"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/tiff"

	"github.com/abworrall/limbdark/pkg/limb"
)

// A Frame is one image of the sun, as loaded from disk.
type Frame struct {
	Filename string
	Image    image.Image // As decoded
	Gray     *image.Gray // What the pipeline works on
	Meta     Meta
}

// Meta is whatever EXIF had to say about the frame; PNGs don't have any.
type Meta struct {
	Camera string
	Taken  time.Time
}

func (m Meta)String() string {
	if m.Camera == "" && m.Taken.IsZero() {
		return "no exif"
	}
	return fmt.Sprintf("%s @ %s", m.Camera, m.Taken.Format(time.RFC3339))
}

var imageExts = map[string]bool{".png":true, ".jpg":true, ".jpeg":true, ".tif":true, ".tiff":true, ".bmp":true}

func IsImage(filename string) bool { return imageExts[strings.ToLower(filepath.Ext(filename))] }

// ExpandArgs turns a list of files and dirs into a list of image
// files; dirs are recursed into, and anything that isn't an image is
// skipped.
func ExpandArgs(args ...string) ([]string, error) {
	files := []string{}
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return nil, fmt.Errorf("load %s: %v", arg, err)

		case item.IsDir():
			// Is a dir, recurse into contents
			contents, err := ioutil.ReadDir(arg)
			if err != nil {
				return nil, fmt.Errorf("readdir %s: %v", arg, err)
			}
			for _, content := range contents {
				more, err := ExpandArgs(filepath.Join(arg, content.Name()))
				if err != nil {
					return nil, fmt.Errorf("load %s: %v", arg, err)
				}
				files = append(files, more...)
			}

		case IsImage(arg):
			files = append(files, arg)
		}
	}

	sort.Strings(files)
	return files, nil
}

// Load decodes an image file, and makes a grayscale raster of it.
// Colour images are flattened with the Rec.601 luma weights.
func Load(filename string) (Frame, error) {
	f := Frame{Filename: filename}

	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".tif", ".tiff":
		f.Image, err = loadTIFF(filename)
	default:
		f.Image, err = imgio.Open(filename)
	}
	if err != nil {
		return f, fmt.Errorf("load %s: %v", filename, err)
	}

	f.Gray = ToGray(f.Image)
	f.Meta = loadMeta(filename)

	return f, nil
}

func loadTIFF(filename string) (image.Image, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open+r '%s': %v", filename, err)
	}
	defer reader.Close()
	return tiff.Decode(reader)
}

// ToGray returns a single channel version of the image; images that
// already are single channel are handed back without colour mixing.
func ToGray(img image.Image) *image.Gray {
	if gray, err := limb.AsRaster(img); err == nil {
		return gray
	}

	rgba := effect.GrayscaleWithWeights(img, 0.299, 0.587, 0.114)
	b := rgba.Bounds()
	gray := image.NewGray(b)
	for y:=b.Min.Y; y<b.Max.Y; y++ {
		for x:=b.Min.X; x<b.Max.X; x++ {
			gray.Pix[gray.PixOffset(x, y)] = rgba.Pix[rgba.PixOffset(x, y)] // R==G==B
		}
	}
	return gray
}

// loadMeta pulls what it can out of the EXIF. Missing EXIF is normal,
// so nothing here is an error.
func loadMeta(filename string) Meta {
	m := Meta{}

	reader, err := os.Open(filename)
	if err != nil {
		return m
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return m
	}

	if tag, err := ex.Get(exif.Model); err == nil {
		if val, err := tag.StringVal(); err == nil {
			m.Camera = strings.TrimSpace(val)
		}
	}
	if t, err := ex.DateTime(); err == nil {
		m.Taken = t
	} else {
		log.Printf("exif DateTime '%s': %v\n", filename, err)
	}

	return m
}
