package limbio

import(
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/nfnt/resize"

	"github.com/abworrall/limbdark/pkg/limb"
)

// Save writes the image, picking the encoder from the file extension.
func Save(filename string, img image.Image) error {
	var enc imgio.Encoder
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":          enc = imgio.PNGEncoder()
	case ".jpg", ".jpeg": enc = imgio.JPEGEncoder(95)
	case ".bmp":          enc = imgio.BMPEncoder()
	default:
		return fmt.Errorf("save %s: can only write png, jpeg or bmp: %w", filename, limb.ErrInvalidArgument)
	}

	if err := imgio.Save(filename, img, enc); err != nil {
		return fmt.Errorf("save %s: %v", filename, err)
	}
	log.Printf("Wrote %s\n", filename)
	return nil
}

// Thumbnail shrinks the image to fit in a max x max square, keeping
// the aspect ratio. Small images are left as they are.
func Thumbnail(img image.Image, max uint) image.Image {
	return resize.Thumbnail(max, max, img, resize.Lanczos3)
}

// Outputs works out where everything derived from one input image gets written.
type Outputs struct {
	Dir  string
	Root string // input filename, minus dir and extension
	Ext  string // input extension, reused for the corrected image
}

// NewOutputs puts the files for `input` under outDir, in a dir of their
// own if `separate` is set.
func NewOutputs(outDir, input string, separate bool) Outputs {
	ext := filepath.Ext(input)
	root := strings.TrimSuffix(filepath.Base(input), ext)

	o := Outputs{Dir: outDir, Root: root, Ext: ext}
	if separate {
		o.Dir = filepath.Join(outDir, root)
	}
	switch strings.ToLower(ext) {
	case ".tif", ".tiff": o.Ext = ".png" // nothing to write tiffs with
	}
	return o
}

func (o Outputs)Mkdir() error {
	if err := os.MkdirAll(o.Dir, 0755); err != nil {
		return fmt.Errorf("mkdir %s: %v", o.Dir, err)
	}
	return nil
}

func (o Outputs)Corrected(bias uint8) string {
	return filepath.Join(o.Dir, fmt.Sprintf("%s_corrected_%d%s", o.Root, bias, o.Ext))
}

func (o Outputs)Plot() string { return filepath.Join(o.Dir, o.Root + "_plot.png") }

// Debug is the name for a debug image or file; name should carry its own extension.
func (o Outputs)Debug(name string) string { return filepath.Join(o.Dir, o.Root + "_" + name) }
