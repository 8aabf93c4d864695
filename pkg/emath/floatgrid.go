package emath

import(
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg" // Move to https://pkg.go.dev/golang.org/x/image/font#Drawer sometime
	"github.com/lucasb-eyer/go-colorful"
)

// A FloatGrid is a grid of floats, with some operations. Rows are
// contiguous, so a row can be handed out as a slice.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

// NewFloatGridFromGray copies the pixels of an 8-bit gray image into
// a grid; grid (0,0) is img.Bounds().Min.
func NewFloatGridFromGray(img *image.Gray) FloatGrid {
	b := img.Bounds()
	fg := NewFloatGrid(b.Dx(), b.Dy())
	for y:=0; y<b.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride + b.Dx()]
		for x, v := range row {
			fg.Set(x, y, float64(v))
		}
	}
	return fg
}

func (g1 *FloatGrid)NewFromThis() FloatGrid  { return NewFloatGrid(g1.Dx(), g1.Dy()) }
func (fg *FloatGrid)Set(x, y int, v float64) { fg.values[fg.stride*y + x] = v }
func (fg *FloatGrid)Get(x, y int) float64    { return fg.values[fg.stride*y + x] }
func (fg *FloatGrid)Dx() int                 { return fg.stride }
func (fg *FloatGrid)Row(y int) []float64     { return fg.values[y*fg.stride : (y+1)*fg.stride] } // shares storage

func (fg *FloatGrid)Dy() int {
	if fg.stride == 0 {
		return 0
	}
	return len(fg.values) / fg.stride
}

// Col returns a copy of column `x`, top to bottom.
func (fg *FloatGrid)Col(x int) []float64 {
	col := make([]float64, fg.Dy())
	for y := range col {
		col[y] = fg.Get(x, y)
	}
	return col
}

// SelectRows builds a new grid out of the listed rows, in the order given.
func (g1 *FloatGrid)SelectRows(rows []int) FloatGrid {
	g2 := NewFloatGrid(g1.Dx(), len(rows))
	for i, y := range rows {
		copy(g2.Row(i), g1.Row(y))
	}
	return g2
}

// GaussianBlur does a [1 2 1]/4 pass along each axis, repeating the
// edge pixels at the border. Two passes give the 5x5 binomial kernel.
func (g1 FloatGrid)GaussianBlur() FloatGrid {
	width := g1.Dx()
	height := g1.Dy()
	g2 := g1.NewFromThis()
	if width < 2 || height < 2 {
		copy(g2.values, g1.values)
		return g2
	}

	T  := g1.NewFromThis()

	//--- X blur, build up in T
	for y:=0; y<height; y++ {
		for x:=1; x<width-1; x++ {
			t := 2.0*g1.Get(x,y)
			t += g1.Get(x-1,y)
			t += g1.Get(x+1,y)
			T.Set(x, y, t/4.0)
		}
		T.Set(0, y,       (3.0*g1.Get(0,      y) + g1.Get(1,      y)) / 4.0)
		T.Set(width-1, y, (3.0*g1.Get(width-1,y) + g1.Get(width-2,y)) / 4.0)
	}

	//--- Y blur, read from T and generate output
	for x:=0; x<width; x++ {
		for y:=1; y<height-1; y++ {
			t := 2.0*T.Get(x,y)
			t += T.Get(x,y-1)
			t += T.Get(x,y+1)
			g2.Set(x, y, t/4.0)
		}
		g2.Set(x, 0,        (3.0*T.Get(x,       0) + T.Get(x,       1)) / 4.0)
		g2.Set(x, height-1, (3.0*T.Get(x,height-1) + T.Get(x,height-2)) / 4.0)
	}

	return g2
}

func (fg *FloatGrid)MinMax() (float64, float64) {
	min := math.MaxFloat64
	max := -1.0  * min
	for i:=0 ; i<len(fg.values) ; i++ {
		if fg.values[i] > max { max = fg.values[i] }
		if fg.values[i] < min { min = fg.values[i] }
	}
	return min, max
}

func (fg *FloatGrid)Stats() string {
	min, max := fg.MinMax()
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", fg.Dx(), fg.Dy(), min, max)
}

// ToGray rounds each value into an 8-bit gray pixel, clipping to [0,255].
func (fg *FloatGrid)ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, fg.Dx(), fg.Dy()))
	for y:=0; y<fg.Dy(); y++ {
		for x:=0; x<fg.Dx(); x++ {
			img.Pix[y*img.Stride + x] = uint8(Clip(math.Round(fg.Get(x,y)), 0, 255))
		}
	}
	return img
}

// ToImg renders a simple grayscale, based on the range of values in
// the grid, and gamma scaling the gray to look normal for human vision
func (fg *FloatGrid)ToImg(title string) image.Image {
	min, max := fg.MinMax()
	span := max - min
	if span == 0 { span = 1 }

	img := image.NewRGBA64(image.Rectangle{Max:image.Point{fg.Dx(), fg.Dy()}})
	for x:=0; x<fg.Dx(); x++ {
		for y:=0; y<fg.Dy(); y++ {
			lum := fg.Get(x,y)
			gray := GammaExpand_F64 ((lum - min) / span)
			col := color.RGBA64{uint16(gray * 65535.0), uint16(gray * 65535.0), uint16(gray * 65535.0), 0xFFFF}
			img.Set(x, y, col)
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,1,1)
	dc.DrawString(title, 10, 20)
	return dc.Image()
}

// Heatmap colours each cell by blending from cold to hot in HCL
// space, so structure in nearly flat rows stands out.
func (fg *FloatGrid)Heatmap() image.Image {
	cold, _ := colorful.Hex("#0b0b3b")
	hot, _ := colorful.Hex("#ffd700")

	min, max := fg.MinMax()
	span := max - min
	if span == 0 { span = 1 }

	img := image.NewRGBA(image.Rect(0, 0, fg.Dx(), fg.Dy()))
	for y:=0; y<fg.Dy(); y++ {
		for x:=0; x<fg.Dx(); x++ {
			t := (fg.Get(x,y) - min) / span
			img.Set(x, y, cold.BlendHcl(hot, t).Clamped())
		}
	}
	return img
}
