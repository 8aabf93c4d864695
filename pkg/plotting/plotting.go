package plotting

import(
	"fmt"
	"image"
	"image/color"
	"log"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/abworrall/limbdark/pkg/limb"
)

// How many points a model curve is drawn with
const ModelSamples = 700

var(
	black = color.RGBA{A: 255}
	red   = color.RGBA{R: 220, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	green = color.RGBA{G: 160, A: 255}

	palette = []color.Color{red, blue, green, black}
)

// A Plotter draws profiles and models on one set of axes: relative
// intensity against relative distance from the centre of the disk.
type Plotter struct {
	p      *plot.Plot
	nLines int
}

func New(title string) *Plotter {
	p := plot.New()
	setFonts(p)

	p.Title.Text = title
	p.X.Label.Text = "Relative Distance From Centre"
	p.Y.Label.Text = "Relative Intensity"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min = 0
	p.Legend.Top = false
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	return &Plotter{p: p}
}

func setFonts(p *plot.Plot) {
	p.Title.TextStyle.Font.Typeface = "Liberation"
	p.Title.TextStyle.Font.Variant = "Sans"
	p.Title.TextStyle.Font.Size = vg.Points(12)

	for _, axis := range []*plot.Axis{&p.X, &p.Y} {
		axis.Label.TextStyle.Font.Typeface = "Liberation"
		axis.Label.TextStyle.Font.Variant = "Sans"
		axis.Label.TextStyle.Font.Size = vg.Points(12)
		axis.Tick.Label.Font.Typeface = "Liberation"
		axis.Tick.Label.Font.Variant = "Sans"
		axis.Tick.Label.Font.Size = vg.Points(10)
	}
}

// PlotProfile adds the profile as points, normalised by its centre value.
func (pl *Plotter)PlotProfile(name string, prof limb.Profile) error {
	if len(prof) == 0 {
		return fmt.Errorf("plot %s: empty profile: %w", name, limb.ErrInvalidArgument)
	}

	x, y := prof.Radii(), prof.Normalized()
	pts := make(plotter.XYs, len(prof))
	for i := range pts {
		pts[i].X, pts[i].Y = x[i], y[i]
	}

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("plot %s: %v", name, err)
	}
	s.GlyphStyle.Color = pl.nextColor()
	s.GlyphStyle.Radius = vg.Points(1)
	pl.p.Add(s)
	pl.p.Legend.Add(name, s)
	return nil
}

// PlotModel draws the model's relative curve. Dashed lines are for
// reference curves, rather than ones fitted to this image.
func (pl *Plotter)PlotModel(name string, m limb.Model, dashed bool) error {
	pts := make(plotter.XYs, ModelSamples)
	for i := range pts {
		x := float64(i) / float64(ModelSamples - 1)
		y, err := m.Eval(x, false)
		if err != nil {
			return fmt.Errorf("plot %s: %w", name, err)
		}
		pts[i].X, pts[i].Y = x, y
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("plot %s: %v", name, err)
	}
	line.Color = pl.nextColor()
	line.Width = vg.Points(1.5)
	if dashed {
		line.Dashes = []vg.Length{vg.Points(2), vg.Points(3)}
	}
	pl.p.Add(line)
	pl.p.Legend.Add(fmt.Sprintf("%s (%s)", name, m.CoefsString()), line)
	return nil
}

func (pl *Plotter)nextColor() color.Color {
	c := palette[pl.nLines % len(palette)]
	pl.nLines++
	return c
}

// Image renders the plot at the given size in pixels.
func (pl *Plotter)Image(wPx, hPx float64) image.Image {
	const dpi = 96
	width := vg.Length(wPx) * vg.Inch / dpi
	height := vg.Length(hPx) * vg.Inch / dpi

	c := vgimg.New(width, height)
	pl.p.Draw(vgdraw.New(c))
	return c.Image()
}

// Save writes the plot out; the format comes from the extension.
func (pl *Plotter)Save(filename string) error {
	if err := pl.p.Save(8*vg.Inch, 6*vg.Inch, filename); err != nil {
		return fmt.Errorf("plot save %s: %v", filename, err)
	}
	log.Printf("Wrote %s\n", filename)
	return nil
}
