package limb

import(
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	c := NewConfig()
	c.Slices = 40
	c.Bias = 150
	return c
}

func TestAnalysisRun(t *testing.T) {
	img := newDiskImage(300, 300, 150, 150, 100, darkened)

	a, err := NewAnalysis(testConfig(), img)
	require.NoError(t, err)
	require.NoError(t, a.Run(NewPolynomial()))

	assert.Equal(t, Disk{X: 150, Y: 150, R: 101}, a.Disk)
	assert.Equal(t, 40, a.Stack.NumSlices())
	assert.Equal(t, 20, a.CleanStack.NumSlices())
	assert.Equal(t, 20, a.Dropped())

	require.Len(t, a.Profile, 101)
	assert.Equal(t, 199.0, a.Profile[0])
	assert.Equal(t, 101.0, a.Profile[100])

	coefs := a.LimbModel.Coefs()
	require.Len(t, coefs, 3)
	assert.InDelta(t, 0.4996, coefs[0], 0.01)
	assert.InDelta(t, 0.0321, coefs[1], 0.01)
	assert.InDelta(t, 0.4683, coefs[2], 0.01)
	i0, _ := a.LimbModel.CenterIntensity()
	assert.Equal(t, 199.0, i0)

	require.NotNil(t, a.Corrected)
	assert.NotSame(t, a.Raster, a.Corrected)

	flat, err := MeasureFlatness(a.Corrected, Disk{X: 150, Y: 150, R: 100})
	require.NoError(t, err)
	assert.InDelta(t, 148.5, flat.Mean, 5.0)
	assert.Less(t, flat.StdDev / flat.Mean, 0.05)

	assert.Contains(t, a.String(), "disk[x:150, y:150, r:101]")
	assert.Contains(t, a.String(), "20 dropped")
}

func TestAnalysisFeedback(t *testing.T) {
	img := newDiskImage(300, 300, 150, 150, 100, darkened)

	a, err := NewAnalysis(testConfig(), img)
	require.NoError(t, err)
	require.NoError(t, a.Run(NewPolynomial()))

	line, prof, err := a.Feedback()
	require.NoError(t, err)
	assert.Len(t, prof, a.Disk.R)

	coefs := line.Coefs()
	assert.InDelta(t, 0.0, coefs[0], 0.1)
	assert.InDelta(t, 1.0, coefs[1], 0.05)
}

func TestAnalysisProfileFlat(t *testing.T) {
	img := newDiskImage(300, 300, 150, 150, 100, darkened)
	cfg := testConfig()
	cfg.FlatSource = "profile"

	a, err := NewAnalysis(cfg, img)
	require.NoError(t, err)
	require.NoError(t, a.Run(NewPolynomial()))

	flat, err := MeasureFlatness(a.Corrected, Disk{X: 150, Y: 150, R: 100})
	require.NoError(t, err)
	assert.InDelta(t, 150.0, flat.Mean, 5.0)
	assert.Less(t, flat.StdDev, 3.0)
}

func TestAnalysisModelOnly(t *testing.T) {
	img := newDiskImage(300, 300, 150, 150, 100, darkened)
	cfg := testConfig()
	cfg.Operation = "model"

	a, err := NewAnalysis(cfg, img)
	require.NoError(t, err)
	require.NoError(t, a.Run(NewLinear()))

	assert.NotNil(t, a.LimbModel)
	assert.Equal(t, "linear", a.LimbModel.Name())
	assert.Nil(t, a.Corrected)

	_, _, err = a.Feedback()
	assert.ErrorIs(t, err, ErrState)
}

func TestAnalysisOutOfOrder(t *testing.T) {
	img := newDiskImage(100, 100, 50, 50, 30, uniform(200))
	a, err := NewAnalysis(testConfig(), img)
	require.NoError(t, err)

	assert.ErrorIs(t, a.BuildProfile(), ErrState)
	assert.ErrorIs(t, a.Fit(NewPolynomial()), ErrState)
	assert.ErrorIs(t, a.Correct(), ErrState)

	a.FlatSource = "profile"
	assert.ErrorIs(t, a.Correct(), ErrState)
}

func TestAnalysisNothingThere(t *testing.T) {
	a, err := NewAnalysis(testConfig(), newUniform(50, 50, 0))
	require.NoError(t, err)
	assert.ErrorIs(t, a.Run(NewPolynomial()), ErrNotFound)
}

func TestNewAnalysisErrors(t *testing.T) {
	cfg := testConfig()
	cfg.Slices = -1
	_, err := NewAnalysis(cfg, newUniform(10, 10, 0))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewAnalysis(testConfig(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMeasureFlatness(t *testing.T) {
	img := newUniform(50, 50, 120)
	img.Pix[img.PixOffset(25, 25)] = 0

	f, err := MeasureFlatness(img, Disk{X: 25, Y: 25, R: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.Min)
	assert.Equal(t, int64(120), f.Max)
	assert.Equal(t, int64(120), f.P50)
	assert.Less(t, f.Mean, 120.0)
	assert.Contains(t, f.String(), "p50=120")

	_, err = MeasureFlatness(img, Disk{X: 25, Y: 25})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = MeasureFlatness(img, Disk{X: -100, Y: -100, R: 10})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFlatFieldImage(t *testing.T) {
	d := Disk{X: 150, Y: 150, R: 20}
	fi, err := NewFlatFieldImage(d, ModelFlat{flatModel(255)})
	require.NoError(t, err)

	assert.Equal(t, 40, fi.Bounds().Dx())
	assert.Equal(t, 1600, fi.Size())
	r, g, b, _ := fi.HDRAt(20, 20).HDRRGBA()
	assert.Equal(t, []float64{1, 1, 1}, []float64{r, g, b})
	r, _, _, _ = fi.HDRAt(0, 0).HDRRGBA()
	assert.Equal(t, 0.0, r)

	filename := filepath.Join(t.TempDir(), "flat.hdr")
	require.NoError(t, fi.WriteToHDR(filename))
	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	_, err = NewFlatFieldImage(Disk{}, ModelFlat{flatModel(255)})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewFlatFieldImage(d, ModelFlat{})
	assert.ErrorIs(t, err, ErrState)
}

func TestDebugImages(t *testing.T) {
	img := newDiskImage(120, 100, 60, 50, 30, uniform(200))

	// Drawn a little wide, so the circle lands on the black background
	overlay := DrawDiskOverlay(img, Disk{X: 60, Y: 50, R: 40})
	assert.Equal(t, 120, overlay.Bounds().Dx())
	assert.Equal(t, 100, overlay.Bounds().Dy())
	r, g, _, _ := overlay.At(100, 50).RGBA()
	assert.Greater(t, g, r)

	s, err := ExtractStack(img, Disk{X: 60, Y: 50, R: 30}, 16)
	require.NoError(t, err)
	si := StackImage(s, 29)
	assert.Equal(t, 30, si.Bounds().Dx())
	assert.Equal(t, 16, si.Bounds().Dy())
}
