package plotting

import(
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/limbdark/pkg/limb"
)

func TestPlot(t *testing.T) {
	prof := limb.Profile{200, 198, 190, 175, 150, 100}
	fit := limb.NewPolynomial()
	require.NoError(t, fit.Fit(prof, nil))

	pl := New("sun01")
	require.NoError(t, pl.PlotProfile("profile", prof))
	require.NoError(t, pl.PlotModel("polynomial", fit, false))
	require.NoError(t, pl.PlotModel("550nm", limb.NewPolynomial(0.3, 0.93, -0.23), true))

	img := pl.Image(800, 600)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())

	filename := filepath.Join(t.TempDir(), "sun01_plot.png")
	require.NoError(t, pl.Save(filename))
	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPlotErrors(t *testing.T) {
	pl := New("bad")
	assert.ErrorIs(t, pl.PlotProfile("empty", limb.Profile{}), limb.ErrInvalidArgument)
	assert.ErrorIs(t, pl.PlotModel("unfitted", limb.NewLinear(), false), limb.ErrState)
}
