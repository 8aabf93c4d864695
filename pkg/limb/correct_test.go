package limb

import(
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUniform(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestCorrectBoundary(t *testing.T) {
	img := newUniform(200, 200, 200)
	d := Disk{X: 100, Y: 100, R: 50}

	out, err := Correct(img, d, 128, ModelFlat{flatModel(200)})
	require.NoError(t, err)

	tests := []struct{
		x, y int
		want uint8
	}{
		{100, 100, 128},
		{149, 100, 128},
		{51, 100, 128},
		{100, 51, 128},
		{150, 100, 200}, // rel == 1, left alone
		{50, 100, 200},
		{100, 50, 200},
		{140, 140, 200},
		{0, 0, 200},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, out.GrayAt(tc.x, tc.y).Y, "(%d,%d)", tc.x, tc.y)
	}

	// The input is untouched
	for _, v := range img.Pix {
		require.Equal(t, uint8(200), v)
	}
}

func TestCorrectDiskOnBlack(t *testing.T) {
	img := newDiskImage(200, 200, 100, 100, 50, uniform(200))
	d := Disk{X: 100, Y: 100, R: 50}

	out, err := Correct(img, d, 128, ModelFlat{flatModel(200)})
	require.NoError(t, err)

	for y:=0; y<200; y++ {
		for x:=0; x<200; x++ {
			switch dist := math.Hypot(float64(x-100), float64(y-100)); {
			case dist < 50: require.Equal(t, uint8(128), out.GrayAt(x, y).Y, "(%d,%d)", x, y)
			case dist > 50: require.Equal(t, uint8(0), out.GrayAt(x, y).Y, "(%d,%d)", x, y)
			}
		}
	}
}

func TestCorrectClips(t *testing.T) {
	img := newUniform(40, 40, 200)
	d := Disk{X: 20, Y: 20, R: 10}

	out, err := Correct(img, d, 128, ModelFlat{flatModel(50)})
	require.NoError(t, err)
	assert.Equal(t, uint8(255), out.GrayAt(20, 20).Y)

	out, err = Correct(img, d, 128, ModelFlat{flatModel(1000)})
	require.NoError(t, err)
	assert.Equal(t, uint8(26), out.GrayAt(20, 20).Y) // 200/1000*128 = 25.6
}

func TestCorrectZeroFlat(t *testing.T) {
	img := newUniform(40, 40, 200)
	img.Pix[img.PixOffset(21, 20)] = 0
	d := Disk{X: 20, Y: 20, R: 10}

	out, err := Correct(img, d, 128, ModelFlat{flatModel(0)})
	require.NoError(t, err)
	assert.Equal(t, uint8(255), out.GrayAt(20, 20).Y)
	assert.Equal(t, uint8(0), out.GrayAt(21, 20).Y)
}

func TestCorrectDiskOffImage(t *testing.T) {
	img := newUniform(60, 60, 100)
	d := Disk{X: 0, Y: 0, R: 30}

	out, err := Correct(img, d, 50, ModelFlat{flatModel(100)})
	require.NoError(t, err)
	assert.Equal(t, uint8(50), out.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(50), out.GrayAt(20, 20).Y)
	assert.Equal(t, uint8(100), out.GrayAt(25, 25).Y)
	assert.Equal(t, uint8(100), out.GrayAt(59, 59).Y)

	// Nowhere near the image at all
	out, err = Correct(img, Disk{X: -500, Y: -500, R: 30}, 50, ModelFlat{flatModel(100)})
	require.NoError(t, err)
	assert.Equal(t, img.Pix, out.Pix)
}

func TestCorrectOffsetImage(t *testing.T) {
	full := newUniform(100, 100, 100)
	sub := full.SubImage(image.Rect(50, 50, 100, 100)).(*image.Gray)

	out, err := Correct(sub, Disk{X: 75, Y: 75, R: 10}, 200, ModelFlat{flatModel(100)})
	require.NoError(t, err)
	assert.Equal(t, sub.Bounds(), out.Bounds())
	assert.Equal(t, uint8(200), out.GrayAt(75, 75).Y)
	assert.Equal(t, uint8(100), out.GrayAt(50, 50).Y)
	assert.Equal(t, uint8(100), full.GrayAt(75, 75).Y)
}

func TestCorrectWorkers(t *testing.T) {
	img := newDiskImage(300, 300, 150, 150, 100, darkened)
	d := Disk{X: 150, Y: 150, R: 100}
	flat := ProfileFlat{Profile{200, 190, 170, 140, 100}}

	one, err := correct(img, d, 150, flat, 1)
	require.NoError(t, err)
	many, err := correct(img, d, 150, flat, 8)
	require.NoError(t, err)
	assert.Equal(t, one.Pix, many.Pix)
}

func TestCorrectErrors(t *testing.T) {
	img := newUniform(40, 40, 200)
	d := Disk{X: 20, Y: 20, R: 10}

	_, err := Correct(img, Disk{X: 20, Y: 20}, 128, ModelFlat{flatModel(200)})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Correct(img, d, 128, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Correct(image.NewRGBA(img.Bounds()), d, 128, ModelFlat{flatModel(200)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Correct(img, d, 128, ModelFlat{})
	assert.ErrorIs(t, err, ErrState)

	_, err = Correct(img, d, 128, ModelFlat{NewPolynomial()})
	assert.ErrorIs(t, err, ErrState)

	_, err = Correct(img, d, 128, ProfileFlat{})
	assert.ErrorIs(t, err, ErrState)
}

func TestProfileFlat(t *testing.T) {
	pf := ProfileFlat{Profile{100, 200, 300, 400}}

	tests := []struct{
		rel, want float64
	}{
		{0, 100},
		{0.125, 150},
		{0.5, 300},
		{0.6, 340},
		{0.8, 400},
		{1, 400},
	}
	for _, tc := range tests {
		v, err := pf.FlatAt(tc.rel)
		require.NoError(t, err, "rel %f", tc.rel)
		assert.InDelta(t, tc.want, v, 1e-9, "rel %f", tc.rel)
	}

	_, err := pf.FlatAt(1.1)
	assert.ErrorIs(t, err, ErrDomain)
	_, err = pf.FlatAt(-0.1)
	assert.ErrorIs(t, err, ErrDomain)

	_, err = ProfileFlat{}.FlatAt(0.5)
	assert.ErrorIs(t, err, ErrState)
}

func TestModelFlat(t *testing.T) {
	p := NewPolynomial(0.3, 0.93, -0.23)
	p.SetCenterIntensity(200)

	v, err := ModelFlat{p}.FlatAt(1)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, v, 1e-9)
}
