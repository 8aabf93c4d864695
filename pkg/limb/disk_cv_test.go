//go:build gocv

package limb

import(
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDiskCV(t *testing.T) {
	img := newDiskImage(300, 300, 150, 150, 100, darkened)

	want, err := DetectDisk(img, 10)
	require.NoError(t, err)
	got, err := DetectDiskCV(img, 10)
	require.NoError(t, err)

	assert.InDelta(t, want.X, got.X, 1)
	assert.InDelta(t, want.Y, got.Y, 1)
	assert.InDelta(t, want.R, got.R, 1)

	_, err = DetectDiskCV(newUniform(50, 50, 0), 10)
	assert.ErrorIs(t, err, ErrNotFound)
}
