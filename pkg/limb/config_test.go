package limb

import(
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filename, []byte(contents), 0644))
	return filename
}

func TestNewConfig(t *testing.T) {
	c := NewConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, uint8(10), c.Threshold)
	assert.Equal(t, 1000, c.Slices)
	assert.Equal(t, MedianAggregation, c.Aggregation)
	assert.Equal(t, "polynomial", c.Model)
	assert.Equal(t, 2, c.Degree)
	assert.Equal(t, uint8(175), c.Bias)
	assert.Equal(t, "all", c.Operation)
}

func TestLoadConfigYaml(t *testing.T) {
	filename := writeFile(t, "limb.yaml", `
threshold: 40
slices: 360
sampler: rotate
aggregation: mean
bias: 150
operation: model
`)

	c, err := LoadConfig(filename)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, uint8(40), c.Threshold)
	assert.Equal(t, 360, c.Slices)
	assert.Equal(t, "rotate", c.Sampler)
	assert.Equal(t, MeanAggregation, c.Aggregation)
	assert.Equal(t, uint8(150), c.Bias)
	assert.Equal(t, "model", c.Operation)

	// Anything not mentioned keeps its default
	assert.Equal(t, 0.2, c.InnerRegion)
	assert.Equal(t, "polynomial", c.Model)
}

func TestLoadConfigJson5(t *testing.T) {
	filename := writeFile(t, "limb.json5", `{
  // fewer slices, for a quick look
  "slices": 100,
  "degree": 3,
  "flat_source": "profile",
  "reference_model": "poly-550"
}`)

	c, err := LoadConfig(filename)
	require.NoError(t, err)
	assert.Equal(t, 100, c.Slices)
	assert.Equal(t, 3, c.Degree)
	assert.Equal(t, "profile", c.FlatSource)
	assert.Equal(t, "poly-550", c.ReferenceModel)
	assert.Equal(t, uint8(10), c.Threshold)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(writeFile(t, "limb.toml", "slices = 10\n"))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "limb.yaml", "slices: [1, 2\n"))
	assert.Error(t, err)
}

func TestConfigAsYaml(t *testing.T) {
	c := NewConfig()
	c.Slices = 64

	again, err := newConfigFromYaml([]byte(c.AsYaml()))
	require.NoError(t, err)
	assert.Equal(t, c, again)
}

func TestConfigValidate(t *testing.T) {
	tests := map[string]func(c *Config){
		"detector":          func(c *Config) { c.Detector = "hough" },
		"slices":            func(c *Config) { c.Slices = 0 },
		"sampler":           func(c *Config) { c.Sampler = "spiral" },
		"rotate needs 4s":   func(c *Config) { c.Sampler, c.Slices = "rotate", 30 },
		"clean_m":           func(c *Config) { c.CleanM = 0 },
		"inner_region low":  func(c *Config) { c.InnerRegion = 0 },
		"inner_region high": func(c *Config) { c.InnerRegion = 1.2 },
		"aggregation":       func(c *Config) { c.Aggregation = "max" },
		"degree":            func(c *Config) { c.Degree = -1 },
		"flat_source":       func(c *Config) { c.FlatSource = "dark" },
		"operation":         func(c *Config) { c.Operation = "stack" },
	}

	for name, breakIt := range tests {
		c := NewConfig()
		breakIt(&c)
		assert.ErrorIs(t, c.Validate(), ErrInvalidArgument, name)
	}
}

func TestConfigFuncs(t *testing.T) {
	img := newDiskImage(120, 100, 60, 50, 30, uniform(200))

	c := NewConfig()
	c.Workers = 2
	d, err := c.GetDetector()(img, 80)
	require.NoError(t, err)
	assert.Equal(t, Disk{X: 60, Y: 50, R: 30}, d)

	polar, err := c.GetSampler()(img, d, 8)
	require.NoError(t, err)
	want, err := ExtractStack(img, d, 8)
	require.NoError(t, err)
	assert.Equal(t, want, polar)

	c.Sampler = "rotate"
	rotated, err := c.GetSampler()(img, d, 8)
	require.NoError(t, err)
	want, err = ExtractStackRotated(img, d, 8)
	require.NoError(t, err)
	assert.Equal(t, want, rotated)
}
