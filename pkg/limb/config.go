package limb

import(
	"fmt"
	"image"
	"io/ioutil"
	"log"
	"path/filepath"
	"strings"

	json "github.com/KevinWang15/go-json5"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Verbosity      int          `yaml:"verbosity"       json:"verbosity"`

	Detector       string       `yaml:"detector"        json:"detector"`        // "builtin", or "opencv" when built with -tags gocv
	Threshold      uint8        `yaml:"threshold"       json:"threshold"`       // Blurred brightness at which a pixel is part of the disk
	Slices         int          `yaml:"slices"          json:"slices"`          // How many radial slices to take
	Sampler        string       `yaml:"sampler"         json:"sampler"`         // "polar", or "rotate" (needs Slices%4 == 0)
	CleanM         float64      `yaml:"clean_m"         json:"clean_m"`         // Slices this many MADs from the median get dropped
	InnerRegion    float64      `yaml:"inner_region"    json:"inner_region"`    // Fraction of the radius used to estimate the centre
	Aggregation    Aggregation  `yaml:"aggregation"     json:"aggregation"`     // How columns of the stack are combined

	Model          string       `yaml:"model"           json:"model"`
	Degree         int          `yaml:"degree"          json:"degree"`          // For the polynomial model
	ReferenceModel string       `yaml:"reference_model" json:"reference_model"` // Plotted next to the fit, if set

	Bias           uint8        `yaml:"bias"            json:"bias"`            // Brightness the flattened disk is scaled to
	FlatSource     string       `yaml:"flat_source"     json:"flat_source"`     // "model", or "profile" to skip the model
	Workers        int          `yaml:"workers"         json:"workers"`

	Operation      string       `yaml:"operation"       json:"operation"`       // "all", "correct" or "model"
	PlotCorrection bool         `yaml:"plot_correction" json:"plot_correction"` // Re-profile the corrected image, to see how flat it is
	Debug          bool         `yaml:"debug"           json:"debug"`
	OutDir         string       `yaml:"out_dir"         json:"out_dir"`
	SeparateDir    bool         `yaml:"separate_dir"    json:"separate_dir"`    // One output dir per input image
}

func NewConfig() Config {
	return Config{
		Detector:       "builtin",
		Threshold:      10,
		Slices:         1000,
		Sampler:        "polar",
		CleanM:         1.0,
		InnerRegion:    0.2,
		Aggregation:    MedianAggregation,
		Model:          "polynomial",
		Degree:         DefaultDegree,
		Bias:           175,
		FlatSource:     "model",
		Workers:        DefaultWorkers,
		Operation:      "all",
		PlotCorrection: true,
		OutDir:         "./out",
		SeparateDir:    true,
	}
}

// LoadConfig reads a config file over the top of the defaults. YAML
// and JSON5 (which covers plain JSON) are understood.
func LoadConfig(filename string) (Config, error) {
	contents, err := ioutil.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %v", filename, err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return newConfigFromYaml(contents)
	case ".json", ".json5":
		return newConfigFromJson5(contents)
	default:
		return Config{}, fmt.Errorf("config %s: unknown file type: %w", filename, ErrInvalidArgument)
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

func newConfigFromJson5(b []byte) (Config, error) {
	c := NewConfig()
	err := json.Unmarshal(b, &c)
	return c, err
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

// Validate checks the settings the pipeline itself relies on. Model
// names are checked by whoever owns the list of models.
func (c Config)Validate() error {
	bad := func(format string, args ...interface{}) error {
		return fmt.Errorf("config: " + format + ": %w", append(args, ErrInvalidArgument)...)
	}

	switch c.Detector {
	case "builtin", "opencv":
	default:
		return bad("no detector named '%s'", c.Detector)
	}
	if c.Slices <= 0 {
		return bad("slices must be positive, got %d", c.Slices)
	}
	switch c.Sampler {
	case "polar":
	case "rotate":
		if c.Slices % 4 != 0 {
			return bad("the rotate sampler needs slices to be a multiple of 4, got %d", c.Slices)
		}
	default:
		return bad("no sampler named '%s'", c.Sampler)
	}
	if !(c.CleanM > 0) {
		return bad("clean_m must be positive, got %v", c.CleanM)
	}
	if !(c.InnerRegion > 0 && c.InnerRegion <= 1) {
		return bad("inner_region must be in (0,1], got %v", c.InnerRegion)
	}
	if !c.Aggregation.Valid() {
		return bad("no aggregation named '%s'", c.Aggregation)
	}
	if c.Degree < 0 {
		return bad("degree must not be negative, got %d", c.Degree)
	}
	switch c.FlatSource {
	case "model", "profile":
	default:
		return bad("no flat field source named '%s'", c.FlatSource)
	}
	switch c.Operation {
	case "all", "correct", "model":
	default:
		return bad("no operation named '%s'", c.Operation)
	}
	return nil
}

// A DetectFunc finds the disk in an image.
type DetectFunc func(img image.Image, threshold uint8) (Disk, error)

func (c Config)GetDetector() DetectFunc {
	if c.Detector == "opencv" {
		return DetectDiskCV
	}
	return DetectDisk
}

// GetSampler maps the sampler name onto a function that does the
// sampling with this config's worker count.
func (c Config)GetSampler() SampleFunc {
	switch c.Sampler {
	case "rotate":
		return func(img image.Image, d Disk, n int) (*Stack, error) { return extractStackRotated(img, d, n, c.Workers) }
	default:
		return func(img image.Image, d Disk, n int) (*Stack, error) { return extractStack(img, d, n, c.Workers) }
	}
}
