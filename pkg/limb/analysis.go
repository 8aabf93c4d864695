package limb

import(
	"fmt"
	"image"
	"log"
)

// An Analysis carries one image through the pipeline: find the disk,
// slice it up, boil the slices down to a profile, fit a model to the
// profile, and flatten the disk. Each stage fills in its own fields.
type Analysis struct {
	Config

	Raster     *image.Gray  // The input, never modified
	Disk       Disk
	Stack      *Stack       // Raw slices
	CleanStack *Stack       // Slices that survived outlier rejection
	Profile    Profile
	LimbModel  Model
	Corrected  *image.Gray
}

func NewAnalysis(cfg Config, img image.Image) (*Analysis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	gray, err := AsRaster(img)
	if err != nil {
		return nil, err
	}
	return &Analysis{Config: cfg, Raster: gray}, nil
}

func (a *Analysis)String() string {
	str := fmt.Sprintf("Analysis %s [\n", a.Raster.Bounds())
	str += fmt.Sprintf("  %s\n", a.Disk)
	if a.Stack != nil && a.CleanStack != nil {
		str += fmt.Sprintf("  %s, %d dropped\n", a.Stack, a.Dropped())
	}
	if a.LimbModel != nil {
		str += fmt.Sprintf("  %s: %s\n", a.LimbModel.Name(), a.LimbModel.CoefsString())
	}
	return str + "]\n"
}

func (a *Analysis)Dropped() int { return a.Stack.NumSlices() - a.CleanStack.NumSlices() }

func (a *Analysis)Detect() error {
	d, err := a.GetDetector()(a.Raster, a.Threshold)
	if err != nil {
		return err
	}
	a.Disk = d
	if a.Verbosity > 0 {
		log.Printf("Detected %s\n", d)
	}
	return nil
}

// BuildProfile samples, cleans and compresses; Detect must have run.
func (a *Analysis)BuildProfile() error {
	if a.Disk.R <= 0 {
		return fmt.Errorf("build profile: no disk detected yet: %w", ErrState)
	}

	prof, raw, clean, err := profileOf(a.Config, a.Raster, a.Disk)
	if err != nil {
		return err
	}
	a.Stack, a.CleanStack, a.Profile = raw, clean, prof

	if a.Verbosity > 0 {
		log.Printf("Slices: %d, dropped: %d\n", a.Stack.NumSlices(), a.Dropped())
	}
	return nil
}

func profileOf(cfg Config, img *image.Gray, d Disk) (Profile, *Stack, *Stack, error) {
	raw, err := cfg.GetSampler()(img, d, cfg.Slices)
	if err != nil {
		return nil, nil, nil, err
	}
	clean := raw.Clean(cfg.CleanM)
	prof, err := clean.Compress(cfg.InnerRegion, cfg.Aggregation)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s, after cleaning: %w", clean, err)
	}
	return prof, raw, clean, nil
}

// Fit fits the given (unfitted) model to the profile.
func (a *Analysis)Fit(m Model) error {
	if a.Profile == nil {
		return fmt.Errorf("fit %s: no profile yet: %w", m.Name(), ErrState)
	}
	if err := m.Fit(a.Profile, &Params{Degree: a.Degree}); err != nil {
		return err
	}
	a.LimbModel = m
	log.Printf("Model coefficients: %s\n", m.CoefsString())
	return nil
}

// FlatField is where the correction gets its idea of how bright the
// disk should be: the fitted model, or the raw profile.
func (a *Analysis)FlatField() (FlatField, error) {
	switch a.FlatSource {
	case "profile":
		if a.Profile == nil {
			return nil, fmt.Errorf("flat field: no profile yet: %w", ErrState)
		}
		return ProfileFlat{a.Profile}, nil
	default:
		if a.LimbModel == nil {
			return nil, fmt.Errorf("flat field: no model fitted yet: %w", ErrState)
		}
		return ModelFlat{a.LimbModel}, nil
	}
}

func (a *Analysis)Correct() error {
	flat, err := a.FlatField()
	if err != nil {
		return err
	}
	out, err := correct(a.Raster, a.Disk, a.Bias, flat, a.Workers)
	if err != nil {
		return err
	}
	a.Corrected = out
	return nil
}

// Run does all the stages with the given model, only correcting the
// image if the operation asks for it.
func (a *Analysis)Run(m Model) error {
	if err := a.Detect(); err != nil {
		return err
	}
	if err := a.BuildProfile(); err != nil {
		return err
	}
	if err := a.Fit(m); err != nil {
		return err
	}
	if a.Operation == "all" || a.Operation == "correct" {
		if err := a.Correct(); err != nil {
			return err
		}
	}
	return nil
}

// Feedback re-profiles the corrected image over the same disk, and
// fits a line to it. For a good correction the line is flat, with
// m near 0 and c near 1.
func (a *Analysis)Feedback() (*Linear, Profile, error) {
	if a.Corrected == nil {
		return nil, nil, fmt.Errorf("feedback: no corrected image: %w", ErrState)
	}

	prof, _, _, err := profileOf(a.Config, a.Corrected, a.Disk)
	if err != nil {
		return nil, nil, fmt.Errorf("feedback: %w", err)
	}
	line := NewLinear()
	if err := line.Fit(prof, nil); err != nil {
		return nil, nil, fmt.Errorf("feedback: %w", err)
	}
	log.Printf("Linearity of correction: %s\n", line.CoefsString())
	return line, prof, nil
}
