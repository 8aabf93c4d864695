package limb

import "fmt"

// A Model is a smooth curve describing how brightness falls off
// towards the limb. Models work in relative terms: x is the distance
// from the centre as a fraction of the radius, and the fitted curve
// is normalised to the centre intensity i_0. Asking for an absolute
// value multiplies back by i_0.
type Model interface {
	Name() string

	// Fit sets the coefficients (and i_0) from a profile. A nil
	// params means the model's defaults.
	Fit(p Profile, params *Params) error

	// Eval is the model's brightness at relative distance x, in [0,1].
	Eval(x float64, absolute bool) (float64, error)

	Coefs() []float64
	SetCoefs(c []float64)
	CenterIntensity() (float64, bool)
	SetCenterIntensity(i0 float64)
	CoefsString() string
}

// Params are the knobs for a fit. Models ignore the ones that don't apply.
type Params struct {
	Degree int // polynomial degree
}

// centre holds the i_0 bookkeeping shared by the models.
type centre struct {
	i0    float64
	hasI0 bool
}

func (c *centre)CenterIntensity() (float64, bool) { return c.i0, c.hasI0 }
func (c *centre)SetCenterIntensity(i0 float64)    { c.i0, c.hasI0 = i0, true }

func (c *centre)absolute(name string, v float64, absolute bool) (float64, error) {
	if !absolute {
		return v, nil
	}
	if !c.hasI0 {
		return 0, fmt.Errorf("%s: absolute value asked for, but there is no centre intensity: %w", name, ErrState)
	}
	return v * c.i0, nil
}

func checkDomain(name string, x float64) error {
	if !(x >= 0 && x <= 1) {
		return fmt.Errorf("%s: relative distance %v not in [0,1]: %w", name, x, ErrDomain)
	}
	return nil
}

func checkProfile(name string, p Profile) error {
	if len(p) == 0 {
		return fmt.Errorf("%s fit: empty profile: %w", name, ErrInvalidArgument)
	}
	if p[0] == 0 {
		return fmt.Errorf("%s fit: centre intensity is zero: %w", name, ErrInvalidArgument)
	}
	return nil
}
