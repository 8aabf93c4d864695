package limb

import(
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Linear models the profile as a straight line, y = m*x + c. It is a
// poor fit for limb darkening, but a handy yardstick for how flat a
// corrected image came out.
type Linear struct {
	centre
	coefs []float64 // m, c
}

func NewLinear() *Linear { return &Linear{} }

func (l *Linear)Name() string { return "linear" }

func (l *Linear)Coefs() []float64 {
	if l.coefs == nil {
		return nil
	}
	return append([]float64{}, l.coefs...)
}

func (l *Linear)SetCoefs(c []float64) { l.coefs = append([]float64{}, c...) }

func (l *Linear)CoefsString() string {
	if len(l.coefs) != 2 {
		return ""
	}
	return fmt.Sprintf("m=%.2f, c=%.2f", l.coefs[0], l.coefs[1])
}

// Fit is an ordinary least squares regression of the normalised
// profile against relative distance. There are no params.
func (l *Linear)Fit(prof Profile, params *Params) error {
	if err := checkProfile(l.Name(), prof); err != nil {
		return err
	}
	if len(prof) < 2 {
		return fmt.Errorf("linear fit: need at least 2 samples, got %d: %w", len(prof), ErrInvalidArgument)
	}

	intercept, slope := stat.LinearRegression(prof.Radii(), prof.Normalized(), nil, false)
	l.coefs = []float64{slope, intercept}
	l.SetCenterIntensity(prof[0])

	return nil
}

func (l *Linear)Eval(x float64, absolute bool) (float64, error) {
	if len(l.coefs) != 2 {
		return 0, fmt.Errorf("linear: no coefficients, fit or set them first: %w", ErrState)
	}
	if err := checkDomain(l.Name(), x); err != nil {
		return 0, err
	}
	return l.absolute(l.Name(), l.coefs[0]*x + l.coefs[1], absolute)
}
