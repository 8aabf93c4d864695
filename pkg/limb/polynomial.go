package limb

import(
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

const(
	DefaultDegree = 2

	// The fit is pinned to the centre by weighting the first sample this heavily
	centreWeight = 1e5
)

// Polynomial models the limb darkening as a polynomial in cos(psi),
// the cosine of the angle between the line of sight and the solar
// surface normal: cos(psi) = sqrt(1 - x^2), for relative distance x.
type Polynomial struct {
	centre
	coefs []float64 // a_0, a_1, ... lowest order first
}

func NewPolynomial(coefs ...float64) *Polynomial {
	p := &Polynomial{}
	if len(coefs) > 0 {
		p.SetCoefs(coefs)
	}
	return p
}

func (p *Polynomial)Name() string { return "polynomial" }

func (p *Polynomial)Coefs() []float64 {
	if p.coefs == nil {
		return nil
	}
	return append([]float64{}, p.coefs...)
}

func (p *Polynomial)SetCoefs(c []float64) { p.coefs = append([]float64{}, c...) }

func (p *Polynomial)CoefsString() string {
	strs := []string{}
	for i, c := range p.coefs {
		strs = append(strs, fmt.Sprintf("a_%d=%.2f", i, c))
	}
	return strings.Join(strs, ", ")
}

// Fit does a weighted least squares fit of the normalised profile
// against cos(psi). The weights multiply the residuals, and the centre
// sample gets a huge one, so the curve passes through (0, 1).
func (p *Polynomial)Fit(prof Profile, params *Params) error {
	degree := DefaultDegree
	if params != nil {
		degree = params.Degree
	}

	if err := checkProfile(p.Name(), prof); err != nil {
		return err
	}
	n := len(prof)
	if degree < 0 || degree >= n {
		return fmt.Errorf("polynomial fit: degree %d needs to be in [0,%d) for a profile of %d: %w",
			degree, n, n, ErrInvalidArgument)
	}

	i0 := prof[0]
	x := prof.Radii()
	y := prof.Normalized()

	a := mat.NewDense(n, degree+1, nil)
	b := mat.NewVecDense(n, nil)
	for i := range x {
		w := 1.0
		if i == 0 {
			w = centreWeight
		}
		cosPsi := math.Sqrt(1 - x[i]*x[i])

		term := w
		for j:=0; j<=degree; j++ {
			a.Set(i, j, term)
			term *= cosPsi
		}
		b.SetVec(i, w * y[i])
	}

	var coefs mat.VecDense
	if err := coefs.SolveVec(a, b); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return fmt.Errorf("polynomial fit, degree %d: %v", degree, err)
		}
		log.Printf("polynomial fit, degree %d: badly conditioned (%v), coefficients may be inaccurate\n", degree, err)
	}

	p.coefs = make([]float64, degree+1)
	for j := range p.coefs {
		p.coefs[j] = coefs.AtVec(j)
	}
	p.SetCenterIntensity(i0)

	return nil
}

func (p *Polynomial)Eval(x float64, absolute bool) (float64, error) {
	if p.coefs == nil {
		return 0, fmt.Errorf("polynomial: no coefficients, fit or set them first: %w", ErrState)
	}
	if err := checkDomain(p.Name(), x); err != nil {
		return 0, err
	}

	cosPsi := math.Sqrt(1 - x*x)
	v := 0.0
	for j:=len(p.coefs)-1; j>=0; j-- {
		v = v*cosPsi + p.coefs[j]
	}

	return p.absolute(p.Name(), v, absolute)
}
