package limb

import(
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/limbdark/pkg/emath"
)

// A Stack holds radial slices through a disk, one slice per row. Column
// 0 is the centre of the disk, column R-1 is next to the limb.
type Stack struct {
	emath.FloatGrid
}

func NewStack(numSlices, r int) *Stack { return &Stack{emath.NewFloatGrid(r, numSlices)} }

func (s *Stack)NumSlices() int { return s.Dy() }
func (s *Stack)Len() int       { return s.Dx() }
func (s *Stack)String() string { return fmt.Sprintf("stack[%d slices x %d]", s.NumSlices(), s.Len()) }

// Clean throws away slices whose average brightness is an outlier
// (e.g. a slice running through a sunspot). Each slice is scored by
// how far its mean sits from the median of all slice means, in units
// of the median absolute deviation (MAD); slices scoring below `m` are
// kept, in their original order. When the MAD is zero nothing is
// rejected.
func (s *Stack)Clean(m float64) *Stack {
	n := s.NumSlices()

	avg := make([]float64, n)
	for i := range avg {
		avg[i] = stat.Mean(s.Row(i), nil)
	}

	med := emath.Median(avg)
	ad := make([]float64, n)
	for i := range avg {
		ad[i] = math.Abs(avg[i] - med)
	}
	mad := emath.Median(ad)

	keep := []int{}
	for i := range ad {
		score := 0.0
		if mad > 0 {
			score = ad[i] / mad
		}
		if score < m {
			keep = append(keep, i)
		}
	}

	return &Stack{s.SelectRows(keep)}
}

// Compress squashes the stack down into a single profile, aggregating
// each column across all the slices.
//
// The centre sample is the same pixel in every slice, so aggregating
// it tells us nothing; instead profile[0] is replaced by the aggregate
// of every sample in columns [1, round(R*innerRegion)).
func (s *Stack)Compress(innerRegion float64, agg Aggregation) (Profile, error) {
	n, r := s.NumSlices(), s.Len()
	if n == 0 || r == 0 {
		return nil, fmt.Errorf("compress %s: %w", s, ErrInvalidArgument)
	}
	if innerRegion <= 0 || innerRegion > 1 {
		return nil, fmt.Errorf("compress: inner region %f not in (0,1]: %w", innerRegion, ErrInvalidArgument)
	}
	if !agg.Valid() {
		return nil, fmt.Errorf("compress: no aggregation named '%s': %w", agg, ErrInvalidArgument)
	}

	p := make(Profile, r)
	for x := range p {
		p[x] = agg.Of(s.Col(x))
	}

	inner := int(math.RoundToEven(float64(r) * innerRegion))
	window := []float64{}
	for x:=1; x<inner; x++ {
		window = append(window, s.Col(x)...)
	}
	if len(window) == 0 && r > 1 {
		window = s.Col(1)
	}
	if len(window) > 0 {
		p[0] = agg.Of(window)
	}

	return p, nil
}

// An Aggregation is how a set of samples gets boiled down to one value.
type Aggregation string

const(
	MedianAggregation Aggregation = "median"
	MeanAggregation   Aggregation = "mean"
)

func (a Aggregation)Valid() bool { return a == MedianAggregation || a == MeanAggregation }

func (a Aggregation)Of(vals []float64) float64 {
	if a == MeanAggregation {
		return stat.Mean(vals, nil)
	}
	return emath.Median(vals)
}

// A Profile is brightness against distance from the centre of the
// disk, one entry per pixel of radius; profile[0] is the centre.
type Profile []float64

// Radii are the relative distances of each entry, evenly spaced from 0 to 1.
func (p Profile)Radii() []float64 {
	x := make([]float64, len(p))
	if len(x) < 2 {
		return x
	}
	return floats.Span(x, 0, 1)
}

// Normalized is the profile divided through by its centre value.
func (p Profile)Normalized() []float64 {
	y := make([]float64, len(p))
	copy(y, p)
	if len(y) > 0 && y[0] != 0 {
		floats.Scale(1.0/y[0], y)
	}
	return y
}
