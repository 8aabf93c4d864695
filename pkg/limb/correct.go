package limb

import(
	"fmt"
	"image"
	"math"

	"github.com/abworrall/limbdark/pkg/emath"
)

// A FlatField knows how bright the disk ought to be, in absolute
// terms, at relative distance `rel` from the centre.
type FlatField interface {
	FlatAt(rel float64) (float64, error)
}

var(
	_ Model     = (*Polynomial)(nil)
	_ Model     = (*Linear)(nil)
	_ FlatField = ModelFlat{}
	_ FlatField = ProfileFlat{}
)

// ModelFlat is the flat field from a fitted model.
type ModelFlat struct {
	Model
}

func (mf ModelFlat)FlatAt(rel float64) (float64, error) {
	if mf.Model == nil {
		return 0, fmt.Errorf("model flat field: no model: %w", ErrState)
	}
	return mf.Model.Eval(rel, true)
}

// ProfileFlat is the flat field straight from a profile table, linearly
// interpolating between entries, and holding the last entry out to the limb.
type ProfileFlat struct {
	Profile
}

func (pf ProfileFlat)FlatAt(rel float64) (float64, error) {
	n := len(pf.Profile)
	if n == 0 {
		return 0, fmt.Errorf("profile flat field: empty profile: %w", ErrState)
	}
	if err := checkDomain("profile flat field", rel); err != nil {
		return 0, err
	}

	pos := rel * float64(n)
	i := int(pos)
	if i >= n-1 {
		return pf.Profile[n-1], nil
	}
	frac := pos - float64(i)
	return pf.Profile[i]*(1-frac) + pf.Profile[i+1]*frac, nil
}

// Correct divides every pixel in the disk by the flat field at that
// distance, then scales by `bias`, so a pixel exactly as bright as the
// flat field ends up at `bias`. Results are rounded and clipped to
// [0,255]. Pixels at or beyond the radius are left alone.
//
// The input is not touched; the corrected copy is returned.
func Correct(img image.Image, d Disk, bias uint8, flat FlatField) (*image.Gray, error) {
	return correct(img, d, bias, flat, DefaultWorkers)
}

func correct(img image.Image, d Disk, bias uint8, flat FlatField, nWorkers int) (*image.Gray, error) {
	gray, err := AsRaster(img)
	if err != nil {
		return nil, fmt.Errorf("correct: %w", err)
	}
	if d.R <= 0 {
		return nil, fmt.Errorf("correct %s: radius must be positive: %w", d, ErrInvalidArgument)
	}
	if flat == nil {
		return nil, fmt.Errorf("correct: no flat field: %w", ErrInvalidArgument)
	}

	out := &image.Gray{Pix: append([]uint8{}, gray.Pix...), Stride: gray.Stride, Rect: gray.Rect}

	box := d.Clip(gray.Rect)
	errs := make([]error, box.Dy())

	forEachRow(box.Dy(), nWorkers, func(row int) {
		y := box.Min.Y + row
		for x:=box.Min.X; x<box.Max.X; x++ {
			rel := d.RelDist(x, y)
			if rel >= 1 {
				continue
			}

			f, err := flat.FlatAt(rel)
			if err != nil {
				errs[row] = fmt.Errorf("correct (%d,%d): %w", x, y, err)
				return
			}

			i := out.PixOffset(x, y)
			orig := float64(out.Pix[i])
			v := 0.0
			switch {
			case f > 0: v = orig / f * float64(bias)
			case orig > 0: v = 255
			}
			out.Pix[i] = uint8(emath.Clip(math.Round(v), 0, 255))
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}
