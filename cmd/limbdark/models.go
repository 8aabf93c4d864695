package main

import(
	"fmt"
	"sort"
	"strings"

	"github.com/abworrall/limbdark/pkg/limb"
)

var models = map[string]func() limb.Model{
	"polynomial": func() limb.Model { return limb.NewPolynomial() },
	"linear":     func() limb.Model { return limb.NewLinear() },
}

// Published curves that a fit can be compared against. They come with
// their coefficients already set, and no centre intensity.
var referenceModels = map[string]struct{
	Label string
	New   func() limb.Model
}{
	"poly-550": {"550nm", func() limb.Model { return limb.NewPolynomial(0.3, 0.93, -0.23) }},
}

func ListModels() string          { return listKeys(models) }
func ListReferenceModels() string { return listKeys(referenceModels) }

func listKeys[V any](m map[string]V) string {
	keys := []string{}
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

func GetModel(name string) (limb.Model, error) {
	if f, exists := models[name]; exists {
		return f(), nil
	}
	return nil, fmt.Errorf("no model named '%s' (try %s): %w", name, ListModels(), limb.ErrInvalidArgument)
}

// GetReferenceModel returns the model and the label to plot it with.
func GetReferenceModel(name string) (limb.Model, string, error) {
	if ref, exists := referenceModels[name]; exists {
		return ref.New(), ref.Label, nil
	}
	return nil, "", fmt.Errorf("no reference model named '%s' (try %s): %w", name, ListReferenceModels(), limb.ErrInvalidArgument)
}
