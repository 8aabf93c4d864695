package limb

import "errors"

// Callers test for these with errors.Is; the stage functions wrap
// them with some context.
var(
	ErrInvalidInput    = errors.New("invalid input")     // e.g. a colour raster
	ErrNotFound        = errors.New("not found")         // no disk in the raster
	ErrInvalidArgument = errors.New("invalid argument")
	ErrState           = errors.New("invalid state")     // model used before it is ready
	ErrDomain          = errors.New("outside domain")    // relative distance outside [0,1]
)
