package geo

import "errors"

// ErrOutsideBall is returned by ValidateProjection for coordinates at or
// past the unit-ball boundary. Projection entry points never return it:
// they repair such inputs instead.
var ErrOutsideBall = errors.New("coordinates outside the unit ball")
