package hyperball

import (
	"github.com/hupe1980/hyperball/geo"
	"github.com/hupe1980/hyperball/gyro"
	"github.com/hupe1980/hyperball/payload"
)

// DimensionMismatchError indicates operands of unequal length passed to a
// binary operation. Always a caller bug; never retried.
type DimensionMismatchError = gyro.DimensionMismatchError

var (
	// ErrInvalidFormat indicates a payload buffer that failed magic-number
	// or size validation. The buffer must be discarded.
	ErrInvalidFormat = payload.ErrInvalidFormat

	// ErrSchemaVersion indicates a decodable payload from a different
	// schema version. Decoding proceeded best-effort; see payload.Decode.
	ErrSchemaVersion = payload.ErrSchemaVersion

	// ErrOutsideBall is the validation error for coordinates at or past
	// the unit-ball boundary. Projection entry points repair such inputs
	// instead of returning it.
	ErrOutsideBall = geo.ErrOutsideBall
)
