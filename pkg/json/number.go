package json

import "github.com/shapestone/jsoncodec/internal/numlex"

// Number is the tagged union component D/I requires: an exact int64 or
// uint64 when the literal had no fraction/exponent and fit, otherwise a
// float64. Defined in internal/numlex so the parser can produce one
// without importing this package; re-exported here as the public type.
type Number = numlex.Number

// NumberFromInt64 and friends let callers build a Value around an exact
// integer instead of routing through float64 and risking precision loss.
func NumberFromInt64(v int64) Number     { return numlex.Int64(v) }
func NumberFromUint64(v uint64) Number   { return numlex.Uint64(v) }
func NumberFromFloat64(v float64) Number { return numlex.Float64(v) }
