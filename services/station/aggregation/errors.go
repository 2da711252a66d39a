package aggregation

import "errors"

// ErrNilSampleSource signals that a nil sample source was provided
var ErrNilSampleSource = errors.New("nil sample source")

// ErrNilValueAccessor signals that a nil cross-metric accessor was provided
var ErrNilValueAccessor = errors.New("nil value accessor")

// ErrInvalidInterval signals that a window interval is not strictly positive
var ErrInvalidInterval = errors.New("invalid window interval")
