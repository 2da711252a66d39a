package engine

import "errors"

// ErrNilStation signals that a nil station was provided
var ErrNilStation = errors.New("nil station")

// ErrNilReporter signals that a nil reporter was provided
var ErrNilReporter = errors.New("nil reporter")

// ErrNilMetricsHandler signals that a nil metrics handler was provided
var ErrNilMetricsHandler = errors.New("nil metrics handler")

// ErrInvalidTickInterval signals that the tick interval is not in the (0, 1s) range
var ErrInvalidTickInterval = errors.New("invalid tick interval")

// ErrInvalidReportInterval signals that the report interval is lower than 1s
var ErrInvalidReportInterval = errors.New("invalid report interval")

// ErrInvalidReportTimeout signals that the report timeout is not strictly positive
var ErrInvalidReportTimeout = errors.New("invalid report timeout")

// ErrInvalidBufferSize signals that the report buffer can not hold at least one snapshot
var ErrInvalidBufferSize = errors.New("invalid report buffer size")
