package aggregation

import (
	"fmt"
	"math"
	"time"
)

// window tracks the boundaries of a rolling interval. It is anchored by the first observed time and
// always advances by whole intervals so a late tick does not shift the following windows
type window struct {
	interval time.Duration
	start    time.Time
	anchored bool
}

func newWindow(interval time.Duration) (*window, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, interval)
	}

	return &window{
		interval: interval,
	}, nil
}

// expired returns true if the window reached its interval at the provided time
func (w *window) expired(now time.Time) bool {
	if !w.anchored {
		w.start = now
		w.anchored = true
		return false
	}

	return now.Sub(w.start) >= w.interval
}

// advance moves the window start past all the elapsed intervals
func (w *window) advance(now time.Time) {
	elapsed := now.Sub(w.start)
	if elapsed < w.interval {
		return
	}

	periods := elapsed / w.interval
	w.start = w.start.Add(periods * w.interval)
}

// extremes holds a running min/max pair seeded with the absorbing elements
type extremes struct {
	min   float64
	max   float64
	count int
}

func newExtremes() extremes {
	return extremes{
		min: math.Inf(1),
		max: math.Inf(-1),
	}
}

// observe applies the value and reports which extremum it set. Comparisons are strict, so
// a value equal to the current extremum does not replace it
func (e *extremes) observe(value float64) (newMax bool, newMin bool) {
	if math.IsNaN(value) {
		return false, false
	}

	e.count++
	if value > e.max {
		e.max = value
		newMax = true
	}
	if value < e.min {
		e.min = value
		newMin = true
	}

	return newMax, newMin
}

func (e *extremes) isEmpty() bool {
	return e.count == 0
}
