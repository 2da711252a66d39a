package aggregation

import (
	"time"

	"github.com/iulianpascalau/weather-station/services/station/common"
	"github.com/multiversx/mx-chain-core-go/core/check"
)

const visibilityName = "visibility"

// ArgsVisibilityAggregator is the DTO used to create a new visibility aggregator
type ArgsVisibilityAggregator struct {
	Source    SampleSource
	Interval  time.Duration
	WindSpeed ValueAccessor
}

type visibilityAggregator struct {
	source    SampleSource
	windSpeed ValueAccessor
	window    *window

	readings   extremes
	lastWindow common.Summary
	hasLast    bool
	faulted    bool
}

// NewVisibilityAggregator creates a new visibility aggregator
func NewVisibilityAggregator(args ArgsVisibilityAggregator) (*visibilityAggregator, error) {
	if check.IfNil(args.Source) {
		return nil, ErrNilSampleSource
	}
	if args.WindSpeed == nil {
		return nil, ErrNilValueAccessor
	}

	w, err := newWindow(args.Interval)
	if err != nil {
		return nil, err
	}

	return &visibilityAggregator{
		source:    args.Source,
		windSpeed: args.WindSpeed,
		window:    w,
		readings:  newExtremes(),
	}, nil
}

// Update reads the visibility meter, resets the window if expired and applies the sample
func (v *visibilityAggregator) Update(now time.Time) {
	sample := v.source.Read()

	if v.window.expired(now) {
		v.lastWindow = v.summary()
		v.hasLast = true
		v.readings = newExtremes()
		v.window.advance(now)
	}

	v.readings.observe(sample.Value)
	v.faulted = sample.Fault ||
		!common.VisibilityEnvelope.Contains(sample.Value) ||
		v.windSpeed() > common.VisibilityWindLimit
}

func (v *visibilityAggregator) summary() common.Summary {
	if v.readings.isEmpty() {
		return common.Summary{}
	}

	return common.NewSummary(
		common.Field{Name: common.FieldVisibilityMax, Value: v.readings.max},
		common.Field{Name: common.FieldVisibilityMin, Value: v.readings.min},
	)
}

// Snapshot returns the extremes of the in-progress window
func (v *visibilityAggregator) Snapshot() common.Summary {
	return v.summary()
}

// LastWindow returns the summary emitted by the last reset
func (v *visibilityAggregator) LastWindow() (common.Summary, bool) {
	return v.lastWindow, v.hasLast
}

// IsFaulted returns true if the last update found a range or a cross-metric fault
func (v *visibilityAggregator) IsFaulted() bool {
	return v.faulted
}

// Name returns the metric name
func (v *visibilityAggregator) Name() string {
	return visibilityName
}

// FieldNames returns all the field names this aggregator can produce
func (v *visibilityAggregator) FieldNames() []string {
	return []string{common.FieldVisibilityMax, common.FieldVisibilityMin}
}

// IsInterfaceNil returns true if the value under the interface is nil
func (v *visibilityAggregator) IsInterfaceNil() bool {
	return v == nil
}
