package aggregation

import (
	"time"

	"github.com/iulianpascalau/weather-station/services/station/common"
	"github.com/multiversx/mx-chain-core-go/core/check"
)

const windName = "wind"

// ArgsWindAggregator is the DTO used to create a new wind aggregator
type ArgsWindAggregator struct {
	Source             SampleSource
	Interval           time.Duration
	AmbientTemperature ValueAccessor
}

type windState struct {
	speed    extremes
	dirAtMax float64
	dirAtMin float64
}

func newWindState() windState {
	return windState{
		speed: newExtremes(),
	}
}

func (state *windState) summary() common.Summary {
	if state.speed.isEmpty() {
		return common.Summary{}
	}

	return common.NewSummary(
		common.Field{Name: common.FieldWindSpeedMax, Value: state.speed.max},
		common.Field{Name: common.FieldWindSpeedMin, Value: state.speed.min},
		common.Field{Name: common.FieldWindDirAtMax, Value: state.dirAtMax},
		common.Field{Name: common.FieldWindDirAtMin, Value: state.dirAtMin},
	)
}

// windAggregator tracks the speed extremes of the window and the direction captured when each
// extremum was set
type windAggregator struct {
	source             SampleSource
	ambientTemperature ValueAccessor
	window             *window

	state       windState
	lastWindow  common.Summary
	hasLast     bool
	latestSpeed float64
	faulted     bool
}

// NewWindAggregator creates a new wind aggregator
func NewWindAggregator(args ArgsWindAggregator) (*windAggregator, error) {
	if check.IfNil(args.Source) {
		return nil, ErrNilSampleSource
	}
	if args.AmbientTemperature == nil {
		return nil, ErrNilValueAccessor
	}

	w, err := newWindow(args.Interval)
	if err != nil {
		return nil, err
	}

	return &windAggregator{
		source:             args.Source,
		ambientTemperature: args.AmbientTemperature,
		window:             w,
		state:              newWindState(),
	}, nil
}

// Update reads the anemometer, resets the window if expired and applies the sample
func (w *windAggregator) Update(now time.Time) {
	sample := w.source.Read()

	if w.window.expired(now) {
		w.lastWindow = w.state.summary()
		w.hasLast = true
		w.state = newWindState()
		w.window.advance(now)
	}

	speed, direction := sample.Value, sample.Aux
	newMax, newMin := w.state.speed.observe(speed)
	if newMax {
		w.state.dirAtMax = direction
	}
	if newMin {
		w.state.dirAtMin = direction
	}

	w.latestSpeed = speed
	w.faulted = sample.Fault ||
		!common.WindSpeedEnvelope.Contains(speed) ||
		!common.WindDirectionEnvelope.Contains(direction) ||
		!common.OperatingTemperatureEnvelope.Contains(w.ambientTemperature())
}

// Snapshot returns the extremes of the in-progress window
func (w *windAggregator) Snapshot() common.Summary {
	return w.state.summary()
}

// LastWindow returns the summary emitted by the last reset
func (w *windAggregator) LastWindow() (common.Summary, bool) {
	return w.lastWindow, w.hasLast
}

// LatestSpeed returns the most recent wind speed reading
func (w *windAggregator) LatestSpeed() float64 {
	return w.latestSpeed
}

// IsFaulted returns true if the last update found a range or a cross-metric fault
func (w *windAggregator) IsFaulted() bool {
	return w.faulted
}

// Name returns the metric name
func (w *windAggregator) Name() string {
	return windName
}

// FieldNames returns all the field names this aggregator can produce
func (w *windAggregator) FieldNames() []string {
	return []string{
		common.FieldWindSpeedMax,
		common.FieldWindSpeedMin,
		common.FieldWindDirAtMax,
		common.FieldWindDirAtMin,
	}
}

// IsInterfaceNil returns true if the value under the interface is nil
func (w *windAggregator) IsInterfaceNil() bool {
	return w == nil
}
