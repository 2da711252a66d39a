package aggregation

import (
	"fmt"
	"time"

	"github.com/iulianpascalau/weather-station/services/station/common"
	"github.com/multiversx/mx-chain-core-go/core/check"
)

const rainName = "rain"

// ArgsRainAggregator is the DTO used to create a new rain aggregator
type ArgsRainAggregator struct {
	Gauge         SampleSource
	Detector      SampleSource
	ShortInterval time.Duration
	HourInterval  time.Duration
}

// rainAggregator keeps three accumulators fed by the same pulse stream: a short window,
// an hour window and a counter of the rainfall since the current rain started
type rainAggregator struct {
	gauge    SampleSource
	detector SampleSource

	short      *window
	hour       *window
	shortSum   float64
	hourSum    float64
	cumulative float64

	lastShort    float64
	lastHour     float64
	hasLastShort bool
	hasLastHour  bool

	faulted bool
}

// NewRainAggregator creates a new rain aggregator
func NewRainAggregator(args ArgsRainAggregator) (*rainAggregator, error) {
	if check.IfNil(args.Gauge) {
		return nil, fmt.Errorf("%w for the rain gauge", ErrNilSampleSource)
	}
	if check.IfNil(args.Detector) {
		return nil, fmt.Errorf("%w for the rain detector", ErrNilSampleSource)
	}

	short, err := newWindow(args.ShortInterval)
	if err != nil {
		return nil, fmt.Errorf("%w for the rain short window", err)
	}
	hour, err := newWindow(args.HourInterval)
	if err != nil {
		return nil, fmt.Errorf("%w for the rain hour window", err)
	}

	return &rainAggregator{
		gauge:    args.Gauge,
		detector: args.Detector,
		short:    short,
		hour:     hour,
	}, nil
}

// Update reads the gauge and the detector, resets the expired windows and applies the pulse, if any
func (r *rainAggregator) Update(now time.Time) {
	gaugeSample := r.gauge.Read()
	detectorSample := r.detector.Read()

	r.faulted = gaugeSample.Fault || detectorSample.Fault

	if r.short.expired(now) {
		r.lastShort = r.shortSum
		r.hasLastShort = true
		r.shortSum = 0
		r.short.advance(now)
	}
	if r.hour.expired(now) {
		r.lastHour = r.hourSum
		r.hasLastHour = true
		r.hourSum = 0
		r.hour.advance(now)
	}

	if !detectorSample.IsSet() {
		r.cumulative = 0
		return
	}
	if !gaugeSample.IsSet() {
		return
	}

	r.shortSum += common.RainPulseIncrement
	r.hourSum += common.RainPulseIncrement
	r.cumulative += common.RainPulseIncrement
}

// Snapshot returns the in-progress accumulators
func (r *rainAggregator) Snapshot() common.Summary {
	return common.NewSummary(
		common.Field{Name: common.FieldRainPerMin, Value: r.shortSum},
		common.Field{Name: common.FieldRainPerHour, Value: r.hourSum},
		common.Field{Name: common.FieldRainCumulative, Value: r.cumulative},
	)
}

// LastWindow returns the totals of the most recently completed short and hour windows
func (r *rainAggregator) LastWindow() (common.Summary, bool) {
	fields := make([]common.Field, 0, 2)
	if r.hasLastShort {
		fields = append(fields, common.Field{Name: common.FieldRainPerMin, Value: r.lastShort})
	}
	if r.hasLastHour {
		fields = append(fields, common.Field{Name: common.FieldRainPerHour, Value: r.lastHour})
	}

	return common.NewSummary(fields...), len(fields) > 0
}

// IsFaulted returns true if either the gauge or the detector reported a fault on the last update
func (r *rainAggregator) IsFaulted() bool {
	return r.faulted
}

// Name returns the metric name
func (r *rainAggregator) Name() string {
	return rainName
}

// FieldNames returns all the field names this aggregator can produce
func (r *rainAggregator) FieldNames() []string {
	return []string{common.FieldRainPerMin, common.FieldRainPerHour, common.FieldRainCumulative}
}

// IsInterfaceNil returns true if the value under the interface is nil
func (r *rainAggregator) IsInterfaceNil() bool {
	return r == nil
}
