package aggregation

import (
	"time"

	"github.com/iulianpascalau/weather-station/services/station/common"
	"github.com/multiversx/mx-chain-core-go/core/check"
)

const temperatureName = "temperature"

type temperatureAggregator struct {
	source     SampleSource
	latest     float64
	hasReading bool
	faulted    bool
}

// NewTemperatureAggregator creates a pass-through aggregator that always exposes the latest reading
func NewTemperatureAggregator(source SampleSource) (*temperatureAggregator, error) {
	if check.IfNil(source) {
		return nil, ErrNilSampleSource
	}

	return &temperatureAggregator{
		source: source,
	}, nil
}

// Update reads the thermometer
func (t *temperatureAggregator) Update(_ time.Time) {
	sample := t.source.Read()

	t.latest = sample.Value
	t.hasReading = true
	t.faulted = sample.Fault || !common.TemperatureEnvelope.Contains(sample.Value)
}

// Snapshot returns the latest reading. It is empty before the first update
func (t *temperatureAggregator) Snapshot() common.Summary {
	if !t.hasReading {
		return common.Summary{}
	}

	return common.NewSummary(common.Field{Name: common.FieldTemperature, Value: t.latest})
}

// LastWindow returns false, the temperature is not windowed
func (t *temperatureAggregator) LastWindow() (common.Summary, bool) {
	return common.Summary{}, false
}

// Latest returns the most recent reading. Used as the ambient temperature by other metrics
func (t *temperatureAggregator) Latest() float64 {
	return t.latest
}

// IsFaulted returns true if the last reading was faulted or outside the operating envelope
func (t *temperatureAggregator) IsFaulted() bool {
	return t.faulted
}

// Name returns the metric name
func (t *temperatureAggregator) Name() string {
	return temperatureName
}

// FieldNames returns all the field names this aggregator can produce
func (t *temperatureAggregator) FieldNames() []string {
	return []string{common.FieldTemperature}
}

// IsInterfaceNil returns true if the value under the interface is nil
func (t *temperatureAggregator) IsInterfaceNil() bool {
	return t == nil
}
