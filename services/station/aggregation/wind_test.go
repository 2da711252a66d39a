package aggregation

import (
	"errors"
	"testing"
	"time"

	"github.com/iulianpascalau/weather-station/services/station/common"
	"github.com/iulianpascalau/weather-station/services/station/testsCommon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createMockWindArgs(samples ...common.Sample) ArgsWindAggregator {
	return ArgsWindAggregator{
		Source:   testsCommon.NewSequenceSourceStub(samples...),
		Interval: 60 * time.Second,
		AmbientTemperature: func() float64 {
			return 20
		},
	}
}

func requireWindField(t *testing.T, summary common.Summary, name string) float64 {
	value, found := summary.Get(name)
	require.True(t, found, name)

	return value
}

func TestNewWindAggregator(t *testing.T) {
	t.Parallel()

	t.Run("nil source should error", func(t *testing.T) {
		t.Parallel()

		args := createMockWindArgs()
		args.Source = nil
		w, err := NewWindAggregator(args)

		assert.True(t, w.IsInterfaceNil())
		assert.True(t, errors.Is(err, ErrNilSampleSource))
	})
	t.Run("nil ambient temperature should error", func(t *testing.T) {
		t.Parallel()

		args := createMockWindArgs()
		args.AmbientTemperature = nil
		w, err := NewWindAggregator(args)

		assert.True(t, w.IsInterfaceNil())
		assert.True(t, errors.Is(err, ErrNilValueAccessor))
	})
	t.Run("invalid interval should error", func(t *testing.T) {
		t.Parallel()

		args := createMockWindArgs()
		args.Interval = 0
		w, err := NewWindAggregator(args)

		assert.True(t, w.IsInterfaceNil())
		assert.True(t, errors.Is(err, ErrInvalidInterval))
	})
	t.Run("should work", func(t *testing.T) {
		t.Parallel()

		w, err := NewWindAggregator(createMockWindArgs())

		assert.False(t, w.IsInterfaceNil())
		assert.Nil(t, err)
		assert.Equal(t, "wind", w.Name())
		assert.Len(t, w.FieldNames(), 4)
		assert.Zero(t, w.Snapshot().Len(), "an empty window does not expose the seeds")
	})
}

func TestWindAggregator_ExtremesWithDirection(t *testing.T) {
	t.Parallel()

	w, _ := NewWindAggregator(createMockWindArgs(
		common.Sample{Value: 10, Aux: 90},
		common.Sample{Value: 20, Aux: 45},
		common.Sample{Value: 5, Aux: 180},
	))

	for i := 0; i < 3; i++ {
		w.Update(testStartTime.Add(time.Duration(i) * time.Second))
	}

	snapshot := w.Snapshot()
	assert.Equal(t, 20.0, requireWindField(t, snapshot, common.FieldWindSpeedMax))
	assert.Equal(t, 45.0, requireWindField(t, snapshot, common.FieldWindDirAtMax))
	assert.Equal(t, 5.0, requireWindField(t, snapshot, common.FieldWindSpeedMin))
	assert.Equal(t, 180.0, requireWindField(t, snapshot, common.FieldWindDirAtMin))
	assert.Equal(t, 5.0, w.LatestSpeed())
}

func TestWindAggregator_TiesKeepFirstDirection(t *testing.T) {
	t.Parallel()

	w, _ := NewWindAggregator(createMockWindArgs(
		common.Sample{Value: 12, Aux: 10},
		common.Sample{Value: 30, Aux: 100},
		common.Sample{Value: 30, Aux: 200},
		common.Sample{Value: 12, Aux: 300},
	))

	for i := 0; i < 4; i++ {
		w.Update(testStartTime.Add(time.Duration(i) * time.Second))
	}

	snapshot := w.Snapshot()
	assert.Equal(t, 30.0, requireWindField(t, snapshot, common.FieldWindSpeedMax))
	assert.Equal(t, 100.0, requireWindField(t, snapshot, common.FieldWindDirAtMax))
	assert.Equal(t, 12.0, requireWindField(t, snapshot, common.FieldWindSpeedMin))
	assert.Equal(t, 10.0, requireWindField(t, snapshot, common.FieldWindDirAtMin))
}

func TestWindAggregator_Reset(t *testing.T) {
	t.Parallel()

	args := createMockWindArgs(
		common.Sample{Value: 10, Aux: 90},
		common.Sample{Value: 25, Aux: 45},
		common.Sample{Value: 8, Aux: 270},
	)
	args.Interval = 10 * time.Second
	w, _ := NewWindAggregator(args)

	w.Update(testStartTime)
	w.Update(testStartTime.Add(5 * time.Second))
	_, hasLast := w.LastWindow()
	assert.False(t, hasLast)

	w.Update(testStartTime.Add(10 * time.Second))

	last, hasLast := w.LastWindow()
	require.True(t, hasLast)
	assert.Equal(t, 25.0, requireWindField(t, last, common.FieldWindSpeedMax))
	assert.Equal(t, 10.0, requireWindField(t, last, common.FieldWindSpeedMin))

	snapshot := w.Snapshot()
	assert.Equal(t, 8.0, requireWindField(t, snapshot, common.FieldWindSpeedMax))
	assert.Equal(t, 8.0, requireWindField(t, snapshot, common.FieldWindSpeedMin))
	assert.Equal(t, 270.0, requireWindField(t, snapshot, common.FieldWindDirAtMax))
	assert.Equal(t, 270.0, requireWindField(t, snapshot, common.FieldWindDirAtMin))
}

func TestWindAggregator_Faults(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		sample  common.Sample
		ambient float64
		faulted bool
	}{
		{name: "all in range", sample: common.Sample{Value: 12, Aux: 180}, ambient: 20, faulted: false},
		{name: "speed below range", sample: common.Sample{Value: 0.3, Aux: 180}, ambient: 20, faulted: true},
		{name: "speed above range", sample: common.Sample{Value: 70.5, Aux: 180}, ambient: 20, faulted: true},
		{name: "direction out of range", sample: common.Sample{Value: 12, Aux: 361}, ambient: 20, faulted: true},
		{name: "ambient temperature too low", sample: common.Sample{Value: 12, Aux: 180}, ambient: -1, faulted: true},
		{name: "ambient temperature too high", sample: common.Sample{Value: 12, Aux: 180}, ambient: 51, faulted: true},
		{name: "source fault", sample: common.Sample{Value: 12, Aux: 180, Fault: true}, ambient: 20, faulted: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			args := createMockWindArgs(tc.sample)
			args.AmbientTemperature = func() float64 {
				return tc.ambient
			}
			w, _ := NewWindAggregator(args)

			w.Update(testStartTime)
			assert.Equal(t, tc.faulted, w.IsFaulted())
			assert.Equal(t, 4, w.Snapshot().Len(), "faults never discard the window state")
		})
	}
}
