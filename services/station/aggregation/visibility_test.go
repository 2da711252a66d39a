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

func createMockVisibilityArgs(readings ...float64) ArgsVisibilityAggregator {
	samples := make([]common.Sample, 0, len(readings))
	for _, r := range readings {
		samples = append(samples, common.Sample{Value: r})
	}

	return ArgsVisibilityAggregator{
		Source:   testsCommon.NewSequenceSourceStub(samples...),
		Interval: 60 * time.Second,
		WindSpeed: func() float64 {
			return 10
		},
	}
}

func TestNewVisibilityAggregator(t *testing.T) {
	t.Parallel()

	t.Run("nil source should error", func(t *testing.T) {
		t.Parallel()

		args := createMockVisibilityArgs()
		args.Source = nil
		v, err := NewVisibilityAggregator(args)

		assert.True(t, v.IsInterfaceNil())
		assert.True(t, errors.Is(err, ErrNilSampleSource))
	})
	t.Run("nil wind speed should error", func(t *testing.T) {
		t.Parallel()

		args := createMockVisibilityArgs()
		args.WindSpeed = nil
		v, err := NewVisibilityAggregator(args)

		assert.True(t, v.IsInterfaceNil())
		assert.True(t, errors.Is(err, ErrNilValueAccessor))
	})
	t.Run("invalid interval should error", func(t *testing.T) {
		t.Parallel()

		args := createMockVisibilityArgs()
		args.Interval = -time.Minute
		v, err := NewVisibilityAggregator(args)

		assert.True(t, v.IsInterfaceNil())
		assert.True(t, errors.Is(err, ErrInvalidInterval))
	})
	t.Run("should work", func(t *testing.T) {
		t.Parallel()

		v, err := NewVisibilityAggregator(createMockVisibilityArgs())

		assert.False(t, v.IsInterfaceNil())
		assert.Nil(t, err)
		assert.Equal(t, "visibility", v.Name())
		assert.Equal(t, []string{"visibility_max", "visibility_min"}, v.FieldNames())
	})
}

func TestVisibilityAggregator_MinMax(t *testing.T) {
	t.Parallel()

	readings := []float64{500, 320, 870, 410, 870, 15}
	v, _ := NewVisibilityAggregator(createMockVisibilityArgs(readings...))

	for i := range readings {
		v.Update(testStartTime.Add(time.Duration(i) * time.Second))
	}

	snapshot := v.Snapshot()
	maxValue, found := snapshot.Get(common.FieldVisibilityMax)
	require.True(t, found)
	minValue, found := snapshot.Get(common.FieldVisibilityMin)
	require.True(t, found)
	assert.Equal(t, 870.0, maxValue)
	assert.Equal(t, 15.0, minValue)
}

func TestVisibilityAggregator_ResetKeepsOnlyNewReadings(t *testing.T) {
	t.Parallel()

	args := createMockVisibilityArgs(100, 900, 400, 600)
	args.Interval = 2 * time.Second
	v, _ := NewVisibilityAggregator(args)

	v.Update(testStartTime)
	v.Update(testStartTime.Add(time.Second))
	v.Update(testStartTime.Add(2 * time.Second))
	v.Update(testStartTime.Add(3 * time.Second))

	snapshot := v.Snapshot()
	maxValue, _ := snapshot.Get(common.FieldVisibilityMax)
	minValue, _ := snapshot.Get(common.FieldVisibilityMin)
	assert.Equal(t, 600.0, maxValue)
	assert.Equal(t, 400.0, minValue)

	last, hasLast := v.LastWindow()
	require.True(t, hasLast)
	maxValue, _ = last.Get(common.FieldVisibilityMax)
	minValue, _ = last.Get(common.FieldVisibilityMin)
	assert.Equal(t, 900.0, maxValue)
	assert.Equal(t, 100.0, minValue)
}

func TestVisibilityAggregator_Faults(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		sample    common.Sample
		windSpeed float64
		faulted   bool
	}{
		{name: "all in range", sample: common.Sample{Value: 500}, windSpeed: 10, faulted: false},
		{name: "wind at the limit", sample: common.Sample{Value: 500}, windSpeed: 50, faulted: false},
		{name: "wind above the limit", sample: common.Sample{Value: 500}, windSpeed: 50.1, faulted: true},
		{name: "reading below range", sample: common.Sample{Value: 9}, windSpeed: 10, faulted: true},
		{name: "reading above range", sample: common.Sample{Value: 1001}, windSpeed: 10, faulted: true},
		{name: "source fault", sample: common.Sample{Value: 500, Fault: true}, windSpeed: 10, faulted: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			args := createMockVisibilityArgs()
			args.Source = testsCommon.NewSequenceSourceStub(tc.sample)
			args.WindSpeed = func() float64 {
				return tc.windSpeed
			}
			v, _ := NewVisibilityAggregator(args)

			v.Update(testStartTime)
			assert.Equal(t, tc.faulted, v.IsFaulted())
		})
	}
}
