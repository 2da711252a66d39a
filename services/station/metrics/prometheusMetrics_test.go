package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iulianpascalau/weather-station/services/station/common"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics_Counters(t *testing.T) {
	t.Parallel()

	m := NewPrometheusMetrics("ST-1")
	assert.False(t, m.IsInterfaceNil())

	m.ObserveTick(time.Millisecond)
	m.ObserveTick(2 * time.Millisecond)
	m.IncReportsSent()
	m.IncReportsFailed()
	m.IncReportsFailed()
	m.IncReportsDropped()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ticks))
	assert.Equal(t, 1, testutil.CollectAndCount(m.tickDuration))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reportsSent))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.reportsFailed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reportsDropped))
}

func TestPrometheusMetrics_SetSnapshot(t *testing.T) {
	t.Parallel()

	m := NewPrometheusMetrics("ST-1")
	m.SetSnapshot(common.StationSnapshot{
		StationID: "ST-1",
		Faulted:   true,
		Fields: []common.Field{
			{Name: common.FieldTemperature, Value: 21.5},
			{Name: common.FieldVisibilityMax, Value: 900},
		},
	}, map[string]bool{"temperature": false, "wind": true})

	assert.Equal(t, 21.5, testutil.ToFloat64(m.fieldValues.WithLabelValues(common.FieldTemperature)))
	assert.Equal(t, 900.0, testutil.ToFloat64(m.fieldValues.WithLabelValues(common.FieldVisibilityMax)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.metricFaults.WithLabelValues("temperature")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.metricFaults.WithLabelValues("wind")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stationFaulted))
}

func TestPrometheusMetrics_Handler(t *testing.T) {
	t.Parallel()

	m := NewPrometheusMetrics("ST-1")
	m.IncReportsSent()

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `station_reports_sent_total{station="ST-1"} 1`)
}

func TestPrometheusMetrics_SetSnapshotRemovesMissingFields(t *testing.T) {
	t.Parallel()

	m := NewPrometheusMetrics("ST-1")
	m.SetSnapshot(common.StationSnapshot{
		Fields: []common.Field{
			{Name: common.FieldTemperature, Value: 21.5},
			{Name: common.FieldWindSpeedMax, Value: 12},
			{Name: common.FieldWindSpeedMin, Value: 3},
		},
	}, nil)
	assert.Equal(t, 3, testutil.CollectAndCount(m.fieldValues))

	m.SetSnapshot(common.StationSnapshot{
		Fields: []common.Field{
			{Name: common.FieldTemperature, Value: 22},
		},
	}, nil)
	assert.Equal(t, 1, testutil.CollectAndCount(m.fieldValues))
	assert.Equal(t, 22.0, testutil.ToFloat64(m.fieldValues.WithLabelValues(common.FieldTemperature)))
}
