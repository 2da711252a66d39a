package factory

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iulianpascalau/weather-station/services/station/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() config.Config {
	cfg := config.Config{
		StationID:                  "ST-1",
		TickIntervalInMilliseconds: 50,
		ReportIntervalInSeconds:    1,
		Sources: config.SourcesConfig{
			Seed: 7,
		},
	}
	cfg.ApplyDefaults()

	return cfg
}

func TestNewComponentsHandler(t *testing.T) {
	t.Parallel()

	t.Run("simulated sources with log reporter should work", func(t *testing.T) {
		t.Parallel()

		handler, err := NewComponentsHandler("", createTestConfig())
		assert.NotNil(t, handler)
		assert.Nil(t, err)
		assert.Nil(t, handler.GetSourceDriver())
		assert.Nil(t, handler.GetServer())

		handler.Close()
	})
	t.Run("unknown reporter should error", func(t *testing.T) {
		t.Parallel()

		cfg := createTestConfig()
		cfg.Reporter.Type = "ftp"

		handler, err := NewComponentsHandler("", cfg)
		assert.Nil(t, handler)
		assert.Contains(t, err.Error(), "unknown reporter type ftp")
	})
	t.Run("unknown sources should error", func(t *testing.T) {
		t.Parallel()

		cfg := createTestConfig()
		cfg.Sources.Type = "serial"

		handler, err := NewComponentsHandler("", cfg)
		assert.Nil(t, handler)
		assert.Contains(t, err.Error(), "unknown sources type serial")
	})
	t.Run("http sources without paths should error", func(t *testing.T) {
		t.Parallel()

		cfg := createTestConfig()
		cfg.Sources.Type = config.SourceHTTP
		cfg.Sources.URL = "http://127.0.0.1:1"

		handler, err := NewComponentsHandler("", cfg)
		assert.Nil(t, handler)
		assert.Contains(t, err.Error(), "thermometer")
	})
	t.Run("invalid tick interval should error", func(t *testing.T) {
		t.Parallel()

		cfg := createTestConfig()
		cfg.TickIntervalInMilliseconds = 1000

		handler, err := NewComponentsHandler("", cfg)
		assert.Nil(t, handler)
		assert.NotNil(t, err)
	})
}

func TestComponentsHandlerMethods(t *testing.T) {
	t.Parallel()

	bridge := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"t":21.5,"w":{"s":12,"d":90},"g":0,"d":0,"v":400}`))
	}))
	defer bridge.Close()

	cfg := createTestConfig()
	cfg.StatusListenAddress = "127.0.0.1:0"
	cfg.Reporter.Type = config.ReporterHTTP
	cfg.Reporter.Endpoint = "http://127.0.0.1:1/report"
	cfg.Sources = config.SourcesConfig{
		Type:                  config.SourceHTTP,
		URL:                   bridge.URL,
		TimeoutInMilliseconds: 200,
		PollInMilliseconds:    20,
		Thermometer:           config.SourcePathConfig{Value: "t"},
		Anemometer:            config.SourcePathConfig{Value: "w.s", Aux: "w.d"},
		RainGauge:             config.SourcePathConfig{Value: "g"},
		RainDetector:          config.SourcePathConfig{Value: "d"},
		VisibilityMeter:       config.SourcePathConfig{Value: "v"},
	}

	handler, err := NewComponentsHandler("secret", cfg)
	require.Nil(t, err)

	assert.Equal(t, "*station.station", fmt.Sprintf("%T", handler.GetStation()))
	assert.Equal(t, "*metrics.prometheusMetrics", fmt.Sprintf("%T", handler.GetMetrics()))
	assert.Equal(t, "*reporter.httpReporter", fmt.Sprintf("%T", handler.GetReporter()))
	assert.Equal(t, "*engine.stationEngine", fmt.Sprintf("%T", handler.GetEngine()))
	assert.Equal(t, "*api.server", fmt.Sprintf("%T", handler.GetServer()))
	assert.Equal(t, "*sensors.httpBridge", fmt.Sprintf("%T", handler.GetSourceDriver()))

	handler.Start()
	handler.Start()

	assert.Eventually(t, func() bool {
		snapshot, found := handler.GetEngine().LatestSnapshot()
		if !found {
			return false
		}
		value, found := snapshot.Get("temperature")

		return found && value == 21.5
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Get("http://" + handler.GetServer().Address() + "/api/health")
	require.Nil(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	handler.Close()
	handler.Close()
}

func TestComponentsHandler_MQTTReporter(t *testing.T) {
	t.Parallel()

	cfg := createTestConfig()
	cfg.Reporter.Type = config.ReporterMQTT
	cfg.Reporter.Endpoint = "127.0.0.1:1883"

	handler, err := NewComponentsHandler("secret", cfg)
	require.Nil(t, err)
	assert.Equal(t, "*reporter.mqttReporter", fmt.Sprintf("%T", handler.GetReporter()))
	assert.Nil(t, handler.GetSourceDriver())

	handler.Close()
}
