package factory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iulianpascalau/weather-station/services/station/aggregation"
	"github.com/iulianpascalau/weather-station/services/station/api"
	"github.com/iulianpascalau/weather-station/services/station/config"
	"github.com/iulianpascalau/weather-station/services/station/engine"
	"github.com/iulianpascalau/weather-station/services/station/metrics"
	"github.com/iulianpascalau/weather-station/services/station/reporter"
	"github.com/iulianpascalau/weather-station/services/station/sensors"
	"github.com/iulianpascalau/weather-station/services/station/station"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("factory")

type sampleSources struct {
	thermometer     aggregation.SampleSource
	anemometer      aggregation.SampleSource
	rainGauge       aggregation.SampleSource
	rainDetector    aggregation.SampleSource
	visibilityMeter aggregation.SampleSource
}

type componentsHandler struct {
	driver    SourceDriver
	station   Station
	metrics   MetricsHandler
	reporter  engine.Reporter
	engine    Engine
	server    Server
	mutCancel sync.Mutex
	cancel    func()
}

// NewComponentsHandler creates a new components handler
func NewComponentsHandler(
	secret string,
	cfg config.Config,
) (*componentsHandler, error) {
	sources, driver, err := createSources(cfg.Sources)
	if err != nil {
		return nil, err
	}

	st, err := createStation(cfg, sources)
	if err != nil {
		return nil, err
	}

	promMetrics := metrics.NewPrometheusMetrics(cfg.StationID)

	rep, err := createReporter(cfg, secret)
	if err != nil {
		return nil, err
	}

	eng, err := engine.NewStationEngine(engine.ArgsStationEngine{
		Station:        st,
		Reporter:       rep,
		Metrics:        promMetrics,
		TickInterval:   cfg.TickInterval(),
		ReportInterval: cfg.ReportInterval(),
		ReportTimeout:  cfg.ReportTimeout(),
		BufferSize:     cfg.ReportBufferSize,
	})
	if err != nil {
		return nil, err
	}

	var srv Server
	if len(cfg.StatusListenAddress) > 0 {
		srv, err = api.NewServer(api.ArgsWebServer{
			ListenAddress:  cfg.StatusListenAddress,
			Snapshots:      eng,
			Station:        st,
			MetricsHandler: promMetrics.Handler(),
			GeneralHandler: api.CORSMiddleware,
		})
		if err != nil {
			return nil, err
		}
	}

	return &componentsHandler{
		driver:   driver,
		station:  st,
		metrics:  promMetrics,
		reporter: rep,
		engine:   eng,
		server:   srv,
	}, nil
}

func createSources(cfg config.SourcesConfig) (sampleSources, SourceDriver, error) {
	switch cfg.Type {
	case config.SourceSimulated:
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		log.Debug("using simulated sensors", "seed", seed)

		suite := sensors.NewSimulatedSuite(seed)
		return sampleSources{
			thermometer:     suite.Thermometer(),
			anemometer:      suite.Anemometer(),
			rainGauge:       suite.RainGauge(),
			rainDetector:    suite.RainDetector(),
			visibilityMeter: suite.VisibilityMeter(),
		}, nil, nil
	case config.SourceHTTP:
		return createBridgeSources(cfg)
	default:
		return sampleSources{}, nil, fmt.Errorf("unknown sources type %s", cfg.Type)
	}
}

func createBridgeSources(cfg config.SourcesConfig) (sampleSources, SourceDriver, error) {
	bridge, err := sensors.NewHTTPBridge(sensors.ArgsHTTPBridge{
		URL:          cfg.URL,
		Timeout:      time.Duration(cfg.TimeoutInMilliseconds) * time.Millisecond,
		PollInterval: time.Duration(cfg.PollInMilliseconds) * time.Millisecond,
	})
	if err != nil {
		return sampleSources{}, nil, err
	}

	newSource := func(name string, paths config.SourcePathConfig, discrete bool) (aggregation.SampleSource, error) {
		return bridge.Source(name, sensors.SourcePaths{
			Value:    paths.Value,
			Aux:      paths.Aux,
			Fault:    paths.Fault,
			Discrete: discrete,
		})
	}

	sources := sampleSources{}
	sources.thermometer, err = newSource("thermometer", cfg.Thermometer, false)
	if err != nil {
		return sampleSources{}, nil, err
	}
	sources.anemometer, err = newSource("anemometer", cfg.Anemometer, false)
	if err != nil {
		return sampleSources{}, nil, err
	}
	sources.rainGauge, err = newSource("rain gauge", cfg.RainGauge, true)
	if err != nil {
		return sampleSources{}, nil, err
	}
	sources.rainDetector, err = newSource("rain detector", cfg.RainDetector, false)
	if err != nil {
		return sampleSources{}, nil, err
	}
	sources.visibilityMeter, err = newSource("visibility meter", cfg.VisibilityMeter, false)
	if err != nil {
		return sampleSources{}, nil, err
	}

	return sources, bridge, nil
}

// createStation builds the aggregators in their update order. Wind and visibility read the values
// produced earlier in the same tick by the temperature and wind aggregators
func createStation(cfg config.Config, sources sampleSources) (Station, error) {
	rain, err := aggregation.NewRainAggregator(aggregation.ArgsRainAggregator{
		Gauge:         sources.rainGauge,
		Detector:      sources.rainDetector,
		ShortInterval: config.Duration(cfg.Windows.RainShortInSeconds),
		HourInterval:  config.Duration(cfg.Windows.RainHourInSeconds),
	})
	if err != nil {
		return nil, err
	}

	temperature, err := aggregation.NewTemperatureAggregator(sources.thermometer)
	if err != nil {
		return nil, err
	}

	wind, err := aggregation.NewWindAggregator(aggregation.ArgsWindAggregator{
		Source:             sources.anemometer,
		Interval:           config.Duration(cfg.Windows.WindInSeconds),
		AmbientTemperature: temperature.Latest,
	})
	if err != nil {
		return nil, err
	}

	visibility, err := aggregation.NewVisibilityAggregator(aggregation.ArgsVisibilityAggregator{
		Source:    sources.visibilityMeter,
		Interval:  config.Duration(cfg.Windows.VisibilityInSeconds),
		WindSpeed: wind.LatestSpeed,
	})
	if err != nil {
		return nil, err
	}

	return station.NewStation(cfg.StationID, rain, temperature, wind, visibility)
}

func createReporter(cfg config.Config, secret string) (engine.Reporter, error) {
	switch cfg.Reporter.Type {
	case config.ReporterHTTP:
		return reporter.NewHTTPReporter(reporter.ArgsHTTPReporter{
			Endpoint:          cfg.Reporter.Endpoint,
			StationID:         cfg.StationID,
			Secret:            secret,
			Timeout:           cfg.ReportTimeout(),
			FailuresToOpen:    cfg.Reporter.FailuresToOpenCircuit,
			OpenStateDuration: config.Duration(cfg.Reporter.OpenCircuitInSeconds),
		})
	case config.ReporterMQTT:
		return reporter.NewMQTTReporter(reporter.ArgsMQTTReporter{
			BrokerAddress: cfg.Reporter.Endpoint,
			TopicPrefix:   cfg.Reporter.TopicPrefix,
			StationID:     cfg.StationID,
			Secret:        secret,
		})
	case config.ReporterLog:
		return reporter.NewLogReporter(), nil
	default:
		return nil, fmt.Errorf("unknown reporter type %s", cfg.Reporter.Type)
	}
}

// GetStation returns the station component
func (ch *componentsHandler) GetStation() Station {
	return ch.station
}

// GetMetrics returns the runtime metrics component
func (ch *componentsHandler) GetMetrics() MetricsHandler {
	return ch.metrics
}

// GetReporter returns the reporter component
func (ch *componentsHandler) GetReporter() engine.Reporter {
	return ch.reporter
}

// GetEngine returns the engine component
func (ch *componentsHandler) GetEngine() Engine {
	return ch.engine
}

// GetServer returns the status server. Nil if no listen address was configured
func (ch *componentsHandler) GetServer() Server {
	return ch.server
}

// GetSourceDriver returns the component polling the remote sensors. Nil for the simulated sensors
func (ch *componentsHandler) GetSourceDriver() SourceDriver {
	return ch.driver
}

// Start starts the inner components
func (ch *componentsHandler) Start() {
	ch.mutCancel.Lock()
	defer ch.mutCancel.Unlock()

	if ch.cancel != nil {
		return
	}

	var ctx context.Context
	ctx, ch.cancel = context.WithCancel(context.Background())

	if !check.IfNil(ch.driver) {
		ch.driver.Start(ctx)
	}
	ch.engine.Start(ctx)
	if !check.IfNil(ch.server) {
		ch.server.Start()
	}
}

// Close closes the inner components
func (ch *componentsHandler) Close() {
	ch.mutCancel.Lock()
	defer ch.mutCancel.Unlock()

	if ch.cancel != nil {
		ch.cancel()
		ch.cancel = nil
	}

	if !check.IfNil(ch.server) {
		log.LogIfError(ch.server.Close())
	}
	log.LogIfError(ch.engine.Close())
	if !check.IfNil(ch.driver) {
		log.LogIfError(ch.driver.Close())
	}
	log.LogIfError(ch.reporter.Close())
}
