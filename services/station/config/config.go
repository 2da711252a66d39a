package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Reporter types
const (
	ReporterHTTP = "http"
	ReporterMQTT = "mqtt"
	ReporterLog  = "log"
)

// Source types
const (
	SourceSimulated = "simulated"
	SourceHTTP      = "http"
)

// Defaults applied to the zero values of the config
const (
	DefaultTickIntervalInMilliseconds = 500
	DefaultReportIntervalInSeconds    = 5
	DefaultReportTimeoutInSeconds     = 3
	DefaultReportBufferSize           = 16
	DefaultRainShortInSeconds         = 10
	DefaultRainHourInSeconds          = 30
	DefaultWindInSeconds              = 60
	DefaultVisibilityInSeconds        = 60
	DefaultTopicPrefix                = "stations"
	DefaultSourceTimeoutInMillis      = 400
	DefaultSourcePollInMillis         = 500
)

// WindowsConfig holds the reset interval of every windowed metric
type WindowsConfig struct {
	RainShortInSeconds  uint32 `toml:"RainShortInSeconds" validate:"gt=0"`
	RainHourInSeconds   uint32 `toml:"RainHourInSeconds" validate:"gt=0"`
	WindInSeconds       uint32 `toml:"WindInSeconds" validate:"gt=0"`
	VisibilityInSeconds uint32 `toml:"VisibilityInSeconds" validate:"gt=0"`
}

// ReporterConfig defines where the snapshots are pushed
type ReporterConfig struct {
	Type                  string `toml:"Type" validate:"oneof=http mqtt log"`
	Endpoint              string `toml:"Endpoint" validate:"required_unless=Type log"`
	TopicPrefix           string `toml:"TopicPrefix"`
	FailuresToOpenCircuit uint32 `toml:"FailuresToOpenCircuit"`
	OpenCircuitInSeconds  uint32 `toml:"OpenCircuitInSeconds"`
}

// SourcePathConfig holds the JSON paths used to extract one sensor sample from the bridge response
type SourcePathConfig struct {
	Value string `toml:"Value"`
	Aux   string `toml:"Aux"`
	Fault string `toml:"Fault"`
}

// SourcesConfig defines where the raw samples come from
type SourcesConfig struct {
	Type                  string           `toml:"Type" validate:"oneof=simulated http"`
	Seed                  uint64           `toml:"Seed"`
	URL                   string           `toml:"URL" validate:"required_if=Type http"`
	TimeoutInMilliseconds uint32           `toml:"TimeoutInMilliseconds"`
	PollInMilliseconds    uint32           `toml:"PollInMilliseconds"`
	Thermometer           SourcePathConfig `toml:"Thermometer"`
	Anemometer            SourcePathConfig `toml:"Anemometer"`
	RainGauge             SourcePathConfig `toml:"RainGauge"`
	RainDetector          SourcePathConfig `toml:"RainDetector"`
	VisibilityMeter       SourcePathConfig `toml:"VisibilityMeter"`
}

// Config maps to the config.toml file for the weather station
type Config struct {
	StationID                  string         `toml:"StationID" validate:"required"`
	TickIntervalInMilliseconds uint32         `toml:"TickIntervalInMilliseconds" validate:"gt=0,lt=1000"`
	ReportIntervalInSeconds    uint32         `toml:"ReportIntervalInSeconds" validate:"gte=1"`
	ReportTimeoutInSeconds     uint32         `toml:"ReportTimeoutInSeconds" validate:"gte=1"`
	ReportBufferSize           int            `toml:"ReportBufferSize" validate:"gte=1"`
	StatusListenAddress        string         `toml:"StatusListenAddress"`
	Windows                    WindowsConfig  `toml:"Windows"`
	Reporter                   ReporterConfig `toml:"Reporter"`
	Sources                    SourcesConfig  `toml:"Sources"`
}

// LoadConfig parses a TOML file into the Config struct, applies the defaults and validates the result
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filepath, err)
	}

	var cfg Config
	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	cfg.ApplyDefaults()
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyDefaults fills the unset values
func (cfg *Config) ApplyDefaults() {
	setDefault(&cfg.TickIntervalInMilliseconds, DefaultTickIntervalInMilliseconds)
	setDefault(&cfg.ReportIntervalInSeconds, DefaultReportIntervalInSeconds)
	setDefault(&cfg.ReportTimeoutInSeconds, DefaultReportTimeoutInSeconds)
	if cfg.ReportBufferSize == 0 {
		cfg.ReportBufferSize = DefaultReportBufferSize
	}

	setDefault(&cfg.Windows.RainShortInSeconds, DefaultRainShortInSeconds)
	setDefault(&cfg.Windows.RainHourInSeconds, DefaultRainHourInSeconds)
	setDefault(&cfg.Windows.WindInSeconds, DefaultWindInSeconds)
	setDefault(&cfg.Windows.VisibilityInSeconds, DefaultVisibilityInSeconds)

	if len(cfg.Reporter.Type) == 0 {
		cfg.Reporter.Type = ReporterLog
	}
	if len(cfg.Reporter.TopicPrefix) == 0 {
		cfg.Reporter.TopicPrefix = DefaultTopicPrefix
	}

	if len(cfg.Sources.Type) == 0 {
		cfg.Sources.Type = SourceSimulated
	}
	setDefault(&cfg.Sources.TimeoutInMilliseconds, DefaultSourceTimeoutInMillis)
	setDefault(&cfg.Sources.PollInMilliseconds, DefaultSourcePollInMillis)
}

func setDefault(value *uint32, defaultValue uint32) {
	if *value == 0 {
		*value = defaultValue
	}
}

// Validate checks the field constraints and the cross-field rules
func (cfg *Config) Validate() error {
	err := validator.New().Struct(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Sources.Type == SourceHTTP {
		paths := map[string]SourcePathConfig{
			"Thermometer":     cfg.Sources.Thermometer,
			"Anemometer":      cfg.Sources.Anemometer,
			"RainGauge":       cfg.Sources.RainGauge,
			"RainDetector":    cfg.Sources.RainDetector,
			"VisibilityMeter": cfg.Sources.VisibilityMeter,
		}
		for name, path := range paths {
			if len(path.Value) == 0 {
				return fmt.Errorf("invalid config: missing Sources.%s.Value path", name)
			}
		}
		if len(cfg.Sources.Anemometer.Aux) == 0 {
			return fmt.Errorf("invalid config: missing Sources.Anemometer.Aux path for the wind direction")
		}
	}

	return nil
}

// TickInterval returns the sampling period
func (cfg *Config) TickInterval() time.Duration {
	return time.Duration(cfg.TickIntervalInMilliseconds) * time.Millisecond
}

// ReportInterval returns the reporting period
func (cfg *Config) ReportInterval() time.Duration {
	return time.Duration(cfg.ReportIntervalInSeconds) * time.Second
}

// ReportTimeout returns the maximum duration of one report
func (cfg *Config) ReportTimeout() time.Duration {
	return time.Duration(cfg.ReportTimeoutInSeconds) * time.Second
}

// Duration converts a value expressed in seconds
func Duration(seconds uint32) time.Duration {
	return time.Duration(seconds) * time.Second
}
