package sensors

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/iulianpascalau/weather-station/services/station/common"
)

const (
	initialTemperature   = 30.0
	temperatureStep      = 2.0
	initialWindSpeed     = 30.0
	windSpeedStep        = 3.5
	initialWindDirection = 180.0
	windDirectionStep    = 18.0
	gaugeFillStep        = 0.025
	rainToggleChance     = 0.05
	initialVisibility    = 500.0
	visibilityStep       = 50.0
)

// simulatedSuite holds the state of a simulated set of station instruments. The instruments share one
// random generator and the ambient temperature measured by the thermometer
type simulatedSuite struct {
	mut sync.Mutex
	rnd *rand.Rand

	temperature   float64
	windSpeed     float64
	windDirection float64
	gaugeVolume   float64
	raining       bool
	visibility    float64
}

// NewSimulatedSuite creates a deterministic simulated instrument suite
func NewSimulatedSuite(seed uint64) *simulatedSuite {
	return &simulatedSuite{
		rnd:           rand.New(rand.NewPCG(seed, seed^0x5deece66d)),
		temperature:   initialTemperature,
		windSpeed:     initialWindSpeed,
		windDirection: initialWindDirection,
		visibility:    initialVisibility,
	}
}

// walk moves the value by a uniform step. The value may leave the envelope by at most one step so that
// the instruments report range faults without drifting away
func (s *simulatedSuite) walk(value float64, step float64, envelope common.Envelope) float64 {
	value += (s.rnd.Float64()*2 - 1) * step

	return math.Max(envelope.Min-step, math.Min(envelope.Max+step, value))
}

func (s *simulatedSuite) operatingFault() bool {
	return !common.OperatingTemperatureEnvelope.Contains(s.temperature)
}

func roundOneDecimal(value float64) float64 {
	return math.Round(value*10) / 10
}

func (s *simulatedSuite) readThermometer() common.Sample {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.temperature = s.walk(s.temperature, temperatureStep, common.TemperatureEnvelope)
	value := roundOneDecimal(s.temperature)

	return common.Sample{
		Value: value,
		Fault: !common.TemperatureEnvelope.Contains(value),
	}
}

func (s *simulatedSuite) readAnemometer() common.Sample {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.windSpeed = s.walk(s.windSpeed, windSpeedStep, common.WindSpeedEnvelope)
	s.windDirection = s.walk(s.windDirection, windDirectionStep, common.WindDirectionEnvelope)
	speed := roundOneDecimal(s.windSpeed)
	direction := roundOneDecimal(s.windDirection)

	return common.Sample{
		Value: speed,
		Aux:   direction,
		Fault: !common.WindSpeedEnvelope.Contains(speed) || !common.WindDirectionEnvelope.Contains(direction),
	}
}

func (s *simulatedSuite) readRainGauge() common.Sample {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.gaugeVolume += s.rnd.Float64() * gaugeFillStep
	sample := common.Sample{
		Fault: s.operatingFault(),
	}
	if s.gaugeVolume >= common.RainGaugeVolumeEnvelope.Max {
		s.gaugeVolume = 0
		sample.Value = 1
	}

	return sample
}

func (s *simulatedSuite) readRainDetector() common.Sample {
	s.mut.Lock()
	defer s.mut.Unlock()

	if s.rnd.Float64() < rainToggleChance {
		s.raining = !s.raining
	}

	sample := common.Sample{
		Fault: s.operatingFault(),
	}
	if s.raining {
		sample.Value = 1
	}

	return sample
}

func (s *simulatedSuite) readVisibilityMeter() common.Sample {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.visibility = s.walk(s.visibility, visibilityStep, common.VisibilityEnvelope)
	value := math.Round(s.visibility)

	return common.Sample{
		Value: value,
		Fault: s.operatingFault() || !common.VisibilityEnvelope.Contains(value),
	}
}

// Thermometer returns the simulated thermometer
func (s *simulatedSuite) Thermometer() *simulatedSource {
	return &simulatedSource{read: s.readThermometer}
}

// Anemometer returns the simulated anemometer. The sample value is the speed and the aux field is the direction
func (s *simulatedSuite) Anemometer() *simulatedSource {
	return &simulatedSource{read: s.readAnemometer}
}

// RainGauge returns the simulated rain gauge. The sample is set when the gauge is full
func (s *simulatedSuite) RainGauge() *simulatedSource {
	return &simulatedSource{read: s.readRainGauge}
}

// RainDetector returns the simulated rain detector. The sample is set while raining
func (s *simulatedSuite) RainDetector() *simulatedSource {
	return &simulatedSource{read: s.readRainDetector}
}

// VisibilityMeter returns the simulated visibility meter
func (s *simulatedSuite) VisibilityMeter() *simulatedSource {
	return &simulatedSource{read: s.readVisibilityMeter}
}

type simulatedSource struct {
	read func() common.Sample
}

// Read returns the next simulated reading
func (source *simulatedSource) Read() common.Sample {
	return source.read()
}

// IsInterfaceNil returns true if the value under the interface is nil
func (source *simulatedSource) IsInterfaceNil() bool {
	return source == nil
}
