package common

// Envelope is a closed [Min, Max] operating range
type Envelope struct {
	Min float64
	Max float64
}

// Contains returns true if the value lies inside the envelope. NaN is never contained
func (e Envelope) Contains(value float64) bool {
	return value >= e.Min && value <= e.Max
}

// Static operating envelopes of the station sensors
var (
	TemperatureEnvelope          = Envelope{Min: 0, Max: 70}
	OperatingTemperatureEnvelope = Envelope{Min: 0, Max: 50}
	WindSpeedEnvelope            = Envelope{Min: 0.4, Max: 70}
	WindDirectionEnvelope        = Envelope{Min: 0, Max: 360}
	VisibilityEnvelope           = Envelope{Min: 10, Max: 1000}
	RainGaugeVolumeEnvelope      = Envelope{Min: 0, Max: 0.5}
)

const (
	// VisibilityWindLimit is the wind speed above which the visibility meter is considered unreliable
	VisibilityWindLimit = 50.0
	// RainPulseIncrement is the rainfall (mm) represented by one gauge pulse
	RainPulseIncrement = 0.5
)

// Summary field names, unique across the whole station
const (
	FieldRainPerMin     = "rain_per_min"
	FieldRainPerHour    = "rain_per_hour"
	FieldRainCumulative = "rain_cumulative"
	FieldTemperature    = "temperature"
	FieldWindSpeedMax   = "wind_speed_max"
	FieldWindSpeedMin   = "wind_speed_min"
	FieldWindDirAtMax   = "wind_dir_at_max"
	FieldWindDirAtMin   = "wind_dir_at_min"
	FieldVisibilityMax  = "visibility_max"
	FieldVisibilityMin  = "visibility_min"
)
