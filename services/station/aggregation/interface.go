package aggregation

import "github.com/iulianpascalau/weather-station/services/station/common"

// SampleSource supplies one raw reading plus its fault bit on demand
type SampleSource interface {
	// Read is called once per tick and always returns a value
	Read() common.Sample
	IsInterfaceNil() bool
}

// ValueAccessor gives read-only access to a value owned by another metric
type ValueAccessor func() float64
