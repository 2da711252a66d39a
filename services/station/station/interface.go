package station

import (
	"time"

	"github.com/iulianpascalau/weather-station/services/station/common"
)

// MetricAggregator consumes one sample per tick and exposes its current window summary and fault bit
type MetricAggregator interface {
	Update(now time.Time)
	Snapshot() common.Summary
	LastWindow() (common.Summary, bool)
	IsFaulted() bool
	Name() string
	FieldNames() []string
	IsInterfaceNil() bool
}
