package engine

import (
	"context"
	"time"

	"github.com/iulianpascalau/weather-station/services/station/common"
)

// Station defines the operations the engine drives on every tick
type Station interface {
	Update(now time.Time)
	GetSnapshot(now time.Time) common.StationSnapshot
	Faults() map[string]bool
	IsInterfaceNil() bool
}

// Reporter defines the sink that receives the station snapshots
type Reporter interface {
	// Report pushes one snapshot. A failure is logged by the caller and the snapshot is discarded
	Report(ctx context.Context, snapshot common.StationSnapshot) error
	Close() error
	IsInterfaceNil() bool
}

// MetricsHandler records the engine's runtime metrics
type MetricsHandler interface {
	ObserveTick(duration time.Duration)
	SetSnapshot(snapshot common.StationSnapshot, faults map[string]bool)
	IncReportsSent()
	IncReportsFailed()
	IncReportsDropped()
	IsInterfaceNil() bool
}
