package factory

import (
	"context"
	"net/http"
	"time"

	"github.com/iulianpascalau/weather-station/services/station/common"
)

// Station defines the station operations used by the engine and the status server
type Station interface {
	Update(now time.Time)
	GetSnapshot(now time.Time) common.StationSnapshot
	Faults() map[string]bool
	LastWindows() map[string]common.Summary
	IsInterfaceNil() bool
}

// MetricsHandler records the runtime metrics and exposes them over HTTP
type MetricsHandler interface {
	ObserveTick(duration time.Duration)
	SetSnapshot(snapshot common.StationSnapshot, faults map[string]bool)
	IncReportsSent()
	IncReportsFailed()
	IncReportsDropped()
	Handler() http.Handler
	IsInterfaceNil() bool
}

// Engine defines the station engine's operations
type Engine interface {
	Start(ctx context.Context)
	LatestSnapshot() (common.StationSnapshot, bool)
	NumDropped() uint64
	Close() error
	IsInterfaceNil() bool
}

// Server defines the operation of an entity able to serve requests
type Server interface {
	Start()
	Address() string
	Close() error
	IsInterfaceNil() bool
}

// SourceDriver defines a component that feeds the sample sources in the background
type SourceDriver interface {
	Start(ctx context.Context)
	Close() error
	IsInterfaceNil() bool
}
