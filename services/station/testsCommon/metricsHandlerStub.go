package testsCommon

import (
	"time"

	"github.com/iulianpascalau/weather-station/services/station/common"
)

// MetricsHandlerStub -
type MetricsHandlerStub struct {
	ObserveTickHandler       func(duration time.Duration)
	SetSnapshotHandler       func(snapshot common.StationSnapshot, faults map[string]bool)
	IncReportsSentHandler    func()
	IncReportsFailedHandler  func()
	IncReportsDroppedHandler func()
}

// ObserveTick -
func (stub *MetricsHandlerStub) ObserveTick(duration time.Duration) {
	if stub.ObserveTickHandler != nil {
		stub.ObserveTickHandler(duration)
	}
}

// SetSnapshot -
func (stub *MetricsHandlerStub) SetSnapshot(snapshot common.StationSnapshot, faults map[string]bool) {
	if stub.SetSnapshotHandler != nil {
		stub.SetSnapshotHandler(snapshot, faults)
	}
}

// IncReportsSent -
func (stub *MetricsHandlerStub) IncReportsSent() {
	if stub.IncReportsSentHandler != nil {
		stub.IncReportsSentHandler()
	}
}

// IncReportsFailed -
func (stub *MetricsHandlerStub) IncReportsFailed() {
	if stub.IncReportsFailedHandler != nil {
		stub.IncReportsFailedHandler()
	}
}

// IncReportsDropped -
func (stub *MetricsHandlerStub) IncReportsDropped() {
	if stub.IncReportsDroppedHandler != nil {
		stub.IncReportsDroppedHandler()
	}
}

// IsInterfaceNil -
func (stub *MetricsHandlerStub) IsInterfaceNil() bool {
	return stub == nil
}
