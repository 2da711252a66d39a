package testsCommon

import (
	"time"

	"github.com/iulianpascalau/weather-station/services/station/common"
)

// MetricAggregatorStub -
type MetricAggregatorStub struct {
	NameValue         string
	FieldNamesValue   []string
	UpdateHandler     func(now time.Time)
	SnapshotHandler   func() common.Summary
	LastWindowHandler func() (common.Summary, bool)
	IsFaultedHandler  func() bool
}

// Update -
func (stub *MetricAggregatorStub) Update(now time.Time) {
	if stub.UpdateHandler != nil {
		stub.UpdateHandler(now)
	}
}

// Snapshot -
func (stub *MetricAggregatorStub) Snapshot() common.Summary {
	if stub.SnapshotHandler != nil {
		return stub.SnapshotHandler()
	}

	return common.Summary{}
}

// LastWindow -
func (stub *MetricAggregatorStub) LastWindow() (common.Summary, bool) {
	if stub.LastWindowHandler != nil {
		return stub.LastWindowHandler()
	}

	return common.Summary{}, false
}

// IsFaulted -
func (stub *MetricAggregatorStub) IsFaulted() bool {
	if stub.IsFaultedHandler != nil {
		return stub.IsFaultedHandler()
	}

	return false
}

// Name -
func (stub *MetricAggregatorStub) Name() string {
	return stub.NameValue
}

// FieldNames -
func (stub *MetricAggregatorStub) FieldNames() []string {
	return stub.FieldNamesValue
}

// IsInterfaceNil -
func (stub *MetricAggregatorStub) IsInterfaceNil() bool {
	return stub == nil
}
