package testsCommon

import (
	"time"

	"github.com/iulianpascalau/weather-station/services/station/common"
)

// StationStub -
type StationStub struct {
	UpdateHandler      func(now time.Time)
	GetSnapshotHandler func(now time.Time) common.StationSnapshot
	FaultsHandler      func() map[string]bool
	LastWindowsHandler func() map[string]common.Summary
}

// Update -
func (stub *StationStub) Update(now time.Time) {
	if stub.UpdateHandler != nil {
		stub.UpdateHandler(now)
	}
}

// GetSnapshot -
func (stub *StationStub) GetSnapshot(now time.Time) common.StationSnapshot {
	if stub.GetSnapshotHandler != nil {
		return stub.GetSnapshotHandler(now)
	}

	return common.StationSnapshot{
		Timestamp: now,
	}
}

// Faults -
func (stub *StationStub) Faults() map[string]bool {
	if stub.FaultsHandler != nil {
		return stub.FaultsHandler()
	}

	return make(map[string]bool)
}

// LastWindows -
func (stub *StationStub) LastWindows() map[string]common.Summary {
	if stub.LastWindowsHandler != nil {
		return stub.LastWindowsHandler()
	}

	return make(map[string]common.Summary)
}

// IsInterfaceNil -
func (stub *StationStub) IsInterfaceNil() bool {
	return stub == nil
}
