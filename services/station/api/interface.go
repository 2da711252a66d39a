package api

import "github.com/iulianpascalau/weather-station/services/station/common"

// SnapshotProvider gives access to the snapshot computed on the latest tick
type SnapshotProvider interface {
	LatestSnapshot() (common.StationSnapshot, bool)
	IsInterfaceNil() bool
}

// StationInfo exposes the per-metric state of the station
type StationInfo interface {
	Faults() map[string]bool
	LastWindows() map[string]common.Summary
	IsInterfaceNil() bool
}
