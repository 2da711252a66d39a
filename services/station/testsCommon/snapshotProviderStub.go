package testsCommon

import "github.com/iulianpascalau/weather-station/services/station/common"

// SnapshotProviderStub -
type SnapshotProviderStub struct {
	LatestSnapshotHandler func() (common.StationSnapshot, bool)
}

// LatestSnapshot -
func (stub *SnapshotProviderStub) LatestSnapshot() (common.StationSnapshot, bool) {
	if stub.LatestSnapshotHandler != nil {
		return stub.LatestSnapshotHandler()
	}

	return common.StationSnapshot{}, false
}

// IsInterfaceNil -
func (stub *SnapshotProviderStub) IsInterfaceNil() bool {
	return stub == nil
}
