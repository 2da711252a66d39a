package testsCommon

import (
	"context"

	"github.com/iulianpascalau/weather-station/services/station/common"
)

// ReporterStub -
type ReporterStub struct {
	ReportHandler func(ctx context.Context, snapshot common.StationSnapshot) error
	CloseHandler  func() error
}

// Report -
func (stub *ReporterStub) Report(ctx context.Context, snapshot common.StationSnapshot) error {
	if stub.ReportHandler != nil {
		return stub.ReportHandler(ctx, snapshot)
	}

	return nil
}

// Close -
func (stub *ReporterStub) Close() error {
	if stub.CloseHandler != nil {
		return stub.CloseHandler()
	}

	return nil
}

// IsInterfaceNil -
func (stub *ReporterStub) IsInterfaceNil() bool {
	return stub == nil
}
