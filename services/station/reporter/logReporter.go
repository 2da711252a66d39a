package reporter

import (
	"context"

	"github.com/iulianpascalau/weather-station/services/station/common"
)

type logReporter struct{}

// NewLogReporter creates a reporter that only prints the snapshots
func NewLogReporter() *logReporter {
	return &logReporter{}
}

// Report logs the snapshot fields
func (r *logReporter) Report(_ context.Context, snapshot common.StationSnapshot) error {
	args := make([]interface{}, 0, 4+2*len(snapshot.Fields))
	args = append(args, "station", snapshot.StationID, "faulted", snapshot.Faulted)
	for _, f := range snapshot.Fields {
		args = append(args, f.Name, f.Value)
	}

	log.Info("station snapshot", args...)

	return nil
}

// Close does nothing
func (r *logReporter) Close() error {
	return nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (r *logReporter) IsInterfaceNil() bool {
	return r == nil
}
