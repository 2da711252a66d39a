package reporter

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/iulianpascalau/weather-station/services/station/common"
)

func marshalSnapshot(snapshot common.StationSnapshot) ([]byte, string, error) {
	reportID := uuid.NewString()

	body, err := json.Marshal(common.NewReportPayload(snapshot, reportID))
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal report payload: %w", err)
	}

	return body, reportID, nil
}
