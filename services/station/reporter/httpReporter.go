package reporter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/iulianpascalau/weather-station/services/station/common"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/sony/gobreaker"
)

const (
	headerAPIKey    = "X-Api-Key"
	headerStationID = "X-Station-Id"

	defaultFailuresToOpen    = 3
	defaultOpenStateDuration = 30 * time.Second
)

var log = logger.GetOrCreate("reporter")

// ArgsHTTPReporter is the DTO used to create a new HTTP reporter
type ArgsHTTPReporter struct {
	Endpoint          string
	StationID         string
	Secret            string
	Timeout           time.Duration
	FailuresToOpen    uint32
	OpenStateDuration time.Duration
}

type httpReporter struct {
	endpoint  string
	stationID string
	secret    string
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker
}

// NewHTTPReporter creates a new reporter that pushes the snapshots to the configured endpoint
func NewHTTPReporter(args ArgsHTTPReporter) (*httpReporter, error) {
	if len(args.Endpoint) == 0 {
		return nil, ErrEmptyEndpoint
	}
	if len(args.StationID) == 0 {
		return nil, ErrEmptyStationID
	}

	failuresToOpen := args.FailuresToOpen
	if failuresToOpen == 0 {
		failuresToOpen = defaultFailuresToOpen
	}
	openStateDuration := args.OpenStateDuration
	if openStateDuration <= 0 {
		openStateDuration = defaultOpenStateDuration
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "http-reporter",
		MaxRequests: 1,
		Timeout:     openStateDuration,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failuresToOpen
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Info("circuit breaker changed state", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &httpReporter{
		endpoint:  args.Endpoint,
		stationID: args.StationID,
		secret:    args.Secret,
		client: &http.Client{
			Timeout: args.Timeout,
		},
		breaker: breaker,
	}, nil
}

// Report sends the snapshot as a JSON payload. It fails fast while the circuit breaker is open
func (r *httpReporter) Report(ctx context.Context, snapshot common.StationSnapshot) error {
	body, reportID, err := marshalSnapshot(snapshot)
	if err != nil {
		return err
	}

	_, err = r.breaker.Execute(func() (interface{}, error) {
		return nil, r.send(ctx, body)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	if err != nil {
		return err
	}

	log.Debug("successfully sent station report", "endpoint", r.endpoint, "report ID", reportID,
		"metrics count", len(snapshot.Fields))

	return nil
}

func (r *httpReporter) send(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create report request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerAPIKey, r.secret)
	req.Header.Set(headerStationID, r.stationID)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("network error sending report: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server rejected report with status code: %d", resp.StatusCode)
	}

	return nil
}

// Close releases the idle connections
func (r *httpReporter) Close() error {
	r.client.CloseIdleConnections()
	return nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (r *httpReporter) IsInterfaceNil() bool {
	return r == nil
}
