package station

import (
	"fmt"
	"sync"
	"time"

	"github.com/iulianpascalau/weather-station/services/station/common"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("station")

// station owns a fixed, ordered set of metric aggregators
type station struct {
	id          string
	aggregators []MetricAggregator
	mut         sync.RWMutex
}

// NewStation creates a new station. The order of the aggregators gives the order of the snapshot fields
func NewStation(id string, aggregators ...MetricAggregator) (*station, error) {
	if len(id) == 0 {
		return nil, errEmptyStationID
	}
	if len(aggregators) == 0 {
		return nil, errNoAggregators
	}

	names := make(map[string]struct{}, len(aggregators))
	fields := make(map[string]string)
	for index, aggregator := range aggregators {
		if check.IfNil(aggregator) {
			return nil, fmt.Errorf("%w at index %d", errNilAggregator, index)
		}

		_, found := names[aggregator.Name()]
		if found {
			return nil, fmt.Errorf("%w: %s", errDuplicatedName, aggregator.Name())
		}
		names[aggregator.Name()] = struct{}{}

		for _, field := range aggregator.FieldNames() {
			owner, exists := fields[field]
			if exists {
				return nil, fmt.Errorf("%w: %s is produced by both %s and %s",
					errFieldNameCollision, field, owner, aggregator.Name())
			}
			fields[field] = aggregator.Name()
		}
	}

	log.Debug("created station", "id", id, "num aggregators", len(aggregators), "num fields", len(fields))

	return &station{
		id:          id,
		aggregators: aggregators,
	}, nil
}

// Update advances every aggregator exactly once, in order
func (s *station) Update(now time.Time) {
	s.mut.Lock()
	defer s.mut.Unlock()

	for _, aggregator := range s.aggregators {
		aggregator.Update(now)
	}
}

// GetSnapshot merges the current summaries of all aggregators into a fresh snapshot
func (s *station) GetSnapshot(now time.Time) common.StationSnapshot {
	s.mut.RLock()
	defer s.mut.RUnlock()

	snapshot := common.StationSnapshot{
		StationID: s.id,
		Timestamp: now,
	}
	for _, aggregator := range s.aggregators {
		snapshot.Fields = append(snapshot.Fields, aggregator.Snapshot().Fields()...)
	}
	snapshot.Faulted = s.isFaulted()

	return snapshot
}

// IsFaulted returns the logical OR of every aggregator fault bit
func (s *station) IsFaulted() bool {
	s.mut.RLock()
	defer s.mut.RUnlock()

	return s.isFaulted()
}

func (s *station) isFaulted() bool {
	faulted := false
	for _, aggregator := range s.aggregators {
		// no short-circuit, every bit is evaluated on the same tick
		faulted = aggregator.IsFaulted() || faulted
	}

	return faulted
}

// Faults returns the fault bit of every aggregator, by name
func (s *station) Faults() map[string]bool {
	s.mut.RLock()
	defer s.mut.RUnlock()

	faults := make(map[string]bool, len(s.aggregators))
	for _, aggregator := range s.aggregators {
		faults[aggregator.Name()] = aggregator.IsFaulted()
	}

	return faults
}

// LastWindows returns the summaries emitted by the latest window resets, by aggregator name. Aggregators
// without a completed window are not included
func (s *station) LastWindows() map[string]common.Summary {
	s.mut.RLock()
	defer s.mut.RUnlock()

	windows := make(map[string]common.Summary)
	for _, aggregator := range s.aggregators {
		summary, ok := aggregator.LastWindow()
		if ok {
			windows[aggregator.Name()] = summary
		}
	}

	return windows
}

// ID returns the station identity
func (s *station) ID() string {
	return s.id
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *station) IsInterfaceNil() bool {
	return s == nil
}
