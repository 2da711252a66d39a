package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iulianpascalau/weather-station/commonGo"
	"github.com/iulianpascalau/weather-station/services/station/common"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

const (
	maxTickInterval   = time.Second
	minReportInterval = time.Second
)

var log = logger.GetOrCreate("engine")

// ArgsStationEngine is the DTO used to create a new station engine
type ArgsStationEngine struct {
	Station        Station
	Reporter       Reporter
	Metrics        MetricsHandler
	TickInterval   time.Duration
	ReportInterval time.Duration
	ReportTimeout  time.Duration
	BufferSize     int
}

// stationEngine samples the station on a short tick and, on an independent longer cadence, hands the latest
// snapshot to the reporter through a bounded drop-oldest buffer
type stationEngine struct {
	station        Station
	reporter       Reporter
	metrics        MetricsHandler
	tickInterval   time.Duration
	reportInterval time.Duration
	reportTimeout  time.Duration

	queue      chan common.StationSnapshot
	latest     atomic.Pointer[common.StationSnapshot]
	wasFaulted bool
	numDropped atomic.Uint64
	mutCancel  sync.Mutex
	cancel     func()
	wg         sync.WaitGroup
}

// NewStationEngine creates a new engine instance
func NewStationEngine(args ArgsStationEngine) (*stationEngine, error) {
	err := checkArgs(args)
	if err != nil {
		return nil, err
	}

	return &stationEngine{
		station:        args.Station,
		reporter:       args.Reporter,
		metrics:        args.Metrics,
		tickInterval:   args.TickInterval,
		reportInterval: args.ReportInterval,
		reportTimeout:  args.ReportTimeout,
		queue:          make(chan common.StationSnapshot, args.BufferSize),
	}, nil
}

func checkArgs(args ArgsStationEngine) error {
	if check.IfNil(args.Station) {
		return ErrNilStation
	}
	if check.IfNil(args.Reporter) {
		return ErrNilReporter
	}
	if check.IfNil(args.Metrics) {
		return ErrNilMetricsHandler
	}
	if args.TickInterval <= 0 || args.TickInterval >= maxTickInterval {
		return fmt.Errorf("%w: %v, should be in the (0, %v) range", ErrInvalidTickInterval, args.TickInterval, maxTickInterval)
	}
	if args.ReportInterval < minReportInterval {
		return fmt.Errorf("%w: %v, minimum is %v", ErrInvalidReportInterval, args.ReportInterval, minReportInterval)
	}
	if args.ReportTimeout <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidReportTimeout, args.ReportTimeout)
	}
	if args.BufferSize < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidBufferSize, args.BufferSize)
	}

	return nil
}

// Start launches the tick loop, the report loop and the sender. Calling Start twice has no effect
func (e *stationEngine) Start(ctx context.Context) {
	e.mutCancel.Lock()
	defer e.mutCancel.Unlock()

	if e.cancel != nil {
		return
	}

	var engineCtx context.Context
	engineCtx, e.cancel = context.WithCancel(ctx)

	log.Debug("starting station engine", "tick interval", e.tickInterval, "report interval", e.reportInterval)

	e.wg.Add(1)
	go e.sendReports(engineCtx)

	commonGo.CronJobStarter(engineCtx, e.processTick, e.tickInterval, &e.wg)
	commonGo.CronJobStarter(engineCtx, e.processReport, e.reportInterval, &e.wg)
}

func (e *stationEngine) processTick(_ context.Context) {
	now := time.Now()

	e.station.Update(now)
	snapshot := e.station.GetSnapshot(now)
	e.latest.Store(&snapshot)

	e.logFaultTransition(snapshot)
	e.metrics.SetSnapshot(snapshot, e.station.Faults())
	e.metrics.ObserveTick(time.Since(now))
}

// logFaultTransition is only called from the tick loop
func (e *stationEngine) logFaultTransition(snapshot common.StationSnapshot) {
	if snapshot.Faulted == e.wasFaulted {
		return
	}
	e.wasFaulted = snapshot.Faulted

	if snapshot.Faulted {
		log.Warn("station reports a fault", "station", snapshot.StationID, "faults", e.station.Faults())
		return
	}

	log.Info("station recovered from fault", "station", snapshot.StationID)
}

func (e *stationEngine) processReport(_ context.Context) {
	snapshot, ok := e.LatestSnapshot()
	if !ok {
		log.Debug("no snapshot available yet, skipping report")
		return
	}

	e.enqueue(snapshot)
}

// enqueue never blocks: when the buffer is full the oldest pending snapshot is discarded
func (e *stationEngine) enqueue(snapshot common.StationSnapshot) {
	for {
		select {
		case e.queue <- snapshot:
			return
		default:
		}

		select {
		case dropped := <-e.queue:
			e.numDropped.Add(1)
			e.metrics.IncReportsDropped()
			log.Debug("report buffer full, dropped the oldest snapshot", "timestamp", dropped.Timestamp)
		default:
		}
	}
}

func (e *stationEngine) sendReports(ctx context.Context) {
	defer e.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case snapshot := <-e.queue:
			e.send(ctx, snapshot)
		}
	}
}

func (e *stationEngine) send(ctx context.Context, snapshot common.StationSnapshot) {
	reportCtx, cancel := context.WithTimeout(ctx, e.reportTimeout)
	defer cancel()

	err := e.reporter.Report(reportCtx, snapshot)
	if err != nil {
		e.metrics.IncReportsFailed()
		log.Warn("failed to report the station snapshot, it will be discarded",
			"station", snapshot.StationID, "error", err)
		return
	}

	e.metrics.IncReportsSent()
	log.Trace("station snapshot reported", "station", snapshot.StationID, "num fields", len(snapshot.Fields))
}

// LatestSnapshot returns the snapshot computed on the last tick
func (e *stationEngine) LatestSnapshot() (common.StationSnapshot, bool) {
	snapshot := e.latest.Load()
	if snapshot == nil {
		return common.StationSnapshot{}, false
	}

	return *snapshot, true
}

// NumDropped returns how many snapshots were discarded because the report buffer was full
func (e *stationEngine) NumDropped() uint64 {
	return e.numDropped.Load()
}

// Close stops all the engine's go routines and waits for them to finish
func (e *stationEngine) Close() error {
	e.mutCancel.Lock()
	if e.cancel == nil {
		e.mutCancel.Unlock()
		return nil
	}
	e.cancel()
	e.cancel = nil
	e.mutCancel.Unlock()

	e.wg.Wait()
	log.Debug("station engine closed")

	return nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (e *stationEngine) IsInterfaceNil() bool {
	return e == nil
}
