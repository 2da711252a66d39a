package sensors

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/iulianpascalau/weather-station/commonGo"
	"github.com/iulianpascalau/weather-station/services/station/common"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/tidwall/gjson"
)

var log = logger.GetOrCreate("sensors")

// ArgsHTTPBridge is the DTO used to create a new HTTP sensor bridge
type ArgsHTTPBridge struct {
	URL          string
	Timeout      time.Duration
	PollInterval time.Duration
}

// SourcePaths holds the gjson paths used to extract one sample from the bridge response. A Discrete source
// carries events (gauge pulses): every polled value is delivered by a single Read, later reads return zero
type SourcePaths struct {
	Value    string
	Aux      string
	Fault    string
	Discrete bool
}

// httpBridge polls a sensor bridge JSON endpoint in the background. Every registered source extracts its
// sample from the same response, so reading a source never blocks on the network
type httpBridge struct {
	url          string
	pollInterval time.Duration
	client       *http.Client

	mutSources sync.RWMutex
	sources    []*httpSource

	mutCancel sync.Mutex
	cancel    func()
	wg        sync.WaitGroup
}

// NewHTTPBridge creates a new HTTP sensor bridge
func NewHTTPBridge(args ArgsHTTPBridge) (*httpBridge, error) {
	if len(args.URL) == 0 {
		return nil, ErrEmptyURL
	}
	if args.PollInterval <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPollInterval, args.PollInterval)
	}

	return &httpBridge{
		url:          args.URL,
		pollInterval: args.PollInterval,
		client: &http.Client{
			Timeout: args.Timeout,
		},
	}, nil
}

// Source registers a new source fed by the bridge. Until the first successful poll the source reports a fault
func (b *httpBridge) Source(name string, paths SourcePaths) (*httpSource, error) {
	if len(paths.Value) == 0 {
		return nil, fmt.Errorf("%w for source %s", ErrEmptyValuePath, name)
	}

	source := &httpSource{
		name:  name,
		paths: paths,
		last:  common.Sample{Fault: true},
	}

	b.mutSources.Lock()
	b.sources = append(b.sources, source)
	b.mutSources.Unlock()

	return source, nil
}

// Start launches the background polling. Calling Start twice has no effect
func (b *httpBridge) Start(ctx context.Context) {
	b.mutCancel.Lock()
	defer b.mutCancel.Unlock()

	if b.cancel != nil {
		return
	}

	var pollCtx context.Context
	pollCtx, b.cancel = context.WithCancel(ctx)
	commonGo.CronJobStarter(pollCtx, b.Poll, b.pollInterval, &b.wg)
}

// Poll fetches the bridge response once and updates every registered source
func (b *httpBridge) Poll(ctx context.Context) {
	body, err := b.fetch(ctx)

	b.mutSources.RLock()
	defer b.mutSources.RUnlock()

	if err != nil {
		log.Warn("sensor bridge poll failed", "url", b.url, "error", err)
		for _, source := range b.sources {
			source.markFaulted()
		}
		return
	}

	for _, source := range b.sources {
		source.extract(body)
	}
}

func (b *httpBridge) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errStatusNotOK(resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// Close stops the background polling
func (b *httpBridge) Close() error {
	b.mutCancel.Lock()
	if b.cancel == nil {
		b.mutCancel.Unlock()
		return nil
	}
	b.cancel()
	b.cancel = nil
	b.mutCancel.Unlock()

	b.wg.Wait()

	return nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (b *httpBridge) IsInterfaceNil() bool {
	return b == nil
}

type httpSource struct {
	name  string
	paths SourcePaths

	mut     sync.Mutex
	last    common.Sample
	pending bool
}

func (source *httpSource) extract(body []byte) {
	sample, err := source.parse(body)
	if err != nil {
		log.Warn("sensor value extraction failed", "source", source.name, "error", err)
		source.markFaulted()
		return
	}

	source.mut.Lock()
	source.last = sample
	source.pending = true
	source.mut.Unlock()
}

func (source *httpSource) parse(body []byte) (common.Sample, error) {
	value := gjson.GetBytes(body, source.paths.Value)
	if !value.Exists() {
		return common.Sample{}, errPathNotFound(source.paths.Value)
	}

	sample := common.Sample{
		Value: value.Float(),
	}

	if len(source.paths.Aux) > 0 {
		aux := gjson.GetBytes(body, source.paths.Aux)
		if !aux.Exists() {
			return common.Sample{}, errPathNotFound(source.paths.Aux)
		}
		sample.Aux = aux.Float()
	}

	if len(source.paths.Fault) > 0 {
		sample.Fault = gjson.GetBytes(body, source.paths.Fault).Bool()
	}

	return sample, nil
}

// markFaulted keeps the last known values but raises the fault bit. An undelivered discrete event is dropped
func (source *httpSource) markFaulted() {
	source.mut.Lock()
	source.last.Fault = true
	source.pending = false
	source.mut.Unlock()
}

// Read returns the sample extracted on the last poll. A discrete source returns the polled value only once
func (source *httpSource) Read() common.Sample {
	source.mut.Lock()
	defer source.mut.Unlock()

	sample := source.last
	if source.paths.Discrete && !source.pending {
		sample.Value = 0
	}
	source.pending = false

	return sample
}

// IsInterfaceNil returns true if the value under the interface is nil
func (source *httpSource) IsInterfaceNil() bool {
	return source == nil
}
