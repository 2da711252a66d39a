package reporter

import "errors"

// ErrEmptyEndpoint signals that the reporting endpoint was not provided
var ErrEmptyEndpoint = errors.New("empty reporting endpoint")

// ErrEmptyStationID signals that the station identity was not provided
var ErrEmptyStationID = errors.New("empty station ID")

// ErrEmptyTopicPrefix signals that the MQTT topic prefix was not provided
var ErrEmptyTopicPrefix = errors.New("empty topic prefix")

// ErrCircuitOpen signals that the report was rejected without being sent because the sink failed too many times
var ErrCircuitOpen = errors.New("reporting circuit breaker is open")
