package common

import (
	"math"
	"time"
)

// Sample holds one raw reading produced by a sample source. It is consumed on the same tick it was read
type Sample struct {
	Value float64
	Aux   float64
	Fault bool
}

// IsSet returns true if the sample carries a discrete "on" signal (a gauge pulse, a raining flag). NaN is never set
func (s Sample) IsSet() bool {
	return s.Value != 0 && !math.IsNaN(s.Value)
}

// Field is a named numeric value
type Field struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// StationSnapshot is the merge of every current metric summary plus the station identity and health flag
type StationSnapshot struct {
	StationID string
	Timestamp time.Time
	Faulted   bool
	Fields    []Field
}

// Metrics returns the snapshot fields as a flat map
func (snapshot StationSnapshot) Metrics() map[string]float64 {
	m := make(map[string]float64, len(snapshot.Fields))
	for _, f := range snapshot.Fields {
		m[f.Name] = f.Value
	}

	return m
}

// Get returns the value of the named field, if present
func (snapshot StationSnapshot) Get(name string) (float64, bool) {
	for _, f := range snapshot.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}

	return 0, false
}

// ReportPayload is the payload sent to the reporting sink
type ReportPayload struct {
	StationID string             `json:"stationId"`
	ReportID  string             `json:"reportId,omitempty"`
	Timestamp int64              `json:"timestamp"`
	Faulted   bool               `json:"faulted"`
	Metrics   map[string]float64 `json:"metrics"`
}

// NewReportPayload converts a snapshot into its wire representation
func NewReportPayload(snapshot StationSnapshot, reportID string) ReportPayload {
	return ReportPayload{
		StationID: snapshot.StationID,
		ReportID:  reportID,
		Timestamp: snapshot.Timestamp.Unix(),
		Faulted:   snapshot.Faulted,
		Metrics:   snapshot.Metrics(),
	}
}
