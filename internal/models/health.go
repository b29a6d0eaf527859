package models

import "time"

// BackendHealth is the readiness probe result for one backend.
type BackendHealth struct {
	Name       string        `json:"name"`
	URL        string        `json:"url"`
	Reachable  bool          `json:"reachable"`
	StatusCode int           `json:"status_code,omitempty"`
	Duration   time.Duration `json:"duration"`
	Error      string        `json:"error,omitempty"`
	ObservedAt time.Time     `json:"observed_at"`
}

// ReadinessReport aggregates backend probes.
type ReadinessReport struct {
	Ready    bool            `json:"ready"`
	Backends []BackendHealth `json:"backends"`
}
