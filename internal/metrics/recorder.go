package metrics

import "time"

// Outcome labels a generation pass.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Recorder defines observability hooks for generation passes.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveGenerationDuration(d time.Duration)
	IncGenerationOutcome(outcome Outcome)
	SetModelSize(packages, members int)
	SetDocuments(n int)
	// IncReferenceResolution counts declaration references by result
	// ("resolved" or "unresolved").
	IncReferenceResolution(result string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveGenerationDuration(time.Duration)    {}
func (NoopRecorder) IncGenerationOutcome(Outcome)               {}
func (NoopRecorder) SetModelSize(int, int)                      {}
func (NoopRecorder) SetDocuments(int)                           {}
func (NoopRecorder) IncReferenceResolution(string)              {}
