package metrics

import "time"

// Outcome is the final status of a check.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeWarning Outcome = "warning" // valid configuration, missing documents
	OutcomeFailed  Outcome = "failed"
)

// Trigger names what started a check.
type Trigger string

const (
	TriggerCLI      Trigger = "cli"
	TriggerStartup  Trigger = "startup"
	TriggerConfig   Trigger = "config_change"
	TriggerSchedule Trigger = "schedule"
)

// Recorder defines observability hooks for configuration checks.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveCheckDuration(d time.Duration)
	IncCheckOutcome(outcome Outcome)
	IncCheckTrigger(trigger Trigger)
	SetMissingDocuments(n int)
	IncEmitWrite(written bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveCheckDuration(time.Duration)         {}
func (NoopRecorder) IncCheckOutcome(Outcome)                    {}
func (NoopRecorder) IncCheckTrigger(Trigger)                    {}
func (NoopRecorder) SetMissingDocuments(int)                    {}
func (NoopRecorder) IncEmitWrite(bool)                          {}
