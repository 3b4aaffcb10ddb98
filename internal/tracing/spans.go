package tracing

// Span names.
const (
	SpanSequencePlay = "anim.sequence.play"
)

// Span attribute keys.
const (
	AttrRunID        = "anim.run.id"
	AttrSequenceName = "anim.sequence.name"
	AttrStepCount    = "anim.step.count"
	AttrStepIndex    = "anim.step.index"
	AttrStepDelayMs  = "anim.step.delay_ms"
	AttrStatus       = "anim.status"
	AttrErrorMessage = "error.message"
)

// Span event names.
const (
	EventStepStarted  = "step.started"
	EventStepResolved = "step.resolved"
	EventRunCancelled = "run.cancelled"
	EventRunFailed    = "run.failed"
)
