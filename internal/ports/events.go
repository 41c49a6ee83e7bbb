package ports

import "context"

const (
	// EventInstanceStarted is emitted when an instance begins provisioning.
	EventInstanceStarted = "instance.started"
	// EventInstanceCompleted is emitted after an instance provisions successfully.
	EventInstanceCompleted = "instance.completed"
	// EventInstanceFailed is emitted when an instance fails to provision.
	EventInstanceFailed = "instance.failed"
	// EventStepStarted is emitted before a step begins running.
	EventStepStarted = "step.started"
	// EventStepCompleted is emitted when a step's run phase finishes successfully.
	EventStepCompleted = "step.completed"
	// EventStepFailed is emitted when a step's run phase returns an error.
	EventStepFailed = "step.failed"
	// EventStepSkipped is emitted when a step is short-circuited by a failed dependency.
	EventStepSkipped = "step.skipped"
	// EventStepCleanupStarted is emitted before a step's cleanup phase runs.
	EventStepCleanupStarted = "step.cleanup.started"
	// EventStepCleanupCompleted is emitted after a step's cleanup phase runs.
	EventStepCleanupCompleted = "step.cleanup.completed"
)

// DomainEvent represents a significant occurrence within the provisioning
// lifecycle. Events carry structured payloads that downstream subscribers
// can use for logging, UI updates, or integrations.
type DomainEvent interface {
	EventType() string
	Payload() interface{}
}

// EventPublisher distributes events to interested subscribers. Dispatch is
// synchronous—Publish blocks until all handlers run—ensuring observability
// signals appear before the process exits. Handlers may spawn goroutines for
// async processing if work should continue in the background. Implementations
// must be thread-safe.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
}

// EventHandler processes an event of a specific type. Handlers should avoid
// panicking; failures should be surfaced via returned errors so publishers can
// log diagnostics and continue delivering to remaining subscribers.
type EventHandler func(context.Context, DomainEvent) error

// Subscription represents a registered handler. Callers must invoke
// Unsubscribe to stop receiving events and release resources.
type Subscription interface {
	Unsubscribe()
}
