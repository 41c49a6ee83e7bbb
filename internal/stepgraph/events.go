package stepgraph

import (
	"context"

	"provision/internal/ports"
)

// stepEvent is the DomainEvent published for every step-visit transition
// (starting, completed, failed, skipped, cleanup started/completed). The
// optional TUI subscribes to these to render live per-instance progress;
// when no subscriber is registered, publishing is a cheap no-op fan-out.
type stepEvent struct {
	eventType  string
	stepName   string
	instanceID string
	err        error
}

func newStepEvent(eventType, stepName, instanceID string, err error) stepEvent {
	return stepEvent{eventType: eventType, stepName: stepName, instanceID: instanceID, err: err}
}

func (e stepEvent) EventType() string { return e.eventType }

func (e stepEvent) Payload() interface{} {
	return StepEventPayload{
		StepName:   e.stepName,
		InstanceID: e.instanceID,
		Err:        e.err,
	}
}

// StepEventPayload is the concrete payload carried by step-visit events.
type StepEventPayload struct {
	StepName   string
	InstanceID string
	Err        error
}

type noopLogger struct{}

func (noopLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {}
func (noopLogger) Info(ctx context.Context, msg string, fields ...interface{})  {}
func (noopLogger) Warn(ctx context.Context, msg string, fields ...interface{})  {}
func (noopLogger) Error(ctx context.Context, msg string, fields ...interface{}) {}
func (noopLogger) With(fields ...interface{}) ports.Logger                     { return noopLogger{} }

type noopPublisher struct{}

func (noopPublisher) Publish(ctx context.Context, event ports.DomainEvent) error { return nil }
func (noopPublisher) Subscribe(eventType string, handler ports.EventHandler) (ports.Subscription, error) {
	return noopSubscription{}, nil
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}
