package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"provision/internal/driver"
	"provision/internal/ports"
	"provision/internal/stepgraph"
)

// Subscribe registers handlers on publisher that translate the
// stepgraph/driver domain events into tea.Msg values sent to program. It
// returns an unsubscribe func the caller should defer.
func Subscribe(publisher ports.EventPublisher, program *tea.Program) func() {
	if publisher == nil || program == nil {
		return func() {}
	}

	subs := make([]ports.Subscription, 0, 6)
	register := func(eventType string, handler ports.EventHandler) {
		sub, err := publisher.Subscribe(eventType, handler)
		if err != nil || sub == nil {
			return
		}
		subs = append(subs, sub)
	}

	register(ports.EventInstanceStarted, func(_ context.Context, e ports.DomainEvent) error {
		if p, ok := e.Payload().(driver.InstanceEventPayload); ok {
			program.Send(InstanceStartMsg{InstanceID: p.InstanceID})
		}
		return nil
	})

	register(ports.EventInstanceCompleted, func(_ context.Context, e ports.DomainEvent) error {
		if p, ok := e.Payload().(driver.InstanceEventPayload); ok {
			program.Send(InstanceCompleteMsg{InstanceID: p.InstanceID})
		}
		return nil
	})

	register(ports.EventInstanceFailed, func(_ context.Context, e ports.DomainEvent) error {
		if p, ok := e.Payload().(driver.InstanceEventPayload); ok {
			program.Send(InstanceCompleteMsg{InstanceID: p.InstanceID, Err: p.Err})
		}
		return nil
	})

	register(ports.EventStepStarted, func(_ context.Context, e ports.DomainEvent) error {
		if p, ok := e.Payload().(stepgraph.StepEventPayload); ok {
			program.Send(StepStartMsg{InstanceID: p.InstanceID, StepID: p.StepName})
		}
		return nil
	})

	register(ports.EventStepCompleted, func(_ context.Context, e ports.DomainEvent) error {
		if p, ok := e.Payload().(stepgraph.StepEventPayload); ok {
			program.Send(StepCompleteMsg{InstanceID: p.InstanceID, StepID: p.StepName, Status: StatusSuccess})
		}
		return nil
	})

	register(ports.EventStepFailed, func(_ context.Context, e ports.DomainEvent) error {
		if p, ok := e.Payload().(stepgraph.StepEventPayload); ok {
			program.Send(StepCompleteMsg{InstanceID: p.InstanceID, StepID: p.StepName, Status: StatusFailed, Message: errMessage(p.Err)})
		}
		return nil
	})

	register(ports.EventStepSkipped, func(_ context.Context, e ports.DomainEvent) error {
		if p, ok := e.Payload().(stepgraph.StepEventPayload); ok {
			program.Send(StepCompleteMsg{InstanceID: p.InstanceID, StepID: p.StepName, Status: StatusSkipped, Message: errMessage(p.Err)})
		}
		return nil
	})

	return func() {
		for _, sub := range subs {
			sub.Unsubscribe()
		}
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
