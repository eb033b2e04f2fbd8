package events

import "context"

// NopPublisher издатель-заглушка, используется при выключенных событиях
type NopPublisher struct{}

func (NopPublisher) PublishAllocationCreated(context.Context, AllocationCreatedEvent) error {
	return nil
}

func (NopPublisher) PublishAllocationDeleted(context.Context, AllocationDeletedEvent) error {
	return nil
}

func (NopPublisher) PublishRoundReset(context.Context, RoundResetEvent) error {
	return nil
}

func (NopPublisher) PublishRoundHandled(context.Context, RoundHandledEvent) error {
	return nil
}
