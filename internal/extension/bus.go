package extension

import (
	"context"

	"github.com/zjrosen/tsconv/internal/log"
	"github.com/zjrosen/tsconv/internal/pubsub"
)

// Bus carries messages from Background to Page. Sends are fire-and-forget.
type Bus struct {
	broker *pubsub.Broker[Message]
}

// NewBus creates a bus.
func NewBus() *Bus {
	return &Bus{broker: pubsub.NewBrokerWithBuffer[Message](16)}
}

// Send publishes msg. It returns *DeliveryError when no page is listening
// or every listener is saturated.
func (b *Bus) Send(msg Message) error {
	if n := b.broker.Publish(pubsub.CreatedEvent, msg); n == 0 {
		return &DeliveryError{Message: msg}
	}
	log.Debug(log.CatExtension, "Message sent", "action", msg.Action, "id", msg.ID)
	return nil
}

// Subscribe implements pubsub.Subscriber.
func (b *Bus) Subscribe(ctx context.Context) <-chan pubsub.Event[Message] {
	return b.broker.Subscribe(ctx)
}

// Close disconnects every listener.
func (b *Bus) Close() {
	b.broker.Close()
}
