package toaster

import (
	"context"

	"github.com/zjrosen/tsconv/internal/pubsub"
)

// Notification is a toast request sent from outside the UI goroutine.
type Notification struct {
	Message string
	Options Options
}

// Notifier forwards toast requests to whichever model is subscribed.
type Notifier struct {
	broker *pubsub.Broker[Notification]
}

// NewNotifier creates a notifier.
func NewNotifier() *Notifier {
	return &Notifier{broker: pubsub.NewBroker[Notification]()}
}

// Show publishes a toast request and reports how many views received it.
func (n *Notifier) Show(message string, opts Options) int {
	return n.broker.Publish(pubsub.CreatedEvent, Notification{Message: message, Options: opts})
}

// Subscribe implements pubsub.Subscriber.
func (n *Notifier) Subscribe(ctx context.Context) <-chan pubsub.Event[Notification] {
	return n.broker.Subscribe(ctx)
}

// Close releases all subscribers.
func (n *Notifier) Close() {
	n.broker.Close()
}
