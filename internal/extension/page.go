package extension

import (
	"context"
	"sync"

	"github.com/zjrosen/tsconv/internal/log"
)

// Page handles messages addressed to the interactive view.
type Page struct {
	bus      *Bus
	pipeline *Pipeline
}

// NewPage creates a page serving bus with pipeline.
func NewPage(bus *Bus, pipeline *Pipeline) *Page {
	return &Page{bus: bus, pipeline: pipeline}
}

// Handle dispatches one message. Pipeline failures have already been
// presented when the error is returned; callers only log it.
func (p *Page) Handle(ctx context.Context, msg Message) error {
	switch msg.Action {
	case ActionConvertTimestamp:
		_, err := p.pipeline.ConvertClipboard(ctx)
		return err
	case ActionConvertSelection:
		_, err := p.pipeline.ConvertText(ctx, msg.Text)
		return err
	default:
		log.Warn(log.CatExtension, "Unknown message action", "action", msg.Action, "id", msg.ID)
		return nil
	}
}

// Listen subscribes to the bus and serves it in the background until ctx
// is done. Each message runs in its own goroutine; nothing is queued or
// serialised. The returned channel closes once in-flight runs finish.
func (p *Page) Listen(ctx context.Context) <-chan struct{} {
	events := p.bus.Subscribe(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		var wg sync.WaitGroup
		defer wg.Wait()

		for ev := range events {
			msg := ev.Payload
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := p.Handle(ctx, msg); err != nil {
					log.Debug(log.CatExtension, "Message handled with error", "action", msg.Action, "error", err.Error())
				}
			}()
		}
	}()

	return done
}
