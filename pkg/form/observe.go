package form

import (
	"log/slog"

	"github.com/goliatone/go-formstate/pkg/model"
)

// EventType classifies a state change.
type EventType string

const (
	// EventField reports a committed edit to Field.
	EventField EventType = "field"
	// EventPhase reports a submission phase transition.
	EventPhase EventType = "phase"
	// EventReset reports that the form returned to its initial state.
	EventReset EventType = "reset"
)

// Event describes one committed change. Phase is the phase after the change.
type Event struct {
	Type  EventType
	Field model.FieldName
	Phase Phase
}

// Observer receives events in commit order. An observer may read or mutate
// the form; events caused by its mutations are delivered after the current
// event has reached every subscriber.
type Observer func(Event)

type subscriber struct {
	id int
	fn Observer
}

// Subscribe registers fn and returns a function that removes it.
func (f *Form) Subscribe(fn Observer) func() {
	if fn == nil {
		return func() {}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextSubscriber++
	id := f.nextSubscriber
	f.subscribers = append(f.subscribers, subscriber{id: id, fn: fn})
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, sub := range f.subscribers {
			if sub.id == id {
				f.subscribers = append(f.subscribers[:i:i], f.subscribers[i+1:]...)
				return
			}
		}
	}
}

// mutate runs fn under mu and queues delivery of the returned events to the
// subscribers registered at commit time, followed by after. The queue is
// drained by whichever caller finds it idle, so deliveries follow commit
// order and observers may call back into the form.
func (f *Form) mutate(fn func() ([]Event, error), after ...func()) error {
	f.mu.Lock()
	events, err := fn()
	if err == nil {
		if len(events) > 0 {
			subscribers := append([]subscriber(nil), f.subscribers...)
			for _, event := range events {
				event := event
				f.queue = append(f.queue, func() {
					for _, sub := range subscribers {
						f.deliver(sub.fn, event)
					}
				})
			}
		}
		for _, next := range after {
			if next != nil {
				f.queue = append(f.queue, next)
			}
		}
	}
	f.mu.Unlock()

	f.drain()
	return err
}

func (f *Form) drain() {
	f.mu.Lock()
	if f.draining {
		f.mu.Unlock()
		return
	}
	f.draining = true
	for len(f.queue) > 0 {
		next := f.queue[0]
		f.queue[0] = nil
		f.queue = f.queue[1:]
		f.mu.Unlock()
		next()
		f.mu.Lock()
	}
	f.draining = false
	f.mu.Unlock()
}

func (f *Form) deliver(fn Observer, event Event) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("observer.panic",
				slog.String("event", string(event.Type)),
				slog.Any("panic", r),
			)
		}
	}()
	fn(event)
}
