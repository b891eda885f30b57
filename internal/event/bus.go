package event

import (
	"context"
	"sync/atomic"

	"easel/internal/event/topic"
)

// Bus is the central event bus.
//
// Delivery is synchronous: Publish invokes every matching handler in the
// caller's goroutine, in priority order, before returning. The history
// engine depends on this ordering: a mutation, its capture, and the
// resulting append notification all happen within one logical turn.
type Bus interface {
	// Publish delivers an envelope to all matching active subscriptions.
	Publish(ctx context.Context, env Envelope) error

	// Subscribe creates a subscription for the given topic pattern.
	Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error)

	// SubscribeFunc is a convenience wrapper for function handlers.
	SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error)

	// Unsubscribe removes a subscription. Safe to call with an already
	// cancelled subscription.
	Unsubscribe(sub Subscription) error

	// Close shuts the bus down and cancels all subscriptions.
	// Publishing on a closed bus returns ErrBusClosed.
	Close()

	// Stats returns current bus statistics.
	Stats() Stats
}

// bus is the default Bus implementation.
type bus struct {
	registry *Registry
	closed   atomic.Bool

	panicHandler PanicHandler

	eventsPublished atomic.Uint64
	eventsDelivered atomic.Uint64
	handlerErrors   atomic.Uint64
	handlerPanics   atomic.Uint64
}

// BusOption configures a bus.
type BusOption func(*bus)

// WithPanicHandler sets the handler invoked when a subscriber panics.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(b *bus) {
		b.panicHandler = h
	}
}

// NewBus creates a new event bus.
func NewBus(opts ...BusOption) Bus {
	b := &bus{
		registry: NewRegistry(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish delivers the envelope to all matching active subscriptions in
// priority order. Handler errors are counted but do not stop delivery to
// the remaining subscribers.
func (b *bus) Publish(ctx context.Context, env Envelope) error {
	if b.closed.Load() {
		return ErrBusClosed
	}
	if !env.Topic.IsValid() {
		return ErrInvalidTopic
	}

	subs := b.registry.MatchActive(env.Topic)
	if len(subs) == 0 {
		return nil
	}

	b.eventsPublished.Add(1)

	for _, sub := range subs {
		if !sub.ShouldDeliver(env) {
			continue
		}

		err, panicked := b.deliver(ctx, env, sub)
		switch {
		case panicked:
			b.handlerPanics.Add(1)
		case err != nil:
			b.handlerErrors.Add(1)
		default:
			b.eventsDelivered.Add(1)
		}

		if sub.Config().Once && !panicked && err == nil {
			sub.Cancel()
			b.registry.Remove(sub.ID())
		}
	}

	return nil
}

// deliver invokes a single handler with panic isolation.
func (b *bus) deliver(ctx context.Context, env Envelope, sub *subscription) (err error, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			if b.panicHandler != nil {
				b.panicHandler(env, r)
			}
		}
	}()

	err = sub.Handler().Handle(ctx, env)
	return err, false
}

// Subscribe creates a new subscription for the given topic pattern.
func (b *bus) Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error) {
	if b.closed.Load() {
		return nil, ErrBusClosed
	}
	if handler == nil {
		return nil, ErrNilHandler
	}
	if pattern == "" {
		return nil, ErrInvalidTopic
	}

	sub := newSubscription(generateID(), pattern, handler, opts...)
	b.registry.Add(sub)
	return sub, nil
}

// SubscribeFunc subscribes a function handler.
func (b *bus) SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	return b.Subscribe(pattern, fn, opts...)
}

// Unsubscribe removes a subscription.
func (b *bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}

	sub.Cancel()
	if !b.registry.Remove(sub.ID()) {
		return ErrSubscriptionNotFound
	}
	return nil
}

// Close shuts down the bus and cancels all subscriptions.
func (b *bus) Close() {
	if b.closed.Swap(true) {
		return
	}
	b.registry.Clear()
}

// Stats returns current bus statistics.
func (b *bus) Stats() Stats {
	return Stats{
		EventsPublished:   b.eventsPublished.Load(),
		EventsDelivered:   b.eventsDelivered.Load(),
		HandlerErrors:     b.handlerErrors.Load(),
		HandlerPanics:     b.handlerPanics.Load(),
		ActiveSubscribers: b.registry.CountActive(),
	}
}
