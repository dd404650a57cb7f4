package action

// Handler receives published events.
type Handler func(Event)

// SubscriptionID identifies a registered handler for Unsubscribe.
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	kind    Kind // zero matches every kind
	handler Handler
}

// Bus is an in-process publish/subscribe channel for action events. One bus
// is owned by each simulation and lives on the frame goroutine, so it does
// no locking. Delivery order across handlers is unspecified.
type Bus struct {
	nextID SubscriptionID
	subs   []subscription
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for every event kind.
func (b *Bus) Subscribe(fn Handler) SubscriptionID {
	return b.add(0, fn)
}

// SubscribeKind registers fn for a single event kind.
func (b *Bus) SubscribeKind(kind Kind, fn Handler) SubscriptionID {
	return b.add(kind, fn)
}

func (b *Bus) add(kind Kind, fn Handler) SubscriptionID {
	if b == nil || fn == nil {
		return 0
	}
	b.nextID++
	b.subs = append(b.subs, subscription{id: b.nextID, kind: kind, handler: fn})
	return b.nextID
}

// Unsubscribe removes a handler. It reports false for unknown ids.
func (b *Bus) Unsubscribe(id SubscriptionID) bool {
	if b == nil || id == 0 {
		return false
	}
	for i, sub := range b.subs {
		if sub.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Publish delivers evt to the handlers registered when Publish was called.
// Handlers added or removed by a handler take effect on the next publish.
// Publishing with no subscribers does nothing.
func (b *Bus) Publish(evt Event) {
	if b == nil || len(b.subs) == 0 {
		return
	}
	subs := b.subs
	for _, sub := range subs {
		if sub.kind == 0 || sub.kind == evt.Kind {
			sub.handler(evt)
		}
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	if b == nil {
		return 0
	}
	return len(b.subs)
}
