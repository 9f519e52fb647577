package store

import (
	"sync"
	"time"
)

// Feed is an ordered subscriber registry. Subscribers run synchronously on
// the publishing goroutine, in registration order.
type Feed struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber
	now    func() time.Time
}

type subscriber struct {
	id int
	fn func(Event)
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return &Feed{now: time.Now}
}

// Subscribe registers fn. Calling the returned function more than once is
// harmless.
func (f *Feed) Subscribe(fn func(Event)) func() {
	f.mu.Lock()
	f.nextID++
	id := f.nextID
	f.subs = append(f.subs, subscriber{id: id, fn: fn})
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			for i, s := range f.subs {
				if s.id == id {
					f.subs = append(f.subs[:i:i], f.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish delivers an event to every current subscriber. The subscriber
// list is copied first, so a subscriber may call back into the store or
// unsubscribe itself.
func (f *Feed) Publish(typ EventType, id string) {
	f.mu.Lock()
	subs := make([]subscriber, len(f.subs))
	copy(subs, f.subs)
	f.mu.Unlock()

	ev := Event{Type: typ, ID: id, At: f.now().UTC()}
	for _, s := range subs {
		s.fn(ev)
	}
}
