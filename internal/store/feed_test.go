package store

import "testing"

func TestFeedOrderAndUnsubscribe(t *testing.T) {
	f := NewFeed()
	var order []string

	unA := f.Subscribe(func(Event) { order = append(order, "a") })
	f.Subscribe(func(Event) { order = append(order, "b") })

	f.Publish(EventCreated, "1")
	unA()
	unA()
	f.Publish(EventUpdated, "1")

	want := []string{"a", "b", "b"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestFeedSubscriberMayUnsubscribeItself(t *testing.T) {
	f := NewFeed()
	calls := 0
	var un func()
	un = f.Subscribe(func(Event) {
		calls++
		un()
	})

	f.Publish(EventCreated, "1")
	f.Publish(EventCreated, "2")
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}
