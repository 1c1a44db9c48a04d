package ecs

import "testing"

func TestBusSubscribeAndClose(t *testing.T) {
	b := NewBus()
	calls := 0
	sub := b.Subscribe(EventFrameChanged, func() { calls++ })

	if n := b.Publish(EventFrameChanged); n != 1 {
		t.Fatalf("expected 1 handler, got %d", n)
	}
	if n := b.Publish(EventSceneUpdated); n != 0 {
		t.Fatalf("other kinds must not reach the handler, got %d", n)
	}

	sub.Close()
	sub.Close()
	if sub.Active() {
		t.Fatalf("subscription still active after Close")
	}
	b.Publish(EventFrameChanged)
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if b.Count(EventFrameChanged) != 0 {
		t.Fatalf("expected no subscribers left")
	}
}

func TestBusUnsubscribeDuringPublish(t *testing.T) {
	b := NewBus()
	var order []string
	var first *Subscription
	first = b.Subscribe(EventSceneUpdated, func() {
		order = append(order, "first")
		first.Close()
	})
	b.Subscribe(EventSceneUpdated, func() { order = append(order, "second") })

	b.Publish(EventSceneUpdated)
	b.Publish(EventSceneUpdated)

	want := []string{"first", "second", "second"}
	if len(order) != len(want) {
		t.Fatalf("got %v want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v want %v", order, want)
		}
	}
}

func TestNilSubscriptionIsSafe(t *testing.T) {
	var s *Subscription
	s.Close()
	if s.Active() {
		t.Fatalf("nil subscription reported active")
	}
	var b *Bus
	if b.Publish(EventRedraw) != 0 {
		t.Fatalf("nil bus published")
	}
}
