package eventbus

import "testing"

func TestBusPublishSubscribe(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Publish(RosterChanged{})
	if _, ok := (<-ch).(RosterChanged); !ok {
		t.Fatalf("expected RosterChanged")
	}
	bus.Unsubscribe(ch)
}

func TestBusFanOut(t *testing.T) {
	bus := New()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	ev := MoveApplied{PlayerID: "p1", FromDivisionID: "upper", ToDivisionID: "lower"}
	bus.Publish(ev)
	if got := <-ch1; got != Event(ev) {
		t.Fatalf("ch1 got %v", got)
	}
	if got := <-ch2; got != Event(ev) {
		t.Fatalf("ch2 got %v", got)
	}
}

func TestBusSlowSubscriberDropsEvents(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	for i := 0; i < 20; i++ {
		bus.Publish(RosterChanged{})
	}
	// The buffer holds 8; the rest were dropped instead of blocking.
	if len(ch) != 8 {
		t.Fatalf("buffered %d events, want 8", len(ch))
	}
}

func TestBusClose(t *testing.T) {
	bus := New()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch1; ok {
		t.Fatalf("expected ch1 closed")
	}
	if _, ok := <-ch2; ok {
		t.Fatalf("expected ch2 closed")
	}
	bus.Publish(RosterChanged{})
}

func TestBusUnsubscribeAfterClose(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Unsubscribe after Close: %v", r)
		}
	}()
	bus.Unsubscribe(ch)
}

func TestBusSubscribeAfterClose(t *testing.T) {
	bus := New()
	bus.Close()
	ch := bus.Subscribe()
	if _, ok := <-ch; ok {
		t.Fatalf("subscribe after close must yield a closed channel")
	}
}
