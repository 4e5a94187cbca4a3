package event

import (
	"testing"
	"time"
)

func TestEmitEventReachesListener(t *testing.T) {
	received := make(chan interface{}, 1)
	AddEventListener(ItemListedEvent, func(msg interface{}) {
		received <- msg
	})

	EmitEvent(ItemListedEvent, "payload")

	select {
	case msg := <-received:
		if msg != "payload" {
			t.Fatalf("unexpected payload: %v", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("listener never received the event")
	}
}

func TestEmitEventIgnoresOtherTypes(t *testing.T) {
	received := make(chan interface{}, 1)
	AddEventListener(ItemSoldEvent, func(msg interface{}) {
		received <- msg
	})

	EmitEvent(MarketPausedEvent, "payload")

	select {
	case msg := <-received:
		t.Fatalf("listener received an event it never subscribed to: %v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
