package feed

import (
	"encoding/json"
	"testing"
)

func testSubscriber(h *Hub, roomID int64, queue int) *Subscriber {
	sub := &Subscriber{
		hub:    h,
		roomID: roomID,
		send:   make(chan []byte, queue),
		logger: h.logger,
	}
	h.register(sub)
	return sub
}

func TestPublishReachesRoomSubscribers(t *testing.T) {
	h := NewHub()
	sub := testSubscriber(h, 1, 4)
	other := testSubscriber(h, 2, 4)

	h.Publish(1, "alice : khoor")

	select {
	case payload := <-sub.send:
		var event Event
		if err := json.Unmarshal(payload, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if event.RoomID != 1 || event.Entry != "alice : khoor" {
			t.Fatalf("event = %+v, want room 1 entry %q", event, "alice : khoor")
		}
		if event.ID == "" {
			t.Fatal("event has empty id")
		}
	default:
		t.Fatal("subscriber received nothing")
	}

	select {
	case <-other.send:
		t.Fatal("subscriber of another room received the event")
	default:
	}
}

func TestPublishDropsStalledSubscriber(t *testing.T) {
	h := NewHub()
	sub := testSubscriber(h, 1, 1)

	h.Publish(1, "first")
	// The queue is full now; the next publish drops the subscriber.
	h.Publish(1, "second")

	if _, open := <-sub.send; !open {
		t.Fatal("first event missing from queue")
	}
	if _, open := <-sub.send; open {
		t.Fatal("send queue not closed after subscriber was dropped")
	}

	h.mu.RLock()
	_, present := h.subscribers[1]
	h.mu.RUnlock()
	if present {
		t.Fatal("room set not cleaned up after last subscriber dropped")
	}
}

func TestShutdownClosesQueues(t *testing.T) {
	h := NewHub()
	sub := testSubscriber(h, 1, 4)

	h.Shutdown()

	if _, open := <-sub.send; open {
		t.Fatal("send queue still open after shutdown")
	}

	// Registration after shutdown closes the new queue immediately.
	late := testSubscriber(h, 1, 4)
	if _, open := <-late.send; open {
		t.Fatal("late subscriber queue not closed")
	}
}
