package core

import (
	"testing"
)

func TestEventBus_PublishInRegistrationOrder(t *testing.T) {
	bus := NewEventBus(nil)

	var order []string
	bus.Subscribe(EventTaskCreated, func(any) { order = append(order, "first") })
	bus.Subscribe(EventTaskCreated, func(any) { order = append(order, "second") })
	bus.Subscribe(EventTaskCreated, func(any) { order = append(order, "third") })

	bus.Publish(EventTaskCreated, TaskEvent{TaskID: "t1"})

	if len(order) != 3 {
		t.Fatalf("expected 3 invocations, got %d", len(order))
	}
	want := []string{"first", "second", "third"}
	for i, name := range want {
		if order[i] != name {
			t.Errorf("position %d: expected %s, got %s", i, name, order[i])
		}
	}
}

func TestEventBus_PayloadDelivered(t *testing.T) {
	bus := NewEventBus(nil)

	var got TaskEvent
	bus.Subscribe(EventTaskStatusChanged, func(payload any) {
		got = payload.(TaskEvent)
	})
	bus.Publish(EventTaskStatusChanged, TaskEvent{TaskID: "t1", Status: "running"})

	if got.TaskID != "t1" || got.Status != "running" {
		t.Errorf("payload mangled: %+v", got)
	}
}

func TestEventBus_KindIsolation(t *testing.T) {
	bus := NewEventBus(nil)

	calls := 0
	bus.Subscribe(EventAgentCreated, func(any) { calls++ })
	bus.Publish(EventAgentDeleted, AgentEvent{Name: "x"})

	if calls != 0 {
		t.Errorf("handler for another kind should not fire, got %d calls", calls)
	}
}

func TestEventBus_PublishWithNoSubscribers(t *testing.T) {
	bus := NewEventBus(nil)
	// Must not panic or block.
	bus.Publish(EventBoardPosted, BoardEvent{ItemID: "b1"})
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus(nil)

	kept := 0
	removed := 0
	bus.Subscribe(EventMessageSent, func(any) { kept++ })
	sub := bus.Subscribe(EventMessageSent, func(any) { removed++ })

	bus.Publish(EventMessageSent, MessageEvent{MessageID: "m1"})
	bus.Unsubscribe(sub)
	bus.Publish(EventMessageSent, MessageEvent{MessageID: "m2"})

	if kept != 2 {
		t.Errorf("remaining handler should see both events, got %d", kept)
	}
	if removed != 1 {
		t.Errorf("unsubscribed handler should see one event, got %d", removed)
	}

	// Unknown tokens are ignored.
	bus.Unsubscribe(Subscription{kind: EventMessageSent, id: 999})
}

func TestEventBus_Clear(t *testing.T) {
	bus := NewEventBus(nil)

	calls := 0
	bus.Subscribe(EventOrgChanged, func(any) { calls++ })
	bus.Clear()
	bus.Publish(EventOrgChanged, OrgEvent{AgentName: "x"})

	if calls != 0 {
		t.Errorf("cleared handler should not fire, got %d calls", calls)
	}
}

func TestEventBus_PanicIsolation(t *testing.T) {
	var reportedKind EventKind
	var reportedErr error
	bus := NewEventBus(func(kind EventKind, err error) {
		reportedKind = kind
		reportedErr = err
	})

	after := 0
	bus.Subscribe(EventTaskCreated, func(any) { panic("handler exploded") })
	bus.Subscribe(EventTaskCreated, func(any) { after++ })

	bus.Publish(EventTaskCreated, TaskEvent{TaskID: "t1"})

	if after != 1 {
		t.Errorf("handler after the panicking one should still run, got %d calls", after)
	}
	if reportedKind != EventTaskCreated {
		t.Errorf("error callback should receive the kind, got %s", reportedKind)
	}
	if reportedErr == nil {
		t.Error("error callback should receive the panic as an error")
	}
}

func TestEventBus_PanicWithNilErrorCallback(t *testing.T) {
	bus := NewEventBus(nil)

	bus.Subscribe(EventTaskCreated, func(any) { panic("boom") })
	// Must not propagate the panic to the publisher.
	bus.Publish(EventTaskCreated, TaskEvent{TaskID: "t1"})
}

func TestEventBus_SubscribeDuringPublish(t *testing.T) {
	bus := NewEventBus(nil)

	lateCalls := 0
	bus.Subscribe(EventTaskCreated, func(any) {
		// Registering mid-publish must not deadlock; the new handler
		// only sees subsequent events.
		bus.Subscribe(EventTaskCreated, func(any) { lateCalls++ })
	})

	bus.Publish(EventTaskCreated, TaskEvent{TaskID: "t1"})
	if lateCalls != 0 {
		t.Errorf("late handler should not see the triggering event, got %d", lateCalls)
	}
	bus.Publish(EventTaskCreated, TaskEvent{TaskID: "t2"})
	if lateCalls != 1 {
		t.Errorf("late handler should see the next event once, got %d", lateCalls)
	}
}
