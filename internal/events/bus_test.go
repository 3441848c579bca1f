package events

import "testing"

func TestSubscribeReceivesOnlyItsKind(t *testing.T) {
	bus := NewBus()
	var got []string
	bus.Subscribe(KindDayChanged, func(e Event) {
		got = append(got, "day")
	})
	bus.Subscribe(KindPriceChanged, func(e Event) {
		got = append(got, "price")
	})

	bus.Publish(DayChanged{Day: 2})
	if len(got) != 1 || got[0] != "day" {
		t.Fatalf("handlers fired = %v, want [day]", got)
	}
}

func TestSubscribeAllSeesEverything(t *testing.T) {
	bus := NewBus()
	n := 0
	bus.SubscribeAll(func(Event) { n++ })

	bus.Publish(DayChanged{Day: 2})
	bus.Publish(PriceChanged{Resource: "Food", Old: 1, New: 1.5})
	if n != 2 {
		t.Fatalf("catch-all saw %d events, want 2", n)
	}
}

func TestKindHandlersRunBeforeCatchAll(t *testing.T) {
	bus := NewBus()
	var order []string
	bus.SubscribeAll(func(Event) { order = append(order, "all") })
	bus.Subscribe(KindDayChanged, func(Event) { order = append(order, "kind") })

	bus.Publish(DayChanged{Day: 2})
	if len(order) != 2 || order[0] != "kind" || order[1] != "all" {
		t.Fatalf("order = %v, want [kind all]", order)
	}
}

func TestNilBusDropsEvents(t *testing.T) {
	var bus *Bus
	bus.Publish(DayChanged{Day: 1}) // must not panic
}

func TestEventKindNames(t *testing.T) {
	if got := KindNeedCritical.String(); got != "need_critical" {
		t.Fatalf("kind name = %q, want need_critical", got)
	}
	if got := Kind(250).String(); got != "unknown" {
		t.Fatalf("kind name = %q, want unknown", got)
	}
}
