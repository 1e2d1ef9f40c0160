package bus

import "testing"

func TestPublishOrder(t *testing.T) {
	b := New()
	var got []int
	b.Subscribe("tick", func(any) { got = append(got, 1) })
	b.Subscribe("tick", func(any) { got = append(got, 2) })
	b.Subscribe("tick", func(any) { got = append(got, 3) })

	b.Publish("tick", nil)

	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("expected delivery in registration order, got %v", got)
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	count := 0
	sub := b.Subscribe("tick", func(any) { count++ })

	b.Publish("tick", nil)
	b.Unsubscribe(sub)
	b.Publish("tick", nil)

	if count != 1 {
		t.Fatalf("expected 1 delivery after unsubscribe, got %d", count)
	}

	// removing twice is a no-op
	b.Unsubscribe(sub)
	b.Unsubscribe(nil)
}

func TestPublishPayload(t *testing.T) {
	b := New()
	var got any
	b.Subscribe("bounds", func(p any) { got = p })

	b.Publish("bounds", 42)

	if v, ok := got.(int); !ok || v != 42 {
		t.Fatalf("expected payload 42, got %v", got)
	}
}

func TestReentrantPublish(t *testing.T) {
	b := New()
	var got []string
	b.Subscribe("a", func(any) {
		got = append(got, "a")
		b.Publish("b", nil)
	})
	b.Subscribe("b", func(any) { got = append(got, "b") })

	b.Publish("a", nil)

	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected nested delivery a,b got %v", got)
	}
}

func TestSubscribeDuringDelivery(t *testing.T) {
	b := New()
	count := 0
	b.Subscribe("tick", func(any) {
		// late subscriber must not see the in-flight publish
		b.Subscribe("tick", func(any) { count += 10 })
		count++
	})

	b.Publish("tick", nil)
	if count != 1 {
		t.Fatalf("snapshot delivery broken, count=%d", count)
	}
}
