package telemetry

import (
	"testing"

	"github.com/tmviz/kestrel/internal/core/conductor"
	"github.com/tmviz/kestrel/pkg/bus"
)

func TestAdvanceFollowWindow(t *testing.T) {
	core := conductor.NewCore(bus.New())
	cond := conductor.NewSerialized(core)
	c := &Collector{conductor: cond}

	// off: nothing moves
	c.advanceFollowWindow(1_000_000)
	if st := cond.State(); st.Bounds != nil {
		t.Fatalf("bounds must stay unset while follow is off, got %+v", st.Bounds)
	}

	cond.SetFollowMode(true)

	// no prior bounds: default span ending at now
	c.advanceFollowWindow(1_000_000)
	b := cond.GetBounds()
	if b.End != 1_000_000 {
		t.Fatalf("window must end at now, got %+v", b)
	}
	if b.End-b.Start != defaultFollowSpan.Milliseconds() {
		t.Fatalf("unexpected default span %d", b.End-b.Start)
	}

	// span is preserved on subsequent ticks
	start, end := int64(0), int64(60_000)
	if _, err := cond.SetBounds(conductor.BoundsInput{Start: &start, End: &end}); err != nil {
		t.Fatal(err)
	}
	c.advanceFollowWindow(2_000_000)
	b = cond.GetBounds()
	if b.Start != 1_940_000 || b.End != 2_000_000 {
		t.Fatalf("span not preserved: %+v", b)
	}
}
