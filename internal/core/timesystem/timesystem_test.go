package timesystem

import "testing"

func TestRegistryDefault(t *testing.T) {
	r := NewRegistry()
	list := r.List()
	if len(list) != 1 || list[0].Key != "utc" {
		t.Fatalf("expected utc default, got %+v", list)
	}
}

func TestRegistryOrderAndLookup(t *testing.T) {
	r := NewRegistry(
		TimeSystem{Key: "utc", Name: "UTC"},
		TimeSystem{Key: "met", Name: "Mission Elapsed"},
		TimeSystem{Key: "met", Name: "duplicate ignored"},
		TimeSystem{Name: "missing key ignored"},
	)

	list := r.List()
	if len(list) != 2 || list[0].Key != "utc" || list[1].Key != "met" {
		t.Fatalf("unexpected catalog %+v", list)
	}
	if list[1].Name != "Mission Elapsed" {
		t.Fatalf("duplicate key should not overwrite, got %q", list[1].Name)
	}

	if _, err := r.Get("met"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get("nope"); err == nil {
		t.Fatal("expected not found error")
	}
}
