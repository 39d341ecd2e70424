package scratch

import "testing"

func TestArena_CarveOrderAndNoAlias(t *testing.T) {
	a := New()
	a.Rewind()
	if err := a.Grow(4 * (8 + 16)); err != nil {
		t.Fatal(err)
	}

	first := a.Float32(8)
	second := a.Float32(16)

	if len(first) != 8 || len(second) != 16 {
		t.Fatalf("View lengths: %d, %d", len(first), len(second))
	}

	for i := range first {
		first[i] = 1
	}
	for _, v := range second {
		if v == 1 {
			t.Fatal("Views alias each other")
		}
	}
}

func TestArena_ZeroSizedView(t *testing.T) {
	a := New()
	a.Rewind()
	if err := a.Grow(16); err != nil {
		t.Fatal(err)
	}
	if v := a.Float32(0); v != nil {
		t.Errorf("Expected nil view for zero request, got len %d", len(v))
	}
	// A zero request must not consume reservation.
	if v := a.Float32(4); len(v) != 4 {
		t.Errorf("Expected full reservation available, got %d", len(v))
	}
}

func TestArena_NoReallocationOnShrinkingSequence(t *testing.T) {
	a := New()

	a.Rewind()
	if err := a.Grow(1024); err != nil {
		t.Fatal(err)
	}
	highWater := a.Capacity()

	for _, size := range []int{512, 1024, 64, 0} {
		a.Rewind()
		if err := a.Grow(size); err != nil {
			t.Fatal(err)
		}
		if a.Capacity() != highWater {
			t.Errorf("Capacity changed to %d after Grow(%d), want %d", a.Capacity(), size, highWater)
		}
	}
}

func TestArena_GrowExpandsCapacity(t *testing.T) {
	a := New()
	a.Rewind()
	if err := a.Grow(64); err != nil {
		t.Fatal(err)
	}
	a.Rewind()
	if err := a.Grow(256); err != nil {
		t.Fatal(err)
	}
	if a.Capacity() < 256 {
		t.Errorf("Capacity %d after growing to 256", a.Capacity())
	}
}

func TestArena_RewindInvalidatesReservation(t *testing.T) {
	a := New()
	a.Rewind()
	if err := a.Grow(64); err != nil {
		t.Fatal(err)
	}
	a.Rewind()

	defer func() {
		if recover() == nil {
			t.Error("Expected panic when carving without a reservation")
		}
	}()
	a.Float32(1)
}

func TestArena_NegativeGrow(t *testing.T) {
	a := New()
	if err := a.Grow(-1); err == nil {
		t.Error("Expected error for negative grow size")
	}
}

func TestArena_OverCarvePanics(t *testing.T) {
	a := New()
	a.Rewind()
	if err := a.Grow(4 * 4); err != nil {
		t.Fatal(err)
	}
	a.Float32(4)

	defer func() {
		if recover() == nil {
			t.Error("Expected panic when carving past the reservation")
		}
	}()
	a.Float32(1)
}
