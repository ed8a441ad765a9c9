package engine

import "testing"

func TestTableGetSet(t *testing.T) {
	tt := NewTable[int](4)

	if _, ok := tt.Get(0xDEADBEEF); ok {
		t.Fatal("empty table returned a hit")
	}

	tt.Set(0xDEADBEEF, 42)
	if v, ok := tt.Get(0xDEADBEEF); !ok || v != 42 {
		t.Errorf("Get = %d, %v; want 42, true", v, ok)
	}

	// Same bucket, different key: must not match.
	if _, ok := tt.Get(0xDEADBEEF + 1<<40); ok {
		t.Error("different key in the same bucket matched")
	}

	tt.Set(0xDEADBEEF, -7)
	if v, _ := tt.Get(0xDEADBEEF); v != -7 {
		t.Errorf("update in place: got %d, want -7", v)
	}
	if n := tt.Len(); n != 1 {
		t.Errorf("Len = %d after update, want 1", n)
	}

	if tt.Probes() != 4 || tt.Hits() != 2 {
		t.Errorf("probes/hits = %d/%d, want 4/2", tt.Probes(), tt.Hits())
	}
}

func TestTableEvictsOldestInBucket(t *testing.T) {
	tt := NewTable[int](2) // 4 buckets

	// All keys share bucket 1.
	keys := []uint64{0x101, 0x201, 0x301, 0x401, 0x501}
	for i, k := range keys {
		tt.Set(k, i)
	}

	if _, ok := tt.Get(keys[0]); ok {
		t.Error("oldest entry survived a full bucket insert")
	}
	for i, k := range keys[1:] {
		if v, ok := tt.Get(k); !ok || v != i+1 {
			t.Errorf("key %#x: got %d, %v; want %d, true", k, v, ok, i+1)
		}
	}

	// Updating an entry does not change its age.
	tt.Set(keys[1], 100)
	tt.Set(0x601, 6)
	if _, ok := tt.Get(keys[1]); ok {
		t.Error("updated entry was not treated as oldest")
	}
}

func TestTableClear(t *testing.T) {
	tt := NewTable[string](3)
	for k := uint64(0); k < 20; k++ {
		tt.Set(k*0x9E3779B97F4A7C15, "x")
	}
	if tt.Len() == 0 {
		t.Fatal("table empty after inserts")
	}

	tt.Clear()
	if n := tt.Len(); n != 0 {
		t.Errorf("Len = %d after Clear, want 0", n)
	}
	for k := uint64(0); k < 20; k++ {
		if _, ok := tt.Get(k * 0x9E3779B97F4A7C15); ok {
			t.Fatalf("key %d survived Clear", k)
		}
	}
	if tt.Probes() != 20 || tt.Hits() != 0 {
		t.Errorf("stats after Clear: probes %d hits %d", tt.Probes(), tt.Hits())
	}

	tt.Set(5, "y")
	if v, ok := tt.Get(5); !ok || v != "y" {
		t.Errorf("Get after Clear = %q, %v", v, ok)
	}
}

func TestTableClearGenerationWrap(t *testing.T) {
	tt := NewTable[int](1)
	tt.Set(1, 1)

	// Force the generation counter to wrap on the next Clear.
	tt.gen = ^uint32(0)
	tt.Set(2, 2)
	tt.Clear()

	if tt.gen != 1 {
		t.Errorf("generation after wrap = %d, want 1", tt.gen)
	}
	if n := tt.Len(); n != 0 {
		t.Errorf("Len = %d after wrap, want 0", n)
	}
	// The entry written under generation 1 before the wrap must be gone.
	if _, ok := tt.Get(1); ok {
		t.Error("stale entry resurrected after generation wrap")
	}
}

func TestTableBitsClamped(t *testing.T) {
	if c := NewTable[int](-3).Capacity(); c != BucketSize {
		t.Errorf("capacity for negative bits = %d, want %d", c, BucketSize)
	}
	if c := NewTable[int](10).Capacity(); c != 1024*BucketSize {
		t.Errorf("capacity for 10 bits = %d, want %d", c, 1024*BucketSize)
	}
}

func TestAdjustScoreRoundTrip(t *testing.T) {
	for _, score := range []int{0, 150, -320, MateScore - 3, -(MateScore - 5)} {
		for _, ply := range []int{0, 1, 7} {
			if got := AdjustScoreFromTT(AdjustScoreToTT(score, ply), ply); got != score {
				t.Errorf("round trip %d at ply %d = %d", score, ply, got)
			}
		}
	}

	// A mate found 5 plies from the root is 2 plies from a node at ply 3.
	if got := AdjustScoreToTT(MateScore-5, 3); got != MateScore-2 {
		t.Errorf("AdjustScoreToTT = %d, want %d", got, MateScore-2)
	}
}
