package lru

import "testing"

func TestCache_HitMiss(t *testing.T) {
	c, err := New(8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, ok := c.Get("example.com"); ok {
		t.Fatalf("expected miss on empty cache")
	}
	c.Put("example.com", true)
	maybe, ok := c.Get("example.com")
	if !ok || !maybe {
		t.Errorf("Get = (%v, %v), want (true, true)", maybe, ok)
	}
	c.Put("other.com", false)
	maybe, ok = c.Get("other.com")
	if !ok || maybe {
		t.Errorf("Get = (%v, %v), want (false, true)", maybe, ok)
	}

	hits, misses, _ := c.Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("stats = (%d, %d), want (2, 1)", hits, misses)
	}
}

func TestCache_EvictionAndPurge(t *testing.T) {
	c, err := New(2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Put("a", true)
	c.Put("b", true)
	c.Put("c", true) // evicts a
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	_, _, evictions := c.Stats()
	if evictions != 1 {
		t.Errorf("evictions = %d, want 1", evictions)
	}

	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len after purge = %d, want 0", c.Len())
	}
	_, _, evictions = c.Stats()
	if evictions != 3 {
		t.Errorf("evictions after purge = %d, want 3", evictions)
	}
}

func TestCache_Disabled(t *testing.T) {
	c, err := New(0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Put("a", true)
	if _, ok := c.Get("a"); ok {
		t.Errorf("disabled cache must always miss")
	}
	if c.Len() != 0 {
		t.Errorf("disabled cache Len must be 0")
	}
	c.Purge()
	h, m, e := c.Stats()
	if h != 0 || m != 0 || e != 0 {
		t.Errorf("disabled cache must track no metrics")
	}
}
