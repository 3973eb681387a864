package cache

import (
	"context"
	"testing"
	"time"

	"cashflow/internal/core"
)

func TestLRUCacheEviction(t *testing.T) {
	c := NewLRUCache[string](3, time.Hour)

	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.Set("key3", "value3")
	c.Set("key4", "value4") // evicts key1

	if _, found := c.Get("key1"); found {
		t.Error("key1 should have been evicted")
	}
	for _, k := range []string{"key2", "key3", "key4"} {
		if _, found := c.Get(k); !found {
			t.Errorf("%s should still exist", k)
		}
	}
}

func TestLRUCacheRecencyProtectsFromEviction(t *testing.T) {
	c := NewLRUCache[int](2, time.Hour)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3) // evicts b, a was used more recently

	if _, found := c.Get("b"); found {
		t.Error("b should have been evicted")
	}
	if _, found := c.Get("a"); !found {
		t.Error("a should still exist")
	}
}

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newClockedCache[T any](size int, ttl time.Duration) (*LRUCache[T], *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)}
	c := NewLRUCache[T](size, ttl)
	c.now = clock.now
	return c, clock
}

func TestLRUCacheTTL(t *testing.T) {
	c, clock := newClockedCache[string](10, time.Minute)
	c.Set("k", "v")
	clock.advance(2 * time.Minute)

	if _, found := c.Get("k"); found {
		t.Error("expired entry returned")
	}

	c.Set("x", "y")
	c.Set("z", "w")
	clock.advance(30 * time.Second)
	c.Set("z", "w2") // refreshes expiry
	clock.advance(45 * time.Second)
	if n := c.CleanExpired(); n != 1 {
		t.Errorf("expected 1 cleaned entry, got %d", n)
	}
	if v, found := c.Get("z"); !found || v != "w2" {
		t.Errorf("refreshed entry = %q, %v", v, found)
	}
}

func TestLRUCacheZeroTTLNeverExpires(t *testing.T) {
	c, clock := newClockedCache[int](0, 0)
	for i := 0; i < 100; i++ {
		c.Set(string(rune('a'+i%26))+string(rune('0'+i/26)), i)
	}
	clock.advance(24 * time.Hour)
	if c.CleanExpired() != 0 || c.Size() != 100 {
		t.Fatalf("size = %d", c.Size())
	}
}

func TestLRUCacheClearAndStats(t *testing.T) {
	c := NewLRUCache[int](1, time.Hour)
	c.Set("a", 1)
	c.Get("a")
	c.Get("missing")
	c.Set("b", 2) // evicts a
	c.Clear()

	if c.Size() != 0 {
		t.Fatalf("expected empty after Clear, got %d", c.Size())
	}
	want := Stats{Hits: 1, Misses: 1, Evictions: 1}
	if got := c.Stats(); got != want {
		t.Fatalf("stats = %+v, want %+v", got, want)
	}
}

func TestLocalReportCache(t *testing.T) {
	ctx := context.Background()
	c := NewLocalReportCache(4, time.Minute)
	key := ReportKey(core.NewDate(2025, 1, 6), 8, 100)

	if _, ok := c.Get(ctx, key); ok {
		t.Fatal("unexpected hit on empty cache")
	}
	c.Set(ctx, key, core.ForecastReport{NumWeeks: 8, EndingBalance: 42})
	r, ok := c.Get(ctx, key)
	if !ok || r.EndingBalance != 42 {
		t.Fatalf("unexpected cached report %+v ok=%v", r, ok)
	}

	c.Invalidate(ctx)
	if _, ok := c.Get(ctx, key); ok {
		t.Fatal("expected miss after Invalidate")
	}
}

func TestReportKeyDistinguishesRequests(t *testing.T) {
	a := ReportKey(core.NewDate(2025, 1, 6), 8, 100)
	b := ReportKey(core.NewDate(2025, 1, 6), 8, 100.5)
	c := ReportKey(core.NewDate(2025, 1, 6), 9, 100)
	if a == b || a == c || b == c {
		t.Fatalf("keys should differ: %s %s %s", a, b, c)
	}
	if a != "forecast:2025-01-06:8:100" {
		t.Fatalf("unexpected key %s", a)
	}
}

func TestManagerSweepsRegisteredCaches(t *testing.T) {
	c, clock := newClockedCache[int](10, time.Millisecond)
	c.Set("a", 1)
	clock.advance(time.Second)

	m := NewManager()
	m.Register(c)
	if n := m.sweep(); n != 1 {
		t.Fatalf("expected 1 removed, got %d", n)
	}
	m.StartCleanup(time.Hour)
	m.Stop()
	m.Stop()
}
