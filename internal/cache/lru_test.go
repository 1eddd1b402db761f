package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache(capacity int, ttl time.Duration) (*LRU[string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[string](capacity, ttl)
	c.now = clock.Now
	return c, clock
}

func TestLRU_GetSet(t *testing.T) {
	c, _ := newTestCache(4, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("Get on empty cache reported a hit")
	}

	c.Set("r:Curiosity|c:|d:2015-05-30", "photos")
	got, ok := c.Get("r:Curiosity|c:|d:2015-05-30")
	if !ok || got != "photos" {
		t.Fatalf("Get() = %q, %v", got, ok)
	}

	c.Set("r:Curiosity|c:|d:2015-05-30", "updated")
	if got, _ := c.Get("r:Curiosity|c:|d:2015-05-30"); got != "updated" {
		t.Errorf("update not visible: %q", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLRU_Expiry(t *testing.T) {
	c, clock := newTestCache(4, 5*time.Minute)
	c.Set("k", "v")

	clock.Advance(5 * time.Minute)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("entry expired exactly at TTL, want still live")
	}

	clock.Advance(time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatal("entry served after TTL")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not removed on read, Len() = %d", c.Len())
	}
}

func TestLRU_SetRefreshesTTL(t *testing.T) {
	c, clock := newTestCache(4, time.Minute)
	c.Set("k", "v1")
	clock.Advance(50 * time.Second)
	c.Set("k", "v2")
	clock.Advance(50 * time.Second)
	if v, ok := c.Get("k"); !ok || v != "v2" {
		t.Errorf("Get() = %q, %v after refresh", v, ok)
	}
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestCache(3, time.Hour)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("c", "3")

	c.Get("a") // a becomes most recent; b is now oldest
	c.Set("d", "4")

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s missing after eviction", k)
		}
	}
	if s := c.Stats(); s.Evictions != 1 || s.Size != 3 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestLRU_CleanupExpired(t *testing.T) {
	c, clock := newTestCache(10, time.Minute)
	c.Set("old1", "x")
	c.Set("old2", "x")
	clock.Advance(30 * time.Second)
	c.Set("new", "x")
	clock.Advance(45 * time.Second)

	if removed := c.CleanupExpired(); removed != 2 {
		t.Errorf("CleanupExpired() = %d, want 2", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLRU_Stats(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	c.Set("a", "1")
	c.Get("a")
	c.Get("a")
	c.Get("b")

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Size != 1 || s.Capacity != 10 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestLRU_Defaults(t *testing.T) {
	c := New[int](0, 0)
	if c.TTL() != DefaultTTL || c.Stats().Capacity != DefaultCapacity {
		t.Errorf("defaults not applied: ttl=%v cap=%d", c.TTL(), c.Stats().Capacity)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := New[int](100, time.Minute)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := fmt.Sprintf("k%d", (g*500+i)%150)
				c.Set(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}
