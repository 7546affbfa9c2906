// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package cache

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	nanos atomic.Int64
}

func newFakeClock() *fakeClock {
	c := &fakeClock{}
	c.nanos.Store(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).UnixNano())
	return c
}

func (c *fakeClock) Now() time.Time          { return time.Unix(0, c.nanos.Load()) }
func (c *fakeClock) Advance(d time.Duration) { c.nanos.Add(int64(d)) }

func newTestCache(t *testing.T, ttl time.Duration) (*Cache[[]byte], *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	c := NewWithCleanup[[]byte](ttl, time.Hour)
	c.now = clock.Now
	t.Cleanup(c.Close)
	return c, clock
}

func TestCache_SetGet(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(t, time.Minute)
	c.Set("a", []byte("png"))

	got, ok := c.Get("a")
	if !ok || string(got) != "png" {
		t.Fatalf("Get(a) = (%q, %v), want (png, true)", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) reported a hit")
	}

	s := c.GetStats()
	if s.Hits != 1 || s.Misses != 1 || s.TotalKeys != 1 {
		t.Errorf("stats = %+v, want 1 hit, 1 miss, 1 key", s)
	}
	if rate := c.HitRate(); rate != 50 {
		t.Errorf("HitRate() = %v, want 50", rate)
	}
}

func TestCache_Expiry(t *testing.T) {
	t.Parallel()

	c, clock := newTestCache(t, time.Minute)
	c.Set("a", []byte("x"))
	c.SetWithTTL("b", []byte("y"), time.Hour)

	clock.Advance(2 * time.Minute)

	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) after TTL reported a hit")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("Get(b) with longer TTL reported a miss")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if s := c.GetStats(); s.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", s.Evictions)
	}
}

func TestCache_Cleanup(t *testing.T) {
	t.Parallel()

	c, clock := newTestCache(t, time.Minute)
	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("k%d", i), []byte("v"))
	}
	clock.Advance(time.Hour)
	c.cleanup()

	if c.Len() != 0 {
		t.Errorf("Len() after cleanup = %d, want 0", c.Len())
	}
	s := c.GetStats()
	if s.Evictions != 3 || s.TotalKeys != 0 {
		t.Errorf("stats = %+v, want 3 evictions, 0 keys", s)
	}
	if !s.LastCleanup.Equal(clock.Now()) {
		t.Errorf("LastCleanup = %v, want %v", s.LastCleanup, clock.Now())
	}
}

func TestCache_DeleteClear(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(t, time.Minute)
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	c.Set("c", []byte("3"))

	c.Delete("a")
	c.Delete("never-set")
	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) after Delete reported a hit")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	if s := c.GetStats(); s.Evictions != 3 {
		t.Errorf("Evictions = %d, want 3", s.Evictions)
	}
}

func TestCache_Concurrent(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(t, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			for j := 0; j < 100; j++ {
				c.Set(key, []byte{byte(j)})
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() != 4 {
		t.Errorf("Len() = %d, want 4", c.Len())
	}
}

func TestCache_CloseIdempotent(t *testing.T) {
	t.Parallel()

	c := New[string](time.Minute)
	c.Close()
	c.Close()
}

func TestGenerateKey(t *testing.T) {
	t.Parallel()

	a := GenerateKey("chart:top_crimes", map[string]string{"engine": "memory"})
	b := GenerateKey("chart:top_crimes", map[string]string{"engine": "memory"})
	other := GenerateKey("chart:top_crimes", map[string]string{"engine": "duckdb"})

	if a != b {
		t.Errorf("GenerateKey not deterministic: %q != %q", a, b)
	}
	if a == other {
		t.Error("GenerateKey collided for different params")
	}
	if !strings.HasPrefix(a, "chart:top_crimes:") {
		t.Errorf("GenerateKey() = %q, want chart:top_crimes: prefix", a)
	}

	// Unserializable params fall back to fmt formatting.
	if got := GenerateKey("p", func() {}); !strings.HasPrefix(got, "p:") {
		t.Errorf("GenerateKey(func) = %q", got)
	}
}

func TestCache_PruneWithoutCleanup(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	c := NewWithoutCleanup[string](time.Minute)
	c.now = clock.Now

	c.Set("a", "1")
	c.SetWithTTL("b", "2", time.Hour)
	clock.Advance(2 * time.Minute)

	if n := c.Prune(); n != 1 {
		t.Errorf("Prune() = %d, want 1", n)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if n := c.Prune(); n != 0 {
		t.Errorf("second Prune() = %d, want 0", n)
	}
	if got := c.GetStats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}
