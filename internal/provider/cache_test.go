package provider

import (
	"fmt"
	"sync"
	"testing"
)

func TestResultCache_GetSet(t *testing.T) {
	c := newResultCache(2)
	if v, ok := c.Get("a"); ok || v != nil {
		t.Fatal("expected miss")
	}
	c.Set("a", &Result{TotalResults: 1})
	v, ok := c.Get("a")
	if !ok || v.TotalResults != 1 {
		t.Errorf("Get: got %v, %v", v, ok)
	}
	c.Set("b", &Result{TotalResults: 2})
	c.Set("c", &Result{TotalResults: 3}) // evicts a
	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be evicted")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("expected b to remain")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("expected c to be present")
	}
}

// Meaningful under the race detector: Get promotes entries on the shared
// recency list, so concurrent hits contend with stores on the same lock.
func TestResultCache_ConcurrentAccess(t *testing.T) {
	const keys = 64
	c := newResultCache(keys)
	for i := 0; i < keys; i++ {
		c.Set(fmt.Sprintf("k%d", i), &Result{TotalResults: i})
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				key := fmt.Sprintf("k%d", (g+i)%keys)
				if g%2 == 0 {
					if _, ok := c.Get(key); !ok {
						t.Errorf("Get(%s) missed on a warm cache", key)
						return
					}
				} else {
					c.Set(key, &Result{TotalResults: (g + i) % keys})
				}
			}
		}(g)
	}
	wg.Wait()

	if len(c.cache) != keys || c.lru.Len() != keys {
		t.Errorf("cache holds %d keys, list holds %d, want %d", len(c.cache), c.lru.Len(), keys)
	}
	for i := 0; i < keys; i++ {
		v, ok := c.Get(fmt.Sprintf("k%d", i))
		if !ok || v.TotalResults != i {
			t.Errorf("Get(k%d) = %v, %v, want TotalResults %d", i, v, ok, i)
		}
	}
}

func TestResultCache_Disabled(t *testing.T) {
	c := newResultCache(0)
	if c != nil {
		t.Fatalf("newResultCache(0) = %v, want nil", c)
	}
	c.Set("a", &Result{})
	if _, ok := c.Get("a"); ok {
		t.Error("disabled cache should never hit")
	}
}
