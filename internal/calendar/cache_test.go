package calendar

import (
	"sync"
	"testing"

	"github.com/spiffcs/ghlens/internal/model"
)

func TestYearCacheMissIsStable(t *testing.T) {
	c := NewYearCache()
	for i := 0; i < 2; i++ {
		if _, ok := c.Get("octocat", 2023); ok {
			t.Fatalf("lookup %d: expected miss on empty cache", i)
		}
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestYearCachePutGet(t *testing.T) {
	c := NewYearCache()
	data := &model.ContributionCalendar{TotalContributions: 500}

	if !c.Put("octocat", 2023, data) {
		t.Fatal("first Put should store")
	}
	for i := 0; i < 3; i++ {
		got, ok := c.Get("octocat", 2023)
		if !ok {
			t.Fatal("expected hit after Put")
		}
		if got != data {
			t.Errorf("Get returned %p, want %p", got, data)
		}
	}
}

func TestYearCacheFirstPutWins(t *testing.T) {
	c := NewYearCache()
	first := &model.ContributionCalendar{TotalContributions: 1}
	second := &model.ContributionCalendar{TotalContributions: 2}

	c.Put("octocat", 2023, first)
	if c.Put("octocat", 2023, second) {
		t.Error("second Put for the same key should be ignored")
	}
	if c.Put("octocat", 2023, first) {
		t.Error("repeated Put of the same value should have no effect")
	}
	got, _ := c.Get("octocat", 2023)
	if got != first {
		t.Errorf("cached value was overwritten")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestYearCacheKeysDoNotCollide(t *testing.T) {
	c := NewYearCache()
	// "ab"+"12023" and "ab1"+"2023" concatenate to the same string.
	a := &model.ContributionCalendar{TotalContributions: 1}
	b := &model.ContributionCalendar{TotalContributions: 2}
	c.Put("ab", 12023, a)
	c.Put("ab1", 2023, b)

	if got, _ := c.Get("ab", 12023); got != a {
		t.Error("ab/12023 returned wrong dataset")
	}
	if got, _ := c.Get("ab1", 2023); got != b {
		t.Error("ab1/2023 returned wrong dataset")
	}
	if _, ok := c.Get("ab", 2023); ok {
		t.Error("unexpected hit for ab/2023")
	}
}

func TestYearCacheNilPut(t *testing.T) {
	c := NewYearCache()
	if c.Put("octocat", 2023, nil) {
		t.Error("nil data should not be stored")
	}
	if _, ok := c.Get("octocat", 2023); ok {
		t.Error("nil Put should not populate the cache")
	}
}

func TestYearCacheConcurrentPut(t *testing.T) {
	c := NewYearCache()
	var wg sync.WaitGroup
	stored := make(chan bool, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			stored <- c.Put("octocat", 2023, &model.ContributionCalendar{TotalContributions: n})
		}(i)
	}
	wg.Wait()
	close(stored)

	wins := 0
	for ok := range stored {
		if ok {
			wins++
		}
	}
	if wins != 1 {
		t.Errorf("expected exactly one winning Put, got %d", wins)
	}
}
