package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type widget struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func testPolicy() *Policy {
	return NewPolicy(TTL{List: time.Minute, Item: time.Minute})
}

// countingRecorder tallies outcome events per level.
type countingRecorder struct {
	mu            sync.Mutex
	hits          map[string]int
	misses        map[string]int
	invalidations map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		hits:          map[string]int{},
		misses:        map[string]int{},
		invalidations: map[string]int{},
	}
}

func (c *countingRecorder) Hit(_ context.Context, _, level string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits[level]++
}

func (c *countingRecorder) Miss(_ context.Context, _, level string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.misses[level]++
}

func (c *countingRecorder) Invalidation(_ context.Context, _, level string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations[level]++
}

func TestReadThrough_ListMissThenHit(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	rec := newCountingRecorder()
	rt := NewReadThrough[widget]("widget", store, testPolicy(), WithRecorder[widget](rec))
	ctx := context.Background()

	var loads atomic.Int32
	load := func(context.Context) ([]widget, error) {
		loads.Add(1)
		return []widget{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}, nil
	}

	first, err := rt.GetList(ctx, load)
	if err != nil {
		t.Fatalf("GetList failed: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("GetList returned %d widgets, want 2", len(first))
	}

	second, err := rt.GetList(ctx, load)
	if err != nil {
		t.Fatalf("GetList (cached) failed: %v", err)
	}
	if len(second) != 2 || second[0] != first[0] {
		t.Errorf("cached list differs from loaded list: %+v vs %+v", second, first)
	}

	if n := loads.Load(); n != 1 {
		t.Errorf("loader invoked %d times, want 1", n)
	}
	if rec.misses["list"] != 1 || rec.hits["list"] != 1 {
		t.Errorf("recorder saw misses=%d hits=%d, want 1/1", rec.misses["list"], rec.hits["list"])
	}
}

func TestReadThrough_ItemMissThenHit(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	rt := NewReadThrough[widget]("widget", store, testPolicy())
	ctx := context.Background()

	var loads atomic.Int32
	load := func(context.Context) (widget, error) {
		loads.Add(1)
		return widget{ID: 7, Name: "seven"}, nil
	}

	for i := 0; i < 3; i++ {
		w, err := rt.GetItem(ctx, 7, load)
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}
		if w.ID != 7 || w.Name != "seven" {
			t.Errorf("GetItem returned %+v", w)
		}
	}

	if n := loads.Load(); n != 1 {
		t.Errorf("loader invoked %d times, want 1", n)
	}
}

func TestReadThrough_LoadErrorNotCached(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	rt := NewReadThrough[widget]("widget", store, testPolicy())
	ctx := context.Background()

	errNotFound := errors.New("not found")
	var loads atomic.Int32
	failing := func(context.Context) (widget, error) {
		loads.Add(1)
		return widget{}, errNotFound
	}

	if _, err := rt.GetItem(ctx, 9, failing); !errors.Is(err, errNotFound) {
		t.Fatalf("GetItem error = %v, want %v", err, errNotFound)
	}

	// The failed lookup must not have been cached: an entity created
	// right after it is visible on the next read.
	created := func(context.Context) (widget, error) {
		loads.Add(1)
		return widget{ID: 9, Name: "nine"}, nil
	}
	w, err := rt.GetItem(ctx, 9, created)
	if err != nil {
		t.Fatalf("GetItem after create failed: %v", err)
	}
	if w.Name != "nine" {
		t.Errorf("GetItem returned %+v, want the freshly created entity", w)
	}
	if n := loads.Load(); n != 2 {
		t.Errorf("loader invoked %d times, want 2", n)
	}
}

func TestReadThrough_ExpiredEntryReloads(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	store := NewMemoryStore(WithClock(func() time.Time { return now }))
	defer store.Close()
	rt := NewReadThrough[widget]("widget", store, NewPolicy(TTL{List: time.Minute, Item: time.Minute}))
	ctx := context.Background()

	var loads atomic.Int32
	load := func(context.Context) ([]widget, error) {
		loads.Add(1)
		return []widget{{ID: int(loads.Load())}}, nil
	}

	if _, err := rt.GetList(ctx, load); err != nil {
		t.Fatalf("GetList failed: %v", err)
	}

	now = now.Add(time.Minute)
	list, err := rt.GetList(ctx, load)
	if err != nil {
		t.Fatalf("GetList after expiry failed: %v", err)
	}
	if loads.Load() != 2 {
		t.Errorf("loader invoked %d times, want 2", loads.Load())
	}
	if list[0].ID != 2 {
		t.Errorf("expired read returned the stale snapshot: %+v", list)
	}
}

func TestReadThrough_UndecodableSnapshotDropped(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	rt := NewReadThrough[widget]("widget", store, testPolicy())
	ctx := context.Background()

	if err := store.Set(ctx, ItemKey("widget", 3), []byte("{not json"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	w, err := rt.GetItem(ctx, 3, func(context.Context) (widget, error) {
		return widget{ID: 3, Name: "fresh"}, nil
	})
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if w.Name != "fresh" {
		t.Errorf("GetItem returned %+v, want the reloaded entity", w)
	}

	// The bad snapshot was replaced by the fresh one.
	raw, ok := store.Get(ctx, ItemKey("widget", 3))
	if !ok || string(raw) == "{not json" {
		t.Errorf("stale snapshot still present: ok=%v raw=%q", ok, raw)
	}
}

func TestReadThrough_ConcurrentMisses(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	rt := NewReadThrough[widget]("widget", store, testPolicy())
	ctx := context.Background()

	var loads atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) ([]widget, error) {
		loads.Add(1)
		<-release
		return []widget{{ID: 1}}, nil
	}

	const readers = 8
	var wg sync.WaitGroup
	results := make([][]widget, readers)
	errs := make([]error, readers)
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = rt.GetList(ctx, load)
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	// Duplicate loads are allowed; every reader still gets the same
	// consistent result.
	if loads.Load() < 1 {
		t.Fatal("loader never invoked")
	}
	for i := 0; i < readers; i++ {
		if errs[i] != nil {
			t.Fatalf("reader %d failed: %v", i, errs[i])
		}
		if len(results[i]) != 1 || results[i][0].ID != 1 {
			t.Errorf("reader %d got %+v", i, results[i])
		}
	}
}

func TestReadThrough_SingleFlightCollapsesMisses(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	rt := NewReadThrough[widget]("widget", store, testPolicy(), WithSingleFlight[widget]())
	ctx := context.Background()

	var loads atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) ([]widget, error) {
		loads.Add(1)
		<-release
		return []widget{{ID: 1}}, nil
	}

	const readers = 8
	var wg sync.WaitGroup
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			if _, err := rt.GetList(ctx, load); err != nil {
				t.Errorf("GetList failed: %v", err)
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := loads.Load(); n != 1 {
		t.Errorf("loader invoked %d times with singleflight, want 1", n)
	}
}

func TestReadThrough_PerKindIsolation(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	widgets := NewReadThrough[widget]("widget", store, testPolicy())
	gadgets := NewReadThrough[widget]("gadget", store, testPolicy())

	if _, err := widgets.GetList(ctx, func(context.Context) ([]widget, error) {
		return []widget{{ID: 1, Name: "widget"}}, nil
	}); err != nil {
		t.Fatalf("GetList(widget) failed: %v", err)
	}

	list, err := gadgets.GetList(ctx, func(context.Context) ([]widget, error) {
		return []widget{{ID: 1, Name: "gadget"}}, nil
	})
	if err != nil {
		t.Fatalf("GetList(gadget) failed: %v", err)
	}
	if list[0].Name != "gadget" {
		t.Errorf("gadget list served the widget snapshot: %+v", list)
	}
}

func TestReadThrough_ItemKeysIndependent(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	rt := NewReadThrough[widget]("widget", store, testPolicy())
	ctx := context.Background()

	for id := 1; id <= 3; id++ {
		id := id
		w, err := rt.GetItem(ctx, id, func(context.Context) (widget, error) {
			return widget{ID: id, Name: fmt.Sprintf("w%d", id)}, nil
		})
		if err != nil {
			t.Fatalf("GetItem(%d) failed: %v", id, err)
		}
		if w.ID != id {
			t.Errorf("GetItem(%d) returned %+v", id, w)
		}
	}

	// All three entries live side by side.
	for id := 1; id <= 3; id++ {
		if _, ok := store.Get(ctx, ItemKey("widget", id)); !ok {
			t.Errorf("item entry for id %d missing", id)
		}
	}
}
