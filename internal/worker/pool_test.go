package worker

import (
	"errors"
	"sync"
	"testing"
)

func overrideAnalyzer(t *testing.T, fn func(url string) (float64, error)) {
	t.Helper()
	orig := AnalyzePreviewFunc
	AnalyzePreviewFunc = fn
	t.Cleanup(func() { AnalyzePreviewFunc = orig })
}

func TestPool_AnalyzesAndStoresEnergy(t *testing.T) {
	var mu sync.Mutex
	analyzed := map[string]bool{}
	overrideAnalyzer(t, func(url string) (float64, error) {
		mu.Lock()
		analyzed[url] = true
		mu.Unlock()
		return 0.42, nil
	})

	store := NewFeatureStore()
	pool := NewPool(store, 10)
	pool.Start(2)

	pool.Submit(Job{TrackID: "t1", PreviewURL: "https://p.example/t1.mp3"})
	pool.Submit(Job{TrackID: "t2", PreviewURL: "https://p.example/t2.mp3"})
	pool.Stop()

	for _, id := range []string{"t1", "t2"} {
		energy, ok := store.Energy(id)
		if !ok {
			t.Errorf("no energy recorded for %s", id)
			continue
		}
		if energy != 0.42 {
			t.Errorf("energy for %s: got %v, want 0.42", id, energy)
		}
	}
	mu.Lock()
	defer mu.Unlock()
	if len(analyzed) != 2 {
		t.Errorf("expected 2 analyses, got %d", len(analyzed))
	}
}

func TestPool_SkipsEmptyPreviewURL(t *testing.T) {
	overrideAnalyzer(t, func(url string) (float64, error) {
		t.Errorf("analyzer must not run for empty URL, got %q", url)
		return 0, nil
	})

	store := NewFeatureStore()
	pool := NewPool(store, 10)
	pool.Start(1)
	pool.Submit(Job{TrackID: "t1"})
	pool.Stop()

	if _, ok := store.Energy("t1"); ok {
		t.Error("no energy should be recorded for a track without a preview")
	}
}

func TestPool_AnalysisFailureLeavesStoreUntouched(t *testing.T) {
	overrideAnalyzer(t, func(string) (float64, error) {
		return 0, errors.New("decode failed")
	})

	store := NewFeatureStore()
	pool := NewPool(store, 10)
	pool.Start(1)
	pool.Submit(Job{TrackID: "t1", PreviewURL: "https://p.example/t1.mp3"})
	pool.Stop()

	if _, ok := store.Energy("t1"); ok {
		t.Error("failed analysis must not record an estimate")
	}
}

func TestPool_FullQueueDropsJob(t *testing.T) {
	overrideAnalyzer(t, func(string) (float64, error) { return 0.5, nil })

	store := NewFeatureStore()
	pool := NewPool(store, 1)
	// No workers started: the queue holds one job, the second is dropped
	// rather than blocking the caller.
	pool.Submit(Job{TrackID: "t1", PreviewURL: "u1"})
	pool.Submit(Job{TrackID: "t2", PreviewURL: "u2"})

	pool.Start(1)
	pool.Stop()

	if _, ok := store.Energy("t1"); !ok {
		t.Error("queued job must be processed")
	}
	if _, ok := store.Energy("t2"); ok {
		t.Error("overflow job must be dropped")
	}
}
