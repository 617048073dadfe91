// Package worker provides background analysis of track preview audio.
// Discovered tracks with preview URLs are queued here; workers estimate an
// energy value from the decoded audio and record it in the feature store for
// the legacy recommendation ranking to consult.
package worker

import (
	"log"
	"sync"
)

// Job is one preview-analysis task.
type Job struct {
	TrackID    string
	PreviewURL string
}

// Pool manages the background analysis workers.
type Pool struct {
	store *FeatureStore
	jobs  chan Job
	wg    sync.WaitGroup
}

// NewPool creates a pool writing results into store, with the given queue size.
func NewPool(store *FeatureStore, queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{store: store, jobs: make(chan Job, queueSize)}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a job without blocking; when the queue is full the job is
// dropped, since a missing estimate only degrades ranking.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	default:
		log.Printf("WARN worker: dropping analysis job for %s", job.TrackID)
	}
}

func (p *Pool) processJob(job Job) {
	if job.PreviewURL == "" {
		return
	}

	energy, err := AnalyzePreviewFunc(job.PreviewURL)
	if err != nil {
		log.Printf("WARN worker: preview analysis failed for %s: %v", job.TrackID, err)
		return
	}

	p.store.PutEnergy(job.TrackID, energy)
	log.Printf("DEBUG worker: analyzed preview for %s (energy %.2f)", job.TrackID, energy)
}
