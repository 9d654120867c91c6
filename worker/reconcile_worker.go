package worker

import (
	"context"
	"log"
	"time"

	"govmadad/service"
)

// ReconcileWorker is a background worker that periodically runs a full
// reconciliation pass so countdowns stay fresh even when nobody is reading.
type ReconcileWorker struct {
	reconciler *service.ReconcilerService
	interval   time.Duration
	stopChan   chan struct{}
	running    bool
}

// NewReconcileWorker creates a new reconcile worker
func NewReconcileWorker(reconciler *service.ReconcilerService, interval time.Duration) *ReconcileWorker {
	return &ReconcileWorker{
		reconciler: reconciler,
		interval:   interval,
		stopChan:   make(chan struct{}),
		running:    false,
	}
}

// Start starts the reconcile worker in its own goroutine.
func (w *ReconcileWorker) Start() {
	if w.running {
		log.Println("Reconcile worker is already running")
		return
	}

	w.running = true
	log.Printf("Reconcile worker started (interval: %v)", w.interval)

	go w.run()
}

// Stop stops the reconcile worker. An in-flight pass is abandoned; since each
// record's update is independent and idempotent, stopping mid-pass is safe.
func (w *ReconcileWorker) Stop() {
	if !w.running {
		return
	}

	log.Println("Stopping reconcile worker...")
	close(w.stopChan)
	w.running = false
	log.Println("Reconcile worker stopped")
}

// run is the main worker loop
func (w *ReconcileWorker) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-w.stopChan
		cancel()
	}()

	// Process immediately on start
	w.reconcile(ctx)

	for {
		select {
		case <-ticker.C:
			w.reconcile(ctx)
		case <-w.stopChan:
			return
		}
	}
}

// reconcile runs one pass. Idempotent - safe to call any number of times.
func (w *ReconcileWorker) reconcile(ctx context.Context) {
	startTime := time.Now()

	results, err := w.reconciler.ReconcileAll(ctx)
	if err != nil {
		log.Printf("Error running reconciliation pass: %v", err)
		return
	}

	changed := 0
	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		} else if result.Changed {
			changed++
		}
	}

	log.Printf("Reconciliation pass completed in %v: %d records, %d updated, %d write failures",
		time.Since(startTime), len(results), changed, failed)
}
