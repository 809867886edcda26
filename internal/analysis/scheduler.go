package analysis

import (
	"log"
	"sync"
	"time"

	"github.com/fernapp/fern/internal/journal"
	"github.com/fernapp/fern/internal/mood"
)

// Scheduler re-runs the analysis in the background once enough time has
// passed and new data exists. The clock is injectable for tests.
type Scheduler struct {
	now        func() time.Time
	minGap     time.Duration
	checkEvery time.Duration

	mu           sync.Mutex
	lastAnalyzed time.Time
	stop         chan struct{}
	done         chan struct{}
}

// Scheduling cadence.
const (
	defaultMinGap     = 24 * time.Hour
	defaultCheckEvery = time.Hour
)

// NewScheduler builds a scheduler. A nil now falls back to time.Now.
func NewScheduler(now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		now:        now,
		minGap:     defaultMinGap,
		checkEvery: defaultCheckEvery,
	}
}

// MarkAnalyzed records when an analysis last completed, whether it was
// triggered here or by an explicit user request.
func (s *Scheduler) MarkAnalyzed(t time.Time) {
	s.mu.Lock()
	s.lastAnalyzed = t
	s.mu.Unlock()
}

// LastAnalyzed returns the recorded completion time, zero if none.
func (s *Scheduler) LastAnalyzed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAnalyzed
}

// ShouldAnalyze reports whether a fresh analysis is due: at least the minimum
// gap since the last one, and at least one mood or journal entry recorded
// since then. With no prior analysis, any data at all makes it due.
func (s *Scheduler) ShouldAnalyze(moods []mood.Entry, journals []journal.Entry) bool {
	s.mu.Lock()
	last := s.lastAnalyzed
	s.mu.Unlock()

	if last.IsZero() {
		return len(moods) > 0 || len(journals) > 0
	}
	if s.now().Sub(last) < s.minGap {
		return false
	}
	for _, m := range moods {
		if m.Timestamp.After(last) {
			return true
		}
	}
	for _, j := range journals {
		if j.UpdatedAt.After(last) {
			return true
		}
	}
	return false
}

// Start launches the background loop. run is invoked whenever ShouldAnalyze
// says an analysis is due; it is responsible for calling MarkAnalyzed on
// success. Start is a no-op if the loop is already running.
func (s *Scheduler) Start(run func()) {
	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stop, s.done
	s.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.checkEvery)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				run()
			}
		}
	}()
	log.Printf("analysis scheduler started (every %s)", s.checkEvery)
}

// Stop halts the background loop and waits for it to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}
