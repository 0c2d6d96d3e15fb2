package pipeline

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// ErrAlreadyRunning is returned when a run is requested while one is still
// in flight. At most one run executes at a time.
var ErrAlreadyRunning = errors.New("a run is already in progress")

// Supervisor owns the single-run invariant: it refuses to start a second
// run while one is outstanding, exposes the current state, and relays
// worker events to the presentation layer.
type Supervisor struct {
	Pipeline *Pipeline

	mu      sync.Mutex
	running bool
	cancel  *atomic.Bool
	state   atomic.Int32
	events  chan Event
}

func NewSupervisor(p *Pipeline) *Supervisor {
	s := &Supervisor{
		Pipeline: p,
		events:   make(chan Event, 64),
	}
	s.state.Store(int32(StateIdle))
	return s
}

// Events is the outbound queue the presentation layer drains.
func (s *Supervisor) Events() <-chan Event {
	return s.events
}

func (s *Supervisor) State() State {
	return State(s.state.Load())
}

func (s *Supervisor) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Start launches a run on a background worker. The returned error is the
// only way a run can be rejected.
func (s *Supervisor) Start(params Params) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.running = true
	cancel := &atomic.Bool{}
	s.cancel = cancel
	s.mu.Unlock()

	rc := &runContext{
		id:     uuid.New(),
		start:  s.Pipeline.Clock.Now(),
		params: params,
		cancel: cancel,
		setState: func(st State) {
			s.state.Store(int32(st))
		},
		post: func(ev Event) {
			s.events <- ev
		},
	}

	go func() {
		s.Pipeline.execute(rc)
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()
	return nil
}

// AutoStart begins an archive run when exactly one qualifying volume is
// already mounted and nothing is running. It reports whether a run started.
func (s *Supervisor) AutoStart(params Params) bool {
	if s.Running() {
		return false
	}
	if _, ok := s.Pipeline.Detector.Current(); !ok {
		return false
	}
	return s.Start(params) == nil
}

// Cancel sets the cooperative flag for the current run, if any. The worker
// observes it at the next stage boundary.
func (s *Supervisor) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running && s.cancel != nil {
		s.cancel.Store(true)
	}
}
