package task

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a task id is absent from the store,
// either because it was never created or because it has been garbage
// collected. Callers surface it as a client-visible "no such task".
var ErrNotFound = errors.New("task not found")

// DefaultTTL is how long a completed task survives in the store before
// the garbage collector evicts it.
const DefaultTTL = 600 * time.Second

// MemoryStore holds all task records for the lifetime of the process.
// A single mutex guards the map, the insertion-order queue and the
// garbage collection pass; every operation is a short read-modify-write
// with no external I/O, so finer-grained locking buys nothing.
type MemoryStore struct {
	mu     sync.Mutex
	tasks  map[uuid.UUID]*Task
	order  []uuid.UUID
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// NewMemoryStore creates an empty store with the given TTL for
// completed tasks. A non-positive ttl falls back to DefaultTTL.
func NewMemoryStore(ttl time.Duration, logger *slog.Logger) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MemoryStore{
		tasks:  make(map[uuid.UUID]*Task),
		order:  make([]uuid.UUID, 0),
		ttl:    ttl,
		now:    time.Now,
		logger: logger.With("component", "task_store"),
	}
}

// Insert adds a task record, stamping UpdatedAt with the current time.
// Garbage collection runs first so that TTL expiry is evaluated
// relative to now rather than on a timer. Inserting an id that already
// exists overwrites the record in place; the lifecycle orchestrator
// relies on this to rewrite a completed task into its next phase under
// the same id.
func (s *MemoryStore) Insert(t *Task) error {
	if err := t.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.collect()

	stored := *t
	stored.UpdatedAt = s.now()

	if _, exists := s.tasks[stored.ID]; exists {
		s.removeFromOrder(stored.ID)
	}
	s.tasks[stored.ID] = &stored
	s.order = append(s.order, stored.ID)

	s.logger.Debug("task inserted",
		"task_id", stored.ID,
		"domain", stored.Domain,
		"phase", stored.Phase,
		"status", stored.Status,
		"store_len", len(s.tasks))
	return nil
}

// Get returns a copy of the task with the given id, or ErrNotFound.
func (s *MemoryStore) Get(id uuid.UUID) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	return *t, nil
}

// ClaimOldestPending selects the oldest pending task, atomically
// transitions it to processing and returns a copy of it. The second
// return value is false when no pending task exists; callers surface
// that as "no work available", not as a failure.
func (s *MemoryStore) ClaimOldestPending() (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		t, ok := s.tasks[id]
		if !ok || t.Status != StatusPending {
			continue
		}

		t.Status = StatusProcessing
		s.logger.Debug("task claimed", "task_id", t.ID, "domain", t.Domain, "phase", t.Phase)
		return *t, true
	}

	return Task{}, false
}

// Complete marks the task as completed with the given result and
// refreshes its timestamp so the TTL counts from completion time, not
// creation time. Returns ErrNotFound if the id is absent. The store
// does not interpret the result.
func (s *MemoryStore) Complete(id uuid.UUID, result string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}

	t.Status = StatusCompleted
	t.Result = result
	t.UpdatedAt = s.now()

	s.logger.Debug("task completed", "task_id", t.ID, "domain", t.Domain, "phase", t.Phase)
	return *t, nil
}

// Delete removes the record with the given id, if present.
func (s *MemoryStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; ok {
		delete(s.tasks, id)
		s.removeFromOrder(id)
	}
}

// Len returns the number of records currently held.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// collect evicts completed tasks older than the TTL. Pending,
// processing and failed records are never evicted: in-flight or failed
// work must not be silently dropped, only delivered results age out.
// Callers must hold s.mu.
func (s *MemoryStore) collect() {
	cutoff := s.now().Add(-s.ttl)

	var expired []uuid.UUID
	for id, t := range s.tasks {
		if t.Status == StatusCompleted && t.UpdatedAt.Before(cutoff) {
			expired = append(expired, id)
		}
	}

	for _, id := range expired {
		delete(s.tasks, id)
		s.removeFromOrder(id)
		s.logger.Debug("task garbage collected", "task_id", id)
	}
}

// removeFromOrder drops the id from the insertion-order queue.
// Callers must hold s.mu.
func (s *MemoryStore) removeFromOrder(id uuid.UUID) {
	for i, candidate := range s.order {
		if candidate == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
