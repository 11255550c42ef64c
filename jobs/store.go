// Package jobs tracks guide runs started in the background.
package jobs

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Done reports whether s is terminal.
func (s Status) Done() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Job is a snapshot of one background guide run.
type Job struct {
	ID             string     `json:"id"`
	Topic          string     `json:"topic"`
	TargetAudience string     `json:"target_audience"`
	Status         Status     `json:"status"`
	Stage          string     `json:"stage,omitempty"`
	SectionsDone   int        `json:"sections_done"`
	SectionsTotal  int        `json:"sections_total"`
	OutputDir      string     `json:"output_dir,omitempty"`
	OutlinePath    string     `json:"outline_path,omitempty"`
	GuidePath      string     `json:"guide_path,omitempty"`
	Error          string     `json:"error,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
}

// Store keeps jobs in memory in creation order.
type Store struct {
	mu    sync.Mutex
	jobs  map[string]*Job
	order []string
}

func NewStore() *Store {
	return &Store{jobs: make(map[string]*Job)}
}

// Create registers a pending job and returns its snapshot.
func (s *Store) Create(topic, audience string) Job {
	j := &Job{
		ID:             uuid.NewString(),
		Topic:          topic,
		TargetAudience: audience,
		Status:         StatusPending,
		CreatedAt:      time.Now().UTC(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[j.ID] = j
	s.order = append(s.order, j.ID)
	return *j
}

func (s *Store) Get(id string) (Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *j, true
}

// List returns all jobs, oldest first.
func (s *Store) List() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Job, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.jobs[id])
	}
	return out
}

// Update applies fn to the stored job under the lock. It reports false
// when id is unknown.
func (s *Store) Update(id string, fn func(*Job)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return false
	}
	fn(j)
	return true
}
