package memory

import (
	"sync"
	"time"

	"github.com/rob-foulkrod/ff/internal/models"
)

// Snapshot is one fully loaded league: static configuration plus every
// completed matchup, stamped with when it was fetched.
type Snapshot struct {
	Config      models.LeagueConfig
	History     []models.Matchup
	LastUpdated time.Time
}

type Repository struct {
	snapshot *Snapshot
	mu       sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Save(snapshot *Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = snapshot
}

func (r *Repository) Get() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// Stale reports whether the cached snapshot is missing or older than ttl.
func (r *Repository) Stale(ttl time.Duration) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot == nil || time.Since(r.snapshot.LastUpdated) > ttl
}
