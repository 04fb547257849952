package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/routeai/admin-console/internal/core/domain"
	"github.com/routeai/admin-console/internal/core/ports"
)

// Roster holds the in-memory list of managed users. It is the single source of
// truth the workflows read from and write back into. Rows keep the order the
// server returned them in; the console never re-sorts, so row identity stays
// stable during edits.
type Roster struct {
	directory ports.UserDirectory
	log       zerolog.Logger

	mu       sync.Mutex
	users    []domain.User
	index    map[string]int
	loaded   bool
	loadedAt time.Time
	now      func() time.Time
}

func NewRoster(directory ports.UserDirectory, log zerolog.Logger) *Roster {
	return &Roster{
		directory: directory,
		log:       log,
		index:     map[string]int{},
		now:       time.Now,
	}
}

// Load fetches the full user list and replaces the store's contents. On
// failure the store is emptied rather than retaining a stale list.
func (r *Roster) Load(ctx context.Context) error {
	users, err := r.directory.ListUsers(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.users = nil
		r.index = map[string]int{}
		r.loaded = false
		r.log.Error().Err(err).Msg("roster load failed")
		return fmt.Errorf("load roster: %w", err)
	}

	index := make(map[string]int, len(users))
	for i, u := range users {
		index[u.ID] = i
	}
	r.users = users
	r.index = index
	r.loaded = true
	r.loadedAt = r.now()
	r.log.Info().Int("users", len(users)).Msg("roster loaded")
	return nil
}

// Users returns a copy of the roster in server order.
func (r *Roster) Users() []domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out
}

// Get returns the roster row for id.
func (r *Roster) Get(id string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		return domain.User{}, domain.ErrRosterNotLoaded
	}
	i, ok := r.index[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return r.users[i], nil
}

// Loaded reports whether the last Load succeeded.
func (r *Roster) Loaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loaded
}

// LoadedAt returns the time of the last successful Load.
func (r *Roster) LoadedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadedAt
}

// ApplyRoleUpdate replaces only the role field of the matching row. Callers
// invoke it exclusively after a confirmed server success.
func (r *Roster) ApplyRoleUpdate(id string, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	r.users[i].Role = role
	return nil
}

// ApplyBalanceUpdate replaces only the balance field of the matching row with
// the server-returned authoritative value.
func (r *Roster) ApplyBalanceUpdate(id string, balanceCents int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	r.users[i].BalanceCents = &balanceCents
	return nil
}
