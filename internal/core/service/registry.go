package service

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/routeai/admin-console/internal/core/domain"
	"github.com/routeai/admin-console/internal/core/ports"
)

const defaultConsoleIdleTTL = 30 * time.Minute

// Registry hands out one console per operator. Consoles are created lazily on
// first admitted request and discarded after sitting idle or when access is
// revoked.
type Registry struct {
	directory ports.UserDirectory
	audit     ports.AuditRecorder
	guard     SubmitGuard
	log       zerolog.Logger

	mu       sync.Mutex
	consoles map[string]*registryEntry
	idleTTL  time.Duration
	now      func() time.Time
}

type registryEntry struct {
	console  *Console
	lastSeen time.Time
}

func NewRegistry(directory ports.UserDirectory, audit ports.AuditRecorder, guard SubmitGuard, log zerolog.Logger) *Registry {
	return &Registry{
		directory: directory,
		audit:     audit,
		guard:     guard,
		log:       log,
		consoles:  map[string]*registryEntry{},
		idleTTL:   defaultConsoleIdleTTL,
		now:       time.Now,
	}
}

// Console returns the operator's console, creating it on first use. The
// access gate is re-checked on every call: a session that no longer resolves
// to an admin is denied and its console discarded.
func (r *Registry) Console(session domain.Session) (ports.ConsoleService, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := NewAccessGate().Admit(&session); err != nil {
		delete(r.consoles, session.OperatorID)
		return nil, err
	}

	r.evictIdle()

	entry, ok := r.consoles[session.OperatorID]
	if !ok {
		entry = &registryEntry{console: NewConsole(session, r.directory, r.audit, r.guard, r.log)}
		r.consoles[session.OperatorID] = entry
		r.log.Debug().Str("operator_id", session.OperatorID).Msg("console created")
	}
	entry.lastSeen = r.now()
	return entry.console, nil
}

// Revoke discards an operator's console, e.g. on logout.
func (r *Registry) Revoke(operatorID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.consoles, operatorID)
}

func (r *Registry) evictIdle() {
	cutoff := r.now().Add(-r.idleTTL)
	for id, entry := range r.consoles {
		if entry.lastSeen.Before(cutoff) {
			delete(r.consoles, id)
			r.log.Debug().Str("operator_id", id).Msg("idle console evicted")
		}
	}
}
