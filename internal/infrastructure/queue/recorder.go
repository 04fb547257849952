package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/routeai/admin-console/internal/api/metrics"
	"github.com/routeai/admin-console/internal/core/domain"
	"github.com/routeai/admin-console/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Recorder persists audit entries asynchronously so mutations never wait on
// the audit store. Entries are routed to a fixed set of workers by consistent
// hashing on the target user id, guaranteeing per-user audit ordering.
type Recorder struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewRecorder creates a Recorder with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewRecorder(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Recorder {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &Recorder{
		workers: make([]chan domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (r *Recorder) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
}

// Record enqueues an entry for persistence. The call is non-blocking up to
// channelBuffer capacity.
func (r *Recorder) Record(entry domain.AuditEntry) {
	i := r.shardIndex(entry.UserID)
	r.workers[i] <- entry
	metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(r.workers[i])))
}

// shardIndex maps a user id deterministically to a worker index.
func (r *Recorder) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(r.workers)
}

func (r *Recorder) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			// Audit persistence is best-effort: failures never surface to
			// the workflow that produced the entry.
			if err := r.repo.Insert(ctx, &entry); err != nil {
				r.log.Warn().Err(err).
					Str("user_id", entry.UserID).
					Int("worker_id", id).
					Msg("audit entry not persisted")
			}
		}
	}
}
