package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Visit is a page view as seen by the tracking middleware.
type Visit struct {
	IP        string
	UserAgent string
	Path      string
}

// Visitor is a stored page view. Raw IPs are never stored.
type Visitor struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// RecordVisit stores v with its IP hashed.
func (s *Store) RecordVisit(ctx context.Context, v Visit) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, s.HashIP(v.IP), v.UserAgent, v.Path, s.now().UTC())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// RecentVisits returns up to limit visits, newest first.
func (s *Store) RecentVisits(ctx context.Context, limit int) ([]Visitor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	defer rows.Close()

	var out []Visitor
	for rows.Next() {
		var v Visitor
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// PruneVisits deletes visits older than the retention window and returns
// how many were removed.
func (s *Store) PruneVisits(ctx context.Context, retention time.Duration) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM visitors WHERE timestamp < ?`, s.now().Add(-retention).UTC())
	if err != nil {
		return 0, fmt.Errorf("prune visits: %w", err)
	}
	return res.RowsAffected()
}

// Recorder writes visits off the request path. Visits arriving while the
// buffer is full are dropped.
type Recorder struct {
	store  *Store
	logger *zap.Logger
	ch     chan Visit
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewRecorder starts a recorder with room for size pending visits.
func (s *Store) NewRecorder(logger *zap.Logger, size int) *Recorder {
	r := &Recorder{
		store:  s,
		logger: logger,
		ch:     make(chan Visit, size),
		done:   make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *Recorder) run() {
	defer close(r.done)
	for v := range r.ch {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := r.store.RecordVisit(ctx, v); err != nil {
			r.logger.Warn("recording visitor", zap.Error(err))
		}
		cancel()
	}
}

// Record queues v. It reports false if the visit was dropped.
func (r *Recorder) Record(v Visit) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	select {
	case r.ch <- v:
		return true
	default:
		return false
	}
}

// Close stops accepting visits and waits for queued ones to be written.
func (r *Recorder) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.ch)
	}
	r.mu.Unlock()
	<-r.done
}
