package store

import (
	"context"
	"fmt"
	"time"
)

// Stats summarizes the site's traffic and inbox for the admin dashboard.
type Stats struct {
	TotalVisitors    int64     `json:"total_visitors"`
	UniqueVisitors   int64     `json:"unique_visitors"`
	VisitorsToday    int64     `json:"visitors_today"`
	VisitorsThisWeek int64     `json:"visitors_this_week"`
	TotalMessages    int64     `json:"total_messages"`
	RecentVisitors   []Visitor `json:"recent_visitors"`
	RecentMessages   []Message `json:"recent_messages"`
}

// Stats gathers the dashboard numbers.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	stats := &Stats{}
	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{today}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{weekAgo}},
		{&stats.TotalMessages, `SELECT COUNT(*) FROM messages`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	var err error
	if stats.RecentVisitors, err = s.RecentVisits(ctx, 50); err != nil {
		return nil, err
	}
	if stats.RecentMessages, err = s.Messages(ctx, 10); err != nil {
		return nil, err
	}
	return stats, nil
}
