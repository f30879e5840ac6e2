package services

import (
	"github.com/dialpro/apiserver/internal/records"
	"github.com/dialpro/apiserver/internal/stats"
	"github.com/dialpro/apiserver/types"
)

// StatsService computes role-scoped dashboard metrics over the record
// store.
type StatsService struct {
	store      *records.Store
	aggregator *stats.Aggregator
}

func NewStatsService(store *records.Store, aggregator *stats.Aggregator) *StatsService {
	return &StatsService{store: store, aggregator: aggregator}
}

// Summarize returns the metric list for the requesting user's scope.
func (s *StatsService) Summarize(user types.User) []types.StatMetric {
	return s.aggregator.Summarize(s.store.Snapshot(), scopeFor(user))
}

// CaptureBaseline snapshots the current aggregates as the baseline for
// the requesting user's scope. Until a baseline is captured every trend
// reports neutral.
func (s *StatsService) CaptureBaseline(user types.User) {
	s.aggregator.CaptureBaseline(s.store.Snapshot(), scopeFor(user))
}

func scopeFor(user types.User) stats.Scope {
	return stats.Scope{Role: user.Role, Viewer: user.Name}
}
