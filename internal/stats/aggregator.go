// Package stats computes the derived dashboard metrics. Metrics are
// recomputed on demand from a record collection and never persisted;
// trends compare against an explicitly captured baseline and degrade to
// neutral when none exists.
package stats

import (
	"fmt"
	"sync"

	"github.com/dialpro/apiserver/types"
)

// Scope narrows a record collection to what the requesting role may
// see: admins aggregate organization-wide, employees only over their
// self-attributed records.
type Scope struct {
	Role   types.Role
	Viewer string
}

func (s Scope) key() string {
	if s.Role == types.RoleEmployee {
		return string(s.Role) + "/" + s.Viewer
	}
	return string(s.Role)
}

// aggregate holds the raw numbers one summary is derived from.
type aggregate struct {
	calls           int
	employees       int
	successRate     float64
	avgDurationSecs int
	talkTimeSecs    int
	followUps       int
}

// Aggregator computes summaries and remembers per-scope baselines for
// trend computation.
type Aggregator struct {
	mu        sync.Mutex
	baselines map[string]aggregate
}

// New constructs an Aggregator with no baselines.
func New() *Aggregator {
	return &Aggregator{baselines: make(map[string]aggregate)}
}

// CaptureBaseline records the current scoped aggregate as the baseline
// future summaries are compared against.
func (a *Aggregator) CaptureBaseline(entries []types.CallLogEntry, scope Scope) {
	agg := compute(scoped(entries, scope))
	a.mu.Lock()
	a.baselines[scope.key()] = agg
	a.mu.Unlock()
}

// Summarize computes the ordered metric list for the scope. It never
// fails: a missing baseline only degrades every trend to neutral.
func (a *Aggregator) Summarize(entries []types.CallLogEntry, scope Scope) []types.StatMetric {
	agg := compute(scoped(entries, scope))

	a.mu.Lock()
	baseline, hasBaseline := a.baselines[scope.key()]
	a.mu.Unlock()

	if scope.Role == types.RoleAdmin {
		return []types.StatMetric{
			{
				Title: "Total Calls Today",
				Value: fmt.Sprintf("%d", agg.calls),
				Trend: countTrend(agg.calls, baseline.calls, hasBaseline),
			},
			{
				Title: "Active Employees",
				Value: fmt.Sprintf("%d", agg.employees),
				Trend: countTrend(agg.employees, baseline.employees, hasBaseline),
			},
			{
				Title: "Call Success Rate",
				Value: formatRate(agg.successRate),
				Trend: rateTrend(agg.successRate, baseline.successRate, hasBaseline),
			},
			{
				Title: "Avg Call Duration",
				Value: formatClock(agg.avgDurationSecs),
				Trend: durationTrend(agg.avgDurationSecs, baseline.avgDurationSecs, hasBaseline),
			},
		}
	}

	return []types.StatMetric{
		{
			Title: "Calls Today",
			Value: fmt.Sprintf("%d", agg.calls),
			Trend: countTrend(agg.calls, baseline.calls, hasBaseline),
		},
		{
			Title: "Talk Time",
			Value: formatTalkTime(agg.talkTimeSecs),
			Trend: durationTrend(agg.talkTimeSecs, baseline.talkTimeSecs, hasBaseline),
		},
		{
			Title: "Success Rate",
			Value: formatRate(agg.successRate),
			Trend: rateTrend(agg.successRate, baseline.successRate, hasBaseline),
		},
		{
			Title: "Follow-ups",
			Value: fmt.Sprintf("%d", agg.followUps),
			Trend: countTrend(agg.followUps, baseline.followUps, hasBaseline),
		},
	}
}

func scoped(entries []types.CallLogEntry, scope Scope) []types.CallLogEntry {
	if scope.Role != types.RoleEmployee {
		return entries
	}
	out := make([]types.CallLogEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.EmployeeName == scope.Viewer {
			out = append(out, entry)
		}
	}
	return out
}

func compute(entries []types.CallLogEntry) aggregate {
	var agg aggregate
	agg.calls = len(entries)

	seen := make(map[string]struct{})
	completed := 0
	for _, entry := range entries {
		seen[entry.EmployeeName] = struct{}{}
		agg.talkTimeSecs += entry.DurationSeconds
		if entry.Status == types.StatusCompleted {
			completed++
		}
		if entry.Status == types.StatusFollowUp {
			agg.followUps++
		}
	}
	agg.employees = len(seen)
	if agg.calls > 0 {
		agg.successRate = float64(completed) / float64(agg.calls) * 100
		agg.avgDurationSecs = agg.talkTimeSecs / agg.calls
	}
	return agg
}

func countTrend(current, baseline int, hasBaseline bool) types.Trend {
	if !hasBaseline || current == baseline {
		return types.Trend{Direction: types.TrendNeutral}
	}
	if current > baseline {
		return types.Trend{Delta: fmt.Sprintf("+%d", current-baseline), Direction: types.TrendUp}
	}
	return types.Trend{Delta: fmt.Sprintf("-%d", baseline-current), Direction: types.TrendDown}
}

func rateTrend(current, baseline float64, hasBaseline bool) types.Trend {
	if !hasBaseline || current == baseline {
		return types.Trend{Direction: types.TrendNeutral}
	}
	if current > baseline {
		return types.Trend{Delta: fmt.Sprintf("+%.1f%%", current-baseline), Direction: types.TrendUp}
	}
	return types.Trend{Delta: fmt.Sprintf("-%.1f%%", baseline-current), Direction: types.TrendDown}
}

func durationTrend(current, baseline int, hasBaseline bool) types.Trend {
	if !hasBaseline || current == baseline {
		return types.Trend{Direction: types.TrendNeutral}
	}
	if current > baseline {
		return types.Trend{Delta: "+" + formatClock(current-baseline), Direction: types.TrendUp}
	}
	return types.Trend{Delta: "-" + formatClock(baseline-current), Direction: types.TrendDown}
}

func formatRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

// formatClock renders seconds as m:ss, the way call durations appear on
// the dashboard.
func formatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// formatTalkTime renders a total as "2h 34m" style.
func formatTalkTime(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
