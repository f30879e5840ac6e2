// Package query filters the call log. The engine is total over its
// input: every combination of filters yields a (possibly empty) result,
// never an error.
package query

import (
	"strings"
	"time"

	"github.com/dialpro/apiserver/internal/metrics"
	"github.com/dialpro/apiserver/types"
)

// FilterAll is the sentinel filter value meaning "no constraint".
const FilterAll = "all"

// Params describe one call log query. Role and Viewer identify the
// requesting user: employees are always scoped to their own records, no
// matter what EmployeeFilter says.
type Params struct {
	// SearchText matches case-insensitively as a substring of the
	// customer number, customer name, or employee name. Empty matches
	// everything.
	SearchText string

	// TypeFilter is FilterAll or an exact call type.
	TypeFilter string

	// EmployeeFilter is FilterAll or an exact employee name. Only
	// meaningful for admins.
	EmployeeFilter string

	// Role is the requesting user's role.
	Role types.Role

	// Viewer is the requesting user's display name, used to scope
	// employee queries to self-attributed records.
	Viewer string
}

// Filter returns the entries matching the params, preserving the input
// order. The result is a stable subsequence of entries; no re-sorting
// takes place.
func Filter(entries []types.CallLogEntry, p Params) []types.CallLogEntry {
	start := time.Now()
	defer func() {
		metrics.QueryDurationSeconds.Observe(time.Since(start).Seconds())
	}()
	metrics.QueriesTotal.WithLabelValues(string(p.Role)).Inc()

	// The search text is matched verbatim, surrounding whitespace
	// included.
	search := strings.ToLower(p.SearchText)

	out := make([]types.CallLogEntry, 0, len(entries))
	for _, entry := range entries {
		if !matchesScope(entry, p) {
			continue
		}
		if !matchesType(entry, p.TypeFilter) {
			continue
		}
		if !matchesSearch(entry, search) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func matchesScope(entry types.CallLogEntry, p Params) bool {
	// Role-based masking is mandatory: employees only ever see their
	// own records.
	if p.Role == types.RoleEmployee {
		return entry.EmployeeName == p.Viewer
	}
	if p.EmployeeFilter == "" || p.EmployeeFilter == FilterAll {
		return true
	}
	return entry.EmployeeName == p.EmployeeFilter
}

func matchesType(entry types.CallLogEntry, typeFilter string) bool {
	if typeFilter == "" || typeFilter == FilterAll {
		return true
	}
	return string(entry.Type) == typeFilter
}

func matchesSearch(entry types.CallLogEntry, search string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(entry.CustomerNumber), search) {
		return true
	}
	// Entries without a customer name never match on that field.
	if entry.CustomerName != "" && strings.Contains(strings.ToLower(entry.CustomerName), search) {
		return true
	}
	return strings.Contains(strings.ToLower(entry.EmployeeName), search)
}
