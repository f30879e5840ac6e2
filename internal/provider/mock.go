// Package provider supplies the demo dataset: the call log, follow-up
// schedule, and employee roster DialPro ships with before a real call
// provider is connected. The server uses it when DATA_PROVIDER=mock and
// the seed command loads it into Postgres.
package provider

import (
	"context"
	"time"

	"github.com/dialpro/apiserver/types"
)

// Mock serves the built-in demo dataset.
type Mock struct{}

// NewMock constructs the demo data provider.
func NewMock() *Mock {
	return &Mock{}
}

var demoDay = time.Date(2024, time.August, 6, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return demoDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

var demoCallLog = []types.CallLogEntry{
	{
		ID:              "1",
		EmployeeName:    "John Smith",
		CustomerNumber:  "+1-555-0123",
		CustomerName:    "Acme Corp",
		Type:            types.CallOutgoing,
		DurationSeconds: 323,
		OccurredAt:      at(10, 30),
		Tags:            []string{"Sales", "Follow-up"},
		HasRecording:    true,
		Notes:           "Customer interested in premium package",
		Status:          types.StatusCompleted,
	},
	{
		ID:              "2",
		EmployeeName:    "Sarah Johnson",
		CustomerNumber:  "+1-555-0456",
		CustomerName:    "Tech Solutions Inc",
		Type:            types.CallIncoming,
		DurationSeconds: 765,
		OccurredAt:      at(9, 15),
		Tags:            []string{"Support", "Escalated"},
		HasRecording:    true,
		Status:          types.StatusFollowUp,
	},
	{
		ID:              "3",
		EmployeeName:    "Mike Wilson",
		CustomerNumber:  "+1-555-0789",
		Type:            types.CallMissed,
		DurationSeconds: 0,
		OccurredAt:      at(8, 45),
		Tags:            []string{"Callback"},
		HasRecording:    false,
		Status:          types.StatusMissed,
	},
	{
		ID:              "4",
		EmployeeName:    "John Smith",
		CustomerNumber:  "+1-555-0321",
		CustomerName:    "Global Industries",
		Type:            types.CallIncoming,
		DurationSeconds: 412,
		OccurredAt:      at(11, 5),
		Tags:            []string{"Sales"},
		HasRecording:    true,
		Status:          types.StatusCompleted,
	},
	{
		ID:              "5",
		EmployeeName:    "Lisa Davis",
		CustomerNumber:  "+1-555-0654",
		CustomerName:    "Northwind Traders",
		Type:            types.CallOutgoing,
		DurationSeconds: 187,
		OccurredAt:      at(13, 40),
		Tags:            []string{"Support"},
		HasRecording:    false,
		Status:          types.StatusFollowUp,
	},
}

var demoFollowUps = []types.FollowUp{
	{
		ID:            "1",
		CustomerName:  "Acme Corp",
		PhoneNumber:   "+1-555-0123",
		ScheduledTime: at(14, 0),
		Reason:        "Product demo follow-up",
	},
	{
		ID:            "2",
		CustomerName:  "Tech Solutions",
		PhoneNumber:   "+1-555-0456",
		ScheduledTime: at(15, 30),
		Reason:        "Pricing discussion",
	},
	{
		ID:            "3",
		CustomerName:  "Global Industries",
		PhoneNumber:   "+1-555-0789",
		ScheduledTime: at(16, 15),
		Reason:        "Contract renewal",
	},
}

// CallLog returns the demo call log entries in their canonical order.
func (m *Mock) CallLog(ctx context.Context) ([]types.CallLogEntry, error) {
	out := make([]types.CallLogEntry, len(demoCallLog))
	copy(out, demoCallLog)
	return out, nil
}

// FollowUps returns the demo follow-up schedule.
func (m *Mock) FollowUps(ctx context.Context) ([]types.FollowUp, error) {
	out := make([]types.FollowUp, len(demoFollowUps))
	copy(out, demoFollowUps)
	return out, nil
}
