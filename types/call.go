package types

import "time"

// CallType classifies the direction or disposition of a call.
type CallType string

const (
	CallIncoming CallType = "incoming"
	CallOutgoing CallType = "outgoing"
	CallMissed   CallType = "missed"
)

// Valid reports whether the call type is one of the recognized values.
func (t CallType) Valid() bool {
	return t == CallIncoming || t == CallOutgoing || t == CallMissed
}

// CallStatus describes the outcome recorded for a call.
type CallStatus string

const (
	StatusCompleted CallStatus = "completed"
	StatusMissed    CallStatus = "missed"
	StatusFollowUp  CallStatus = "follow-up"
)

// CallLogEntry is an immutable record of a single call. Entries are
// created by the upstream call provider and are never mutated in place;
// amending the notes produces a new value under the same ID.
type CallLogEntry struct {
	// ID is the unique identifier of the call record.
	ID string `json:"id" db:"id"`

	// EmployeeName is the display name of the employee who handled the
	// call. It is a loose reference: entries naming unknown employees
	// are tolerated.
	EmployeeName string `json:"employee_name" db:"employee_name"`

	// CustomerNumber is the customer's phone number.
	CustomerNumber string `json:"customer_number" db:"customer_number"`

	// CustomerName is the customer's company or contact name, when
	// known. Empty when the caller could not be identified.
	CustomerName string `json:"customer_name,omitempty" db:"customer_name"`

	// Type is the call direction or disposition.
	Type CallType `json:"type" db:"type"`

	// DurationSeconds is the call length in seconds. Zero for missed
	// calls.
	DurationSeconds int `json:"duration_seconds" db:"duration_seconds"`

	// OccurredAt is the date and time the call took place.
	OccurredAt time.Time `json:"occurred_at" db:"occurred_at"`

	// Tags are free-form labels attached to the call, used for
	// categorization and follow-up tracking.
	Tags []string `json:"tags" db:"tags"`

	// HasRecording indicates whether an audio recording exists for the
	// call. Recording storage itself lives behind the call provider.
	HasRecording bool `json:"has_recording" db:"has_recording"`

	// Notes holds free-form annotations added after the call.
	Notes string `json:"notes,omitempty" db:"notes"`

	// Status is the recorded outcome of the call.
	Status CallStatus `json:"status" db:"status"`
}

// FollowUp is a scheduled callback for an employee. Follow-ups are
// reference data supplied by the upstream provider, independent of the
// call log.
type FollowUp struct {
	// ID is the unique identifier of the follow-up.
	ID string `json:"id" db:"id"`

	// CustomerName is the customer to call back.
	CustomerName string `json:"customer_name" db:"customer_name"`

	// PhoneNumber is the number to dial.
	PhoneNumber string `json:"phone_number" db:"phone_number"`

	// ScheduledTime is when the callback is due.
	ScheduledTime time.Time `json:"scheduled_time" db:"scheduled_time"`

	// Reason describes why the callback was scheduled.
	Reason string `json:"reason" db:"reason"`
}
