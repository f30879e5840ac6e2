package records_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialpro/apiserver/internal/records"
	"github.com/dialpro/apiserver/types"
)

func validEntry(id string) types.CallLogEntry {
	return types.CallLogEntry{
		ID:             id,
		EmployeeName:   "John Smith",
		CustomerNumber: "+1-555-0123",
		Type:           types.CallOutgoing,
		OccurredAt:     time.Date(2024, time.August, 6, 10, 30, 0, 0, time.UTC),
		Status:         types.StatusCompleted,
	}
}

func TestLoadRejectsMalformedEntriesIndividually(t *testing.T) {
	missingEmployee := validEntry("bad-1")
	missingEmployee.EmployeeName = ""

	badType := validEntry("bad-2")
	badType.Type = "conference"

	noTimestamp := validEntry("bad-3")
	noTimestamp.OccurredAt = time.Time{}

	store := records.New(nil)
	accepted, rejected := store.Load([]types.CallLogEntry{
		validEntry("1"),
		missingEmployee,
		badType,
		validEntry("2"),
		noTimestamp,
		{}, // missing everything
	})

	assert.Equal(t, 2, accepted)
	assert.Equal(t, 4, rejected)
	assert.Equal(t, 2, store.Len())

	_, err := store.Get("bad-1")
	assert.ErrorIs(t, err, records.ErrNotFound)
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	store := records.New(nil)
	accepted, rejected := store.Load([]types.CallLogEntry{
		validEntry("1"),
		validEntry("1"),
	})

	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, rejected)
}

func TestSnapshotPreservesLoadOrder(t *testing.T) {
	store := records.New(nil)
	store.Load([]types.CallLogEntry{validEntry("3"), validEntry("1"), validEntry("2")})

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 3)
	assert.Equal(t, "3", snapshot[0].ID)
	assert.Equal(t, "1", snapshot[1].ID)
	assert.Equal(t, "2", snapshot[2].ID)
}

func TestAmendNoteProducesNewValueSameID(t *testing.T) {
	store := records.New(nil)
	store.Load([]types.CallLogEntry{validEntry("1")})

	before := store.Snapshot()

	amended, err := store.AmendNote("1", "customer wants a callback")
	require.NoError(t, err)
	assert.Equal(t, "1", amended.ID)
	assert.Equal(t, "customer wants a callback", amended.Notes)

	// Earlier snapshots keep the old value; the store serves the new one.
	assert.Empty(t, before[0].Notes)
	current, err := store.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "customer wants a callback", current.Notes)
}

func TestAmendNoteUnknownID(t *testing.T) {
	store := records.New(nil)
	store.Load([]types.CallLogEntry{validEntry("1")})

	_, err := store.AmendNote("missing", "note")
	assert.ErrorIs(t, err, records.ErrNotFound)
}
