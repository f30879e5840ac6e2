package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeTags(t *testing.T) {
	repo := NewCallLogRepository(nil, nil)

	assert.Equal(t, []string{"Sales", "Follow-up"}, repo.decodeTags("1", []byte(`["Sales","Follow-up"]`)))
	assert.Empty(t, repo.decodeTags("2", []byte(`[]`)))

	// A corrupt column keeps the row, just without tags.
	assert.Nil(t, repo.decodeTags("3", []byte(`{broken`)))
}
