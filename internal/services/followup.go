package services

import (
	"context"

	"github.com/dialpro/apiserver/types"
)

// FollowUpSource supplies the follow-up schedule.
type FollowUpSource interface {
	FollowUps(ctx context.Context) ([]types.FollowUp, error)
}

// FollowUpService exposes the read-only follow-up schedule for the
// employee views.
type FollowUpService struct {
	source FollowUpSource
}

func NewFollowUpService(source FollowUpSource) *FollowUpService {
	return &FollowUpService{source: source}
}

// List returns the schedule in due-time order.
func (s *FollowUpService) List(ctx context.Context) ([]types.FollowUp, error) {
	return s.source.FollowUps(ctx)
}
