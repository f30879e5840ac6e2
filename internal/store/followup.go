package store

import (
	"context"
	"database/sql"

	"github.com/dialpro/apiserver/types"
)

// FollowUpRepository handles persistence for the follow-up schedule.
type FollowUpRepository struct {
	db *sql.DB
}

func NewFollowUpRepository(db *sql.DB) *FollowUpRepository {
	return &FollowUpRepository{db: db}
}

// FollowUps returns the schedule ordered by due time.
func (r *FollowUpRepository) FollowUps(ctx context.Context) ([]types.FollowUp, error) {
	const query = `
		SELECT id, customer_name, phone_number, scheduled_time, reason
		FROM follow_ups
		ORDER BY scheduled_time`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var followUps []types.FollowUp
	for rows.Next() {
		var followUp types.FollowUp
		if err := rows.Scan(
			&followUp.ID,
			&followUp.CustomerName,
			&followUp.PhoneNumber,
			&followUp.ScheduledTime,
			&followUp.Reason,
		); err != nil {
			return nil, err
		}
		followUps = append(followUps, followUp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return followUps, nil
}

// Insert stores a follow-up. Used by the seed command.
func (r *FollowUpRepository) Insert(ctx context.Context, followUp types.FollowUp) error {
	const query = `
		INSERT INTO follow_ups (id, customer_name, phone_number, scheduled_time, reason)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(
		ctx,
		query,
		followUp.ID,
		followUp.CustomerName,
		followUp.PhoneNumber,
		followUp.ScheduledTime,
		followUp.Reason,
	)
	return err
}
