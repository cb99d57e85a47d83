package payment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Save(ctx context.Context, h *Handoff) error
	Get(ctx context.Context, id uuid.UUID) (*Handoff, error)
	// MarkCompleted moves a PENDING hand-off to status. It reports false when
	// the hand-off was no longer pending.
	MarkCompleted(ctx context.Context, id uuid.UUID, status Status, at time.Time) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Save(ctx context.Context, h *Handoff) error {
	const q = `
	INSERT INTO payment_handoffs (
		id,
		order_ref,
		service_type,
		total,
		recipient_name,
		user_id,
		source,
		status,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	_, err := r.db.ExecContext(ctx, q,
		h.ID, h.OrderRef, h.ServiceType, h.Total, h.RecipientName,
		h.UserID, h.Source, h.Status, h.CreatedAt,
	)
	return err
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Handoff, error) {
	const q = `
	SELECT id, order_ref, service_type, total, recipient_name, user_id, source, status, created_at, completed_at
	FROM payment_handoffs
	WHERE id = $1;
	`

	var (
		h           Handoff
		completedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&h.ID, &h.OrderRef, &h.ServiceType, &h.Total, &h.RecipientName,
		&h.UserID, &h.Source, &h.Status, &h.CreatedAt, &completedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHandoffNotFound
	}
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t := completedAt.Time
		h.CompletedAt = &t
	}
	return &h, nil
}

func (r *repository) MarkCompleted(ctx context.Context, id uuid.UUID, status Status, at time.Time) (bool, error) {
	const q = `
	UPDATE payment_handoffs
	SET status = $2, completed_at = $3
	WHERE id = $1 AND status = 'PENDING';
	`

	res, err := r.db.ExecContext(ctx, q, id, status, at)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
