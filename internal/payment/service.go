// Package payment records card payment hand-offs and finishes them when the
// external payment step reports back.
package payment

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"pawmart-web/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartClearer empties the session cart of the user who paid.
type CartClearer interface {
	Clear(ctx context.Context) error
}

type Service interface {
	// Begin stores a PENDING hand-off and returns the URL of the payment step.
	Begin(ctx context.Context, p BeginParams) (*Handoff, string, error)
	// Complete settles a hand-off with the status the caller reports.
	// Repeated calls for a settled hand-off return it unchanged and never
	// clear the cart again.
	Complete(ctx context.Context, id uuid.UUID, userID string, status Status, cart CartClearer) (*Completion, error)
	Get(ctx context.Context, id uuid.UUID) (*Handoff, error)
}

type service struct {
	repo       Repository
	paymentURL string
	now        func() time.Time
}

func NewService(repo Repository, paymentURL string) Service {
	return &service{repo: repo, paymentURL: paymentURL, now: time.Now}
}

func (s *service) Begin(ctx context.Context, p BeginParams) (*Handoff, string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "payment"),
		zap.String("method", "Begin"),
		zap.String("order_ref", p.OrderRef),
	)

	if p.OrderRef == "" {
		return nil, "", ErrMissingOrderRef
	}
	if !p.Total.IsPositive() {
		return nil, "", ErrInvalidTotal
	}
	if p.Source == "" {
		p.Source = SourceCart
	}

	h := &Handoff{
		ID:            uuid.New(),
		OrderRef:      p.OrderRef,
		ServiceType:   p.ServiceType,
		Total:         p.Total,
		RecipientName: p.RecipientName,
		UserID:        p.UserID,
		Source:        p.Source,
		Status:        StatusPending,
		CreatedAt:     s.now().UTC(),
	}

	if err := s.repo.Save(ctx, h); err != nil {
		log.Error("failed to save payment hand-off", zap.Error(err))
		return nil, "", fmt.Errorf("save hand-off: %w", err)
	}

	log.Info("payment hand-off started",
		zap.String("handoff_id", h.ID.String()),
		zap.String("total", h.Total.String()),
		zap.String("source", string(h.Source)),
	)
	return h, s.urlFor(h), nil
}

// urlFor appends the hand-off fields the payment step reads as query parameters.
func (s *service) urlFor(h *Handoff) string {
	q := url.Values{}
	q.Set("serviceType", h.ServiceType)
	q.Set("total", h.Total.String())
	q.Set("name", h.RecipientName)
	q.Set("orderRef", h.OrderRef)
	q.Set("handoff", h.ID.String())

	sep := "?"
	if strings.Contains(s.paymentURL, "?") {
		sep = "&"
	}
	return s.paymentURL + sep + q.Encode()
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Handoff, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) Complete(ctx context.Context, id uuid.UUID, userID string, status Status, cart CartClearer) (*Completion, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "payment"),
		zap.String("method", "Complete"),
		zap.String("handoff_id", id.String()),
		zap.String("status", string(status)),
	)

	if status != StatusPaid && status != StatusFailed {
		return nil, ErrInvalidStatus
	}

	h, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.UserID != "" && h.UserID != userID {
		log.Warn("hand-off completion by another user", zap.String("user_id", userID))
		return nil, ErrForbidden
	}
	if h.Status != StatusPending {
		log.Info("hand-off already settled", zap.String("current", string(h.Status)))
		return &Completion{Handoff: h, Replayed: true}, nil
	}

	at := s.now().UTC()
	updated, err := s.repo.MarkCompleted(ctx, id, status, at)
	if err != nil {
		log.Error("failed to settle hand-off", zap.Error(err))
		return nil, fmt.Errorf("settle hand-off: %w", err)
	}
	if !updated {
		// Lost a race with a concurrent completion.
		current, err := s.repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return &Completion{Handoff: current, Replayed: true}, nil
	}

	h.Status = status
	h.CompletedAt = &at
	res := &Completion{Handoff: h}

	if status == StatusPaid && h.Source == SourceCart && cart != nil {
		if err := cart.Clear(ctx); err != nil {
			log.Warn("payment settled but cart clear failed", zap.Error(err))
		} else {
			res.CartCleared = true
		}
	}

	log.Info("hand-off settled", zap.Bool("cart_cleared", res.CartCleared))
	return res, nil
}
