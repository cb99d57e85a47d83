package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
	StatusFailed  Status = "FAILED"
)

// Source is where the paid order came from. Only cart-sourced hand-offs clear
// the cart once paid.
type Source string

const (
	SourceCart   Source = "cart"
	SourceDirect Source = "direct"
)

// Handoff records one trip to the external card payment step.
type Handoff struct {
	ID            uuid.UUID       `json:"id"`
	OrderRef      string          `json:"orderRef"`
	ServiceType   string          `json:"serviceType"`
	Total         decimal.Decimal `json:"total"`
	RecipientName string          `json:"recipientName"`
	UserID        string          `json:"userId"`
	Source        Source          `json:"source"`
	Status        Status          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
}

type BeginParams struct {
	OrderRef      string
	ServiceType   string
	Total         decimal.Decimal
	RecipientName string
	UserID        string
	Source        Source
}

// Completion is the result of Complete. CartCleared is only ever true for
// the call that moved a cart-sourced hand-off to PAID.
type Completion struct {
	Handoff     *Handoff `json:"handoff"`
	CartCleared bool     `json:"cartCleared"`
	Replayed    bool     `json:"replayed"`
}
