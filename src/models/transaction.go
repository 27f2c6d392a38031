package models

import (
	"tickertizer/src/types"

	"github.com/google/uuid"
)

// Transaction is this system's own record of a purchase attempt, distinct
// from the gateway's order. The random uuid primary key doubles as the
// public transaction id (non-enumerable).
type Transaction struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid" json:"id"`

	OrderID          *string                 `gorm:"uniqueIndex" json:"order_id,omitempty"`
	TicketID         uint                    `json:"ticket_id,omitempty"`
	EventID          uint                    `json:"event_id,omitempty"`
	Amount           float64                 `json:"amount"`
	Status           types.TransactionStatus `gorm:"default:'incomplete'" json:"status,omitempty"`
	GatewayPaymentID *string                 `json:"gateway_payment_id,omitempty"`

	// Attendee details captured at order time; copied onto the Registration
	// row once the payment settles.
	BuyerName  string `json:"buyer_name,omitempty"`
	BuyerEmail string `json:"buyer_email,omitempty"`
	BuyerPhone string `json:"buyer_phone,omitempty"`

	Ticket *Ticket `gorm:"foreignKey:ticket_id" json:"-"`
	Event  *Event  `gorm:"foreignKey:event_id" json:"-"`

	types.Timestamps
}
