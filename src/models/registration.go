package models

import "tickertizer/src/types"

// Registration rows are insert-only; a nil TicketID marks a free or
// non-ticketed signup.
type Registration struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	TicketID *uint  `json:"ticket_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`

	Ticket *Ticket `gorm:"foreignKey:ticket_id" json:"-"`

	types.Timestamps
}
