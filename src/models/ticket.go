package models

import "tickertizer/src/types"

// Ticket inventory counters satisfy 0 <= num_sold <= quantity at all times;
// num_sold is mutated only through the inventory ledger.
type Ticket struct {
	ID       uint    `gorm:"primarykey" json:"ticket_id"`
	EventID  uint    `json:"event_id,omitempty"`
	Name     string  `json:"name,omitempty"`
	Price    float64 `json:"price"`
	Quantity uint    `json:"quantity"`
	NumSold  uint    `json:"sold"`

	Event *Event `gorm:"foreignKey:event_id" json:"event,omitempty"`

	types.Timestamps
}
