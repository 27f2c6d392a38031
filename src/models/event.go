package models

import (
	"tickertizer/src/types"
	"time"
)

type Event struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Token       string    `gorm:"uniqueIndex" json:"token,omitempty"`
	Name        string    `json:"name,omitempty"`
	Venue       string    `json:"venue,omitempty"`
	Method      string    `json:"method,omitempty"`
	Link        string    `json:"link,omitempty"`
	TimeStart   time.Time `json:"time_start,omitempty"`
	TimeEnd     time.Time `json:"time_end,omitempty"`
	Description string    `json:"description,omitempty"`
	OrgName     string    `json:"org_name,omitempty"`
	OrgMail     string    `json:"org_mail,omitempty"`
	Type        string    `json:"type,omitempty"`
	Banner      string    `json:"banner,omitempty"`
	Logo        string    `json:"logo,omitempty"`
	PrivacyType string    `json:"privacy_type,omitempty"`
	CreatedBy   uint      `json:"created_by,omitempty"`

	Tickets       []Ticket       `gorm:"foreignKey:event_id" json:"tickets,omitempty"`
	FormQuestions []FormQuestion `gorm:"foreignKey:event_id" json:"form_questions,omitempty"`

	types.Timestamps
}
