package models

import "tickertizer/src/types"

type FormQuestion struct {
	ID           uint             `gorm:"primarykey" json:"question_id"`
	EventID      uint             `json:"event_id,omitempty"`
	QuestionType string           `json:"question_type,omitempty"`
	Question     string           `json:"question,omitempty"`
	Options      types.JSONBArray `gorm:"type:jsonb" json:"options,omitempty"`

	Event   *Event       `gorm:"foreignKey:event_id" json:"-"`
	Answers []FormAnswer `gorm:"foreignKey:question_id" json:"answers,omitempty"`

	types.Timestamps
}

type FormAnswer struct {
	ID         uint   `gorm:"primarykey" json:"answer_id"`
	QuestionID uint   `json:"question_id,omitempty"`
	Answer     string `json:"answer,omitempty"`

	Question *FormQuestion `gorm:"foreignKey:question_id" json:"-"`

	types.Timestamps
}
