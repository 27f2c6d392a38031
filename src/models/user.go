package models

import (
	"fmt"
	"tickertizer/src/types"
)

type User struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	Name         string `json:"name,omitempty"`
	Email        string `gorm:"uniqueIndex" json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	PasswordHash string `json:"-"`
	ProfilePic   string `json:"profile_pic,omitempty"`

	types.Timestamps
}

// FormattedID is the public-facing user identifier.
func (u *User) FormattedID() string {
	return fmt.Sprintf("TZR%d", u.ID)
}
