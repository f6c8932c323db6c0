package models

import (
	"time"

	"gorm.io/datatypes"
)

// InviteToken is a single-use, time-boxed redemption record. It is
// distinct from the session AuthToken: consuming it sets UsedAt and the
// row is never reused.
type InviteToken struct {
	BaseModel
	Token     string         `gorm:"uniqueIndex;not null" json:"token"`
	TokenType TokenType      `gorm:"type:varchar(20);not null" json:"token_type"`
	UserID    *string        `json:"user_id"`
	CompanyID *string        `json:"company_id"`
	Email     string         `gorm:"not null;index" json:"email"`
	Data      datatypes.JSON `json:"data"`
	ExpiresAt time.Time      `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time     `json:"used_at"`

	User    *User    `gorm:"foreignKey:UserID" json:"-"`
	Company *Company `gorm:"foreignKey:CompanyID" json:"-"`
}

func (t *InviteToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

func (t *InviteToken) IsUsed() bool {
	return t.UsedAt != nil
}
