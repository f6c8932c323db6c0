package models

import (
	"time"

	"gorm.io/datatypes"
)

// CompanyUser is the authorization edge between a User and a Company.
// The composite unique index is the correctness backstop for concurrent
// invites racing on the same (user, company) pair.
type CompanyUser struct {
	BaseModel
	UserID      string           `gorm:"uniqueIndex:idx_company_users_user_company;not null" json:"user_id"`
	CompanyID   string           `gorm:"uniqueIndex:idx_company_users_user_company;not null" json:"company_id"`
	Role        MembershipRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status      MembershipStatus `gorm:"type:varchar(20);default:'pending_setup'" json:"status"`
	Permissions datatypes.JSON   `json:"permissions"`
	InvitedByID *string          `json:"invited_by"`
	InvitedAt   time.Time        `json:"invited_at"`
	ActivatedAt *time.Time       `json:"activated_at"`

	User      *User    `gorm:"foreignKey:UserID" json:"-"`
	Company   *Company `gorm:"foreignKey:CompanyID" json:"-"`
	InvitedBy *User    `gorm:"foreignKey:InvitedByID" json:"-"`
}
