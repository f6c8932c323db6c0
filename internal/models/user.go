package models

type User struct {
	BaseModel
	Username     string   `gorm:"uniqueIndex;not null" json:"username"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	UserType     UserType `gorm:"type:varchar(20);not null;default:'candidate'" json:"user_type"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Phone        string   `gorm:"type:varchar(15)" json:"phone"`

	// HasUsablePassword is false for users provisioned by an invitation;
	// they must complete setup before they can log in with a password.
	HasUsablePassword bool `gorm:"default:true" json:"has_usable_password"`
	IsProfileComplete bool `gorm:"default:false" json:"is_profile_complete"`

	Memberships []CompanyUser `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// AuthToken is the opaque bearer credential. The unique index on UserID
// keeps it one live token per user; reissuing deletes the prior row.
type AuthToken struct {
	BaseModel
	Key    string `gorm:"uniqueIndex;not null" json:"key"`
	UserID string `gorm:"uniqueIndex;not null" json:"user_id"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
