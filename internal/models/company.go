package models

import "fmt"

type Company struct {
	BaseModel
	Name         string        `gorm:"not null" json:"name"`
	Subdomain    string        `gorm:"uniqueIndex;not null" json:"subdomain"`
	Description  string        `json:"description"`
	Website      string        `json:"website"`
	Status       CompanyStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	ContactEmail string        `gorm:"not null" json:"contact_email"`
	ContactPhone string        `gorm:"type:varchar(15)" json:"contact_phone"`
	Address      string        `json:"address"`

	Members []CompanyUser `gorm:"foreignKey:CompanyID" json:"-"`
}

// DomainURL is the tenant host for the company under the given base domain.
func (c *Company) DomainURL(baseDomain string) string {
	return fmt.Sprintf("%s.%s", c.Subdomain, baseDomain)
}
