package dto

import (
	"time"

	"hirepro_backend/internal/models"
)

type CreateCompanyRequest struct {
	Name         string `json:"name" validate:"required"`
	Subdomain    string `json:"subdomain" validate:"required,hostname_rfc1123,min=3,max=63"`
	Description  string `json:"description,omitempty"`
	Website      string `json:"website,omitempty" validate:"omitempty,url"`
	ContactEmail string `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone,omitempty"`
	Address      string `json:"address,omitempty"`
}

// UpdateCompanyRequest is a partial update. Subdomain is immutable after creation.
type UpdateCompanyRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Website      *string `json:"website,omitempty" validate:"omitempty,url"`
	ContactEmail *string `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	Address      *string `json:"address,omitempty"`
}

type SetCompanyStatusRequest struct {
	Status models.CompanyStatus `json:"status" validate:"required,oneof=pending active suspended rejected"`
}

type CompanyResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Subdomain    string               `json:"subdomain"`
	DomainURL    string               `json:"domain_url"`
	Description  string               `json:"description,omitempty"`
	Website      string               `json:"website,omitempty"`
	Status       models.CompanyStatus `json:"status"`
	ContactEmail string               `json:"contact_email,omitempty"`
	ContactPhone string               `json:"contact_phone,omitempty"`
	Address      string               `json:"address,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

func NewCompanyResponse(c *models.Company, baseDomain string) CompanyResponse {
	return CompanyResponse{
		ID:           c.ID,
		Name:         c.Name,
		Subdomain:    c.Subdomain,
		DomainURL:    c.DomainURL(baseDomain),
		Description:  c.Description,
		Website:      c.Website,
		Status:       c.Status,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		Address:      c.Address,
		CreatedAt:    c.CreatedAt,
	}
}
