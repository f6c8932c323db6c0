package middleware

import (
	"net"
	"strings"

	"hirepro_backend/internal/appErrors"
	"hirepro_backend/internal/models"
	"hirepro_backend/internal/services"

	"github.com/gin-gonic/gin"
)

const tenantCompanyKey = "tenantCompany"

// TenantMiddleware resolves the request host to a company when the
// request arrives on a tenant subdomain ({sub}.{baseDomain}). Requests
// on the apex domain, localhost, or a raw IP pass through without a
// tenant. An unknown subdomain is a hard 404.
func TenantMiddleware(companySvc services.CompanyService, baseDomain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		subdomain := extractSubdomain(c.Request.Host, baseDomain)
		if subdomain == "" {
			c.Next()
			return
		}

		company, err := companySvc.GetBySubdomain(subdomain)
		if err != nil {
			appErrors.HandleError(c, appErrors.ErrCompanyNotFound)
			return
		}

		c.Set(tenantCompanyKey, company)
		c.Next()
	}
}

// TenantCompany returns the company resolved from the request host, if any.
func TenantCompany(c *gin.Context) (*models.Company, bool) {
	val, ok := c.Get(tenantCompanyKey)
	if !ok {
		return nil, false
	}
	company, ok := val.(*models.Company)
	return company, ok
}

func extractSubdomain(host, baseDomain string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)

	if host == baseDomain || host == "localhost" || net.ParseIP(host) != nil {
		return ""
	}

	suffix := "." + baseDomain
	if !strings.HasSuffix(host, suffix) {
		return ""
	}

	sub := strings.TrimSuffix(host, suffix)
	if sub == "" || sub == "www" || strings.Contains(sub, ".") {
		return ""
	}
	return sub
}
