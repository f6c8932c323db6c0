package services

import (
	"fmt"

	"hirepro_backend/internal/email"
	"hirepro_backend/internal/logger"
	"hirepro_backend/internal/models"
)

// dispatchEmail sends a message on a fresh goroutine. Delivery is
// best-effort: a failure is logged and never surfaces to the request
// that triggered it, and these are only dispatched after the owning
// transaction commits.
func dispatchEmail(provider email.Provider, msg *email.Email) {
	go func() {
		if err := provider.Send(msg); err != nil {
			logger.Error("email delivery failed",
				"to", msg.To,
				"subject", msg.Subject,
				"error", err,
			)
		}
	}()
}

// dispatchTemplatedEmail is dispatchEmail with an HTML alternative
// rendered from the named template. The plain-text Body stays as the
// fallback part.
func dispatchTemplatedEmail(provider email.Provider, templateName string, data email.TemplateData, msg *email.Email) {
	go func() {
		if err := provider.SendWithTemplate(templateName, data, msg); err != nil {
			logger.Error("email delivery failed",
				"template", templateName,
				"to", msg.To,
				"subject", msg.Subject,
				"error", err,
			)
		}
	}()
}

// dashboardURL builds the tenant dashboard link an invited user lands
// on. Interviewers get their own dashboard; users still lacking a real
// password get setup mode appended.
func dashboardURL(company *models.Company, role models.MembershipRole, tokenKey, baseDomain string, requiresSetup bool) string {
	path := "dashboard"
	if role == models.RoleInterviewer {
		path = "interviewer-dashboard"
	}
	url := fmt.Sprintf("https://%s/%s?token=%s", company.DomainURL(baseDomain), path, tokenKey)
	if requiresSetup {
		url += "&setup=1"
	}
	return url
}

func inviteEmailBody(user *models.User, company *models.Company, role models.MembershipRole, url string, requiresSetup bool) string {
	if requiresSetup {
		return fmt.Sprintf(
			"Hello,\n\nYou have been invited to join %s as %s.\n\n"+
				"Open the link below to set your password and activate your account:\n%s\n\n"+
				"The HirePro Team",
			company.Name, role, url,
		)
	}
	return fmt.Sprintf(
		"Hello %s,\n\nYou have been added to %s as %s.\n\n"+
			"Open your dashboard here:\n%s\n\nThe HirePro Team",
		user.FirstName, company.Name, role, url,
	)
}

func setupCompleteEmailBody(user *models.User, company *models.Company) string {
	return fmt.Sprintf(
		"Hello %s,\n\nYour account at %s is now active. You can sign in with your email and password.\n\n"+
			"The HirePro Team",
		user.FirstName, company.Name,
	)
}

func passwordResetEmailBody(resetURL string) string {
	return fmt.Sprintf(
		"Hello,\n\nA password reset was requested for your account. "+
			"Open the link below to choose a new password:\n%s\n\n"+
			"If you did not request this, ignore this message.\n\nThe HirePro Team",
		resetURL,
	)
}
