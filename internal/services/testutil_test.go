package services

import (
	"sync"
	"testing"
	"time"

	"hirepro_backend/internal/auth"
	"hirepro_backend/internal/email"
	"hirepro_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and
	// serializes concurrent transactions.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Company{},
		&models.CompanyUser{},
		&models.InviteToken{},
		&models.Job{},
		&models.JobInterviewer{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, emailAddr string, userType models.UserType) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{
		Username:          emailAddr,
		Email:             emailAddr,
		PasswordHash:      hash,
		UserType:          userType,
		FirstName:         "Test",
		LastName:          "User",
		HasUsablePassword: true,
		IsProfileComplete: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestCompany(t *testing.T, db *gorm.DB, subdomain string) *models.Company {
	t.Helper()

	company := &models.Company{
		Name:         "Acme " + subdomain,
		Subdomain:    subdomain,
		Status:       models.CompanyStatusActive,
		ContactEmail: "contact@" + subdomain + ".example.com",
	}
	require.NoError(t, db.Create(company).Error)
	return company
}

func createTestMembership(t *testing.T, db *gorm.DB, userID, companyID string, role models.MembershipRole, status models.MembershipStatus) *models.CompanyUser {
	t.Helper()

	now := time.Now()
	membership := &models.CompanyUser{
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
		Status:    status,
		InvitedAt: now,
	}
	if status == models.MembershipStatusActive {
		membership.ActivatedAt = &now
	}
	require.NoError(t, db.Create(membership).Error)
	return membership
}

// recordingEmailProvider captures dispatched mail for assertions.
type recordingEmailProvider struct {
	mu        sync.Mutex
	sent      []*email.Email
	templates []string
}

func (p *recordingEmailProvider) Send(msg *email.Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, msg)
	return nil
}

func (p *recordingEmailProvider) SendWithTemplate(templateName string, data email.TemplateData, msg *email.Email) error {
	p.mu.Lock()
	p.templates = append(p.templates, templateName)
	p.mu.Unlock()
	return p.Send(msg)
}

func (p *recordingEmailProvider) Validate() error { return nil }
func (p *recordingEmailProvider) Close() error    { return nil }

func (p *recordingEmailProvider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sent)
}

func (p *recordingEmailProvider) lastTemplate() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.templates) == 0 {
		return ""
	}
	return p.templates[len(p.templates)-1]
}

func (p *recordingEmailProvider) last() *email.Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.sent) == 0 {
		return nil
	}
	return p.sent[len(p.sent)-1]
}
