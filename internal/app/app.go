package app

import (
	"errors"
	"fmt"
	"time"

	"hirepro_backend/internal/auth"
	"hirepro_backend/internal/config"
	"hirepro_backend/internal/email"
	"hirepro_backend/internal/handlers"
	"hirepro_backend/internal/logger"
	"hirepro_backend/internal/middleware"
	"hirepro_backend/internal/models"
	"hirepro_backend/internal/repositories"
	"hirepro_backend/internal/routes"
	"hirepro_backend/internal/services"
	"hirepro_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedSystemAdmin(gormDB); err != nil {
		logger.Fatal("Failed to seed system admin", "error", err)
	}

	if err := repositories.NewInviteTokenRepository(gormDB).DeleteExpired(); err != nil {
		logger.Warn("Failed to purge expired invite tokens", "error", err)
	}

	router := SetupRouter(cfg, gormDB, newEmailProvider(cfg))

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Company{},
		&models.CompanyUser{},
		&models.InviteToken{},
		&models.Job{},
		&models.JobInterviewer{},
	)
}

// SetupRouter wires repositories, services, and handlers onto a Gin
// engine. Tests call this directly with an in-memory database and a
// mock email provider.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, emailProvider email.Provider) *gin.Engine {
	if cfg.Server.Env != "development" && cfg.Server.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}

	v := validator.New()

	userRepo := repositories.NewUserRepository(gormDB)
	companyRepo := repositories.NewCompanyRepository(gormDB)
	memberRepo := repositories.NewMembershipRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)

	fromAddr := cfg.Email.FromEmail
	baseDomain := cfg.App.FrontendBaseURL
	resetTTL := time.Duration(cfg.App.ResetTokenTTLMinutes) * time.Minute

	tokenSvc := services.NewTokenService(gormDB)
	userSvc := services.NewUserService(userRepo)
	companySvc := services.NewCompanyService(gormDB, companyRepo, memberRepo)
	memberSvc := services.NewMembershipService(gormDB, memberRepo)
	authzSvc := services.NewAuthzService(memberRepo)
	inviteSvc := services.NewInvitationService(gormDB, companyRepo, jobRepo, emailProvider, fromAddr, baseDomain)
	authSvc := services.NewAuthService(gormDB, userSvc, emailProvider, fromAddr, baseDomain, resetTTL)
	jobSvc := services.NewJobService(jobRepo)

	appHandlers := &routes.AppHandlers{
		AuthHandler:    handlers.NewAuthHandler(v, authSvc, inviteSvc),
		UserHandler:    handlers.NewUserHandler(v, userSvc),
		CompanyHandler: handlers.NewCompanyHandler(v, companySvc, memberSvc, authzSvc, inviteSvc, baseDomain),
		JobHandler:     handlers.NewJobHandler(v, jobSvc, companySvc, authzSvc, inviteSvc),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.TenantMiddleware(companySvc, baseDomain))

	routes.RegisterRoutes(router, appHandlers, tokenSvc)
	return router
}

func newEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured; outgoing email is discarded")
		return &MockEmailProvider{}
	}

	smtpCfg := email.DefaultConfig()
	smtpCfg.Host = cfg.Email.SMTPHost
	if cfg.Email.SMTPPort > 0 {
		smtpCfg.Port = cfg.Email.SMTPPort
	}
	smtpCfg.Username = cfg.Email.SMTPUsername
	smtpCfg.Password = cfg.Email.SMTPPassword
	smtpCfg.FromEmail = cfg.Email.FromEmail
	smtpCfg.FromName = cfg.Email.FromName

	return email.NewSMTPProvider(smtpCfg, email.NewTemplateManager())
}

// seedSystemAdmin creates the operator account on first boot so company
// approval does not require manual database surgery. Controlled by the
// FIRST_ADMIN_EMAIL and FIRST_ADMIN_PASSWORD environment variables.
func seedSystemAdmin(db *gorm.DB) error {
	adminEmail := config.FirstAdminEmail()
	adminPassword := config.FirstAdminPassword()
	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", adminEmail).First(&existing).Error
	if err == nil {
		logger.Info("System admin already exists, skipping creation")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for system admin: %w", err)
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Username:          adminEmail,
		Email:             adminEmail,
		PasswordHash:      hash,
		UserType:          models.UserTypeSystemAdmin,
		HasUsablePassword: true,
		IsProfileComplete: true,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create system admin: %w", err)
	}
	logger.Info("System admin created", "email", adminEmail)
	return nil
}
