package handlers

import (
	"net/http"

	"hirepro_backend/internal/appErrors"
	"hirepro_backend/internal/services"
	"hirepro_backend/internal/services/dto"
	"hirepro_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authSvc   services.AuthService
	inviteSvc services.InvitationService
}

func NewAuthHandler(v *validator.Validator, authSvc services.AuthService, inviteSvc services.InvitationService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(v),
		authSvc:     authSvc,
		inviteSvc:   inviteSvc,
	}
}

// RegisterRoutes mounts the unauthenticated auth endpoints.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/signup/company", h.CompanySignup)
	rg.POST("/signup/candidate", h.CandidateSignup)
	rg.POST("/login", h.Login)

	rg.POST("/setup/validate-token", h.ValidateSetupToken)
	rg.POST("/setup/complete", h.CompleteSetup)

	rg.POST("/password/request-reset", h.RequestPasswordReset)
	rg.POST("/password/reset", h.ResetPassword)
}

func (h *AuthHandler) CompanySignup(c *gin.Context) {
	var req dto.CompanyAdminSignupRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authSvc.CompanyAdminSignup(&req)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) CandidateSignup(c *gin.Context) {
	var req dto.CandidateSignupRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authSvc.CandidateSignup(&req)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authSvc.Login(&req)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) ValidateSetupToken(c *gin.Context) {
	var req dto.ValidateSetupTokenRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.inviteSvc.ValidateSetupToken(req.Token)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) CompleteSetup(c *gin.Context) {
	var req dto.CompleteSetupRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.inviteSvc.CompleteSetup(&req)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authSvc.RequestPasswordReset(req.Email); err != nil {
		appErrors.HandleError(c, err)
		return
	}
	// Same response whether or not the account exists.
	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset link has been sent"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.PasswordResetConfirm
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authSvc.ResetPassword(req.Token, req.NewPassword); err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
