package handlers

import (
	"net/http"

	"hirepro_backend/internal/appErrors"
	"hirepro_backend/internal/middleware"
	"hirepro_backend/internal/models"
	"hirepro_backend/internal/services"
	"hirepro_backend/internal/services/dto"
	"hirepro_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	*BaseHandler
	companySvc services.CompanyService
	memberSvc  services.MembershipService
	authzSvc   services.AuthzService
	inviteSvc  services.InvitationService
	baseDomain string
}

func NewCompanyHandler(
	v *validator.Validator,
	companySvc services.CompanyService,
	memberSvc services.MembershipService,
	authzSvc services.AuthzService,
	inviteSvc services.InvitationService,
	baseDomain string,
) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler: NewBaseHandler(v),
		companySvc:  companySvc,
		memberSvc:   memberSvc,
		authzSvc:    authzSvc,
		inviteSvc:   inviteSvc,
		baseDomain:  baseDomain,
	}
}

func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	companies := rg.Group("/companies")
	{
		companies.GET("", h.ListMine)
		companies.POST("", h.Create)
		companies.GET("/:id", h.Get)
		companies.PUT("/:id", h.Update)
		companies.PATCH("/:id", h.Update)
		companies.PUT("/:id/status", middleware.RequireUserTypes(models.UserTypeSystemAdmin), h.SetStatus)

		companies.GET("/:id/users", h.ListMembers)
		companies.POST("/:id/users/invite", h.InviteMember)
		companies.GET("/:id/users/:userId", h.GetMember)
		companies.PUT("/:id/users/:userId", h.UpdateMember)
		companies.PATCH("/:id/users/:userId", h.UpdateMember)
		companies.DELETE("/:id/users/:userId", h.RemoveMember)
	}
}

func (h *CompanyHandler) ListMine(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	companies, err := h.companySvc.ListForUser(user.ID)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	resp := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		resp = append(resp, dto.NewCompanyResponse(&companies[i], h.baseDomain))
	}
	c.JSON(http.StatusOK, gin.H{"companies": resp})
}

func (h *CompanyHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateCompanyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	company, err := h.companySvc.Create(user.ID, &req)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCompanyResponse(company, h.baseDomain))
}

func (h *CompanyHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	companyID := c.Param("id")
	if err := h.authzSvc.RequireMember(user, companyID); err != nil {
		appErrors.HandleError(c, err)
		return
	}

	company, err := h.companySvc.Get(companyID)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCompanyResponse(company, h.baseDomain))
}

func (h *CompanyHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	companyID := c.Param("id")
	if err := h.authzSvc.RequireAdmin(user, companyID); err != nil {
		appErrors.HandleError(c, err)
		return
	}

	var req dto.UpdateCompanyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	company, err := h.companySvc.Update(companyID, &req)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCompanyResponse(company, h.baseDomain))
}

func (h *CompanyHandler) SetStatus(c *gin.Context) {
	var req dto.SetCompanyStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.companySvc.SetStatus(c.Param("id"), req.Status); err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

func (h *CompanyHandler) ListMembers(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	companyID := c.Param("id")
	if err := h.authzSvc.RequireMember(user, companyID); err != nil {
		appErrors.HandleError(c, err)
		return
	}

	members, err := h.memberSvc.ListByCompany(companyID)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	resp := make([]dto.MembershipResponse, 0, len(members))
	for i := range members {
		resp = append(resp, dto.NewMembershipResponse(&members[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": resp})
}

func (h *CompanyHandler) InviteMember(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	companyID := c.Param("id")
	if err := h.authzSvc.RequireAdmin(user, companyID); err != nil {
		appErrors.HandleError(c, err)
		return
	}

	var req dto.InviteUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.inviteSvc.InviteUserToCompany(companyID, &req, user)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CompanyHandler) GetMember(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	companyID := c.Param("id")
	if err := h.authzSvc.RequireMember(user, companyID); err != nil {
		appErrors.HandleError(c, err)
		return
	}

	membership, err := h.memberSvc.Get(c.Param("userId"), companyID)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMembershipResponse(membership))
}

func (h *CompanyHandler) UpdateMember(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	companyID := c.Param("id")
	if err := h.authzSvc.RequireAdmin(user, companyID); err != nil {
		appErrors.HandleError(c, err)
		return
	}

	var req dto.UpdateMembershipRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	membership, err := h.memberSvc.Update(companyID, c.Param("userId"), &req)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMembershipResponse(membership))
}

func (h *CompanyHandler) RemoveMember(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	companyID := c.Param("id")
	if err := h.authzSvc.RequireAdmin(user, companyID); err != nil {
		appErrors.HandleError(c, err)
		return
	}

	if err := h.memberSvc.Remove(companyID, c.Param("userId")); err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}
