package handlers

import (
	"net/http"
	"strconv"

	"hirepro_backend/internal/appErrors"
	"hirepro_backend/internal/middleware"
	"hirepro_backend/internal/models"
	"hirepro_backend/internal/services"
	"hirepro_backend/internal/services/dto"
	"hirepro_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobSvc     services.JobService
	companySvc services.CompanyService
	authzSvc   services.AuthzService
	inviteSvc  services.InvitationService
}

func NewJobHandler(
	v *validator.Validator,
	jobSvc services.JobService,
	companySvc services.CompanyService,
	authzSvc services.AuthzService,
	inviteSvc services.InvitationService,
) *JobHandler {
	return &JobHandler{
		BaseHandler: NewBaseHandler(v),
		jobSvc:      jobSvc,
		companySvc:  companySvc,
		authzSvc:    authzSvc,
		inviteSvc:   inviteSvc,
	}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", h.List)
		jobs.POST("", h.Create)
		jobs.GET("/:id", h.Get)
		jobs.PUT("/:id", h.Update)
		jobs.PATCH("/:id", h.Update)
		jobs.DELETE("/:id", h.Delete)
		jobs.POST("/:id/publish", h.Publish)
		jobs.GET("/:id/interviewers", h.ListInterviewers)
		jobs.POST("/:id/interviewers", h.AddInterviewer)
		jobs.POST("/:id/interviewers/invite", h.InviteInterviewer)
	}
}

// List returns jobs across every company the caller belongs to, scoped
// to the tenant company when the request arrived on a subdomain.
func (h *JobHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var companyIDs []string
	if tenant, ok := middleware.TenantCompany(c); ok {
		if err := h.authzSvc.RequireMember(user, tenant.ID); err != nil {
			appErrors.HandleError(c, err)
			return
		}
		companyIDs = []string{tenant.ID}
	} else {
		companies, err := h.companySvc.ListForUser(user.ID)
		if err != nil {
			appErrors.HandleError(c, err)
			return
		}
		for _, company := range companies {
			companyIDs = append(companyIDs, company.ID)
		}
	}

	jobs, err := h.jobSvc.ListForCompanies(companyIDs, limit, offset)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	companyID := c.Query("company_id")
	if tenant, ok := middleware.TenantCompany(c); ok {
		companyID = tenant.ID
	}
	if companyID == "" {
		appErrors.HandleError(c, appErrors.ValidationError(map[string]string{
			"company_id": "company_id is required",
		}))
		return
	}

	if err := h.authzSvc.RequireAdmin(user, companyID); err != nil {
		appErrors.HandleError(c, err)
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobSvc.Create(companyID, user.ID, &req)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) Get(c *gin.Context) {
	_, job, ok := h.loadJobForMember(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	_, job, ok := h.loadJobForAdmin(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	updated, err := h.jobSvc.Update(job.ID, &req)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *JobHandler) Delete(c *gin.Context) {
	_, job, ok := h.loadJobForAdmin(c)
	if !ok {
		return
	}

	if err := h.jobSvc.Delete(job.ID); err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}

func (h *JobHandler) Publish(c *gin.Context) {
	_, job, ok := h.loadJobForAdmin(c)
	if !ok {
		return
	}

	published, err := h.jobSvc.Publish(job.ID)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, published)
}

func (h *JobHandler) ListInterviewers(c *gin.Context) {
	_, job, ok := h.loadJobForMember(c)
	if !ok {
		return
	}

	interviewers, err := h.jobSvc.ListInterviewers(job.ID)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"interviewers": interviewers})
}

// AddInterviewer attaches an existing company member to the job panel
// without going through the invite flow.
func (h *JobHandler) AddInterviewer(c *gin.Context) {
	user, job, ok := h.loadJobForAdmin(c)
	if !ok {
		return
	}

	var req dto.AddInterviewerRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	isMember, err := h.authzSvc.IsMember(req.InterviewerID, job.CompanyID)
	if err != nil {
		appErrors.HandleError(c, appErrors.InternalError(err))
		return
	}
	if !isMember {
		appErrors.HandleError(c, appErrors.ErrMembershipNotFound)
		return
	}

	if err := h.jobSvc.AddInterviewer(job.ID, req.InterviewerID, user.ID); err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Interviewer added"})
}

func (h *JobHandler) InviteInterviewer(c *gin.Context) {
	user, job, ok := h.loadJobForAdmin(c)
	if !ok {
		return
	}

	var req dto.InviteUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.inviteSvc.InviteInterviewer(job.ID, &req, user)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *JobHandler) loadJobForMember(c *gin.Context) (*models.User, *models.Job, bool) {
	return h.loadJob(c, h.authzSvc.RequireMember)
}

func (h *JobHandler) loadJobForAdmin(c *gin.Context) (*models.User, *models.Job, bool) {
	return h.loadJob(c, h.authzSvc.RequireAdmin)
}

func (h *JobHandler) loadJob(c *gin.Context, guard func(*models.User, string) error) (*models.User, *models.Job, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return nil, nil, false
	}

	job, err := h.jobSvc.Get(c.Param("id"))
	if err != nil {
		appErrors.HandleError(c, err)
		return nil, nil, false
	}

	if err := guard(user, job.CompanyID); err != nil {
		appErrors.HandleError(c, err)
		return nil, nil, false
	}
	return user, job, true
}
