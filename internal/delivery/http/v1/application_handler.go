package v1

import (
	"net/http"
	"time"

	"jobsite-backend/internal/delivery/http/middleware"
	"jobsite-backend/internal/delivery/http/response"
	"jobsite-backend/internal/domain"
	"jobsite-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	appUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, appUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{appUC: appUC}

	apps := protected.Group("/applications")
	{
		apps.GET("", handler.List)
		apps.GET("/:uid", handler.GetDetails)
		apps.PATCH("/:uid", handler.UpdateStatus)
		apps.DELETE("/:uid", handler.Withdraw)
	}
}

type UpdateApplicationStatusRequest struct {
	Status         string  `json:"status" binding:"required"`
	RecruiterNotes *string `json:"recruiter_notes"`
	InterviewAt    *string `json:"interview_scheduled_at"` // RFC 3339
}

// List godoc
// @Summary      List applications
// @Description  Candidates see their own; recruiters see applications to their jobs
// @Tags         applications
// @Produce      json
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size"
// @Param        status     query     string  false  "Filter by application status"
// @Success      200  {object}  response.Response
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) List(c *gin.Context) {
	var filter domain.ApplicationFilter
	if v := c.Query("status"); v != "" {
		s := domain.ApplicationStatus(v)
		if !s.Valid() {
			c.Error(apperror.BadRequest("Invalid application status"))
			return
		}
		filter.Status = &s
	}

	page, pageSize := pageParams(c)
	user := middleware.CurrentUser(c)

	apps, total, err := h.appUC.ListApplications(c.Request.Context(), user, filter, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "OK", gin.H{
		"applications": apps,
		"total":        total,
		"page":         page,
		"page_size":    pageSize,
	})
}

// GetDetails godoc
// @Summary      Get an application by uid
// @Tags         applications
// @Produce      json
// @Param        uid  path      string  true  "Application uid"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{uid} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetDetails(c *gin.Context) {
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		c.Error(apperror.NotFound("Application not found"))
		return
	}

	user := middleware.CurrentUser(c)
	app, err := h.appUC.GetApplication(c.Request.Context(), user, uid)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", app)
}

// UpdateStatus godoc
// @Summary      Update an application's status
// @Description  Recruiter only; the workflow forbids leaving final states
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        uid   path      string                          true  "Application uid"
// @Param        body  body      UpdateApplicationStatusRequest  true  "Status JSON"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /applications/{uid} [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		c.Error(apperror.NotFound("Application not found"))
		return
	}

	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	in := domain.ApplicationStatusInput{
		Status:         domain.ApplicationStatus(req.Status),
		RecruiterNotes: req.RecruiterNotes,
	}
	if req.InterviewAt != nil {
		t, err := time.Parse(time.RFC3339, *req.InterviewAt)
		if err != nil {
			c.Error(apperror.BadRequest("Interview date must be in RFC 3339 format"))
			return
		}
		in.InterviewAt = &t
	}

	user := middleware.CurrentUser(c)
	app, err := h.appUC.UpdateStatus(c.Request.Context(), user, uid, in)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application updated", app)
}

// Withdraw godoc
// @Summary      Withdraw an application
// @Description  Candidate only; allowed from any non-final state
// @Tags         applications
// @Produce      json
// @Param        uid  path      string  true  "Application uid"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /applications/{uid} [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		c.Error(apperror.NotFound("Application not found"))
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.appUC.Withdraw(c.Request.Context(), user, uid); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application withdrawn", nil)
}
