package v1

import (
	"net/http"
	"strconv"
	"time"

	"jobsite-backend/internal/delivery/http/middleware"
	"jobsite-backend/internal/delivery/http/response"
	"jobsite-backend/internal/domain"
	"jobsite-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := protected.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.POST("", handler.Create)
		jobs.GET("/:code", handler.GetDetails)
		jobs.PUT("/:code", handler.Update)
		jobs.PATCH("/:code", handler.Update)
		jobs.DELETE("/:code", handler.Delete)
		jobs.POST("/:code/apply", handler.Apply)
	}
}

type CreateJobRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description" binding:"required"`
	Requirements    string   `json:"requirements"`
	Location        string   `json:"location" binding:"required"`
	SalaryMin       *float64 `json:"salary_min" binding:"omitempty,gte=0"`
	SalaryMax       *float64 `json:"salary_max" binding:"omitempty,gte=0"`
	JobType         string   `json:"job_type" binding:"required"`
	ExperienceLevel string   `json:"experience_level" binding:"required"`
	SkillsRequired  string   `json:"skills_required"`
	Deadline        time.Time `json:"deadline" binding:"required"`
	JobStatus       string   `json:"job_status"`
}

type UpdateJobRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Requirements    *string    `json:"requirements"`
	Location        *string    `json:"location"`
	SalaryMin       *float64   `json:"salary_min" binding:"omitempty,gte=0"`
	SalaryMax       *float64   `json:"salary_max" binding:"omitempty,gte=0"`
	JobType         *string    `json:"job_type"`
	ExperienceLevel *string    `json:"experience_level"`
	SkillsRequired  *string    `json:"skills_required"`
	Deadline        *time.Time `json:"deadline"`
	JobStatus       *string    `json:"job_status"`
}

type ApplyRequest struct {
	CoverLetter string `json:"cover_letter"`
	Resume      string `json:"resume"`
}

// jobView decorates a job with its derived display fields.
type jobView struct {
	*domain.Job
	IsActive    bool     `json:"is_active"`
	SalaryRange string   `json:"salary_range"`
	Skills      []string `json:"skills_list"`
}

func newJobView(j *domain.Job) jobView {
	return jobView{
		Job:         j,
		IsActive:    j.IsActive(time.Now()),
		SalaryRange: j.SalaryRange(),
		Skills:      j.SkillsList(),
	}
}

// List godoc
// @Summary      List jobs
// @Description  Candidates see active postings; recruiters see their own in every state
// @Tags         jobs
// @Produce      json
// @Param        page              query     int     false  "Page number"
// @Param        page_size         query     int     false  "Page size"
// @Param        job_status        query     string  false  "Filter by status (recruiters only)"
// @Param        location          query     string  false  "Filter by location substring"
// @Param        job_type          query     string  false  "Filter by job type"
// @Param        experience_level  query     string  false  "Filter by experience level"
// @Success      200  {object}  response.Response
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) List(c *gin.Context) {
	var filter domain.JobListFilter
	if v := c.Query("job_status"); v != "" {
		s := domain.JobStatus(v)
		if !s.Valid() {
			c.Error(apperror.BadRequest("Invalid job status"))
			return
		}
		filter.JobStatus = &s
	}
	if v := c.Query("location"); v != "" {
		filter.Location = &v
	}
	if v := c.Query("job_type"); v != "" {
		t := domain.JobType(v)
		if !t.Valid() {
			c.Error(apperror.BadRequest("Invalid job type"))
			return
		}
		filter.JobType = &t
	}
	if v := c.Query("experience_level"); v != "" {
		l := domain.ExperienceLevel(v)
		if !l.Valid() {
			c.Error(apperror.BadRequest("Invalid experience level"))
			return
		}
		filter.ExperienceLevel = &l
	}

	page, pageSize := pageParams(c)
	user := middleware.CurrentUser(c)

	jobs, total, err := h.jobUC.ListJobs(c.Request.Context(), user, filter, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	views := make([]jobView, len(jobs))
	for i := range jobs {
		views[i] = newJobView(&jobs[i])
	}
	response.Success(c, http.StatusOK, "OK", gin.H{
		"jobs":      views,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Create godoc
// @Summary      Create a job posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        body  body      CreateJobRequest  true  "Job JSON"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user := middleware.CurrentUser(c)
	job, err := h.jobUC.CreateJob(c.Request.Context(), user, domain.JobCreateInput{
		Title:           req.Title,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Location:        req.Location,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		JobType:         domain.JobType(req.JobType),
		ExperienceLevel: domain.ExperienceLevel(req.ExperienceLevel),
		SkillsRequired:  req.SkillsRequired,
		Deadline:        req.Deadline,
		JobStatus:       domain.JobStatus(req.JobStatus),
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", newJobView(job))
}

// GetDetails godoc
// @Summary      Get a job by code
// @Tags         jobs
// @Produce      json
// @Param        code  path      string  true  "Job code"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /jobs/{code} [get]
// @Security     BearerAuth
func (h *JobHandler) GetDetails(c *gin.Context) {
	user := middleware.CurrentUser(c)
	job, err := h.jobUC.GetJob(c.Request.Context(), user, c.Param("code"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", newJobView(job))
}

// Update godoc
// @Summary      Update a job posting
// @Description  Partial update; owner only
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        code  path      string            true  "Job code"
// @Param        body  body      UpdateJobRequest  true  "Job JSON"
// @Success      200   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /jobs/{code} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	in := domain.JobUpdateInput{
		Title:          req.Title,
		Description:    req.Description,
		Requirements:   req.Requirements,
		Location:       req.Location,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		SkillsRequired: req.SkillsRequired,
		Deadline:       req.Deadline,
	}
	if req.JobType != nil {
		t := domain.JobType(*req.JobType)
		in.JobType = &t
	}
	if req.ExperienceLevel != nil {
		l := domain.ExperienceLevel(*req.ExperienceLevel)
		in.ExperienceLevel = &l
	}
	if req.JobStatus != nil {
		s := domain.JobStatus(*req.JobStatus)
		in.JobStatus = &s
	}

	user := middleware.CurrentUser(c)
	job, err := h.jobUC.UpdateJob(c.Request.Context(), user, c.Param("code"), in)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", newJobView(job))
}

// Delete godoc
// @Summary      Delete a job posting
// @Description  Soft delete; owner only
// @Tags         jobs
// @Produce      json
// @Param        code  path      string  true  "Job code"
// @Success      200   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /jobs/{code} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.jobUC.DeleteJob(c.Request.Context(), user, c.Param("code")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Candidate only; one application per job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        code  path      string        true  "Job code"
// @Param        body  body      ApplyRequest  true  "Application JSON"
// @Success      201   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /jobs/{code}/apply [post]
// @Security     BearerAuth
func (h *JobHandler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user := middleware.CurrentUser(c)
	app, err := h.jobUC.Apply(c.Request.Context(), user, c.Param("code"), req.CoverLetter, req.Resume)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// pageParams reads the pagination query parameters with defaults.
func pageParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return page, pageSize
}
