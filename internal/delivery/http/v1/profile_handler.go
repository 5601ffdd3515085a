package v1

import (
	"net/http"
	"time"

	"jobsite-backend/internal/delivery/http/middleware"
	"jobsite-backend/internal/delivery/http/response"
	"jobsite-backend/internal/domain"
	"jobsite-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	profile := protected.Group("/auth/profile")
	{
		profile.GET("", handler.Get)
		profile.PUT("", handler.Update)
		profile.PATCH("", handler.Update)
	}
}

type UpdateProfileRequest struct {
	Photo           *string `json:"photo"`
	Bio             *string `json:"bio"`
	DateOfBirth     *string `json:"date_of_birth"` // YYYY-MM-DD
	Gender          *string `json:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER NOT_SPECIFIED NOT_SET"`
	Address         *string `json:"address"`
	City            *string `json:"city"`
	Country         *string `json:"country"`
	Resume          *string `json:"resume"`
	Skills          *string `json:"skills"`
	ExperienceYears *int    `json:"experience_years" binding:"omitempty,gte=0"`
}

// Get godoc
// @Summary      Get the authenticated user's profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)
	profile, err := h.profileUC.GetProfile(c.Request.Context(), user)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", profile)
}

// Update godoc
// @Summary      Update the authenticated user's profile
// @Description  Partial update; absent fields are left untouched
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      UpdateProfileRequest  true  "Profile JSON"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /auth/profile [put]
// @Security     BearerAuth
func (h *ProfileHandler) Update(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	in := domain.ProfileUpdateInput{
		PhotoURL:        req.Photo,
		Bio:             req.Bio,
		Address:         req.Address,
		City:            req.City,
		Country:         req.Country,
		ResumeURL:       req.Resume,
		Skills:          req.Skills,
		ExperienceYears: req.ExperienceYears,
	}
	if req.Gender != nil {
		g := domain.Gender(*req.Gender)
		in.Gender = &g
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			c.Error(apperror.BadRequest("Date of birth must be in YYYY-MM-DD format"))
			return
		}
		in.DateOfBirth = &dob
	}

	user := middleware.CurrentUser(c)
	profile, err := h.profileUC.UpdateProfile(c.Request.Context(), user, in)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", profile)
}
