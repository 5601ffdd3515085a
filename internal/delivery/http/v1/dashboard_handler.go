package v1

import (
	"net/http"

	"jobsite-backend/internal/delivery/http/middleware"
	"jobsite-backend/internal/delivery/http/response"
	"jobsite-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashUC domain.DashboardUsecase
}

func NewDashboardHandler(protected *gin.RouterGroup, dashUC domain.DashboardUsecase) {
	handler := &DashboardHandler{dashUC: dashUC}
	protected.GET("/recruiter-dashboard", handler.RecruiterDashboard)
}

// RecruiterDashboard godoc
// @Summary      Recruiter activity summary
// @Description  Aggregated posting and application counts for the authenticated recruiter
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /recruiter-dashboard [get]
// @Security     BearerAuth
func (h *DashboardHandler) RecruiterDashboard(c *gin.Context) {
	user := middleware.CurrentUser(c)
	stats, err := h.dashUC.RecruiterDashboard(c.Request.Context(), user)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", stats)
}
