package v1

import (
	"net/http"
	"time"

	"jobsite-backend/config"
	"jobsite-backend/internal/delivery/http/middleware"
	"jobsite-backend/internal/delivery/http/response"
	"jobsite-backend/internal/domain"
	"jobsite-backend/pkg/token"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	ProfileUC     domain.ProfileUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	DashboardUC   domain.DashboardUsecase
	UserRepo      domain.UserRepository
	Tokens        *token.Service
	Redis         *goredis.Client
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// CORS must run before everything else.
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Credential endpoints get a tighter budget than the rest of the API.
	public := v1.Group("")
	public.Use(middleware.RateLimit(deps.Redis, middleware.RateLimitConfig{
		Limit:     deps.Config.AuthRateLimitPerMin,
		Window:    time.Minute,
		KeyPrefix: "rl:auth:",
	}))

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.UserRepo))

	NewAuthHandler(public, protected, deps.AuthUC)
	NewProfileHandler(protected, deps.ProfileUC)
	NewJobHandler(protected, deps.JobUC)
	NewApplicationHandler(protected, deps.ApplicationUC)
	NewDashboardHandler(protected, deps.DashboardUC)

	return r
}
