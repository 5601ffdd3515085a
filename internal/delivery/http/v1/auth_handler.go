package v1

import (
	"net/http"

	"jobsite-backend/internal/delivery/http/middleware"
	"jobsite-backend/internal/delivery/http/response"
	"jobsite-backend/internal/domain"
	"jobsite-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	auth := public.Group("/auth")
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
		auth.POST("/token/refresh", handler.Refresh)
		auth.POST("/forgot-password", handler.ForgotPassword)
		auth.POST("/reset-password", handler.ResetPassword)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.POST("/logout", handler.Logout)
		protectedAuth.GET("/me", handler.Me)
	}
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email" binding:"required,email"`
	FirstName       string `json:"first_name" binding:"required,valid_name"`
	LastName        string `json:"last_name" binding:"required,valid_name"`
	Phone           string `json:"phone" binding:"omitempty,valid_phone"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	Role            string `json:"role" binding:"required,oneof=RECRUITER CANDIDATE"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	UID             string `json:"uid" binding:"required"`
	Token           string `json:"token" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

type authPayload struct {
	User   *domain.User     `json:"user"`
	Tokens domain.TokenPair `json:"tokens"`
}

// Register godoc
// @Summary      Register a new account
// @Description  Create a RECRUITER or CANDIDATE account and return a token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "Registration JSON"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, tokens, err := h.authUC.Register(c.Request.Context(), domain.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Role:            domain.Role(req.Role),
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Registration successful", authPayload{User: user, Tokens: tokens})
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials JSON"
// @Success      200   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, tokens, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", authPayload{User: user, Tokens: tokens})
}

// Refresh godoc
// @Summary      Exchange a refresh token for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      RefreshRequest  true  "Refresh JSON"
// @Success      200   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Router       /auth/token/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	tokens, err := h.authUC.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Token refreshed", tokens)
}

// Logout godoc
// @Summary      Log out
// @Description  Blacklist the presented refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      RefreshRequest  true  "Refresh JSON"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.authUC.Logout(c.Request.Context(), req.Refresh); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Logged out", nil)
}

// ForgotPassword godoc
// @Summary      Request a password reset email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ForgotPasswordRequest  true  "Email JSON"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.authUC.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Password reset email sent", nil)
}

// ResetPassword godoc
// @Summary      Complete a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ResetPasswordRequest  true  "Reset JSON"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	uid, err := uuid.Parse(req.UID)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid reset link"))
		return
	}

	if err := h.authUC.ConfirmPasswordReset(c.Request.Context(), uid, req.Token, req.Password, req.PasswordConfirm); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Password updated", nil)
}

// Me godoc
// @Summary      Get the authenticated user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthorized("Authentication required"))
		return
	}
	response.Success(c, http.StatusOK, "OK", user)
}
