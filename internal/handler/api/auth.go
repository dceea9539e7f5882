package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	reqdto "leisure-booking/internal/handler/dto/request"
	resdto "leisure-booking/internal/handler/dto/response"
	"leisure-booking/internal/handler/middleware"
	"leisure-booking/internal/pkg/config"
	"leisure-booking/internal/pkg/cookie"
	"leisure-booking/internal/pkg/errs"
	"leisure-booking/internal/usecase/commands"
	"leisure-booking/internal/usecase/queries"
)

type AuthHandler struct {
	auth  commands.AuthCommands
	users queries.UserQueries
	cfg   config.Config
}

func NewAuthHandler(auth commands.AuthCommands, users queries.UserQueries, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		auth:  auth,
		users: users,
		cfg:   cfg,
	}
}

// @Summary Log in
// @Description Authenticate with email and password; sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	h.setSession(c, result)
	c.JSON(http.StatusOK, resdto.LoginResponse{
		UserID: result.UserID,
		Role:   result.Role.String(),
	})
}

// @Summary Register
// @Description Create a customer account and log it in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "Registration request"
// @Success 201 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, commands.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Email already registered",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	h.setSession(c, result)
	c.JSON(http.StatusCreated, resdto.LoginResponse{
		UserID: result.UserID,
		Role:   result.Role.String(),
	})
}

// @Summary Log out
// @Description Clear the session cookie
// @Tags auth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAccessTokenCookie(c, h.cfg.Cookie)
	c.Status(http.StatusNoContent)
}

// @Summary Current account
// @Description Return the authenticated account with its membership state
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.UserView
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	view, err := h.users.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Account not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AuthHandler) setSession(c *gin.Context, result *commands.LoginResult) {
	duration, err := time.ParseDuration(h.cfg.JWT.Duration)
	if err != nil {
		duration = 24 * time.Hour
	}
	cookie.SetAccessTokenCookie(c, h.cfg.Cookie, result.AccessToken, duration)
}
