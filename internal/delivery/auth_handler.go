package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/middleware"
	"storefront/internal/session"
	"storefront/internal/usecase"
)

type AuthHandler struct {
	users     usecase.UserUseCase
	sessions  *session.Store
	cookieTTL int
	log       *logrus.Logger
}

func NewAuthHandler(users usecase.UserUseCase, sessions *session.Store, cookieTTLSeconds int, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		users:     users,
		sessions:  sessions,
		cookieTTL: cookieTTLSeconds,
		log:       logger,
	}
}

type registerRequest struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password"`
	Email           string `json:"email" binding:"required"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) RegisterRoutes(api gin.IRouter, auth gin.HandlerFunc) {
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.POST("/logout", h.Logout)
	api.GET("/user", auth, h.CurrentUser)
}

// Register creates the account and logs the new user straight in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Handler: failed to bind JSON for register: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		ErrorResponse(c, http.StatusBadRequest, "Passwords don't match")
		return
	}

	user, err := h.users.Register(req.Username, req.Password, req.Email, req.FirstName, req.LastName)
	if err != nil {
		h.log.Warnf("Handler: registration failed for '%s': %v", req.Username, err)
		ErrorResponse(c, mapErrorToStatus(err), "Registration failed: "+err.Error())
		return
	}

	h.setSessionCookie(c, user.ID)
	SuccessResponse(c, http.StatusCreated, "Registered successfully", user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Handler: failed to bind JSON for login: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.users.Authenticate(req.Username, req.Password)
	if err != nil {
		h.log.Warnf("Handler: login failed for '%s': %v", req.Username, err)
		ErrorResponse(c, mapErrorToStatus(err), "Invalid username or password")
		return
	}

	h.setSessionCookie(c, user.ID)
	SuccessResponse(c, http.StatusOK, "Logged in successfully", user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		h.sessions.Delete(token)
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) CurrentUser(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "User retrieved successfully", middleware.CurrentUser(c))
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, userID int) {
	token := h.sessions.Create(userID)
	c.SetCookie(middleware.SessionCookie, token, h.cookieTTL, "/", "", false, true)
}
