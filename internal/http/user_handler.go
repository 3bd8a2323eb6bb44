package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todo-api/internal/domain"
	"todo-api/internal/service"
)

// UserHandler mantiene dependencias para endpoints de usuarios.
type UserHandler struct {
	logger    *zap.Logger
	userServ  *service.UserService
	tokenServ *service.TokenService
}

// NewUserHandler crea una instancia de UserHandler con dependencias necesarias.
func NewUserHandler(logger *zap.Logger, userServ *service.UserService, tokenServ *service.TokenService) *UserHandler {
	return &UserHandler{
		logger:    logger,
		userServ:  userServ,
		tokenServ: tokenServ,
	}
}

// userResponse es la allow-list de serialización de usuarios: nunca se expone
// nada fuera de id y email, ni siquiera al dueño del perfil.
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func publicUser(user domain.User) userResponse {
	return userResponse{ID: user.ID, Email: user.Email}
}

// Register maneja POST /users.
func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, token, err := h.userServ.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": ve.Fields})
			return
		}
		h.logger.Error("register failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not register user"})
		return
	}

	c.Header(AuthHeader, token)
	c.JSON(http.StatusOK, publicUser(user))
}

// Login maneja POST /users/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, token, err := h.userServ.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthFailed) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not login"})
		return
	}

	c.Header(AuthHeader, token)
	c.JSON(http.StatusOK, publicUser(user))
}

// Me maneja GET /users/me.
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := GetAuthUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.JSON(http.StatusOK, publicUser(user))
}

// Logout maneja DELETE /users/me/token: quita el token presentado de la
// lista activa del usuario.
func (h *UserHandler) Logout(c *gin.Context) {
	user, okUser := GetAuthUser(c)
	token, okToken := GetAuthToken(c)
	if !okUser || !okToken {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if err := h.tokenServ.Revoke(c.Request.Context(), user.ID, token); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not logout"})
		return
	}
	c.Status(http.StatusOK)
}
