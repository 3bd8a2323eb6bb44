package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todo-api/internal/domain"
	"todo-api/internal/service"
)

// AuthHeader es el slot fijo del token, en request y response.
const AuthHeader = "x-auth"

const (
	authUserKey  = "auth_user"
	authTokenKey = "auth_token"
)

// AuthMiddleware resuelve el token x-auth a un usuario y lo deja en el
// contexto. Cualquier falla corta con 401 y cuerpo vacío, sin detallar el
// motivo.
func AuthMiddleware(tokenServ *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenServ == nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		token := strings.TrimSpace(c.GetHeader(AuthHeader))
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		user, err := tokenServ.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(authUserKey, user)
		c.Set(authTokenKey, token)
		c.Next()
	}
}

// GetAuthUser obtiene el usuario autenticado desde el contexto.
func GetAuthUser(c *gin.Context) (domain.User, bool) {
	val, ok := c.Get(authUserKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := val.(domain.User)
	return user, ok
}

// GetAuthToken obtiene el token crudo con el que se autenticó el request.
func GetAuthToken(c *gin.Context) (string, bool) {
	val, ok := c.Get(authTokenKey)
	if !ok {
		return "", false
	}
	token, ok := val.(string)
	return token, ok
}
