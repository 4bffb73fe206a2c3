package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Jaaccob/SagaApp/pkg/helpers"
	"github.com/Jaaccob/SagaApp/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	CtxRolesKey  = "userRoles"
)

type AccessTokenParser interface {
	ParseAccessToken(token string) (*helpers.Claims, error)
}

// Auth validates the bearer access token and sets userID and userRoles in
// the Gin context on success.
func Auth(tokens AccessTokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := tokens.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxRolesKey, claims.Roles)
		c.Next()
	}
}

// bearerToken reads "Authorization: Bearer <token>", then the access_token
// cookie.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	token, _ := c.Cookie("access_token")
	return token
}
