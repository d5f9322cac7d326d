package middlewares

import (
	"net/http"
	"strings"

	"github.com/paccolajoao/yazio-consumer/models"
	"github.com/paccolajoao/yazio-consumer/utils"

	"github.com/gin-gonic/gin"
)

// YazioAuth extracts the Yazio bearer token from the Authorization header and
// places it in the request context. The token is Yazio's, so only the exp
// claim is inspected here; actual validation happens upstream on every call.
func YazioAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token := models.AuthToken{AccessToken: tokenString}
		if exp, err := utils.TokenExpiry(tokenString); err == nil {
			token.ExpiresAt = exp
		}

		if token.Expired() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
			return
		}

		c.Set("authToken", token)
		c.Next()
	}
}

// TokenFromCtx retrieves the credential stored by YazioAuth.
func TokenFromCtx(c *gin.Context) (models.AuthToken, bool) {
	v, ok := c.Get("authToken")
	if !ok {
		return models.AuthToken{}, false
	}
	token, ok := v.(models.AuthToken)
	return token, ok
}
