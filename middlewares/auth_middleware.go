package middlewares

import (
	"net/http"
	"strings"

	"go-postgres-orders/utils"

	"github.com/gin-gonic/gin"
)

// Auth proteksi endpoint mutasi dengan bearer token staf.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Token tidak ditemukan"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Token tidak valid"})
			c.Abort()
			return
		}

		// claim numerik dari jwt selalu float64
		if v, ok := claims["user_id"].(float64); ok {
			c.Set("user_id", uint(v))
		}
		c.Set("nama", claims["nama"])
		c.Next()
	}
}
