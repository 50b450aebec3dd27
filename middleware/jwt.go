package middleware

import (
	"net/http"
	"strings"

	"github.com/Bintangpa/Hunian-Kita-sub000/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Middleware 1: HANYA cek apakah token valid, lalu taruh user_id + role di context
func JwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Butuh token akses!"})
			c.Abort()
			return
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return utils.ApiSecret(), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token tidak valid"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalid"})
			c.Abort()
			return
		}

		// Pastikan konversi float64 ke uint aman
		userIDFloat, okID := claims["user_id"].(float64)
		if !okID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token corrupt (user_id)"})
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)

		// KONSISTENSI KEY: "user_id" dan "role" dipakai di seluruh handler
		c.Set("user_id", uint(userIDFloat))
		c.Set("role", role)
		c.Next()
	}
}

// Middleware 2: Penjaga pintu dashboard mitra. Upload/boost cuma buat mitra
// (admin juga boleh lewat biar bisa bantu koreksi listing).
func RequireMitra() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if role != "mitra" && role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Fitur ini khusus akun mitra. Daftar jadi mitra dulu ya!"})
			return
		}

		c.Next()
	}
}
