package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the Bearer token and puts the actor's user_id
// into the gin context. Protected routes behind it always see an
// authenticated actor.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		uid, err := parseUserID(tokenString, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("user_id", uid)
		c.Next()
	}
}

// OptionalAuthMiddleware is AuthMiddleware for public routes whose
// response depends on the actor when one is present (LikedByMe, the
// following feed). A missing or broken token just means unauthenticated.
func OptionalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.Next()
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		if uid, err := parseUserID(tokenString, jwtSecret); err == nil {
			c.Set("user_id", uid)
		}
		c.Next()
	}
}

func parseUserID(tokenString, jwtSecret string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}

	// JSON numbers land as float64
	uidF, ok := claims["user_id"].(float64)
	if !ok || uidF <= 0 {
		return 0, jwt.ErrTokenInvalidClaims
	}
	return int64(uidF), nil
}
