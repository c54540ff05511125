package middleware

import (
	"net/http"
	"strings"

	"github.com/damia-cpu/Wellness-Cafe/internal/util"

	"github.com/gin-gonic/gin"
)

// ClaimsKey is where AuthMiddleware stores the session claims.
const ClaimsKey = "claims"

// TokenCookie is the cookie name checked after the header and query.
const TokenCookie = "wc_token"

// AuthMiddleware verifies the operator's JWT.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		// Authorization: Bearer xxx
		if parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenStr = parts[1]
		}
		// ?token=xxx for downloads opened in a new tab
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}
		if tokenStr == "" {
			if cookie, err := c.Cookie(TokenCookie); err == nil {
				tokenStr = cookie
			}
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "session expired, please sign in again")
			c.Abort()
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// CurrentClaims returns the claims set by AuthMiddleware, or nil.
func CurrentClaims(c *gin.Context) *util.Claims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*util.Claims)
	return claims
}
