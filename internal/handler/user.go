package handler

import (
	"net/http"

	"github.com/damia-cpu/Wellness-Cafe/internal/config"
	"github.com/damia-cpu/Wellness-Cafe/internal/middleware"
	"github.com/damia-cpu/Wellness-Cafe/internal/util"

	"github.com/gin-gonic/gin"
)

// GetMe describes the current session and the café it belongs to.
func GetMe(business config.BusinessConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.CurrentClaims(c)
		if claims == nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
			return
		}

		var expiresAt interface{}
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}
		util.Success(c, util.Response{
			"session": gin.H{
				"subject":    claims.Subject,
				"terminal":   claims.Terminal,
				"expires_at": expiresAt,
			},
			"business": gin.H{
				"name":     business.Name,
				"timezone": business.Timezone,
				"currency": business.Currency,
			},
		})
	}
}
