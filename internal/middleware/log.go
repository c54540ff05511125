package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/damia-cpu/Wellness-Cafe/internal/models"
	"github.com/damia-cpu/Wellness-Cafe/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// maxAuditBody caps how much of a request body goes into the audit row.
const maxAuditBody = 2000

// secretRoutes carry passwords; only method and path are audited for them.
var secretRoutes = map[string]bool{
	"/api/auth/login":    true,
	"/api/auth/password": true,
}

// AuditMiddleware records every mutating request of a signed-in operator.
// Path and action are encrypted before they are stored.
func AuditMiddleware(db *gorm.DB, cipher *util.Cipher, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		var body []byte
		if c.Request.Body != nil && !secretRoutes[c.Request.URL.Path] {
			body, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		}

		c.Next()

		claims := CurrentClaims(c)
		if claims == nil {
			return
		}
		subject := claims.Subject
		if claims.Terminal != "" {
			subject = claims.Terminal
		}

		path := c.Request.URL.RequestURI()
		action := c.Request.Method + " " + path
		if len(body) > 0 && len(body) < maxAuditBody {
			action += " " + string(body)
		}

		encPath, err := cipher.EncryptString(path)
		if err != nil {
			log.Error().Err(err).Msg("audit: encrypt path")
			return
		}
		encAction, err := cipher.EncryptString(action)
		if err != nil {
			log.Error().Err(err).Msg("audit: encrypt action")
			return
		}

		entry := models.AuditLog{
			Subject:   subject,
			PathEnc:   encPath,
			Method:    c.Request.Method,
			ActionEnc: encAction,
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		if err := db.WithContext(c.Request.Context()).Create(&entry).Error; err != nil {
			log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("audit: write log")
		}
	}
}
