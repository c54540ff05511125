package handler

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/damia-cpu/Wellness-Cafe/internal/config"
	"github.com/damia-cpu/Wellness-Cafe/internal/logger"
	"github.com/damia-cpu/Wellness-Cafe/internal/middleware"
	"github.com/damia-cpu/Wellness-Cafe/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler is the shared operator password gate. Failed attempts are
// counted in memory; a restart clears a lockout.
type AuthHandler struct {
	PasswordHash string
	JWTSecret    string
	Issuer       string
	TokenTTL     time.Duration
	MaxFailed    int
	LockFor      time.Duration
	Clock        util.Clock

	mu          sync.Mutex
	failed      int
	lockedUntil time.Time
}

func NewAuthHandler(cfg config.AuthConfig, ttl time.Duration, clock util.Clock) *AuthHandler {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	maxFailed := cfg.MaxFailedAttempts
	if maxFailed <= 0 {
		maxFailed = 5
	}
	lockFor := time.Duration(cfg.LockMinutes) * time.Minute
	if lockFor <= 0 {
		lockFor = 10 * time.Minute
	}
	return &AuthHandler{
		PasswordHash: cfg.PasswordHash,
		JWTSecret:    cfg.JWTSecret,
		Issuer:       cfg.Issuer,
		TokenTTL:     ttl,
		MaxFailed:    maxFailed,
		LockFor:      lockFor,
		Clock:        clock,
	}
}

type loginReq struct {
	Password string `json:"password" binding:"required"`
	Terminal string `json:"terminal" binding:"max=64"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "password is required")
		return
	}

	now := h.Clock.Now()
	log := logger.FromContext(c.Request.Context())

	h.mu.Lock()
	if now.Before(h.lockedUntil) {
		until := h.lockedUntil
		h.mu.Unlock()
		util.Error(c, http.StatusLocked, util.CodeLocked, "too many attempts, try again after "+until.Format("15:04"))
		return
	}

	if !util.CheckPassword(req.Password, h.PasswordHash) {
		h.failed++
		if h.failed >= h.MaxFailed {
			h.lockedUntil = now.Add(h.LockFor)
			h.failed = 0
			log.Warn().Str("ip", c.ClientIP()).Time("until", h.lockedUntil).Msg("login locked")
		}
		h.mu.Unlock()
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "wrong password")
		return
	}
	h.failed = 0
	h.lockedUntil = time.Time{}
	h.mu.Unlock()

	terminal := strings.TrimSpace(req.Terminal)
	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, terminal, h.TokenTTL)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "could not start session")
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.TokenCookie, token, int(h.TokenTTL.Seconds()), "/", "", false, true)
	util.Success(c, util.Response{
		"token":      token,
		"expires_at": now.Add(h.TokenTTL),
	})
}

// Logout drops the session cookie. Bearer tokens simply expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	util.Success(c, util.Response{"message": "signed out"})
}
