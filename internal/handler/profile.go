package handler

import (
	"net/http"

	"github.com/damia-cpu/Wellness-Cafe/internal/logger"
	"github.com/damia-cpu/Wellness-Cafe/internal/util"

	"github.com/gin-gonic/gin"
)

type changePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=64"`
}

// ChangePassword swaps the operator password for the running process and
// returns the new bcrypt hash. The hash lives in config, so it has to be
// saved as auth.password_hash (or WC_AUTH_PASSWORD_HASH) to survive a
// restart.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "new password must be 6 to 64 characters")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if !util.CheckPassword(req.OldPassword, h.PasswordHash) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "current password is wrong")
		return
	}
	hash, err := util.HashPassword(req.NewPassword)
	if err != nil {
		log := logger.FromContext(c.Request.Context())
		log.Error().Err(err).Msg("hash password")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "could not hash password")
		return
	}
	h.PasswordHash = hash

	util.Success(c, util.Response{
		"message":       "password changed, save password_hash in config to keep it after a restart",
		"password_hash": hash,
	})
}
