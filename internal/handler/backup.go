package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/damia-cpu/Wellness-Cafe/internal/logger"
	"github.com/damia-cpu/Wellness-Cafe/internal/models"
	"github.com/damia-cpu/Wellness-Cafe/internal/store"
	"github.com/damia-cpu/Wellness-Cafe/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BackupHandler writes encrypted snapshots of the whole store to disk and
// restores them.
type BackupHandler struct {
	Store     *store.Store
	DB        *gorm.DB
	Cipher    *util.Cipher
	BackupDir string
	Clock     util.Clock
}

func NewBackupHandler(s *store.Store, cipher *util.Cipher, backupDir string, clock util.Clock) *BackupHandler {
	return &BackupHandler{
		Store:     s,
		DB:        s.DB(),
		Cipher:    cipher,
		BackupDir: backupDir,
		Clock:     clock,
	}
}

func backupResp(b *models.Backup) gin.H {
	return gin.H{
		"id":         b.ID,
		"file_name":  b.FileName,
		"size":       b.Size,
		"created_at": b.CreatedAt,
	}
}

// find loads the index row named by :id, writing the error response
// itself when it fails.
func (h *BackupHandler) find(c *gin.Context) (*models.Backup, bool) {
	var backup models.Backup
	if err := h.DB.WithContext(c.Request.Context()).Where("id = ?", c.Param("id")).First(&backup).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = store.ErrNotFound
		}
		storeError(c, err, "backup")
		return nil, false
	}
	return &backup, true
}

// CreateBackup snapshots every record into an AES-GCM encrypted file.
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	ctx := c.Request.Context()
	now := h.Clock.Now()

	snap, err := h.Store.Snapshot(ctx, now)
	if err != nil {
		storeError(c, err, "snapshot")
		return
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		storeError(c, err, "encode snapshot")
		return
	}
	enc, err := h.Cipher.Encrypt(raw)
	if err != nil {
		storeError(c, err, "encrypt snapshot")
		return
	}

	if err := os.MkdirAll(h.BackupDir, 0o755); err != nil {
		storeError(c, err, "create backup dir")
		return
	}
	fileName := fmt.Sprintf("backup-%s-%s.bin", now.Format("20060102-150405"), uuid.NewString()[:8])
	filePath := filepath.Join(h.BackupDir, fileName)
	if err := os.WriteFile(filePath, enc, 0o600); err != nil {
		storeError(c, err, "write backup")
		return
	}

	backup := models.Backup{
		FileName: fileName,
		FilePath: filePath,
		Size:     int64(len(enc)),
	}
	if err := h.DB.WithContext(ctx).Create(&backup).Error; err != nil {
		_ = os.Remove(filePath)
		storeError(c, err, "index backup")
		return
	}

	util.Success(c, util.Response{
		"backup":       backupResp(&backup),
		"transactions": len(snap.Transactions),
		"expenses":     len(snap.Expenses),
	})
}

func (h *BackupHandler) ListBackups(c *gin.Context) {
	var list []models.Backup
	if err := h.DB.WithContext(c.Request.Context()).Order("created_at DESC, id DESC").Find(&list).Error; err != nil {
		storeError(c, err, "list backups")
		return
	}
	items := make([]gin.H, 0, len(list))
	for i := range list {
		items = append(items, backupResp(&list[i]))
	}
	util.Success(c, util.Response{"items": items})
}

func (h *BackupHandler) DownloadBackup(c *gin.Context) {
	backup, ok := h.find(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", backup.FileName))
	c.File(backup.FilePath)
}

func (h *BackupHandler) DeleteBackup(c *gin.Context) {
	if !requireConfirm(c) {
		return
	}
	backup, ok := h.find(c)
	if !ok {
		return
	}
	if err := os.Remove(backup.FilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		storeError(c, err, "remove backup file")
		return
	}
	if err := h.DB.WithContext(c.Request.Context()).Delete(backup).Error; err != nil {
		storeError(c, err, "delete backup")
		return
	}
	util.Success(c, util.Response{"message": "backup deleted"})
}

// RestoreBackup replaces every record with the backup's contents.
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	if !requireConfirm(c) {
		return
	}
	backup, ok := h.find(c)
	if !ok {
		return
	}

	enc, err := os.ReadFile(backup.FilePath)
	if err != nil {
		storeError(c, err, "read backup")
		return
	}
	raw, err := h.Cipher.Decrypt(enc)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "backup cannot be decrypted with the current key")
		return
	}
	var snap store.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "backup is corrupted")
		return
	}

	ctx := c.Request.Context()
	if err := h.Store.Restore(ctx, &snap); err != nil {
		storeError(c, err, "restore backup")
		return
	}

	log := logger.FromContext(ctx)
	log.Warn().Uint("backup_id", backup.ID).Int("transactions", len(snap.Transactions)).Msg("store restored from backup")
	util.Success(c, util.Response{
		"message":      "restored",
		"transactions": len(snap.Transactions),
		"expenses":     len(snap.Expenses),
		"menu_items":   len(snap.MenuItems),
	})
}
