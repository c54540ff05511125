package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/damia-cpu/Wellness-Cafe/internal/models"
	"github.com/damia-cpu/Wellness-Cafe/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LogHandler lists the audit trail.
type LogHandler struct {
	DB       *gorm.DB
	Cipher   *util.Cipher
	Location *time.Location
}

func NewLogHandler(db *gorm.DB, cipher *util.Cipher, loc *time.Location) *LogHandler {
	return &LogHandler{DB: db, Cipher: cipher, Location: loc}
}

type logResp struct {
	ID        uint      `json:"id"`
	Subject   string    `json:"subject"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Action    string    `json:"action"`
	Status    int       `json:"status"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

// ListLogs pages through the audit log newest first. start and end
// (YYYY-MM-DD, inclusive) filter in SQL; q matches the decrypted path or
// action, so it is applied after decryption.
func (h *LogHandler) ListLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if size <= 0 || size > 100 {
		size = 20
	}

	base := h.DB.WithContext(c.Request.Context()).Model(&models.AuditLog{})
	if s := c.Query("start"); s != "" {
		if err := util.ValidateDate(s); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "start: "+err.Error())
			return
		}
		start, _ := time.ParseInLocation(dateLayout, s, h.Location)
		base = base.Where("created_at >= ?", start)
	}
	if e := c.Query("end"); e != "" {
		if err := util.ValidateDate(e); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "end: "+err.Error())
			return
		}
		end, _ := time.ParseInLocation(dateLayout, e, h.Location)
		base = base.Where("created_at < ?", end.AddDate(0, 0, 1))
	}
	if m := strings.ToUpper(c.Query("method")); m != "" {
		base = base.Where("method = ?", m)
	}

	var logs []models.AuditLog
	if err := base.Order("created_at DESC, id DESC").Find(&logs).Error; err != nil {
		storeError(c, err, "list logs")
		return
	}

	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	items := make([]logResp, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		r := logResp{
			ID:        l.ID,
			Subject:   l.Subject,
			Method:    l.Method,
			Path:      h.Cipher.DecryptString(l.PathEnc),
			Action:    h.Cipher.DecryptString(l.ActionEnc),
			Status:    l.Status,
			IP:        l.IP,
			UserAgent: l.UserAgent,
			CreatedAt: l.CreatedAt,
		}
		if q != "" && !strings.Contains(strings.ToLower(r.Path), q) && !strings.Contains(strings.ToLower(r.Action), q) {
			continue
		}
		items = append(items, r)
	}

	total := len(items)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	util.Success(c, util.Response{
		"items": items[start:end],
		"total": total,
		"page":  page,
		"size":  size,
	})
}
