package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/makeup-studio/internal/httperr"
	"github.com/BruksfildServices01/makeup-studio/internal/httpresp"
	"github.com/BruksfildServices01/makeup-studio/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewAuditLogsHandler(db *gorm.DB, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, loc: loc}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	offset := (page - 1) * limit

	from, to, ok := parseDayRange(c, h.loc)
	if !ok {
		httperr.BadRequest(c, "invalid_date", "Dates must be formatted as YYYY-MM-DD.")
		return
	}

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if actor := c.Query("actor"); actor != "" {
		q = q.Where("LOWER(actor_email) = LOWER(?)", actor)
	}

	if from != nil {
		q = q.Where("created_at >= ?", from.UTC())
	}

	if to != nil {
		q = q.Where("created_at < ?", to.UTC())
	}

	// --------------------------------------------------
	// Total
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Could not count audit logs.")
		return
	}

	// --------------------------------------------------
	// Listing
	// --------------------------------------------------

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	httpresp.Page(c, page, limit, total, logs)
}
