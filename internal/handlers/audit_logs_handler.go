package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/troia-reservas/internal/caldate"
	"github.com/BruksfildServices01/troia-reservas/internal/httperr"
	"github.com/BruksfildServices01/troia-reservas/internal/httpresp"
	"github.com/BruksfildServices01/troia-reservas/internal/models"
	"github.com/BruksfildServices01/troia-reservas/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
	tz string
}

func NewAuditLogsHandler(db *gorm.DB, tz string) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, tz: tz}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	action := c.Query("action")
	entity := c.Query("entity")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "50")

	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	if action != "" {
		q = q.Where("action = ?", action)
	}

	if entity != "" {
		q = q.Where("entity = ?", entity)
	}

	// dias do restaurante, não UTC
	loc := timezone.Location(h.tz)

	if fromStr != "" {
		if from, err := caldate.Parse(fromStr); err == nil {
			q = q.Where("created_at >= ?", from.In(loc))
		}
	}

	if toStr != "" {
		if to, err := caldate.Parse(toStr); err == nil {
			q = q.Where("created_at < ?", to.AddDays(1).In(loc))
		}
	}

	// --------------------------------------------------
	// Total
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Erro ao contar logs.")
		return
	}

	// --------------------------------------------------
	// Listagem
	// --------------------------------------------------

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}

