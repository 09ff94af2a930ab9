package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/hangar-scheduler/internal/audit"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/middleware"
	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
	"github.com/BruksfildServices01/hangar-scheduler/internal/timezone"
)

const codeInvalidAuditFilter = "invalid_audit_filter"

// ======================================================
// FILTRO
// ======================================================

// auditFilter é a trilha pedida pelo console: ações do domínio, recorte por
// registro e dias fechados no fuso do hangar.
type auditFilter struct {
	Actions  []string
	Entity   string
	EntityID *uint64
	From     *time.Time
	To       *time.Time // exclusivo
	Page     int
	Limit    int
}

// parseAuditFilter aceita action=a,b e/ou group=rejections; ação fora do
// catálogo é erro, não filtro vazio.
func parseAuditFilter(c *gin.Context, tz string) (auditFilter, string, bool) {
	f := auditFilter{Entity: strings.TrimSpace(c.Query("entity"))}

	seen := map[string]bool{}
	add := func(a string) {
		if !seen[a] {
			seen[a] = true
			f.Actions = append(f.Actions, a)
		}
	}

	if group := strings.TrimSpace(c.Query("group")); group != "" {
		actions, ok := audit.GroupActions(group)
		if !ok {
			return f, "Grupo inválido. Use: " + strings.Join(audit.Groups(), ", ") + ".", false
		}
		for _, a := range actions {
			add(a)
		}
	}

	for _, raw := range strings.Split(c.Query("action"), ",") {
		a := strings.TrimSpace(raw)
		if a == "" {
			continue
		}
		if !audit.IsKnownAction(a) {
			return f, "Ação desconhecida: " + a + ".", false
		}
		add(a)
	}

	if raw := c.Query("entity_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return f, "entity_id inválido.", false
		}
		f.EntityID = &id
	}

	if raw := c.Query("from"); raw != "" {
		from, err := timezone.ParseDate(tz, raw)
		if err != nil {
			return f, "Data inicial inválida.", false
		}
		f.From = &from
	}

	if raw := c.Query("to"); raw != "" {
		to, err := timezone.ParseDate(tz, raw)
		if err != nil {
			return f, "Data final inválida.", false
		}
		to = to.AddDate(0, 0, 1)
		f.To = &to
	}

	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return f, "Período inválido.", false
	}

	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if f.Page <= 0 {
		f.Page = 1
	}

	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}

	return f, "", true
}

func (f auditFilter) apply(q *gorm.DB) *gorm.DB {
	if len(f.Actions) > 0 {
		q = q.Where("action IN ?", f.Actions)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.EntityID != nil {
		q = q.Where("entity_id = ?", *f.EntityID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}
	return q
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	hangarID := middleware.HangarID(c)
	ctx := c.Request.Context()

	var hangar models.Hangar
	if err := h.db.WithContext(ctx).Select("id", "timezone").First(&hangar, hangarID).Error; err != nil {
		httperr.NotFound(c, "hangar_not_found", "Hangar não encontrado.")
		return
	}

	f, msg, ok := parseAuditFilter(c, hangar.Timezone)
	if !ok {
		httperr.BadRequest(c, codeInvalidAuditFilter, msg)
		return
	}

	// sempre restrita ao hangar
	scoped := func() *gorm.DB {
		return f.apply(h.db.WithContext(ctx).
			Model(&models.AuditLog{}).
			Where("hangar_id = ?", hangarID))
	}

	// --------------------------------------------------
	// Totais por ação no recorte
	// --------------------------------------------------

	var rows []struct {
		Action string
		Total  int64
	}
	if err := scoped().
		Select("action, COUNT(*) AS total").
		Group("action").
		Scan(&rows).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Erro ao contar logs.")
		return
	}

	var total int64
	byAction := make(map[string]int64, len(rows))
	for _, r := range rows {
		byAction[r.Action] = r.Total
		total += r.Total
	}

	// --------------------------------------------------
	// Listagem
	// --------------------------------------------------

	logs := []models.AuditLog{}
	if err := scoped().
		Order("created_at DESC").
		Order("id DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":      f.Page,
		"limit":     f.Limit,
		"total":     total,
		"by_action": byAction,
		"logs":      logs,
	})
}
