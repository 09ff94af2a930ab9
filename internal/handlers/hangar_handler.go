package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/hangar-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/hangar-scheduler/internal/middleware"
	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
	"github.com/BruksfildServices01/hangar-scheduler/internal/timezone"
)

const (
	minSlotInterval = 5
	maxSlotInterval = 240
)

type auditor interface {
	Dispatch(ev audit.Event)
}

type HangarHandler struct {
	db    *gorm.DB
	audit auditor
}

func NewHangarHandler(db *gorm.DB, audit auditor) *HangarHandler {
	return &HangarHandler{db: db, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateHangarRequest struct {
	Name                  *string `json:"name"`
	Phone                 *string `json:"phone"`
	WhatsApp              *string `json:"whatsapp"`
	Address               *string `json:"address"`
	Timezone              *string `json:"timezone"`
	BoxCapacity           *int    `json:"box_capacity"`
	PatioCapacity         *int    `json:"patio_capacity"`
	SlotIntervalMinutes   *int    `json:"slot_interval_minutes"`
	LoyaltyProgramEnabled *bool   `json:"loyalty_program_enabled"`
	OnlineBookingEnabled  *bool   `json:"online_booking_enabled"`
}

type OperatingRuleRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

type BlockedDateRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
}

// ======================================================
// SETTINGS
// ======================================================

func (h *HangarHandler) load(c *gin.Context) (*models.Hangar, bool) {
	var hangar models.Hangar
	if err := h.db.WithContext(c.Request.Context()).
		Preload("OperatingRules", func(db *gorm.DB) *gorm.DB { return db.Order("weekday ASC") }).
		First(&hangar, middleware.HangarID(c)).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, domain.CodeHangarNotFound, "Hangar não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_hangar", "Erro ao buscar dados do hangar.")
		return nil, false
	}
	return &hangar, true
}

func (h *HangarHandler) GetSettings(c *gin.Context) {
	hangar, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, hangar)
}

func (h *HangarHandler) UpdateSettings(c *gin.Context) {
	hangar, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateHangarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nome obrigatório.")
			return
		}
		hangar.Name = name
	}
	if req.Phone != nil {
		hangar.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.WhatsApp != nil {
		hangar.WhatsApp = strings.TrimSpace(*req.WhatsApp)
	}
	if req.Address != nil {
		hangar.Address = strings.TrimSpace(*req.Address)
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		hangar.Timezone = *req.Timezone
	}
	if req.BoxCapacity != nil {
		if *req.BoxCapacity < 1 {
			httperr.BadRequest(c, "invalid_box_capacity", "O hangar precisa de ao menos um box.")
			return
		}
		hangar.BoxCapacity = *req.BoxCapacity
	}
	if req.PatioCapacity != nil {
		if *req.PatioCapacity < 0 {
			httperr.BadRequest(c, "invalid_patio_capacity", "Capacidade do pátio não pode ser negativa.")
			return
		}
		hangar.PatioCapacity = *req.PatioCapacity
	}
	if req.SlotIntervalMinutes != nil {
		if *req.SlotIntervalMinutes < minSlotInterval || *req.SlotIntervalMinutes > maxSlotInterval {
			httperr.BadRequest(c, "invalid_slot_interval", "Intervalo deve ficar entre 5 e 240 minutos.")
			return
		}
		hangar.SlotIntervalMinutes = *req.SlotIntervalMinutes
	}
	if req.LoyaltyProgramEnabled != nil {
		hangar.LoyaltyProgramEnabled = *req.LoyaltyProgramEnabled
	}
	if req.OnlineBookingEnabled != nil {
		hangar.OnlineBookingEnabled = *req.OnlineBookingEnabled
	}

	if err := h.db.WithContext(c.Request.Context()).
		Omit("OperatingRules", "BlockedDates").
		Save(hangar).Error; err != nil {
		httperr.Internal(c, "failed_to_update_hangar", "Erro ao salvar as configurações do hangar.")
		return
	}

	h.audit.Dispatch(audit.Event{
		HangarID: hangar.ID,
		UserID:   middleware.UserID(c),
		Action:   audit.ActionHangarSettingsUpdated,
		Entity:   "hangar",
		EntityID: &hangar.ID,
		Metadata: req,
	})

	c.JSON(http.StatusOK, hangar)
}

// ======================================================
// OPERATING RULES
// ======================================================

func (h *HangarHandler) GetOperatingRules(c *gin.Context) {
	hangar, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.List(c, hangar.OperatingRules)
}

// PutOperatingRules substitui a semana inteira de uma vez.
func (h *HangarHandler) PutOperatingRules(c *gin.Context) {
	hangarID := middleware.HangarID(c)

	var req []OperatingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	rules := make([]models.OperatingRule, 0, len(req))
	for _, r := range req {
		open, okOpen := domain.NormalizeClock(r.OpenTime)
		closeAt, okClose := domain.NormalizeClock(r.CloseTime)
		if r.IsOpen && (!okOpen || !okClose) {
			respondError(c, httperr.ErrBusinessDetail(domain.CodeInvalidOperatingRules, r.OpenTime+"-"+r.CloseTime))
			return
		}
		rules = append(rules, models.OperatingRule{
			HangarID:  hangarID,
			Weekday:   r.DayOfWeek,
			IsOpen:    r.IsOpen,
			OpenTime:  open,
			CloseTime: closeAt,
		})
	}

	if err := domain.ValidateOperatingRules(rules); err != nil {
		respondError(c, err)
		return
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hangar_id = ?", hangarID).Delete(&models.OperatingRule{}).Error; err != nil {
			return err
		}
		if len(rules) == 0 {
			return nil
		}
		return tx.Create(&rules).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_operating_rules", "Erro ao salvar horários de funcionamento.")
		return
	}

	h.audit.Dispatch(audit.Event{
		HangarID: hangarID,
		UserID:   middleware.UserID(c),
		Action:   audit.ActionOperatingRulesUpdated,
		Entity:   "hangar",
		EntityID: &hangarID,
		Metadata: rules,
	})

	httpresp.List(c, rules)
}

// ======================================================
// BLOCKED DATES
// ======================================================

func (h *HangarHandler) ListBlockedDates(c *gin.Context) {
	dates := []models.BlockedDate{}

	q := h.db.WithContext(c.Request.Context()).
		Where("hangar_id = ?", middleware.HangarID(c))
	if from := c.Query("from"); from != "" {
		q = q.Where("date >= ?", from)
	}

	if err := q.Order("date ASC").Find(&dates).Error; err != nil {
		httperr.Internal(c, "failed_to_list_blocked_dates", "Erro ao listar datas bloqueadas.")
		return
	}

	httpresp.List(c, dates)
}

func (h *HangarHandler) CreateBlockedDate(c *gin.Context) {
	hangarID := middleware.HangarID(c)

	var req BlockedDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}
	if !domain.IsValidDate(req.Date) {
		respondError(c, httperr.ErrBusiness(domain.CodeInvalidDateOrTime))
		return
	}

	blocked := models.BlockedDate{
		HangarID: hangarID,
		Date:     req.Date,
		Reason:   strings.TrimSpace(req.Reason),
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&blocked).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "date_already_blocked", "Essa data já está bloqueada.")
			return
		}
		httperr.Internal(c, "failed_to_block_date", "Erro ao bloquear data.")
		return
	}

	h.audit.Dispatch(audit.Event{
		HangarID: hangarID,
		UserID:   middleware.UserID(c),
		Action:   audit.ActionDateBlocked,
		Entity:   "blocked_date",
		EntityID: &blocked.ID,
		Metadata: map[string]any{"date": blocked.Date, "reason": blocked.Reason},
	})

	c.JSON(http.StatusCreated, blocked)
}

func (h *HangarHandler) DeleteBlockedDate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	hangarID := middleware.HangarID(c)

	res := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND hangar_id = ?", id, hangarID).
		Delete(&models.BlockedDate{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_unblock_date", "Erro ao desbloquear data.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "blocked_date_not_found", "Data bloqueada não encontrada.")
		return
	}

	h.audit.Dispatch(audit.Event{
		HangarID: hangarID,
		UserID:   middleware.UserID(c),
		Action:   audit.ActionDateUnblocked,
		Entity:   "blocked_date",
		EntityID: &id,
	})

	c.Status(http.StatusNoContent)
}
