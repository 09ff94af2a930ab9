package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
	"github.com/BruksfildServices01/hangar-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db           *gorm.DB
	booking      *appointment.SubmitBooking
	availability *appointment.GetAvailability
	openDates    *appointment.ListOpenDates
}

func NewPublicHandler(
	db *gorm.DB,
	booking *appointment.SubmitBooking,
	availability *appointment.GetAvailability,
	openDates *appointment.ListOpenDates,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		booking:      booking,
		availability: availability,
		openDates:    openDates,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type VehicleRequest struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Plate string `json:"plate"`
	Color string `json:"color"`
	Type  string `json:"type"`
}

func (v VehicleRequest) info() domain.VehicleInfo {
	return domain.VehicleInfo{
		Brand: v.Brand,
		Model: v.Model,
		Plate: v.Plate,
		Color: v.Color,
		Type:  v.Type,
	}
}

type PublicCreateAppointmentRequest struct {
	CustomerName  string         `json:"customer_name" binding:"required"`
	CustomerPhone string         `json:"customer_phone" binding:"required"`
	CustomerEmail string         `json:"customer_email"`
	ServiceID     uint           `json:"service_id" binding:"required"`
	Date          string         `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string         `json:"time" binding:"required"` // HH:mm
	Vehicle       VehicleRequest `json:"vehicle"`
	Observation   string         `json:"observation"`
}

type PublicHangarView struct {
	Name                  string                 `json:"name"`
	Slug                  string                 `json:"slug"`
	Phone                 string                 `json:"phone"`
	WhatsApp              string                 `json:"whatsapp"`
	Address               string                 `json:"address"`
	Timezone              string                 `json:"timezone"`
	SlotIntervalMinutes   int                    `json:"slot_interval_minutes"`
	LoyaltyProgramEnabled bool                   `json:"loyalty_program_enabled"`
	OnlineBookingEnabled  bool                   `json:"online_booking_enabled"`
	OperatingDays         []models.OperatingRule `json:"operating_days"`
	Services              []models.ServiceItem   `json:"services"`
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *PublicHandler) hangarBySlug(c *gin.Context) (*models.Hangar, bool) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))

	var hangar models.Hangar
	if err := h.db.WithContext(c.Request.Context()).
		Preload("OperatingRules").
		Where("slug = ?", slug).
		First(&hangar).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, domain.CodeHangarNotFound, "Hangar não encontrado.")
			return nil, false
		}
		respondError(c, err)
		return nil, false
	}
	return &hangar, true
}

func (h *PublicHandler) activeServices(c *gin.Context, hangarID uint) ([]models.ServiceItem, error) {
	services := []models.ServiceItem{}

	q := h.db.WithContext(c.Request.Context()).
		Where("hangar_id = ? AND active = true", hangarID)

	if category := strings.ToLower(strings.TrimSpace(c.Query("category"))); category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	err := q.Order("price ASC, id ASC").Find(&services).Error
	return services, err
}

////////////////////////////////////////////////////////
// PROFILE + SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) GetHangar(c *gin.Context) {
	hangar, ok := h.hangarBySlug(c)
	if !ok {
		return
	}

	services, err := h.activeServices(c, hangar.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, PublicHangarView{
		Name:                  hangar.Name,
		Slug:                  hangar.Slug,
		Phone:                 hangar.Phone,
		WhatsApp:              hangar.WhatsApp,
		Address:               hangar.Address,
		Timezone:              hangar.Timezone,
		SlotIntervalMinutes:   hangar.SlotIntervalMinutes,
		LoyaltyProgramEnabled: hangar.LoyaltyProgramEnabled,
		OnlineBookingEnabled:  hangar.OnlineBookingEnabled,
		OperatingDays:         hangar.OperatingRules,
		Services:              services,
	})
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	hangar, ok := h.hangarBySlug(c)
	if !ok {
		return
	}

	services, err := h.activeServices(c, hangar.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, services)
}

////////////////////////////////////////////////////////
// CALENDAR
////////////////////////////////////////////////////////

func (h *PublicHandler) OpenDates(c *gin.Context) {
	hangar, ok := h.hangarBySlug(c)
	if !ok {
		return
	}

	days, _ := strconv.Atoi(c.Query("days"))

	dates, err := h.openDates.Execute(c.Request.Context(), hangar.ID, days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

func (h *PublicHandler) Availability(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		httperr.BadRequest(c, "missing_params", "Data obrigatória.")
		return
	}

	hangar, ok := h.hangarBySlug(c)
	if !ok {
		return
	}

	av, err := h.availability.Execute(c.Request.Context(), hangar.ID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, av)
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT (AGENDA PÚBLICA)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	hangar, ok := h.hangarBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !validators.IsEmailFormatValid(req.CustomerEmail) {
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
		return
	}

	res, err := h.booking.Execute(c.Request.Context(), appointment.SubmitBookingInput{
		HangarID:      hangar.ID,
		Source:        appointment.SourcePublic,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Time:          req.Time,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Vehicle:       req.Vehicle.info(),
		Observation:   req.Observation,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	// a agenda pública não recebe a lista do dia
	c.JSON(http.StatusCreated, gin.H{
		"appointment": gin.H{
			"id":           res.Appointment.ID,
			"date":         res.Appointment.Date,
			"time":         res.Appointment.Time,
			"status":       res.Appointment.Status,
			"service_type": res.Appointment.ServiceType,
			"price":        res.Appointment.Price,
			"duration":     res.Appointment.DurationMinutes,
		},
		"hangar": gin.H{
			"name":     hangar.Name,
			"whatsapp": hangar.WhatsApp,
			"address":  hangar.Address,
		},
	})
}
