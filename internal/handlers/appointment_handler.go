package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/hangar-scheduler/internal/middleware"
	"github.com/BruksfildServices01/hangar-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	submit     *appointment.SubmitBooking
	transition *appointment.TransitionStatus
	remove     *appointment.DeleteAppointment
	byDate     *appointment.ListAppointmentsByDate
	byMonth    *appointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	submit *appointment.SubmitBooking,
	transition *appointment.TransitionStatus,
	remove *appointment.DeleteAppointment,
	byDate *appointment.ListAppointmentsByDate,
	byMonth *appointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		submit:     submit,
		transition: transition,
		remove:     remove,
		byDate:     byDate,
		byMonth:    byMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`

	// cliente existente ou cadastro na hora
	CustomerID    uint           `json:"customer_id"`
	VehicleID     uint           `json:"vehicle_id"`
	CustomerName  string         `json:"customer_name"`
	CustomerPhone string         `json:"customer_phone"`
	CustomerEmail string         `json:"customer_email"`
	Vehicle       VehicleRequest `json:"vehicle"`

	Price       *float64 `json:"price"`
	BoxID       *uint    `json:"box_id"`
	Observation string   `json:"observation"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// CREATE (CONSOLE)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !validators.IsEmailFormatValid(req.CustomerEmail) {
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
		return
	}

	res, err := h.submit.Execute(c.Request.Context(), appointment.SubmitBookingInput{
		HangarID:      middleware.HangarID(c),
		UserID:        middleware.UserID(c),
		Source:        appointment.SourceAdmin,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Time:          req.Time,
		CustomerID:    req.CustomerID,
		VehicleID:     req.VehicleID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Vehicle:       req.Vehicle.info(),
		PriceOverride: req.Price,
		BoxID:         req.BoxID,
		Observation:   req.Observation,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	items, err := h.byDate.Execute(c.Request.Context(), middleware.HangarID(c), date)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "invalid_period", "Ano e mês obrigatórios.")
		return
	}

	items, err := h.byMonth.Execute(c.Request.Context(), middleware.HangarID(c), year, month)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// STATUS (MÁQUINA DE ESTADOS)
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	to, valid := domain.ParseStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !valid {
		httperr.BadRequest(c, "invalid_status", "Status desconhecido.")
		return
	}

	res, err := h.transition.Execute(c.Request.Context(), appointment.TransitionInput{
		HangarID:      middleware.HangarID(c),
		UserID:        middleware.UserID(c),
		AppointmentID: id,
		To:            to,
		Reason:        req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// ======================================================
// DELETE (?confirm=true)
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	confirmed, _ := strconv.ParseBool(c.Query("confirm"))

	day, err := h.remove.Execute(c.Request.Context(), appointment.DeleteAppointmentInput{
		HangarID:      middleware.HangarID(c),
		UserID:        middleware.UserID(c),
		AppointmentID: id,
		Confirmed:     confirmed,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"day": day})
}
