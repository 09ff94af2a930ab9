package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/dto"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/hangar-scheduler/internal/middleware"
	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
	"github.com/BruksfildServices01/hangar-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/validators"
)

type CustomerHandler struct {
	db     *gorm.DB
	create *appointment.CreateCustomer
}

func NewCustomerHandler(db *gorm.DB, create *appointment.CreateCustomer) *CustomerHandler {
	return &CustomerHandler{db: db, create: create}
}

type CreateCustomerRequest struct {
	Name     string           `json:"name" binding:"required"`
	Phone    string           `json:"phone" binding:"required"`
	Email    string           `json:"email"`
	Vehicles []VehicleRequest `json:"vehicles"`
}

// CustomerView: lavagens, LTV e fidelidade são derivados dos FINALIZADO a cada leitura.
type CustomerView struct {
	models.Customer
	Washes     int             `json:"washes"`
	TotalSpent float64         `json:"total_spent"`
	Loyalty    *domain.Loyalty `json:"loyalty,omitempty"`
}

// ======================================================
// LIST (CRM)
// ======================================================

func (h *CustomerHandler) List(c *gin.Context) {
	hangarID := middleware.HangarID(c)
	ctx := c.Request.Context()

	var hangar models.Hangar
	if err := h.db.WithContext(ctx).Select("id", "loyalty_program_enabled").First(&hangar, hangarID).Error; err != nil {
		httperr.NotFound(c, domain.CodeHangarNotFound, "Hangar não encontrado.")
		return
	}

	q := h.db.WithContext(ctx).Preload("Vehicles").Where("hangar_id = ?", hangarID)

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		digits := validators.NormalizePhone(query)
		if digits == "" {
			digits = query
		}
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, "%"+digits+"%", like,
		)
	}

	customers := []models.Customer{}
	if err := q.Order("created_at DESC").Find(&customers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_customers", "Erro ao listar clientes.")
		return
	}

	var finished []models.Appointment
	if err := h.db.WithContext(ctx).
		Select("customer_id", "price", "status").
		Where("hangar_id = ? AND status = ?", hangarID, string(domain.StatusFinished)).
		Find(&finished).Error; err != nil {
		httperr.Internal(c, "failed_to_list_customers", "Erro ao listar clientes.")
		return
	}

	stats := domain.CustomerStats(finished)

	views := make([]CustomerView, 0, len(customers))
	for _, cu := range customers {
		st := stats[cu.ID]
		view := CustomerView{Customer: cu, Washes: st.Washes, TotalSpent: st.TotalSpent}
		if hangar.LoyaltyProgramEnabled {
			loyalty := domain.LoyaltyFor(st.Washes)
			view.Loyalty = &loyalty
		}
		views = append(views, view)
	}

	httpresp.List(c, views)
}

// ======================================================
// DETAIL + HISTÓRICO
// ======================================================

func (h *CustomerHandler) Get(c *gin.Context) {
	hangarID := middleware.HangarID(c)
	id, ok := paramID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var customer models.Customer
	if err := h.db.WithContext(ctx).
		Preload("Vehicles").
		Where("id = ? AND hangar_id = ?", id, hangarID).
		First(&customer).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, domain.CodeCustomerNotFound, "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_customer", "Erro ao buscar cliente.")
		return
	}

	history := []models.Appointment{}
	if err := h.db.WithContext(ctx).
		Preload("Customer").
		Preload("Vehicle").
		Where("hangar_id = ? AND customer_id = ?", hangarID, id).
		Order("date DESC, time DESC").
		Find(&history).Error; err != nil {
		httperr.Internal(c, "failed_to_get_customer", "Erro ao buscar cliente.")
		return
	}

	st := domain.CustomerStats(history)[id]
	loyalty := domain.LoyaltyFor(st.Washes)

	c.JSON(http.StatusOK, gin.H{
		"customer": CustomerView{
			Customer:   customer,
			Washes:     st.Washes,
			TotalSpent: domain.CustomerLifetimeValue(history, id),
			Loyalty:    &loyalty,
		},
		"history": dto.FromAppointments(history),
	})
}

// ======================================================
// CREATE
// ======================================================

func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !validators.IsEmailFormatValid(req.Email) {
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
		return
	}

	vehicles := make([]domain.VehicleInfo, 0, len(req.Vehicles))
	for _, v := range req.Vehicles {
		vehicles = append(vehicles, v.info())
	}

	customer, err := h.create.Execute(c.Request.Context(), appointment.CreateCustomerInput{
		HangarID: middleware.HangarID(c),
		UserID:   middleware.UserID(c),
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Vehicles: vehicles,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}
