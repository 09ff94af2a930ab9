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
)

type ServiceHandler struct {
	db    *gorm.DB
	audit auditor
}

func NewServiceHandler(db *gorm.DB, audit auditor) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name               string   `json:"name" binding:"required"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	DurationMinutes    int      `json:"duration_minutes" binding:"required,min=1"`
	Price              float64  `json:"price" binding:"min=0"`
	CompatibleVehicles []string `json:"compatible_vehicles"`
}

type UpdateServiceRequest struct {
	Name               *string   `json:"name,omitempty"`
	Description        *string   `json:"description,omitempty"`
	Category           *string   `json:"category,omitempty"`
	DurationMinutes    *int      `json:"duration_minutes,omitempty"`
	Price              *float64  `json:"price,omitempty"`
	Active             *bool     `json:"is_active,omitempty"`
	CompatibleVehicles *[]string `json:"compatible_vehicles,omitempty"`
}

type CreateBayRequest struct {
	Name string `json:"name" binding:"required"`
}

func vehicleTypes(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		out = append(out, domain.NormalizeVehicleType(t))
	}
	return out
}

// --------- Services ---------

func (h *ServiceHandler) List(c *gin.Context) {
	hangarID := middleware.HangarID(c)

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active")) // "true", "false" ou vazio
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Where("hangar_id = ?", hangarID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	switch activeStr {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	services := []models.ServiceItem{}
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	hangarID := middleware.HangarID(c)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	service := models.ServiceItem{
		HangarID:        hangarID,
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		Category:        strings.ToLower(strings.TrimSpace(req.Category)),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          true,
		Compatible:      vehicleTypes(req.CompatibleVehicles),
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	h.audit.Dispatch(audit.Event{
		HangarID: hangarID,
		UserID:   middleware.UserID(c),
		Action:   audit.ActionServiceCreated,
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusCreated, service)
}

// Update também é o caminho para desativar: serviços nunca são apagados.
func (h *ServiceHandler) Update(c *gin.Context) {
	hangarID := middleware.HangarID(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var service models.ServiceItem
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND hangar_id = ?", id, hangarID).
		First(&service).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Erro ao buscar serviço.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		service.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes < 1 {
			httperr.BadRequest(c, "invalid_duration", "Duração deve ser positiva.")
			return
		}
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		if *req.Price < 0 {
			httperr.BadRequest(c, "invalid_price", "Preço não pode ser negativo.")
			return
		}
		service.Price = *req.Price
	}
	if req.Active != nil {
		service.Active = *req.Active
	}
	if req.CompatibleVehicles != nil {
		service.Compatible = vehicleTypes(*req.CompatibleVehicles)
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	h.audit.Dispatch(audit.Event{
		HangarID: hangarID,
		UserID:   middleware.UserID(c),
		Action:   audit.ActionServiceUpdated,
		Entity:   "service",
		EntityID: &service.ID,
		Metadata: req,
	})

	c.JSON(http.StatusOK, service)
}

// --------- Bays ---------

func (h *ServiceHandler) ListBays(c *gin.Context) {
	bays := []models.ServiceBay{}
	if err := h.db.WithContext(c.Request.Context()).
		Where("hangar_id = ?", middleware.HangarID(c)).
		Order("id ASC").
		Find(&bays).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bays", "Erro ao listar boxes.")
		return
	}

	httpresp.List(c, bays)
}

func (h *ServiceHandler) CreateBay(c *gin.Context) {
	var req CreateBayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	bay := models.ServiceBay{
		HangarID: middleware.HangarID(c),
		Name:     strings.TrimSpace(req.Name),
		Active:   true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&bay).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "bay_already_exists", "Já existe um box com esse nome.")
			return
		}
		httperr.Internal(c, "failed_to_create_bay", "Erro ao criar box.")
		return
	}

	c.JSON(http.StatusCreated, bay)
}
