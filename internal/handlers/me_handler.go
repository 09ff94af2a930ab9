package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/middleware"
	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == nil {
		httperr.Unauthorized(c, "user_not_in_context", "Sessão inválida.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Hangar").
		Where("id = ? AND hangar_id = ?", *userID, middleware.HangarID(c)).
		First(&user).Error; err != nil {
		httperr.Unauthorized(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   userView(&user),
		"hangar": user.Hangar,
	})
}
