package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/hangar-scheduler/internal/audit"
	"github.com/BruksfildServices01/hangar-scheduler/internal/config"
	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/middleware"
	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
	"github.com/BruksfildServices01/hangar-scheduler/internal/timezone"
	"github.com/BruksfildServices01/hangar-scheduler/internal/validators"
)

const (
	defaultBoxCapacity  = 2
	defaultSlotInterval = 30
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	audit  auditor
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, audit auditor) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, audit: audit}
}

// --------- Requests ---------

type RegisterRequest struct {
	HangarName    string `json:"hangar_name" binding:"required"`
	HangarSlug    string `json:"hangar_slug" binding:"required"`
	HangarPhone   string `json:"hangar_phone"`
	HangarAddress string `json:"hangar_address"`
	Timezone      string `json:"timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register cria o hangar com a semana padrão (segunda a sábado) e o usuário dono.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.HangarSlug))
	if !slugPattern.MatchString(slug) {
		httperr.BadRequest(c, "invalid_slug", "Use apenas letras minúsculas, números e hífen.")
		return
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar a senha.")
		return
	}

	hangar := models.Hangar{
		Name:                 strings.TrimSpace(req.HangarName),
		Slug:                 slug,
		Phone:                req.HangarPhone,
		WhatsApp:             req.HangarPhone,
		Address:              req.HangarAddress,
		Timezone:             tz,
		BoxCapacity:          defaultBoxCapacity,
		SlotIntervalMinutes:  defaultSlotInterval,
		OnlineBookingEnabled: true,
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         "owner",
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("OperatingRules", "BlockedDates").Create(&hangar).Error; err != nil {
			return err
		}

		rules := domain.DefaultOperatingRules(hangar.ID)
		if err := tx.Create(&rules).Error; err != nil {
			return err
		}
		hangar.OperatingRules = rules

		user.HangarID = hangar.ID
		return tx.Omit("Hangar").Create(&user).Error
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "slug_or_email_already_exists", "Endereço do hangar ou e-mail já cadastrado.")
			return
		}
		httperr.Internal(c, "failed_to_register", "Erro ao criar o hangar.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar o token.")
		return
	}

	h.audit.Dispatch(audit.Event{
		HangarID: hangar.ID,
		UserID:   &user.ID,
		Action:   audit.ActionHangarRegistered,
		Entity:   "hangar",
		EntityID: &hangar.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"user":   userView(&user),
		"hangar": hangar,
		"token":  token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Hangar").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		middleware.RequestLogger(c).Warn().Uint("user_id", user.ID).Msg("login refused")
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar o token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   userView(&user),
		"hangar": user.Hangar,
		"token":  token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"hangarId": user.HangarID,
		"role":     user.Role,
		"exp":      now.Add(h.config.JWTTTL).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

func userView(user *models.User) gin.H {
	return gin.H{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"hangar_id": user.HangarID,
	}
}
