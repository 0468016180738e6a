package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/troia-reservas/internal/audit"
	"github.com/BruksfildServices01/troia-reservas/internal/config"
	"github.com/BruksfildServices01/troia-reservas/internal/httperr"
	infraRepo "github.com/BruksfildServices01/troia-reservas/internal/infra/repository"
	"github.com/BruksfildServices01/troia-reservas/internal/logger"
	"github.com/BruksfildServices01/troia-reservas/internal/middleware"
	"github.com/BruksfildServices01/troia-reservas/internal/models"
	"github.com/BruksfildServices01/troia-reservas/internal/validators"
)

const tokenTTL = 24 * time.Hour

type ProfileStore interface {
	Create(ctx context.Context, p *models.Profile) error
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

type AuthHandler struct {
	profiles    ProfileStore
	revoker     TokenRevoker
	config      *config.Config
	audit       *audit.Dispatcher
	log         *logger.Logger
	emailDomain func(email string) bool
}

// NewAuthHandler: revoker pode ser nil quando não há Redis.
func NewAuthHandler(
	profiles ProfileStore,
	revoker TokenRevoker,
	cfg *config.Config,
	audit *audit.Dispatcher,
	log *logger.Logger,
) *AuthHandler {
	return &AuthHandler{
		profiles:    profiles,
		revoker:     revoker,
		config:      cfg,
		audit:       audit,
		log:         log,
		emailDomain: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type SignUpRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	FullName        string `json:"full_name"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func profileJSON(p *models.Profile) gin.H {
	return gin.H{
		"id":        p.ID,
		"email":     p.Email,
		"full_name": p.FullName,
		"role":      p.Role,
		"is_admin":  p.IsAdmin(),
	}
}

// --------- Handlers ---------

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Preencha email e senha.")
		return
	}

	if len(req.Password) < 6 {
		httperr.BadRequest(c, "password_too_short", "A senha deve ter pelo menos 6 caracteres.")
		return
	}
	if req.Password != req.ConfirmPassword {
		httperr.BadRequest(c, "passwords_mismatch", "As senhas não coincidem.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !h.emailDomain(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao criar conta.")
		return
	}

	role := models.RoleUser
	if h.config.IsAdminEmail(email) {
		role = models.RoleAdmin
	}

	profile := models.Profile{
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: string(hashed),
		Role:         role,
	}

	if err := h.profiles.Create(c.Request.Context(), &profile); err != nil {
		if errors.Is(err, infraRepo.ErrEmailTaken) {
			httperr.Conflict(c, "email_taken", "Este email já está cadastrado.")
			return
		}
		h.log.Error("AUTH", "create profile: "+err.Error())
		httperr.Internal(c, "failed_to_create_user", "Erro ao criar conta.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &profile.ID,
		Action:   audit.ActionProfileCreated,
		Entity:   audit.EntityProfile,
		EntityID: &profile.ID,
		Metadata: map[string]any{"role": profile.Role},
	})

	token, err := h.generateToken(&profile)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao criar sessão.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  profileJSON(&profile),
		"token": token,
	})
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Preencha email e senha.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	profile, err := h.profiles.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, infraRepo.ErrProfileNotFound) {
			h.log.LogSecurity("SIGN_IN_FAILED", email)
			httperr.Unauthorized(c, "invalid_credentials", "Email ou senha incorretos.")
			return
		}
		h.log.Error("AUTH", "load profile: "+err.Error())
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		h.log.LogSecurity("SIGN_IN_FAILED", email)
		httperr.Unauthorized(c, "invalid_credentials", "Email ou senha incorretos.")
		return
	}

	token, err := h.generateToken(profile)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao criar sessão.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  profileJSON(profile),
		"token": token,
	})
}

// SignOut revoga o token atual até a expiração dele.
func (h *AuthHandler) SignOut(c *gin.Context) {
	jti := c.GetString(middleware.ContextTokenID)
	expiry, _ := c.Get(middleware.ContextTokenExpiry)

	if h.revoker != nil && jti != "" {
		ttl := tokenTTL
		if exp, ok := expiry.(time.Time); ok && !exp.IsZero() {
			ttl = time.Until(exp)
		}
		if err := h.revoker.Revoke(c.Request.Context(), jti, ttl); err != nil {
			h.log.Warn("AUTH", "revoke token: "+err.Error())
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "signed_out"})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(p *models.Profile) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  p.ID.String(),
		"role": p.Role,
		"jti":  uuid.NewString(),
		"exp":  now.Add(tokenTTL).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
