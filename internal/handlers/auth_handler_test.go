package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/troia-reservas/internal/config"
	infraRepo "github.com/BruksfildServices01/troia-reservas/internal/infra/repository"
	"github.com/BruksfildServices01/troia-reservas/internal/logger"
	"github.com/BruksfildServices01/troia-reservas/internal/middleware"
	"github.com/BruksfildServices01/troia-reservas/internal/models"
)

// ======================================================
// FAKES
// ======================================================

type memoryProfiles struct {
	byEmail map[string]*models.Profile
}

func newMemoryProfiles() *memoryProfiles {
	return &memoryProfiles{byEmail: map[string]*models.Profile{}}
}

func (m *memoryProfiles) Create(_ context.Context, p *models.Profile) error {
	if _, ok := m.byEmail[p.Email]; ok {
		return infraRepo.ErrEmailTaken
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.byEmail[p.Email] = p
	return nil
}

func (m *memoryProfiles) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	if p, ok := m.byEmail[email]; ok {
		return p, nil
	}
	return nil, infraRepo.ErrProfileNotFound
}

func (m *memoryProfiles) GetByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	for _, p := range m.byEmail {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, infraRepo.ErrProfileNotFound
}

type recordingRevoker struct {
	jti string
	ttl time.Duration
}

func (r *recordingRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	r.jti, r.ttl = jti, ttl
	return nil
}

var authCfg = &config.Config{
	JWTSecret:   "test-secret",
	AdminEmails: []string{"gerente@troia.com.br"},
}

func newAuthRouter(t *testing.T, profiles ProfileStore, revoker TokenRevoker) *gin.Engine {
	h := NewAuthHandler(profiles, revoker, authCfg, newTestDispatcher(t), logger.Discard())
	h.emailDomain = func(email string) bool { return email != "alguem@dominio-invalido.xyz" }

	r := gin.New()
	r.POST("/api/auth/sign-up", h.SignUp)
	r.POST("/api/auth/sign-in", h.SignIn)
	r.POST("/api/auth/sign-out", func(c *gin.Context) {
		c.Set(middleware.ContextTokenID, "jti-1")
		c.Set(middleware.ContextTokenExpiry, time.Now().Add(time.Hour))
		c.Next()
	}, h.SignOut)
	return r
}

func signUpBody(email, password, confirm string) map[string]any {
	return map[string]any{
		"email":            email,
		"password":         password,
		"confirm_password": confirm,
		"full_name":        "Equipe Tróia",
	}
}

// ======================================================
// SIGN UP
// ======================================================

func TestSignUpAdminEmailGetsAdminRole(t *testing.T) {
	profiles := newMemoryProfiles()
	r := newAuthRouter(t, profiles, nil)

	w := doJSON(r, http.MethodPost, "/api/auth/sign-up", signUpBody("Gerente@Troia.com.br", "segredo1", "segredo1"))

	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	user := body["user"].(map[string]any)
	assert.Equal(t, "gerente@troia.com.br", user["email"])
	assert.Equal(t, models.RoleAdmin, user["role"])
	assert.Equal(t, true, user["is_admin"])
	assert.NotEmpty(t, body["token"])

	stored := profiles.byEmail["gerente@troia.com.br"]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("segredo1")))
}

func TestSignUpRegularUser(t *testing.T) {
	w := doJSON(newAuthRouter(t, newMemoryProfiles(), nil), http.MethodPost, "/api/auth/sign-up",
		signUpBody("cliente@gmail.com", "segredo1", "segredo1"))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, models.RoleUser, decode(t, w)["user"].(map[string]any)["role"])
}

func TestSignUpRejections(t *testing.T) {
	cases := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"senha curta", signUpBody("a@gmail.com", "123", "123"), http.StatusBadRequest, "password_too_short"},
		{"senhas diferentes", signUpBody("a@gmail.com", "segredo1", "segredo2"), http.StatusBadRequest, "passwords_mismatch"},
		{"domínio inválido", signUpBody("alguem@dominio-invalido.xyz", "segredo1", "segredo1"), http.StatusBadRequest, "invalid_email_domain"},
		{"email malformado", signUpBody("sem-arroba", "segredo1", "segredo1"), http.StatusBadRequest, "invalid_request"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(newAuthRouter(t, newMemoryProfiles(), nil), http.MethodPost, "/api/auth/sign-up", tc.body)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, decode(t, w)["error_code"])
		})
	}
}

func TestSignUpEmailTaken(t *testing.T) {
	r := newAuthRouter(t, newMemoryProfiles(), nil)
	body := signUpBody("cliente@gmail.com", "segredo1", "segredo1")

	require.Equal(t, http.StatusCreated, doJSON(r, http.MethodPost, "/api/auth/sign-up", body).Code)

	w := doJSON(r, http.MethodPost, "/api/auth/sign-up", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email_taken", decode(t, w)["error_code"])
}

// ======================================================
// SIGN IN / SIGN OUT
// ======================================================

func TestSignIn(t *testing.T) {
	r := newAuthRouter(t, newMemoryProfiles(), nil)
	require.Equal(t, http.StatusCreated,
		doJSON(r, http.MethodPost, "/api/auth/sign-up", signUpBody("gerente@troia.com.br", "segredo1", "segredo1")).Code)

	w := doJSON(r, http.MethodPost, "/api/auth/sign-in", map[string]any{"email": "gerente@troia.com.br", "password": "segredo1"})
	require.Equal(t, http.StatusOK, w.Code)

	raw := decode(t, w)["token"].(string)
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(authCfg.JWTSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims["role"])
	assert.NotEmpty(t, claims["jti"])

	w = doJSON(r, http.MethodPost, "/api/auth/sign-in", map[string]any{"email": "gerente@troia.com.br", "password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", decode(t, w)["error_code"])

	w = doJSON(r, http.MethodPost, "/api/auth/sign-in", map[string]any{"email": "ninguem@troia.com.br", "password": "segredo1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignOutRevokesUntilExpiry(t *testing.T) {
	revoker := &recordingRevoker{}
	r := newAuthRouter(t, newMemoryProfiles(), revoker)

	w := doJSON(r, http.MethodPost, "/api/auth/sign-out", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jti-1", revoker.jti)
	assert.Greater(t, revoker.ttl, 59*time.Minute)
	assert.LessOrEqual(t, revoker.ttl, time.Hour)
}

func TestSignOutWithoutRedis(t *testing.T) {
	w := doJSON(newAuthRouter(t, newMemoryProfiles(), nil), http.MethodPost, "/api/auth/sign-out", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

// ======================================================
// ME
// ======================================================

func TestGetMe(t *testing.T) {
	profiles := newMemoryProfiles()
	p := &models.Profile{Email: "gerente@troia.com.br", Role: models.RoleAdmin}
	require.NoError(t, profiles.Create(context.Background(), p))

	h := NewMeHandler(profiles, logger.Discard())
	as := func(id uuid.UUID) *gin.Engine {
		r := gin.New()
		r.GET("/api/me", func(c *gin.Context) {
			c.Set(middleware.ContextUserID, id)
			c.Next()
		}, h.GetMe)
		return r
	}

	w := doJSON(as(p.ID), http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gerente@troia.com.br", decode(t, w)["user"].(map[string]any)["email"])

	w = doJSON(as(uuid.New()), http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
