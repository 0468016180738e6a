package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/troia-reservas/internal/httperr"
	infraRepo "github.com/BruksfildServices01/troia-reservas/internal/infra/repository"
	"github.com/BruksfildServices01/troia-reservas/internal/logger"
	"github.com/BruksfildServices01/troia-reservas/internal/middleware"
)

type MeHandler struct {
	profiles ProfileStore
	log      *logger.Logger
}

func NewMeHandler(profiles ProfileStore, log *logger.Logger) *MeHandler {
	return &MeHandler{profiles: profiles, log: log}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httperr.Unauthorized(c, "user_not_in_context", "Faça login para continuar.")
		return
	}

	profile, err := h.profiles.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, infraRepo.ErrProfileNotFound) {
			httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
			return
		}
		h.log.Error("AUTH", "load profile: "+err.Error())
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": profileJSON(profile),
	})
}
