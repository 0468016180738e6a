package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/troia-reservas/internal/caldate"
	domain "github.com/BruksfildServices01/troia-reservas/internal/domain/reservation"
	"github.com/BruksfildServices01/troia-reservas/internal/dto"
	"github.com/BruksfildServices01/troia-reservas/internal/httperr"
	"github.com/BruksfildServices01/troia-reservas/internal/httpresp"
	"github.com/BruksfildServices01/troia-reservas/internal/logger"
	"github.com/BruksfildServices01/troia-reservas/internal/middleware"
	ucReservation "github.com/BruksfildServices01/troia-reservas/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type AdminReservationHandler struct {
	list   *ucReservation.ListReservations
	create *ucReservation.CreateAdminReservation
	update *ucReservation.UpdateReservation
	remove *ucReservation.DeleteReservation
	export *ucReservation.ExportDay
	log    *logger.Logger
}

func NewAdminReservationHandler(
	list *ucReservation.ListReservations,
	create *ucReservation.CreateAdminReservation,
	update *ucReservation.UpdateReservation,
	remove *ucReservation.DeleteReservation,
	export *ucReservation.ExportDay,
	log *logger.Logger,
) *AdminReservationHandler {
	return &AdminReservationHandler{
		list:   list,
		create: create,
		update: update,
		remove: remove,
		export: export,
		log:    log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AdminReservationRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Guests  int    `json:"guests"`
	Date    string `json:"date"`
	Periodo string `json:"periodo"`
}

type AdminUpdateReservationRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Guests  *int    `json:"guests"`
	Date    *string `json:"date"`
	Periodo *string `json:"periodo"`
}

// ======================================================
// HELPERS
// ======================================================

func parseReservationID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Reserva inválida.")
		return uuid.Nil, false
	}
	return id, true
}

// filterFromQuery lê os filtros do painel. Uma data digitada pela metade
// (máscara dd/mm/aaaa incompleta) simplesmente não filtra.
func filterFromQuery(c *gin.Context) (domain.Filter, error) {
	mode, err := domain.ParseDateMode(c.Query("date_mode"))
	if err != nil {
		return domain.Filter{}, err
	}

	f := domain.Filter{
		Search:   strings.TrimSpace(c.Query("q")),
		DateMode: mode,
	}

	if raw := c.Query("date"); raw != "" {
		if d, ok := caldate.ParseFlexible(raw); ok {
			f.Date = d
			if f.DateMode == domain.DateModeAny {
				f.DateMode = domain.DateModeExact
			}
		}
	}

	if p := c.Query("periodo"); p != "" && p != "all" {
		if period, err := domain.ParsePeriod(p); err == nil {
			f.Period = string(period)
		} else {
			f.Period = p
		}
	}

	if g := c.Query("guests"); g != "" && g != "all" {
		if n, err := strconv.Atoi(g); err == nil && n > 0 {
			f.Guests = n
		}
	}

	return f, nil
}

// ======================================================
// LIST
// ======================================================

func (h *AdminReservationHandler) List(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		writeError(c, err, h.log)
		return
	}

	res, err := h.list.Execute(c.Request.Context(), filter)
	if err != nil {
		h.log.Error("RESERVATION", "list failed: "+err.Error())
		httperr.Internal(c, "reservations_list_failed", "Erro ao carregar reservas.")
		return
	}

	httpresp.OK(c, dto.ReservationListResponse{
		Data:  dto.NewReservationList(res.Reservations),
		Shown: res.Shown,
		Total: res.Total,
		Stats: res.Stats,
	})
}

// ======================================================
// CREATE
// ======================================================

func (h *AdminReservationHandler) Create(c *gin.Context) {
	var req AdminReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	res, err := h.create.Execute(c.Request.Context(), ucReservation.CreateAdminReservationInput{
		ActorID: middleware.ActorID(c),
		Input: domain.Input{
			Name:   req.Name,
			Email:  req.Email,
			Phone:  req.Phone,
			Guests: req.Guests,
			Date:   req.Date,
			Period: req.Periodo,
		},
	})
	if err != nil {
		writeError(c, err, h.log)
		return
	}

	httpresp.Created(c, dto.NewReservationDTO(res))
}

// ======================================================
// UPDATE
// ======================================================

func (h *AdminReservationHandler) Update(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}

	var req AdminUpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	res, err := h.update.Execute(c.Request.Context(), ucReservation.UpdateReservationInput{
		ActorID: middleware.ActorID(c),
		ID:      id,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Guests:  req.Guests,
		Date:    req.Date,
		Period:  req.Periodo,
	})
	if err != nil {
		writeError(c, err, h.log)
		return
	}

	httpresp.OK(c, dto.NewReservationDTO(res))
}

// ======================================================
// DELETE
// ======================================================

func (h *AdminReservationHandler) Delete(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), ucReservation.DeleteReservationInput{
		ActorID: middleware.ActorID(c),
		ID:      id,
	}); err != nil {
		writeError(c, err, h.log)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// EXPORT
// ======================================================

func (h *AdminReservationHandler) Export(c *gin.Context) {
	res, err := h.export.Execute(c.Request.Context(), ucReservation.ExportDayInput{
		ActorID: middleware.ActorID(c),
		Date:    c.Query("date"),
	})
	if err != nil {
		writeError(c, err, h.log)
		return
	}

	httpresp.OK(c, res)
}
