package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/troia-reservas/internal/caldate"
	domain "github.com/BruksfildServices01/troia-reservas/internal/domain/reservation"
	"github.com/BruksfildServices01/troia-reservas/internal/dto"
	"github.com/BruksfildServices01/troia-reservas/internal/httperr"
	"github.com/BruksfildServices01/troia-reservas/internal/logger"
	ucReservation "github.com/BruksfildServices01/troia-reservas/internal/usecase/reservation"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	checkCapacity     *ucReservation.CheckCapacity
	createReservation *ucReservation.CreatePublicReservation
	log               *logger.Logger
}

func NewPublicHandler(
	checkCapacity *ucReservation.CheckCapacity,
	createReservation *ucReservation.CreatePublicReservation,
	log *logger.Logger,
) *PublicHandler {
	return &PublicHandler{
		checkCapacity:     checkCapacity,
		createReservation: createReservation,
		log:               log,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateReservationRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Guests  int    `json:"guests"`
	Date    string `json:"date"` // YYYY-MM-DD
	Periodo string `json:"periodo"`
}

////////////////////////////////////////////////////////
// CAPACITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Capacity(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, domain.CodeDateRequired, "Data é obrigatória")
		return
	}

	date, err := caldate.Parse(dateStr)
	if err != nil {
		httperr.BadRequest(c, domain.CodeInvalidDate, "Data inválida. Use o formato AAAA-MM-DD.")
		return
	}

	c.JSON(http.StatusOK, h.checkCapacity.Execute(c.Request.Context(), date))
}

////////////////////////////////////////////////////////
// CREATE
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateReservation(c *gin.Context) {
	var req PublicCreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados da reserva inválidos.")
		return
	}

	res, err := h.createReservation.Execute(c.Request.Context(), domain.Input{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Guests: req.Guests,
		Date:   req.Date,
		Period: req.Periodo,
	})
	if err != nil {
		writeError(c, err, h.log)
		return
	}

	if res.Redirected() {
		c.JSON(http.StatusOK, gin.H{
			"status":       "redirect",
			"redirect_url": res.RedirectURL,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":           "created",
		"reservation":      dto.NewReservationDTO(res.Reservation),
		"confirmation_url": res.ConfirmationURL,
	})
}
