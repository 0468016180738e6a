package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/troia-reservas/internal/caldate"
	domain "github.com/BruksfildServices01/troia-reservas/internal/domain/reservation"
)

type ConfirmationHandler struct{}

func NewConfirmationHandler() *ConfirmationHandler {
	return &ConfirmationHandler{}
}

type confirmationView struct {
	Name   string
	Date   string
	Period string
	Cutoff string
	Guests string
}

// Show só apresenta o que veio na URL: não valida nem consulta nada.
func (h *ConfirmationHandler) Show(c *gin.Context) {
	c.HTML(http.StatusOK, "obrigado.html", newConfirmationView(
		c.Query("name"),
		c.Query("date"),
		c.Query("periodo"),
		c.Query("guests"),
	))
}

func newConfirmationView(name, date, periodo, guests string) confirmationView {
	// qualquer valor diferente de "tarde" é exibido como noite
	period := domain.PeriodEvening
	if periodo == string(domain.PeriodAfternoon) {
		period = domain.PeriodAfternoon
	}

	shown := caldate.DisplayISO(date)
	if d, err := caldate.Parse(date); err == nil {
		shown = d.Display()
	}

	return confirmationView{
		Name:   name,
		Date:   shown,
		Period: period.Label(),
		Cutoff: period.ArrivalCutoff(),
		Guests: guests,
	}
}
