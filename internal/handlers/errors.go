package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/troia-reservas/internal/domain/reservation"
	"github.com/BruksfildServices01/troia-reservas/internal/httperr"
	"github.com/BruksfildServices01/troia-reservas/internal/logger"
)

type businessMessage struct {
	status  int
	title   string
	message string
}

var businessMessages = map[string]businessMessage{
	// -------- Validação --------
	domain.CodeNameRequired:   {http.StatusBadRequest, "", "Nome é obrigatório"},
	domain.CodeEmailRequired:  {http.StatusBadRequest, "", "Email é obrigatório"},
	domain.CodePhoneRequired:  {http.StatusBadRequest, "", "Telefone é obrigatório"},
	domain.CodeNameTooLong:    {http.StatusBadRequest, "", "Nome muito longo (máx. 120 caracteres)"},
	domain.CodeEmailTooLong:   {http.StatusBadRequest, "", "Email muito longo (máx. 120 caracteres)"},
	domain.CodePhoneTooLong:   {http.StatusBadRequest, "", "Telefone muito longo (máx. 30 caracteres)"},
	domain.CodeDateRequired:   {http.StatusBadRequest, "", "Data é obrigatória"},
	domain.CodeInvalidDate:    {http.StatusBadRequest, "", "Data inválida. Use o formato AAAA-MM-DD."},
	domain.CodeDateInPast:     {http.StatusBadRequest, "", "Escolha uma data a partir de hoje."},
	domain.CodePeriodRequired: {http.StatusBadRequest, "", "Período é obrigatório"},
	domain.CodeInvalidPeriod:  {http.StatusBadRequest, "", "Período inválido. Escolha tarde ou noite."},
	domain.CodeInvalidGuests:  {http.StatusBadRequest, "", "Número de pessoas deve ser maior que 0"},
	"invalid_date_mode":       {http.StatusBadRequest, "", "Filtro de data inválido."},

	// -------- Capacidade --------
	domain.CodeCapacityFull: {http.StatusConflict, "Sem lugares disponíveis",
		"Este dia atingiu a capacidade máxima de 110 lugares. Por favor, escolha outra data."},
	domain.CodeInsufficientSeats: {http.StatusConflict, "Lugares insuficientes",
		"Restam apenas %d lugares nesta data."},
	domain.CodeCapacityRace: {http.StatusConflict, "Sem lugares disponíveis",
		"Outro cliente reservou nesse meio tempo e a capacidade foi atingida."},

	// -------- Outros --------
	domain.CodeReservationFailed: {http.StatusInternalServerError, "Erro ao enviar reserva",
		"Tente novamente em alguns minutos."},
	domain.CodeNotFound:  {http.StatusNotFound, "", "Reserva não encontrada."},
	"export_unavailable": {http.StatusServiceUnavailable, "", "Exportação não configurada."},
	"export_failed":      {http.StatusBadGateway, "", "Erro ao exportar reservas."},
}

// writeError converte erros de domínio no JSON {error_code, message, details}.
func writeError(c *gin.Context, err error, lg *logger.Logger) {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		lg.Error("API", fmt.Sprintf("%s %s: %v", c.Request.Method, c.FullPath(), err))
		httperr.Internal(c, "internal_error", "Erro interno. Tente novamente em alguns minutos.")
		return
	}

	msg, known := businessMessages[be.Code]
	if !known {
		httperr.BadRequest(c, be.Code, be.Code)
		return
	}

	text := msg.message
	if be.Code == domain.CodeInsufficientSeats {
		remaining, _ := be.Details["seats_remaining"].(int)
		text = fmt.Sprintf(msg.message, remaining)
	}

	details := map[string]any{}
	for k, v := range be.Details {
		details[k] = v
	}
	if msg.title != "" {
		details["title"] = msg.title
	}
	if len(details) == 0 {
		details = nil
	}

	httperr.WriteDetails(c, msg.status, be.Code, text, details)
}
