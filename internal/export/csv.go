package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	domain "github.com/BruksfildServices01/troia-reservas/internal/domain/reservation"
	"github.com/BruksfildServices01/troia-reservas/internal/models"
)

var csvHeader = []string{"data", "periodo", "nome", "email", "telefone", "pessoas", "criado_em"}

// BuildCSV renders the day sheet the floor staff prints before service.
func BuildCSV(list []models.Reservation) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, r := range list {
		if err := w.Write([]string{
			r.Date.Display(),
			domain.Period(r.Period).Label(),
			r.Name,
			r.Email,
			r.Phone,
			strconv.Itoa(r.Guests),
			r.CreatedAt.Format("02/01/2006 15:04"),
		}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
