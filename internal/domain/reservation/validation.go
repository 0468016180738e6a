package reservation

import (
	"strings"
	"unicode/utf8"

	"github.com/BruksfildServices01/troia-reservas/internal/caldate"
	"github.com/BruksfildServices01/troia-reservas/internal/httperr"
	"github.com/BruksfildServices01/troia-reservas/internal/models"
)

// Limites das colunas varchar em reservations.
const (
	MaxNameLength  = 120
	MaxEmailLength = 120
	MaxPhoneLength = 30
)

// Input is a reservation as typed by a guest or an admin.
type Input struct {
	Name   string
	Email  string
	Phone  string
	Guests int
	Date   string
	Period string
}

// Draft is an Input that passed validation.
type Draft struct {
	Name   string
	Email  string
	Phone  string
	Guests int
	Date   caldate.Date
	Period Period
}

// Validate checks the fields in form order; the first failure wins.
func Validate(in Input) (Draft, error) {
	d := Draft{
		Name:   strings.TrimSpace(in.Name),
		Email:  strings.TrimSpace(in.Email),
		Phone:  strings.TrimSpace(in.Phone),
		Guests: in.Guests,
	}

	if d.Name == "" {
		return Draft{}, httperr.ErrBusiness(CodeNameRequired)
	}
	if utf8.RuneCountInString(d.Name) > MaxNameLength {
		return Draft{}, httperr.ErrBusiness(CodeNameTooLong)
	}
	if d.Email == "" {
		return Draft{}, httperr.ErrBusiness(CodeEmailRequired)
	}
	if utf8.RuneCountInString(d.Email) > MaxEmailLength {
		return Draft{}, httperr.ErrBusiness(CodeEmailTooLong)
	}
	if d.Phone == "" {
		return Draft{}, httperr.ErrBusiness(CodePhoneRequired)
	}
	if utf8.RuneCountInString(d.Phone) > MaxPhoneLength {
		return Draft{}, httperr.ErrBusiness(CodePhoneTooLong)
	}

	rawDate := strings.TrimSpace(in.Date)
	if rawDate == "" {
		return Draft{}, httperr.ErrBusiness(CodeDateRequired)
	}
	date, err := caldate.Parse(rawDate)
	if err != nil {
		return Draft{}, httperr.ErrBusiness(CodeInvalidDate)
	}
	d.Date = date

	period, err := ParsePeriod(in.Period)
	if err != nil {
		return Draft{}, err
	}
	d.Period = period

	if d.Guests < 1 {
		return Draft{}, httperr.ErrBusiness(CodeInvalidGuests)
	}

	return d, nil
}

// NotInPast rejects days before today in the restaurant's calendar.
func (d Draft) NotInPast(today caldate.Date) error {
	if d.Date.Before(today) {
		return httperr.ErrBusiness(CodeDateInPast)
	}
	return nil
}

func (d Draft) Model() *models.Reservation {
	return &models.Reservation{
		Name:   d.Name,
		Email:  d.Email,
		Phone:  d.Phone,
		Guests: d.Guests,
		Date:   d.Date,
		Period: string(d.Period),
	}
}

// InputFrom devolve os campos atuais de uma reserva para revalidação.
func InputFrom(r *models.Reservation) Input {
	return Input{
		Name:   r.Name,
		Email:  r.Email,
		Phone:  r.Phone,
		Guests: r.Guests,
		Date:   r.Date.String(),
		Period: r.Period,
	}
}
