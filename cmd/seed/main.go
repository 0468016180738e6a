package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/troia-reservas/internal/caldate"
	"github.com/BruksfildServices01/troia-reservas/internal/config"
	dbpkg "github.com/BruksfildServices01/troia-reservas/internal/db"
	domain "github.com/BruksfildServices01/troia-reservas/internal/domain/reservation"
	"github.com/BruksfildServices01/troia-reservas/internal/logger"
	"github.com/BruksfildServices01/troia-reservas/internal/models"
	"github.com/BruksfildServices01/troia-reservas/internal/timezone"
)

// testReservations são relativas a hoje para aparecerem nos filtros do painel.
func testReservations(today caldate.Date) []models.Reservation {
	return []models.Reservation{
		{Name: "João Silva", Email: "joao@email.com", Phone: "(11) 99999-1111", Guests: 4, Date: today, Period: string(domain.PeriodAfternoon)},
		{Name: "Maria Santos", Email: "maria@email.com", Phone: "(11) 99999-2222", Guests: 2, Date: today, Period: string(domain.PeriodEvening)},
		{Name: "Pedro Oliveira", Email: "pedro@email.com", Phone: "(11) 99999-3333", Guests: 6, Date: today.AddDays(1), Period: string(domain.PeriodAfternoon)},
	}
}

func testEmails() []string {
	list := testReservations(caldate.Date{})
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.Email)
	}
	return out
}

func main() {
	var clearData bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insere (ou remove com --clear) reservas de teste",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			lg := logger.New(os.Stdout, nil)
			db := dbpkg.NewDB(cfg, lg)

			if clearData {
				return clearTestData(db, lg)
			}
			return insertTestData(db, timezone.Today(cfg.Timezone), lg)
		},
	}
	cmd.Flags().BoolVar(&clearData, "clear", false, "remove as reservas de teste")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// insertTestData grava uma por vez: o trigger de capacidade pode recusar
// uma sem derrubar as outras.
func insertTestData(db *gorm.DB, today caldate.Date, lg *logger.Logger) error {
	list := testReservations(today)
	inserted := 0

	for i := range list {
		r := &list[i]
		if err := db.Create(r).Error; err != nil {
			lg.Error("SEED", fmt.Sprintf("erro ao inserir %s: %v", r.Name, err))
			continue
		}
		inserted++
		lg.LogReservation("SEED", r.ID.String(), fmt.Sprintf("%s em %s (%s)", r.Name, r.Date.Display(), r.Period))
	}

	if inserted == 0 {
		return fmt.Errorf("nenhuma reserva de teste inserida")
	}
	lg.Info("SEED", fmt.Sprintf("%d/%d reservas de teste criadas", inserted, len(list)))
	return nil
}

func clearTestData(db *gorm.DB, lg *logger.Logger) error {
	res := db.Where("email IN ?", testEmails()).Delete(&models.Reservation{})
	if res.Error != nil {
		return fmt.Errorf("limpar dados de teste: %w", res.Error)
	}
	lg.Info("SEED", fmt.Sprintf("%d reservas de teste removidas", res.RowsAffected))
	return nil
}
