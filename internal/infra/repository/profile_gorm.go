package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/troia-reservas/internal/models"
)

const pgUniqueViolation = "23505"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrEmailTaken      = errors.New("email already registered")
)

type ProfileGormRepository struct {
	db *gorm.DB
}

func NewProfileGormRepository(db *gorm.DB) *ProfileGormRepository {
	return &ProfileGormRepository{db: db}
}

func (r *ProfileGormRepository) Create(ctx context.Context, p *models.Profile) error {
	err := r.db.WithContext(ctx).Create(p).Error
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrEmailTaken
	}
	return err
}

func (r *ProfileGormRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var p models.Profile
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileGormRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// RoleOf is what the admin gate asks on every request.
func (r *ProfileGormRepository) RoleOf(ctx context.Context, id uuid.UUID) (string, error) {
	var p models.Profile
	err := r.db.WithContext(ctx).
		Select("role").
		Where("id = ?", id).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrProfileNotFound
	}
	return p.Role, err
}
