package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intconfig "valleycars/internal/config"
	"valleycars/internal/domain"
	"valleycars/internal/domain/models"
	"valleycars/internal/repositories"
	"valleycars/internal/utils"
)

type CarService struct {
	CarRepo   repositories.CarRepository
	RequestID string
	DB        *sql.DB
}

func (s CarService) repo() repositories.CarRepository {
	if s.CarRepo.DB != nil {
		return s.CarRepo
	}
	if s.DB != nil {
		return repositories.CarRepository{DB: s.DB}
	}
	return repositories.CarRepository{DB: intconfig.DB}
}

// ListPublic returns the active fleet for the booking form.
func (s CarService) ListPublic(ctx context.Context) ([]models.Car, error) {
	return s.repo().ListActive(ctx)
}

func (s CarService) ListAll(ctx context.Context) ([]models.Car, error) {
	return s.repo().ListAll(ctx)
}

func (s CarService) Create(ctx context.Context, p domain.CarPayload) (models.Car, error) {
	car, err := domain.ParseCarPayload(p, false)
	if err != nil {
		return models.Car{}, err
	}
	created, err := s.repo().Create(ctx, car)
	if err != nil {
		return models.Car{}, err
	}
	utils.LogEvent(s.RequestID, "cars", "create", fmt.Sprintf("car_id=%s category=%s", created.ID, created.Category))
	return created, nil
}

// Update replaces car id with p. A path id wins over one in the body.
func (s CarService) Update(ctx context.Context, id string, p domain.CarPayload) (models.Car, error) {
	if strings.TrimSpace(id) != "" {
		p.ID = id
	}
	car, err := domain.ParseCarPayload(p, true)
	if err != nil {
		return models.Car{}, err
	}
	updated, err := s.repo().Update(ctx, car)
	if err != nil {
		return models.Car{}, err
	}
	utils.LogEvent(s.RequestID, "cars", "update", "car_id="+updated.ID)
	return updated, nil
}

func (s CarService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ValidationError{Field: "id", Msg: "car id is required"}
	}
	if err := s.repo().Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "cars", "delete", "car_id="+id)
	return nil
}
