package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	intconfig "valleycars/internal/config"
	intdb "valleycars/internal/db"
	"valleycars/internal/domain"
	"valleycars/internal/domain/models"

	"github.com/google/uuid"
)

const carColumns = `id, name, category, base_price, per_km, image_url, active, created_at`

type CarRepository struct {
	DB *sql.DB
}

func (r CarRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListActive returns cars shown to customers, ordered by name.
func (r CarRepository) ListActive(ctx context.Context) ([]models.Car, error) {
	return r.list(ctx, `SELECT `+carColumns+` FROM cars WHERE active = 1 ORDER BY name ASC`)
}

// ListAll returns every car including inactive ones, for the admin panel.
func (r CarRepository) ListAll(ctx context.Context) ([]models.Car, error) {
	return r.list(ctx, `SELECT `+carColumns+` FROM cars ORDER BY name ASC`)
}

func (r CarRepository) list(ctx context.Context, query string) ([]models.Car, error) {
	rows, err := r.db().QueryContext(ctx, query)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load cars", Err: err}
	}
	defer rows.Close()

	list := []models.Car{}
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, domain.InternalError{Msg: "failed to scan car", Err: err}
		}
		list = append(list, car)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "failed to iterate cars", Err: err}
	}
	return list, nil
}

func (r CarRepository) GetByID(ctx context.Context, id string) (models.Car, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+carColumns+` FROM cars WHERE id = ? LIMIT 1`, id)
	car, err := scanCar(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Car{}, domain.NotFoundError{Resource: "car", Err: err}
	}
	if err != nil {
		return models.Car{}, domain.InternalError{Msg: "failed to load car", Err: err}
	}
	return car, nil
}

// Create inserts car, assigning an id and creation time when missing.
func (r CarRepository) Create(ctx context.Context, car models.Car) (models.Car, error) {
	if car.ID == "" {
		car.ID = uuid.NewString()
	}
	if car.CreatedAt.IsZero() {
		car.CreatedAt = time.Now().UTC()
	}
	_, err := r.db().ExecContext(ctx, `
		INSERT INTO cars (id, name, category, base_price, per_km, image_url, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, car.ID, car.Name, string(car.Category), car.BasePrice, car.PerKm, intdb.NullIfEmpty(car.ImageURL), car.Active, car.CreatedAt)
	if err != nil {
		return models.Car{}, mapWriteError("car", err)
	}
	return car, nil
}

// Update overwrites the editable columns and returns the stored row.
func (r CarRepository) Update(ctx context.Context, car models.Car) (models.Car, error) {
	res, err := r.db().ExecContext(ctx, `
		UPDATE cars
		SET name = ?, category = ?, base_price = ?, per_km = ?, image_url = ?, active = ?
		WHERE id = ?
	`, car.Name, string(car.Category), car.BasePrice, car.PerKm, intdb.NullIfEmpty(car.ImageURL), car.Active, car.ID)
	if err != nil {
		return models.Car{}, mapWriteError("car", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return models.Car{}, domain.NotFoundError{Resource: "car"}
	}
	return r.GetByID(ctx, car.ID)
}

func (r CarRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM cars WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Msg: "failed to delete car", Err: err}
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Resource: "car"}
	}
	return nil
}

func scanCar(s scanner) (models.Car, error) {
	var (
		c        models.Car
		category string
		image    sql.NullString
	)
	if err := s.Scan(&c.ID, &c.Name, &category, &c.BasePrice, &c.PerKm, &image, &c.Active, &c.CreatedAt); err != nil {
		return models.Car{}, err
	}
	c.Category = models.CarCategory(category)
	if image.Valid && image.String != "" {
		url := image.String
		c.ImageURL = &url
	}
	return c, nil
}
