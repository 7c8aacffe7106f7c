package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intconfig "valleycars/internal/config"
	"valleycars/internal/domain"
	"valleycars/internal/domain/models"

	"github.com/google/uuid"
)

type AdminRepository struct {
	DB *sql.DB
}

func (r AdminRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByEmail looks up an admin by case-insensitive email.
func (r AdminRepository) GetByEmail(ctx context.Context, email string) (models.AdminUser, error) {
	var u models.AdminUser
	err := r.db().QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, active
		FROM admin_users
		WHERE email = ?
		LIMIT 1
	`, strings.ToLower(strings.TrimSpace(email))).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AdminUser{}, domain.NotFoundError{Resource: "admin user", Err: err}
	}
	if err != nil {
		return models.AdminUser{}, domain.InternalError{Msg: "failed to load admin user", Err: err}
	}
	return u, nil
}

func (r AdminRepository) Create(ctx context.Context, u models.AdminUser) (models.AdminUser, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	_, err := r.db().ExecContext(ctx, `
		INSERT INTO admin_users (id, name, email, password_hash, role, active)
		VALUES (?, ?, ?, ?, ?, ?)
	`, u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Active)
	if err != nil {
		return models.AdminUser{}, mapWriteError("admin user", err)
	}
	return u, nil
}
