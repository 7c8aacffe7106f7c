package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	intconfig "valleycars/internal/config"
	"valleycars/internal/domain"
	"valleycars/internal/domain/models"
	"valleycars/internal/pricing"

	"github.com/google/uuid"
)

const ruleColumns = `id, rule_name, type, scope, value, active, created_at`

// ruleOrder is the evaluation order the pricing engine relies on.
const ruleOrder = ` ORDER BY created_at ASC, id ASC`

type PriceRuleRepository struct {
	DB *sql.DB
}

func (r PriceRuleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListActive returns active rules in evaluation order.
func (r PriceRuleRepository) ListActive(ctx context.Context) ([]models.PriceRule, error) {
	return r.list(ctx, `SELECT `+ruleColumns+` FROM price_rules WHERE active = 1`+ruleOrder)
}

func (r PriceRuleRepository) ListAll(ctx context.Context) ([]models.PriceRule, error) {
	return r.list(ctx, `SELECT `+ruleColumns+` FROM price_rules`+ruleOrder)
}

func (r PriceRuleRepository) list(ctx context.Context, query string) ([]models.PriceRule, error) {
	rows, err := r.db().QueryContext(ctx, query)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load price rules", Err: err}
	}
	defer rows.Close()

	list := []models.PriceRule{}
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, domain.InternalError{Msg: "failed to scan price rule", Err: err}
		}
		list = append(list, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "failed to iterate price rules", Err: err}
	}
	return list, nil
}

func (r PriceRuleRepository) GetByID(ctx context.Context, id string) (models.PriceRule, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+ruleColumns+` FROM price_rules WHERE id = ? LIMIT 1`, id)
	rule, err := scanRule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PriceRule{}, domain.NotFoundError{Resource: "price rule", Err: err}
	}
	if err != nil {
		return models.PriceRule{}, domain.InternalError{Msg: "failed to load price rule", Err: err}
	}
	return rule, nil
}

// Create inserts rule. created_at fixes its position in evaluation order.
func (r PriceRuleRepository) Create(ctx context.Context, rule models.PriceRule) (models.PriceRule, error) {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = time.Now().UTC()
	}
	_, err := r.db().ExecContext(ctx, `
		INSERT INTO price_rules (id, rule_name, type, scope, value, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rule.ID, rule.RuleName, string(rule.Type), string(rule.Scope), rule.Value, rule.Active, rule.CreatedAt)
	if err != nil {
		return models.PriceRule{}, mapWriteError("price rule", err)
	}
	return rule, nil
}

// Update leaves created_at alone so editing a rule never moves it in evaluation order.
func (r PriceRuleRepository) Update(ctx context.Context, rule models.PriceRule) (models.PriceRule, error) {
	res, err := r.db().ExecContext(ctx, `
		UPDATE price_rules
		SET rule_name = ?, type = ?, scope = ?, value = ?, active = ?
		WHERE id = ?
	`, rule.RuleName, string(rule.Type), string(rule.Scope), rule.Value, rule.Active, rule.ID)
	if err != nil {
		return models.PriceRule{}, mapWriteError("price rule", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return models.PriceRule{}, domain.NotFoundError{Resource: "price rule"}
	}
	return r.GetByID(ctx, rule.ID)
}

func (r PriceRuleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM price_rules WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Msg: "failed to delete price rule", Err: err}
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Resource: "price rule"}
	}
	return nil
}

func scanRule(s scanner) (models.PriceRule, error) {
	var (
		rule     models.PriceRule
		ruleType string
		scope    string
	)
	if err := s.Scan(&rule.ID, &rule.RuleName, &ruleType, &scope, &rule.Value, &rule.Active, &rule.CreatedAt); err != nil {
		return models.PriceRule{}, err
	}
	rule.Type = pricing.RuleType(ruleType)
	rule.Scope = pricing.Scope(scope)
	return rule, nil
}
