package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"valleycars/internal/cache"
	intconfig "valleycars/internal/config"
	"valleycars/internal/domain"
	"valleycars/internal/domain/models"
	"valleycars/internal/repositories"
	"valleycars/internal/utils"
)

// PriceRuleService manages rules. Every successful write drops the cached active list.
type PriceRuleService struct {
	RuleRepo        repositories.PriceRuleRepository
	Rules           *cache.RuleCache
	StrictRuleSigns bool
	RequestID       string
	DB              *sql.DB
}

func (s PriceRuleService) repo() repositories.PriceRuleRepository {
	if s.RuleRepo.DB != nil {
		return s.RuleRepo
	}
	if s.DB != nil {
		return repositories.PriceRuleRepository{DB: s.DB}
	}
	return repositories.PriceRuleRepository{DB: intconfig.DB}
}

// ListActive returns active rules in evaluation order.
func (s PriceRuleService) ListActive(ctx context.Context) ([]models.PriceRule, error) {
	return s.Rules.ActiveRules(ctx, s.repo().ListActive)
}

func (s PriceRuleService) ListAll(ctx context.Context) ([]models.PriceRule, error) {
	return s.repo().ListAll(ctx)
}

func (s PriceRuleService) Create(ctx context.Context, p domain.PriceRulePayload) (models.PriceRule, error) {
	rule, err := domain.ParsePriceRulePayload(p, false, s.StrictRuleSigns)
	if err != nil {
		return models.PriceRule{}, err
	}
	created, err := s.repo().Create(ctx, rule)
	if err != nil {
		return models.PriceRule{}, err
	}
	s.Rules.Invalidate(ctx)
	utils.LogEvent(s.RequestID, "price_rules", "create",
		fmt.Sprintf("rule_id=%s type=%s scope=%s", created.ID, created.Type, created.Scope))
	return created, nil
}

func (s PriceRuleService) Update(ctx context.Context, id string, p domain.PriceRulePayload) (models.PriceRule, error) {
	if strings.TrimSpace(id) != "" {
		p.ID = id
	}
	rule, err := domain.ParsePriceRulePayload(p, true, s.StrictRuleSigns)
	if err != nil {
		return models.PriceRule{}, err
	}
	updated, err := s.repo().Update(ctx, rule)
	if err != nil {
		return models.PriceRule{}, err
	}
	s.Rules.Invalidate(ctx)
	utils.LogEvent(s.RequestID, "price_rules", "update", "rule_id="+updated.ID)
	return updated, nil
}

func (s PriceRuleService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ValidationError{Field: "id", Msg: "rule id is required"}
	}
	if err := s.repo().Delete(ctx, id); err != nil {
		return err
	}
	s.Rules.Invalidate(ctx)
	utils.LogEvent(s.RequestID, "price_rules", "delete", "rule_id="+id)
	return nil
}
