package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"valleycars/internal/domain/models"
	"valleycars/internal/utils"

	"github.com/redis/go-redis/v9"
)

const activeRulesKey = "valleycars:price_rules:active"

// RuleLoader reads the active rules from the database in evaluation order.
type RuleLoader func(ctx context.Context) ([]models.PriceRule, error)

// RuleCache keeps the ordered active rule list in Redis. A nil client turns it
// into a pass-through, and Redis failures fall back to the loader.
type RuleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRuleCache(client *redis.Client, ttl time.Duration) *RuleCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RuleCache{client: client, ttl: ttl}
}

func (c *RuleCache) enabled() bool {
	return c != nil && c.client != nil
}

// ActiveRules returns the cached list or loads and stores it.
func (c *RuleCache) ActiveRules(ctx context.Context, load RuleLoader) ([]models.PriceRule, error) {
	if !c.enabled() {
		return load(ctx)
	}

	raw, err := c.client.Get(ctx, activeRulesKey).Bytes()
	switch {
	case err == nil:
		var rules []models.PriceRule
		if jerr := json.Unmarshal(raw, &rules); jerr == nil {
			return rules, nil
		}
		utils.LogEvent("", "cache", "decode_rules", "corrupt cache entry, reloading")
	case !errors.Is(err, redis.Nil):
		utils.LogError("", "cache", "get_rules", err)
		return load(ctx)
	}

	rules, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if payload, jerr := json.Marshal(rules); jerr == nil {
		if serr := c.client.Set(ctx, activeRulesKey, payload, c.ttl).Err(); serr != nil {
			utils.LogError("", "cache", "set_rules", serr)
		}
	}
	return rules, nil
}

// Invalidate drops the cached list after any rule write.
func (c *RuleCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.client.Del(ctx, activeRulesKey).Err(); err != nil {
		utils.LogError("", "cache", "invalidate_rules", err)
	}
}
