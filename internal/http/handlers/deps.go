package handlers

import (
	"database/sql"
	"sync"
	"time"

	"valleycars/internal/cache"
	intconfig "valleycars/internal/config"
	"valleycars/internal/http/middleware"
	"valleycars/internal/pricing"
	"valleycars/internal/repositories"
	"valleycars/internal/services"

	"github.com/gin-gonic/gin"
)

// Deps are the shared collaborators handlers build their per-request services from.
type Deps struct {
	DB              *sql.DB
	Rules           *cache.RuleCache
	Area            pricing.ServiceArea
	StrictRuleSigns bool
	WhatsAppNumber  string
	Auth            services.AuthService
	Now             func() time.Time
}

var (
	depsMu  sync.RWMutex
	current Deps
)

// Configure installs the dependencies used by every handler.
func Configure(d Deps) {
	depsMu.Lock()
	defer depsMu.Unlock()
	current = d
}

func deps() Deps {
	depsMu.RLock()
	defer depsMu.RUnlock()
	d := current
	if d.DB == nil {
		d.DB = intconfig.DB
	}
	return d
}

func estimateService(c *gin.Context) services.EstimateService {
	d := deps()
	return services.EstimateService{
		CarRepo:   repositories.CarRepository{DB: d.DB},
		RuleRepo:  repositories.PriceRuleRepository{DB: d.DB},
		Rules:     d.Rules,
		Area:      d.Area,
		Now:       d.Now,
		RequestID: middleware.GetRequestID(c),
		DB:        d.DB,
	}
}

func carService(c *gin.Context) services.CarService {
	d := deps()
	return services.CarService{
		CarRepo:   repositories.CarRepository{DB: d.DB},
		RequestID: middleware.GetRequestID(c),
		DB:        d.DB,
	}
}

func priceRuleService(c *gin.Context) services.PriceRuleService {
	d := deps()
	return services.PriceRuleService{
		RuleRepo:        repositories.PriceRuleRepository{DB: d.DB},
		Rules:           d.Rules,
		StrictRuleSigns: d.StrictRuleSigns,
		RequestID:       middleware.GetRequestID(c),
		DB:              d.DB,
	}
}

func quoteService(c *gin.Context) services.QuoteService {
	d := deps()
	return services.QuoteService{
		Estimates:      estimateService(c),
		WhatsAppNumber: d.WhatsAppNumber,
		RequestID:      middleware.GetRequestID(c),
		Now:            d.Now,
	}
}

func authService(c *gin.Context) services.AuthService {
	d := deps()
	svc := d.Auth
	if svc.DB == nil && svc.AdminRepo.DB == nil {
		svc.DB = d.DB
	}
	svc.RequestID = middleware.GetRequestID(c)
	return svc
}
