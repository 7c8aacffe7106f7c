package handlers

import (
	"net/http"

	"valleycars/internal/domain"
	"valleycars/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/price-rules returns active rules in evaluation order.
func GetPriceRules(c *gin.Context) {
	rules, err := priceRuleService(c).ListActive(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// GET /api/admin/price-rules
func AdminListPriceRules(c *gin.Context) {
	rules, err := priceRuleService(c).ListAll(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// POST /api/admin/price-rules
func AdminCreatePriceRule(c *gin.Context) {
	var p domain.PriceRulePayload
	if !BindJSONOrError(c, &p) {
		return
	}
	rule, err := priceRuleService(c).Create(c.Request.Context(), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rule)
}

// PUT /api/admin/price-rules/:id
func AdminUpdatePriceRule(c *gin.Context) {
	var p domain.PriceRulePayload
	if !BindJSONOrError(c, &p) {
		return
	}
	rule, err := priceRuleService(c).Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rule)
}

// DELETE /api/admin/price-rules/:id
func AdminDeletePriceRule(c *gin.Context) {
	id := c.Param("id")
	if utils.TrimOrEmpty(id) == "" {
		var p domain.IDPayload
		if !BindJSONOrError(c, &p) {
			return
		}
		id = p.ID
	}
	if err := priceRuleService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
