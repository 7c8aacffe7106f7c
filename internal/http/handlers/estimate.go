package handlers

import (
	"net/http"

	"valleycars/internal/domain"

	"github.com/gin-gonic/gin"
)

// POST /api/price-estimate
func PostPriceEstimate(c *gin.Context) {
	var req domain.EstimateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := estimateService(c).Estimate(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
