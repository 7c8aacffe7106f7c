package handlers

import (
	"net/http"

	"valleycars/internal/domain"

	"github.com/gin-gonic/gin"
)

// POST /api/quotes/share
func PostQuoteShare(c *gin.Context) {
	var req domain.QuoteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	q, err := quoteService(c).Share(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// POST /api/quotes/pdf returns the quote inline as a PDF.
func PostQuotePDF(c *gin.Context) {
	var req domain.QuoteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	pdfBytes, filename, err := quoteService(c).PDF(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
