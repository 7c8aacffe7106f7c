package api

import (
	"log"
	stdhttp "net/http"

	intconfig "valleycars/internal/config"
	"valleycars/internal/domain"
	h "valleycars/internal/http/handlers"
	"valleycars/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and routes. deps are installed for the handlers
// and deps.Auth also guards the admin group.
func NewRouter(env intconfig.Env, deps h.Deps) *gin.Engine {
	h.Configure(deps)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":      "route not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": middleware.GetRequestID(c),
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Public catalogue and pricing
		api.GET("/cars", h.GetCars)
		api.GET("/price-rules", h.GetPriceRules)
		api.POST("/price-estimate", h.PostPriceEstimate)

		// Enquiry sharing
		quotes := api.Group("/quotes")
		quotes.POST("/share", h.PostQuoteShare)
		quotes.POST("/pdf", h.PostQuotePDF)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)

		// Admin
		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(deps.Auth), middleware.RequireRoles(domain.RoleAdmin))

		cars := admin.Group("/cars")
		cars.GET("", h.AdminListCars)
		cars.POST("", h.AdminCreateCar)
		cars.PUT("", h.AdminUpdateCar)
		cars.DELETE("", h.AdminDeleteCar)
		cars.PUT("/:id", h.AdminUpdateCar)
		cars.DELETE("/:id", h.AdminDeleteCar)

		rules := admin.Group("/price-rules")
		rules.GET("", h.AdminListPriceRules)
		rules.POST("", h.AdminCreatePriceRule)
		rules.PUT("", h.AdminUpdatePriceRule)
		rules.DELETE("", h.AdminDeletePriceRule)
		rules.PUT("/:id", h.AdminUpdatePriceRule)
		rules.DELETE("/:id", h.AdminDeletePriceRule)
	}

	h.SetRouter(r)
	return r
}
