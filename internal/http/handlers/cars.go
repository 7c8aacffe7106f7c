package handlers

import (
	"net/http"

	"valleycars/internal/domain"
	"valleycars/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/cars
func GetCars(c *gin.Context) {
	cars, err := carService(c).ListPublic(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cars": cars})
}

// GET /api/admin/cars
func AdminListCars(c *gin.Context) {
	cars, err := carService(c).ListAll(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cars": cars})
}

// POST /api/admin/cars
func AdminCreateCar(c *gin.Context) {
	var p domain.CarPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	car, err := carService(c).Create(c.Request.Context(), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, car)
}

// PUT /api/admin/cars/:id, or PUT /api/admin/cars with the id in the body.
func AdminUpdateCar(c *gin.Context) {
	var p domain.CarPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	car, err := carService(c).Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

// DELETE /api/admin/cars/:id, or DELETE /api/admin/cars with {"id": "..."}.
func AdminDeleteCar(c *gin.Context) {
	id := c.Param("id")
	if utils.TrimOrEmpty(id) == "" {
		var p domain.IDPayload
		if !BindJSONOrError(c, &p) {
			return
		}
		id = p.ID
	}
	if err := carService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
