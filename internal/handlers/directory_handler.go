package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wellnest/server/internal/helpers"
	"github.com/wellnest/server/internal/models"
	"github.com/wellnest/server/internal/services"
)

func CreateCompany(ds *services.DirectoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var company models.Company
		if err := c.ShouldBindJSON(&company); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		created, err := ds.CreateCompany(c.Request.Context(), &company)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, helpers.SuccessResponse(created, "Company created successfully"))
	}
}

func GetCompany(ds *services.DirectoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}

		company, err := ds.GetCompany(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(company, ""))
	}
}

func CreateVendor(ds *services.DirectoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vendor models.Vendor
		if err := c.ShouldBindJSON(&vendor); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		created, err := ds.CreateVendor(c.Request.Context(), &vendor)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, helpers.SuccessResponse(created, "Vendor created successfully"))
	}
}

func GetVendor(ds *services.DirectoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}

		vendor, err := ds.GetVendor(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(vendor, ""))
	}
}

// LookupPostal serves canned postal data for the booking form.
func LookupPostal() gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")
		address, found := helpers.LookupPostal(code)
		if !found {
			c.JSON(http.StatusNotFound, helpers.ErrorResponse("postal code not found"))
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(address, ""))
	}
}
