package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wellnest/server/internal/helpers"
	"github.com/wellnest/server/internal/models"
	"github.com/wellnest/server/internal/services"
)

func CreateEventItem(eis *services.EventItemsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromContext(c)
		if !ok {
			return
		}

		var input services.CreateEventItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		item, err := eis.CreateEventItem(c.Request.Context(), input, identity)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, helpers.SuccessResponse(item, "Event item created successfully"))
	}
}

// ListEventItems serves the full catalog to HR admins and a vendor admin's
// own items to the vendor.
func ListEventItems(eis *services.EventItemsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromContext(c)
		if !ok {
			return
		}

		if identity.Role == models.RoleVendorAdmin {
			items, err := eis.ListEventItemsByVendor(c.Request.Context(), identity.VendorID)
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, helpers.SuccessResponse(items, ""))
			return
		}

		items, err := eis.ListEventItems(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(items, ""))
	}
}
