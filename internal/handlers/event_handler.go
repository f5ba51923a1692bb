package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wellnest/server/internal/helpers"
	"github.com/wellnest/server/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func CreateEvent(es *services.EventsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromContext(c)
		if !ok {
			return
		}

		var input services.CreateEventInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		event, err := es.CreateEvent(c.Request.Context(), input, identity)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, helpers.SuccessResponse(event, "Event created successfully"))
	}
}

func ListEvents(es *services.EventsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromContext(c)
		if !ok {
			return
		}

		events, err := es.ListEvents(c.Request.Context(), identity)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(events, ""))
	}
}

func GetEvent(es *services.EventsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromContext(c)
		if !ok {
			return
		}

		eventId, ok := eventIDParam(c)
		if !ok {
			return
		}

		event, err := es.GetEvent(c.Request.Context(), eventId, identity)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(event, ""))
	}
}

func UpdateEvent(es *services.EventsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromContext(c)
		if !ok {
			return
		}

		eventId, ok := eventIDParam(c)
		if !ok {
			return
		}

		var input services.UpdateEventInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		event, err := es.UpdateEvent(c.Request.Context(), eventId, input, identity)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(event, "Event updated successfully"))
	}
}

func ApproveEvent(es *services.EventsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromContext(c)
		if !ok {
			return
		}

		eventId, ok := eventIDParam(c)
		if !ok {
			return
		}

		var input struct {
			ConfirmedDate string `json:"confirmed_date"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		event, err := es.ApproveEvent(c.Request.Context(), eventId, input.ConfirmedDate, identity)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(event, "Event approved successfully"))
	}
}

func RejectEvent(es *services.EventsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromContext(c)
		if !ok {
			return
		}

		eventId, ok := eventIDParam(c)
		if !ok {
			return
		}

		var input struct {
			Remarks string `json:"remarks"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		event, err := es.RejectEvent(c.Request.Context(), eventId, input.Remarks, identity)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(event, "Event rejected successfully"))
	}
}

func ListEventsForEventItem(es *services.EventsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromContext(c)
		if !ok {
			return
		}

		itemId, ok := objectIDParam(c, "id")
		if !ok {
			return
		}

		events, err := es.ListEventsForEventItem(c.Request.Context(), itemId, identity)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(events, ""))
	}
}

func eventIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	return objectIDParam(c, "id")
}

func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	raw := strings.TrimSpace(c.Param(name))
	if raw == "" {
		c.JSON(http.StatusBadRequest, helpers.ErrorResponse(name+" is required"))
		return primitive.NilObjectID, false
	}

	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid "+name+" format"))
		return primitive.NilObjectID, false
	}

	return id, true
}
