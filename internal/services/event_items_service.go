package services

import (
	"context"

	"github.com/wellnest/server/internal/apperrors"
	"github.com/wellnest/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventItemsService manages the vendor-owned catalog of bookable offerings.
type EventItemsService struct {
	itemsRepo  models.EventItemsRepo
	eventsRepo models.EventsRepo
}

func NewEventItemsService(itemsRepo models.EventItemsRepo, eventsRepo models.EventsRepo) *EventItemsService {
	return &EventItemsService{
		itemsRepo:  itemsRepo,
		eventsRepo: eventsRepo,
	}
}

type CreateEventItemInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

func (eis *EventItemsService) CreateEventItem(ctx context.Context, input CreateEventItemInput, identity models.Identity) (*models.EventItem, error) {
	if !identity.IsVendorAdmin() {
		return nil, &apperrors.ForbiddenError{Message: "only vendor admins can create event items"}
	}
	if identity.VendorID.IsZero() {
		return nil, &apperrors.ForbiddenError{Message: "identity has no vendor scope"}
	}

	item := &models.EventItem{
		Name:        input.Name,
		Description: input.Description,
		VendorID:    identity.VendorID,
	}
	item.Sanitize()
	if err := item.ValidateEventItem(); err != nil {
		return nil, apperrors.NewValidation("%v", err)
	}

	return eis.itemsRepo.CreateEventItem(ctx, item)
}

// ListEventItems returns the whole catalog with the derived approved flag
// filled in per item.
func (eis *EventItemsService) ListEventItems(ctx context.Context) ([]*models.EventItem, error) {
	items, err := eis.itemsRepo.ListEventItems(ctx)
	if err != nil {
		return nil, err
	}
	return eis.fillApprovedFlags(ctx, items)
}

func (eis *EventItemsService) ListEventItemsByVendor(ctx context.Context, vendorId primitive.ObjectID) ([]*models.EventItem, error) {
	items, err := eis.itemsRepo.ListEventItemsByVendor(ctx, vendorId)
	if err != nil {
		return nil, err
	}
	return eis.fillApprovedFlags(ctx, items)
}

// ValidateOwnership reports whether the item exists and belongs to the
// vendor. Gates the per-item bookings view.
func (eis *EventItemsService) ValidateOwnership(ctx context.Context, eventItemId, vendorId primitive.ObjectID) (bool, error) {
	item, err := eis.itemsRepo.FindEventItemByID(ctx, eventItemId)
	if err != nil {
		return false, err
	}
	if item == nil {
		return false, nil
	}
	return item.VendorID == vendorId, nil
}

func (eis *EventItemsService) fillApprovedFlags(ctx context.Context, items []*models.EventItem) ([]*models.EventItem, error) {
	for _, item := range items {
		hasApproved, err := eis.eventsRepo.HasApprovedEventForItem(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		item.HasApprovedEvent = hasApproved
	}
	return items, nil
}
