package services

import (
	"context"
	"strings"
	"time"

	"github.com/wellnest/server/internal/apperrors"
	"github.com/wellnest/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventsService is the event lifecycle engine: creation, approval with
// sibling auto-rejection, rejection, edit-while-pending, and role-scoped
// reads. It is a pure function of its injected repositories.
type EventsService struct {
	eventsRepo models.EventsRepo
	itemsRepo  models.EventItemsRepo
}

func NewEventsService(eventsRepo models.EventsRepo, itemsRepo models.EventItemsRepo) *EventsService {
	return &EventsService{
		eventsRepo: eventsRepo,
		itemsRepo:  itemsRepo,
	}
}

type CreateEventInput struct {
	EventItemID   string          `json:"event_item_id" validate:"required"`
	ProposedDates []string        `json:"proposed_dates" validate:"required"`
	Location      models.Location `json:"location"`
}

type UpdateEventInput struct {
	ProposedDates []string         `json:"proposed_dates,omitempty"`
	Location      *models.Location `json:"location,omitempty"`
}

// CreateEvent books a new pending request against a catalog item on behalf of
// the HR admin's company. The vendor is copied from the item, never taken
// from the caller.
func (es *EventsService) CreateEvent(ctx context.Context, input CreateEventInput, identity models.Identity) (*models.Event, error) {
	if !identity.IsHRAdmin() {
		return nil, &apperrors.ForbiddenError{Message: "only HR admins can create events"}
	}
	if identity.CompanyID.IsZero() {
		return nil, &apperrors.ForbiddenError{Message: "identity has no company scope"}
	}

	if err := models.Validate.Struct(input); err != nil {
		return nil, apperrors.NewValidation("invalid event data: %v", err)
	}

	itemID, err := primitive.ObjectIDFromHex(input.EventItemID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid event item ID format")
	}

	item, err := es.itemsRepo.FindEventItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &apperrors.NotFoundError{Resource: "event item"}
	}

	// A catalog item carries at most one ever-approved booking.
	hasApproved, err := es.eventsRepo.HasApprovedEventForItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if hasApproved {
		return nil, &apperrors.ConflictError{Message: "event item already has an approved event"}
	}

	dates, err := models.ParseProposedDates(input.ProposedDates, time.Now())
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		CompanyID:     identity.CompanyID,
		EventItemID:   item.ID,
		VendorID:      item.VendorID,
		ProposedDates: dates,
		Location:      input.Location,
		Status:        models.EventStatusPending,
	}

	return es.eventsRepo.CreateEvent(ctx, event)
}

// ApproveEvent confirms one of the proposed dates and, in the same
// transaction, rejects every other pending request on the same event item.
func (es *EventsService) ApproveEvent(ctx context.Context, eventId primitive.ObjectID, confirmedDate string, identity models.Identity) (*models.Event, error) {
	event, err := es.loadForVendorAction(ctx, eventId, identity, "approved")
	if err != nil {
		return nil, err
	}

	candidate, err := models.ParseEventDate(confirmedDate)
	if err != nil {
		return nil, apperrors.NewValidation("invalid confirmed date: %v", err)
	}

	matched, ok := event.MatchProposedDate(candidate)
	if !ok {
		return nil, apperrors.NewValidation("confirmed date must match one of the proposed dates")
	}

	approved, err := es.eventsRepo.ApproveEvent(ctx, eventId, matched)
	if err != nil {
		return nil, err
	}
	if approved == nil {
		// Lost a race: another writer left pending between our check and the
		// conditional update.
		return es.invalidStateAfterRace(ctx, eventId, "approved")
	}

	return approved, nil
}

// RejectEvent declines a pending request with a mandatory remark.
func (es *EventsService) RejectEvent(ctx context.Context, eventId primitive.ObjectID, remarks string, identity models.Identity) (*models.Event, error) {
	_, err := es.loadForVendorAction(ctx, eventId, identity, "rejected")
	if err != nil {
		return nil, err
	}

	remarks = strings.TrimSpace(remarks)
	if remarks == "" {
		return nil, apperrors.NewValidation("remarks are required when rejecting an event")
	}

	rejected, err := es.eventsRepo.RejectEvent(ctx, eventId, remarks)
	if err != nil {
		return nil, err
	}
	if rejected == nil {
		return es.invalidStateAfterRace(ctx, eventId, "rejected")
	}

	return rejected, nil
}

// UpdateEvent edits the proposed dates and/or location of a still-pending
// event belonging to the HR admin's company. The event item is immutable
// after creation.
func (es *EventsService) UpdateEvent(ctx context.Context, eventId primitive.ObjectID, input UpdateEventInput, identity models.Identity) (*models.Event, error) {
	if !identity.IsHRAdmin() {
		return nil, &apperrors.ForbiddenError{Message: "only HR admins can update events"}
	}

	event, err := es.eventsRepo.FindEventByID(ctx, eventId)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, &apperrors.NotFoundError{Resource: "event"}
	}
	if err := ValidateAccess(event, identity); err != nil {
		return nil, err
	}
	if event.Status != models.EventStatusPending {
		return nil, &apperrors.InvalidStateError{Action: "updated", Current: string(event.Status)}
	}

	fields := map[string]interface{}{}

	if input.ProposedDates != nil {
		dates, err := models.ParseProposedDates(input.ProposedDates, time.Now())
		if err != nil {
			return nil, err
		}
		fields["proposed_dates"] = dates
	}

	if input.Location != nil {
		if err := models.Validate.Struct(input.Location); err != nil {
			return nil, apperrors.NewValidation("invalid location: %v", err)
		}
		fields["location"] = *input.Location
	}

	if len(fields) == 0 {
		return nil, apperrors.NewValidation("no updatable fields provided")
	}

	updated, err := es.eventsRepo.UpdateEvent(ctx, eventId, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &apperrors.NotFoundError{Resource: "event"}
	}

	return updated, nil
}

// GetEvent is the access-gated single fetch. Denial is surfaced as forbidden
// without confirming existence to foreign tenants.
func (es *EventsService) GetEvent(ctx context.Context, eventId primitive.ObjectID, identity models.Identity) (*models.Event, error) {
	event, err := es.eventsRepo.FindEventByID(ctx, eventId)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, &apperrors.NotFoundError{Resource: "event"}
	}
	if err := ValidateAccess(event, identity); err != nil {
		return nil, err
	}
	return event, nil
}

// ListEvents returns the caller's own tenant's events, most recent first.
// Isolation is structural: the query is scoped to the identity's own id.
func (es *EventsService) ListEvents(ctx context.Context, identity models.Identity) ([]*models.Event, error) {
	switch identity.Role {
	case models.RoleHRAdmin:
		if identity.CompanyID.IsZero() {
			return nil, &apperrors.ForbiddenError{Message: "identity has no company scope"}
		}
		return es.eventsRepo.FindEventsByCompany(ctx, identity.CompanyID)
	case models.RoleVendorAdmin:
		if identity.VendorID.IsZero() {
			return nil, &apperrors.ForbiddenError{Message: "identity has no vendor scope"}
		}
		return es.eventsRepo.FindEventsByVendor(ctx, identity.VendorID)
	default:
		return nil, &apperrors.ForbiddenError{Message: "unknown role"}
	}
}

// ListEventsForEventItem returns all events raised against one catalog item,
// for the vendor admin that owns the item.
func (es *EventsService) ListEventsForEventItem(ctx context.Context, eventItemId primitive.ObjectID, identity models.Identity) ([]*models.Event, error) {
	if !identity.IsVendorAdmin() {
		return nil, &apperrors.ForbiddenError{Message: "only vendor admins can list events for an event item"}
	}

	item, err := es.itemsRepo.FindEventItemByID(ctx, eventItemId)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &apperrors.NotFoundError{Resource: "event item"}
	}
	if identity.VendorID.IsZero() || item.VendorID != identity.VendorID {
		return nil, &apperrors.ForbiddenError{Message: "event item belongs to a different vendor"}
	}

	return es.eventsRepo.FindEventsByEventItem(ctx, eventItemId)
}

// loadForVendorAction shares the approve/reject preamble: load, vendor scope
// check, pending check.
func (es *EventsService) loadForVendorAction(ctx context.Context, eventId primitive.ObjectID, identity models.Identity, action string) (*models.Event, error) {
	if !identity.IsVendorAdmin() {
		return nil, &apperrors.ForbiddenError{Message: "only vendor admins can approve or reject events"}
	}

	event, err := es.eventsRepo.FindEventByID(ctx, eventId)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, &apperrors.NotFoundError{Resource: "event"}
	}
	if err := ValidateAccess(event, identity); err != nil {
		return nil, err
	}
	if event.Status != models.EventStatusPending {
		return nil, &apperrors.InvalidStateError{Action: action, Current: string(event.Status)}
	}

	return event, nil
}

// invalidStateAfterRace re-reads the event after a conditional write matched
// nothing, so the error names the status that actually won.
func (es *EventsService) invalidStateAfterRace(ctx context.Context, eventId primitive.ObjectID, action string) (*models.Event, error) {
	current, err := es.eventsRepo.FindEventByID(ctx, eventId)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, &apperrors.NotFoundError{Resource: "event"}
	}
	return nil, &apperrors.InvalidStateError{Action: action, Current: string(current.Status)}
}
