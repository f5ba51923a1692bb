package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellnest/server/internal/apperrors"
	"github.com/wellnest/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fixture struct {
	store  *fakeStore
	events *EventsService

	companyId      primitive.ObjectID
	otherCompanyId primitive.ObjectID
	vendorId       primitive.ObjectID
	otherVendorId  primitive.ObjectID

	hrAdmin       models.Identity
	otherHRAdmin  models.Identity
	vendorAdmin   models.Identity
	otherVendor   models.Identity
	item          *models.EventItem
	otherItem     *models.EventItem
	validLocation models.Location
}

func newFixture() *fixture {
	store := newFakeStore()
	f := &fixture{
		store:          store,
		events:         NewEventsService(store, store),
		companyId:      primitive.NewObjectID(),
		otherCompanyId: primitive.NewObjectID(),
		vendorId:       primitive.NewObjectID(),
		otherVendorId:  primitive.NewObjectID(),
		validLocation:  models.Location{PostalCode: "123456", StreetName: "Main St"},
	}
	f.hrAdmin = models.Identity{UserID: uuid.New(), Role: models.RoleHRAdmin, CompanyID: f.companyId}
	f.otherHRAdmin = models.Identity{UserID: uuid.New(), Role: models.RoleHRAdmin, CompanyID: f.otherCompanyId}
	f.vendorAdmin = models.Identity{UserID: uuid.New(), Role: models.RoleVendorAdmin, VendorID: f.vendorId}
	f.otherVendor = models.Identity{UserID: uuid.New(), Role: models.RoleVendorAdmin, VendorID: f.otherVendorId}
	f.item = store.addItem(f.vendorId, "Yoga Session")
	f.otherItem = store.addItem(f.otherVendorId, "Health Talk")
	return f
}

func futureDates(offsets ...int) []string {
	dates := make([]string, len(offsets))
	for i, d := range offsets {
		dates[i] = time.Now().AddDate(0, 0, d).Format("2006-01-02")
	}
	return dates
}

func (f *fixture) createPending(t *testing.T, identity models.Identity) *models.Event {
	t.Helper()
	event, err := f.events.CreateEvent(context.Background(), CreateEventInput{
		EventItemID:   f.item.ID.Hex(),
		ProposedDates: futureDates(7, 8, 9),
		Location:      f.validLocation,
	}, identity)
	require.NoError(t, err)
	return event
}

func TestCreateEvent(t *testing.T) {
	f := newFixture()

	event := f.createPending(t, f.hrAdmin)

	assert.Equal(t, models.EventStatusPending, event.Status)
	assert.Equal(t, f.item.VendorID, event.VendorID)
	assert.Equal(t, f.companyId, event.CompanyID)
	assert.Len(t, event.ProposedDates, 3)
	assert.Nil(t, event.ConfirmedDate)
	assert.Empty(t, event.Remarks)
	assert.False(t, event.DateCreated.IsZero())
	assert.Equal(t, event.DateCreated, event.LastModified)
}

func TestCreateEventValidation(t *testing.T) {
	f := newFixture()

	isValidation := func(t *testing.T, err error) {
		t.Helper()
		var e *apperrors.ValidationError
		require.ErrorAs(t, err, &e)
	}
	isNotFound := func(t *testing.T, err error) {
		t.Helper()
		var e *apperrors.NotFoundError
		require.ErrorAs(t, err, &e)
	}
	isForbidden := func(t *testing.T, err error) {
		t.Helper()
		var e *apperrors.ForbiddenError
		require.ErrorAs(t, err, &e)
	}

	tests := []struct {
		name     string
		input    CreateEventInput
		identity models.Identity
		wantErr  func(*testing.T, error)
	}{
		{
			name: "two dates only",
			input: CreateEventInput{
				EventItemID:   f.item.ID.Hex(),
				ProposedDates: futureDates(7, 8),
				Location:      f.validLocation,
			},
			identity: f.hrAdmin,
			wantErr:  isValidation,
		},
		{
			name: "duplicate calendar days",
			input: CreateEventInput{
				EventItemID:   f.item.ID.Hex(),
				ProposedDates: futureDates(7, 8, 7),
				Location:      f.validLocation,
			},
			identity: f.hrAdmin,
			wantErr:  isValidation,
		},
		{
			name: "past date",
			input: CreateEventInput{
				EventItemID:   f.item.ID.Hex(),
				ProposedDates: []string{"2020-01-15", futureDates(8)[0], futureDates(9)[0]},
				Location:      f.validLocation,
			},
			identity: f.hrAdmin,
			wantErr:  isValidation,
		},
		{
			name: "missing location street",
			input: CreateEventInput{
				EventItemID:   f.item.ID.Hex(),
				ProposedDates: futureDates(7, 8, 9),
				Location:      models.Location{PostalCode: "123456"},
			},
			identity: f.hrAdmin,
			wantErr:  isValidation,
		},
		{
			name: "unknown event item",
			input: CreateEventInput{
				EventItemID:   primitive.NewObjectID().Hex(),
				ProposedDates: futureDates(7, 8, 9),
				Location:      f.validLocation,
			},
			identity: f.hrAdmin,
			wantErr:  isNotFound,
		},
		{
			name: "vendor admin cannot create",
			input: CreateEventInput{
				EventItemID:   f.item.ID.Hex(),
				ProposedDates: futureDates(7, 8, 9),
				Location:      f.validLocation,
			},
			identity: f.vendorAdmin,
			wantErr:  isForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.events.CreateEvent(context.Background(), tt.input, tt.identity)
			require.Error(t, err)
			tt.wantErr(t, err)
		})
	}
}

func TestCreateEventDuplicateDayNamesIndices(t *testing.T) {
	f := newFixture()

	_, err := f.events.CreateEvent(context.Background(), CreateEventInput{
		EventItemID:   f.item.ID.Hex(),
		ProposedDates: futureDates(7, 8, 7),
		Location:      f.validLocation,
	}, f.hrAdmin)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "indices 0 and 2")
}

func TestCreateEventConflictsWithApprovedItem(t *testing.T) {
	f := newFixture()

	first := f.createPending(t, f.hrAdmin)
	_, err := f.events.ApproveEvent(context.Background(), first.ID, futureDates(8)[0], f.vendorAdmin)
	require.NoError(t, err)

	_, err = f.events.CreateEvent(context.Background(), CreateEventInput{
		EventItemID:   f.item.ID.Hex(),
		ProposedDates: futureDates(14, 15, 16),
		Location:      f.validLocation,
	}, f.hrAdmin)

	var conflictErr *apperrors.ConflictError
	require.ErrorAs(t, err, &conflictErr)
}

func TestApproveEvent(t *testing.T) {
	f := newFixture()
	event := f.createPending(t, f.hrAdmin)

	confirmed := futureDates(8)[0]
	approved, err := f.events.ApproveEvent(context.Background(), event.ID, confirmed, f.vendorAdmin)
	require.NoError(t, err)

	assert.Equal(t, models.EventStatusApproved, approved.Status)
	require.NotNil(t, approved.ConfirmedDate)
	want, err := models.ParseEventDate(confirmed)
	require.NoError(t, err)
	assert.True(t, models.SameCalendarDay(*approved.ConfirmedDate, want))
	assert.True(t, approved.LastModified.After(approved.DateCreated) || approved.LastModified.Equal(approved.DateCreated))
}

func TestApproveEventRejectsUnproposedDate(t *testing.T) {
	f := newFixture()
	event := f.createPending(t, f.hrAdmin)

	_, err := f.events.ApproveEvent(context.Background(), event.ID, futureDates(30)[0], f.vendorAdmin)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)

	stored, findErr := f.store.FindEventByID(context.Background(), event.ID)
	require.NoError(t, findErr)
	assert.Equal(t, models.EventStatusPending, stored.Status)
}

func TestApproveEventTwice(t *testing.T) {
	f := newFixture()
	event := f.createPending(t, f.hrAdmin)

	_, err := f.events.ApproveEvent(context.Background(), event.ID, futureDates(7)[0], f.vendorAdmin)
	require.NoError(t, err)

	_, err = f.events.ApproveEvent(context.Background(), event.ID, futureDates(7)[0], f.vendorAdmin)

	var stateErr *apperrors.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Contains(t, err.Error(), "only pending events can be approved")
}

func TestApproveEventForeignVendor(t *testing.T) {
	f := newFixture()
	event := f.createPending(t, f.hrAdmin)

	_, err := f.events.ApproveEvent(context.Background(), event.ID, futureDates(7)[0], f.otherVendor)

	var forbiddenErr *apperrors.ForbiddenError
	require.ErrorAs(t, err, &forbiddenErr)
}

func TestApproveEventNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.events.ApproveEvent(context.Background(), primitive.NewObjectID(), futureDates(7)[0], f.vendorAdmin)

	var notFoundErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestApproveAutoRejectsSiblings(t *testing.T) {
	f := newFixture()

	target := f.createPending(t, f.hrAdmin)
	siblings := []*models.Event{
		f.createPending(t, f.otherHRAdmin),
		f.createPending(t, f.hrAdmin),
	}

	_, err := f.events.ApproveEvent(context.Background(), target.ID, futureDates(9)[0], f.vendorAdmin)
	require.NoError(t, err)

	stored, err := f.store.FindEventByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusApproved, stored.Status)

	for _, sibling := range siblings {
		stored, err := f.store.FindEventByID(context.Background(), sibling.ID)
		require.NoError(t, err)
		assert.Equal(t, models.EventStatusRejected, stored.Status)
		assert.Equal(t, models.AutoRejectRemarks, stored.Remarks)
	}

	all, err := f.store.FindEventsByEventItem(context.Background(), f.item.ID)
	require.NoError(t, err)
	for _, e := range all {
		assert.NotEqual(t, models.EventStatusPending, e.Status)
	}
}

func TestApproveEventTransactionFailure(t *testing.T) {
	f := newFixture()
	event := f.createPending(t, f.hrAdmin)
	f.store.failApprove = true

	_, err := f.events.ApproveEvent(context.Background(), event.ID, futureDates(7)[0], f.vendorAdmin)

	var txErr *apperrors.TransactionError
	require.ErrorAs(t, err, &txErr)

	stored, findErr := f.store.FindEventByID(context.Background(), event.ID)
	require.NoError(t, findErr)
	assert.Equal(t, models.EventStatusPending, stored.Status)
}

func TestRejectEvent(t *testing.T) {
	f := newFixture()
	event := f.createPending(t, f.hrAdmin)

	rejected, err := f.events.RejectEvent(context.Background(), event.ID, "  dates unavailable  ", f.vendorAdmin)
	require.NoError(t, err)

	assert.Equal(t, models.EventStatusRejected, rejected.Status)
	assert.Equal(t, "dates unavailable", rejected.Remarks)
	assert.Nil(t, rejected.ConfirmedDate)
}

func TestRejectEventEmptyRemarks(t *testing.T) {
	f := newFixture()
	event := f.createPending(t, f.hrAdmin)

	for _, remarks := range []string{"", "   "} {
		_, err := f.events.RejectEvent(context.Background(), event.ID, remarks, f.vendorAdmin)

		var validationErr *apperrors.ValidationError
		require.ErrorAs(t, err, &validationErr)

		stored, findErr := f.store.FindEventByID(context.Background(), event.ID)
		require.NoError(t, findErr)
		assert.Equal(t, models.EventStatusPending, stored.Status)
	}
}

func TestRejectEventNotPending(t *testing.T) {
	f := newFixture()
	event := f.createPending(t, f.hrAdmin)

	_, err := f.events.RejectEvent(context.Background(), event.ID, "no capacity", f.vendorAdmin)
	require.NoError(t, err)

	_, err = f.events.RejectEvent(context.Background(), event.ID, "again", f.vendorAdmin)

	var stateErr *apperrors.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Contains(t, err.Error(), "only pending events can be rejected")
}

func TestUpdateEvent(t *testing.T) {
	f := newFixture()
	event := f.createPending(t, f.hrAdmin)

	newDates := futureDates(20, 21, 22)
	newLocation := models.Location{PostalCode: "238801", StreetName: "Orchard Road"}

	updated, err := f.events.UpdateEvent(context.Background(), event.ID, UpdateEventInput{
		ProposedDates: newDates,
		Location:      &newLocation,
	}, f.hrAdmin)
	require.NoError(t, err)

	assert.Equal(t, newLocation, updated.Location)
	require.Len(t, updated.ProposedDates, 3)
	want, err := models.ParseEventDate(newDates[0])
	require.NoError(t, err)
	assert.True(t, models.SameCalendarDay(updated.ProposedDates[0], want))
	assert.Equal(t, models.EventStatusPending, updated.Status)
}

func TestUpdateEventValidation(t *testing.T) {
	f := newFixture()
	event := f.createPending(t, f.hrAdmin)

	tests := []struct {
		name  string
		input UpdateEventInput
	}{
		{"no fields", UpdateEventInput{}},
		{"duplicate days", UpdateEventInput{ProposedDates: futureDates(20, 20, 22)}},
		{"missing postal code", UpdateEventInput{Location: &models.Location{StreetName: "Orchard Road"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.events.UpdateEvent(context.Background(), event.ID, tt.input, f.hrAdmin)

			var validationErr *apperrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestUpdateEventNotPending(t *testing.T) {
	f := newFixture()
	event := f.createPending(t, f.hrAdmin)

	_, err := f.events.RejectEvent(context.Background(), event.ID, "fully booked", f.vendorAdmin)
	require.NoError(t, err)

	before, err := f.store.FindEventByID(context.Background(), event.ID)
	require.NoError(t, err)

	_, err = f.events.UpdateEvent(context.Background(), event.ID, UpdateEventInput{
		ProposedDates: futureDates(20, 21, 22),
	}, f.hrAdmin)

	var stateErr *apperrors.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Contains(t, err.Error(), "rejected")

	after, err := f.store.FindEventByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdateEventForeignCompany(t *testing.T) {
	f := newFixture()
	event := f.createPending(t, f.hrAdmin)

	_, err := f.events.UpdateEvent(context.Background(), event.ID, UpdateEventInput{
		ProposedDates: futureDates(20, 21, 22),
	}, f.otherHRAdmin)

	var forbiddenErr *apperrors.ForbiddenError
	require.ErrorAs(t, err, &forbiddenErr)
}

func TestGetEventAccess(t *testing.T) {
	f := newFixture()
	event := f.createPending(t, f.hrAdmin)

	got, err := f.events.GetEvent(context.Background(), event.ID, f.hrAdmin)
	require.NoError(t, err)
	assert.Equal(t, event.ID, got.ID)

	got, err = f.events.GetEvent(context.Background(), event.ID, f.vendorAdmin)
	require.NoError(t, err)
	assert.Equal(t, event.ID, got.ID)

	_, err = f.events.GetEvent(context.Background(), event.ID, f.otherHRAdmin)
	var forbiddenErr *apperrors.ForbiddenError
	require.ErrorAs(t, err, &forbiddenErr)

	_, err = f.events.GetEvent(context.Background(), event.ID, f.otherVendor)
	require.ErrorAs(t, err, &forbiddenErr)
}

func TestListEventsTenantIsolation(t *testing.T) {
	f := newFixture()

	mine := f.createPending(t, f.hrAdmin)
	theirs := f.createPending(t, f.otherHRAdmin)

	events, err := f.events.ListEvents(context.Background(), f.hrAdmin)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, mine.ID, events[0].ID)
	for _, e := range events {
		assert.Equal(t, f.companyId, e.CompanyID)
	}

	events, err = f.events.ListEvents(context.Background(), f.otherHRAdmin)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, theirs.ID, events[0].ID)

	events, err = f.events.ListEvents(context.Background(), f.vendorAdmin)
	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, f.vendorId, e.VendorID)
	}

	events, err = f.events.ListEvents(context.Background(), f.otherVendor)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestListEventsMissingScope(t *testing.T) {
	f := newFixture()

	identity := models.Identity{UserID: uuid.New(), Role: models.RoleHRAdmin}
	_, err := f.events.ListEvents(context.Background(), identity)

	var forbiddenErr *apperrors.ForbiddenError
	require.ErrorAs(t, err, &forbiddenErr)
}

func TestListEventsOrdering(t *testing.T) {
	f := newFixture()

	first := f.createPending(t, f.hrAdmin)
	second := f.createPending(t, f.hrAdmin)
	third := f.createPending(t, f.hrAdmin)

	events, err := f.events.ListEvents(context.Background(), f.hrAdmin)
	require.NoError(t, err)
	require.Len(t, events, 3)

	// Most recent first; equal timestamps fall back to insertion order.
	assert.Equal(t, third.ID, events[0].ID)
	assert.Equal(t, second.ID, events[1].ID)
	assert.Equal(t, first.ID, events[2].ID)
}

func TestListEventsForEventItem(t *testing.T) {
	f := newFixture()
	event := f.createPending(t, f.hrAdmin)

	events, err := f.events.ListEventsForEventItem(context.Background(), f.item.ID, f.vendorAdmin)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.ID, events[0].ID)

	_, err = f.events.ListEventsForEventItem(context.Background(), f.item.ID, f.otherVendor)
	var forbiddenErr *apperrors.ForbiddenError
	require.ErrorAs(t, err, &forbiddenErr)

	_, err = f.events.ListEventsForEventItem(context.Background(), f.item.ID, f.hrAdmin)
	require.ErrorAs(t, err, &forbiddenErr)

	_, err = f.events.ListEventsForEventItem(context.Background(), primitive.NewObjectID(), f.vendorAdmin)
	var notFoundErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}
