package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/wellnest/server/internal/apperrors"
	"github.com/wellnest/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory stand-in for the Mongo repos. It mirrors the
// contract the services rely on: date_created desc ordering with insertion
// tie-break, nil results for missing ids, conditional status writes, and
// all-or-nothing approve.
type fakeStore struct {
	mu     sync.Mutex
	events map[primitive.ObjectID]*models.Event
	items  map[primitive.ObjectID]*models.EventItem
	order  map[primitive.ObjectID]int
	seq    int

	failApprove bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events: make(map[primitive.ObjectID]*models.Event),
		items:  make(map[primitive.ObjectID]*models.EventItem),
		order:  make(map[primitive.ObjectID]int),
	}
}

func copyEvent(e *models.Event) *models.Event {
	clone := *e
	clone.ProposedDates = append([]time.Time(nil), e.ProposedDates...)
	if e.ConfirmedDate != nil {
		d := *e.ConfirmedDate
		clone.ConfirmedDate = &d
	}
	return &clone
}

func (fs *fakeStore) addItem(vendorId primitive.ObjectID, name string) *models.EventItem {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	item := &models.EventItem{
		ID:          primitive.NewObjectID(),
		Name:        name,
		VendorID:    vendorId,
		DateCreated: time.Now().UTC(),
	}
	fs.items[item.ID] = item
	return item
}

func (fs *fakeStore) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := event.ValidateEvent(); err != nil {
		return nil, err
	}
	if err := event.BeforeCreate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	event.DateCreated = now
	event.LastModified = now

	fs.seq++
	fs.order[event.ID] = fs.seq
	fs.events[event.ID] = copyEvent(event)
	return copyEvent(event), nil
}

func (fs *fakeStore) FindEventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	event, ok := fs.events[id]
	if !ok {
		return nil, nil
	}
	return copyEvent(event), nil
}

func (fs *fakeStore) FindEventsByCompany(ctx context.Context, companyId primitive.ObjectID) ([]*models.Event, error) {
	return fs.findEvents(func(e *models.Event) bool { return e.CompanyID == companyId })
}

func (fs *fakeStore) FindEventsByVendor(ctx context.Context, vendorId primitive.ObjectID) ([]*models.Event, error) {
	return fs.findEvents(func(e *models.Event) bool { return e.VendorID == vendorId })
}

func (fs *fakeStore) FindEventsByEventItem(ctx context.Context, eventItemId primitive.ObjectID) ([]*models.Event, error) {
	return fs.findEvents(func(e *models.Event) bool { return e.EventItemID == eventItemId })
}

func (fs *fakeStore) findEvents(match func(*models.Event) bool) ([]*models.Event, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	var events []*models.Event
	for _, e := range fs.events {
		if match(e) {
			events = append(events, copyEvent(e))
		}
	}

	sort.Slice(events, func(i, j int) bool {
		if !events[i].DateCreated.Equal(events[j].DateCreated) {
			return events[i].DateCreated.After(events[j].DateCreated)
		}
		return fs.order[events[i].ID] > fs.order[events[j].ID]
	})

	return events, nil
}

func (fs *fakeStore) UpdateEvent(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Event, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	event, ok := fs.events[id]
	if !ok {
		return nil, nil
	}

	for key, value := range fields {
		switch key {
		case "proposed_dates":
			event.ProposedDates = append([]time.Time(nil), value.([]time.Time)...)
		case "location":
			event.Location = value.(models.Location)
		}
	}
	event.LastModified = time.Now().UTC()

	return copyEvent(event), nil
}

func (fs *fakeStore) CountApprovedForEventItem(ctx context.Context, eventItemId primitive.ObjectID) (int64, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	var count int64
	for _, e := range fs.events {
		if e.EventItemID == eventItemId && e.Status == models.EventStatusApproved {
			count++
		}
	}
	return count, nil
}

func (fs *fakeStore) HasApprovedEventForItem(ctx context.Context, eventItemId primitive.ObjectID) (bool, error) {
	count, err := fs.CountApprovedForEventItem(ctx, eventItemId)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (fs *fakeStore) BulkSetStatus(ctx context.Context, ids []primitive.ObjectID, status models.EventStatus, remarks string) (int64, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	var count int64
	now := time.Now().UTC()
	for _, id := range ids {
		if event, ok := fs.events[id]; ok {
			event.Status = status
			event.Remarks = remarks
			event.LastModified = now
			count++
		}
	}
	return count, nil
}

func (fs *fakeStore) ApproveEvent(ctx context.Context, id primitive.ObjectID, confirmedDate time.Time) (*models.Event, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.failApprove {
		return nil, &apperrors.TransactionError{Err: errors.New("transaction failed")}
	}

	event, ok := fs.events[id]
	if !ok || event.Status != models.EventStatusPending {
		return nil, nil
	}

	now := time.Now().UTC()
	event.Status = models.EventStatusApproved
	d := confirmedDate
	event.ConfirmedDate = &d
	event.LastModified = now

	for _, sibling := range fs.events {
		if sibling.ID != id && sibling.EventItemID == event.EventItemID && sibling.Status == models.EventStatusPending {
			sibling.Status = models.EventStatusRejected
			sibling.Remarks = models.AutoRejectRemarks
			sibling.LastModified = now
		}
	}

	return copyEvent(event), nil
}

func (fs *fakeStore) RejectEvent(ctx context.Context, id primitive.ObjectID, remarks string) (*models.Event, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	event, ok := fs.events[id]
	if !ok || event.Status != models.EventStatusPending {
		return nil, nil
	}

	event.Status = models.EventStatusRejected
	event.Remarks = remarks
	event.LastModified = time.Now().UTC()

	return copyEvent(event), nil
}

// item repo side

func (fs *fakeStore) CreateEventItem(ctx context.Context, item *models.EventItem) (*models.EventItem, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := item.BeforeCreate(); err != nil {
		return nil, err
	}
	item.DateCreated = time.Now().UTC()
	clone := *item
	fs.items[item.ID] = &clone
	return item, nil
}

func (fs *fakeStore) FindEventItemByID(ctx context.Context, id primitive.ObjectID) (*models.EventItem, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	item, ok := fs.items[id]
	if !ok {
		return nil, nil
	}
	clone := *item
	return &clone, nil
}

func (fs *fakeStore) ListEventItems(ctx context.Context) ([]*models.EventItem, error) {
	return fs.listItems(func(*models.EventItem) bool { return true })
}

func (fs *fakeStore) ListEventItemsByVendor(ctx context.Context, vendorId primitive.ObjectID) ([]*models.EventItem, error) {
	return fs.listItems(func(i *models.EventItem) bool { return i.VendorID == vendorId })
}

func (fs *fakeStore) listItems(match func(*models.EventItem) bool) ([]*models.EventItem, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	var items []*models.EventItem
	for _, i := range fs.items {
		if match(i) {
			clone := *i
			items = append(items, &clone)
		}
	}
	sort.Slice(items, func(a, b int) bool {
		return items[a].DateCreated.After(items[b].DateCreated)
	})
	return items, nil
}
