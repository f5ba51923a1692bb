package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/wellnest/server/internal/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventsColName = "events"

	// ProposedDateCount is the fixed number of candidate dates per request.
	ProposedDateCount = 3

	// AutoRejectRemarks is stamped on sibling pending events when a competing
	// request for the same event item is approved.
	AutoRejectRemarks = "Automatically rejected: Another event for this event item has been approved"
)

type EventStatus string

const (
	EventStatusPending  EventStatus = "pending"
	EventStatusApproved EventStatus = "approved"
	EventStatusRejected EventStatus = "rejected"
)

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusPending, EventStatusApproved, EventStatusRejected:
		return true
	}
	return false
}

type Location struct {
	PostalCode string `bson:"postal_code" json:"postal_code" validate:"required"`
	StreetName string `bson:"street_name" json:"street_name" validate:"required"`
}

// Event is one company's request to book a vendor's event item on one of
// three proposed dates. VendorID is copied from the item at creation and is
// never settable by the requester. ConfirmedDate is meaningful only when
// approved, Remarks only when rejected.
type Event struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CompanyID     primitive.ObjectID `bson:"company_id" json:"company_id"`
	EventItemID   primitive.ObjectID `bson:"event_item_id" json:"event_item_id"`
	VendorID      primitive.ObjectID `bson:"vendor_id" json:"vendor_id"`
	ProposedDates []time.Time        `bson:"proposed_dates" json:"proposed_dates"`
	Location      Location           `bson:"location" json:"location"`
	Status        EventStatus        `bson:"status" json:"status"`
	ConfirmedDate *time.Time         `bson:"confirmed_date,omitempty" json:"confirmed_date,omitempty"`
	Remarks       string             `bson:"remarks,omitempty" json:"remarks,omitempty"`
	DateCreated   time.Time          `bson:"date_created" json:"date_created"`
	LastModified  time.Time          `bson:"last_modified" json:"last_modified"`
}

func (e *Event) BeforeCreate() error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	return nil
}

// ValidateEvent guards the persistence boundary: date count, location fields
// and status enum membership.
func (e Event) ValidateEvent() error {
	if len(e.ProposedDates) != ProposedDateCount {
		return apperrors.NewValidation("exactly %d proposed dates are required, got %d", ProposedDateCount, len(e.ProposedDates))
	}
	if strings.TrimSpace(e.Location.PostalCode) == "" {
		return apperrors.NewValidation("location postal code is required")
	}
	if strings.TrimSpace(e.Location.StreetName) == "" {
		return apperrors.NewValidation("location street name is required")
	}
	if !e.Status.IsValid() {
		return apperrors.NewValidation("invalid event status: %s", e.Status)
	}
	return nil
}

// TruncateToDay drops the time-of-day component in UTC. All calendar-day
// comparisons in the lifecycle go through this.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameCalendarDay compares two instants by calendar day, ignoring
// time-of-day, so a date-only input matches a stored date-with-midnight.
func SameCalendarDay(a, b time.Time) bool {
	return TruncateToDay(a).Equal(TruncateToDay(b))
}

// ParseEventDate accepts a date-only value or a full RFC 3339 timestamp and
// normalizes it to UTC midnight.
func ParseEventDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return TruncateToDay(t), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or RFC 3339)", raw)
	}
	return TruncateToDay(t), nil
}

// ParseProposedDates converts the three raw date strings, enforcing that each
// is a distinct calendar day strictly after now. The same policy applies at
// creation and at edit. Duplicate days are reported by index.
func ParseProposedDates(raw []string, now time.Time) ([]time.Time, error) {
	if len(raw) != ProposedDateCount {
		return nil, apperrors.NewValidation("exactly %d proposed dates are required, got %d", ProposedDateCount, len(raw))
	}

	today := TruncateToDay(now)
	dates := make([]time.Time, 0, ProposedDateCount)
	for i, s := range raw {
		d, err := ParseEventDate(s)
		if err != nil {
			return nil, apperrors.NewValidation("proposed date at index %d: %v", i, err)
		}
		if !d.After(today) {
			return nil, apperrors.NewValidation("proposed date at index %d must be in the future", i)
		}
		for j, prev := range dates {
			if prev.Equal(d) {
				return nil, apperrors.NewValidation("proposed dates at indices %d and %d fall on the same calendar day", j, i)
			}
		}
		dates = append(dates, d)
	}

	return dates, nil
}

// MatchProposedDate returns the stored proposed date whose calendar day
// equals the candidate, or false if none does.
func (e Event) MatchProposedDate(candidate time.Time) (time.Time, bool) {
	for _, d := range e.ProposedDates {
		if SameCalendarDay(d, candidate) {
			return d, true
		}
	}
	return time.Time{}, false
}
