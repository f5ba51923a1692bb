package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const EventItemsColName = "event_items"

// EventItem is a vendor's bookable offering. At most one event may ever be
// approved against an item; HasApprovedEvent is derived from the events
// collection at read time and never stored, so it cannot drift after
// auto-rejection side effects.
type EventItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	VendorID    primitive.ObjectID `bson:"vendor_id" json:"vendor_id"`
	DateCreated time.Time          `bson:"date_created" json:"date_created"`

	HasApprovedEvent bool `bson:"-" json:"has_approved_event"`
}

func (ei *EventItem) BeforeCreate() error {
	if ei.ID.IsZero() {
		ei.ID = primitive.NewObjectID()
	}
	return nil
}

func (ei *EventItem) Sanitize() {
	ei.Name = strings.TrimSpace(ei.Name)
	ei.Description = strings.TrimSpace(ei.Description)
}

func (ei EventItem) ValidateEventItem() error {
	if len(ei.Name) < 1 || len(ei.Name) > 200 {
		return fmt.Errorf("name must be between 1 and 200 characters")
	}
	if len(ei.Description) > 1000 {
		return fmt.Errorf("description must be at most 1000 characters")
	}
	if ei.VendorID.IsZero() {
		return fmt.Errorf("invalid vendor ID")
	}
	return nil
}
