package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wellnest/server/internal/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventsRepo interface {
	CreateEvent(ctx context.Context, event *Event) (*Event, error)
	FindEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error)
	FindEventsByCompany(ctx context.Context, companyId primitive.ObjectID) ([]*Event, error)
	FindEventsByVendor(ctx context.Context, vendorId primitive.ObjectID) ([]*Event, error)
	FindEventsByEventItem(ctx context.Context, eventItemId primitive.ObjectID) ([]*Event, error)
	UpdateEvent(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*Event, error)
	CountApprovedForEventItem(ctx context.Context, eventItemId primitive.ObjectID) (int64, error)
	HasApprovedEventForItem(ctx context.Context, eventItemId primitive.ObjectID) (bool, error)
	BulkSetStatus(ctx context.Context, ids []primitive.ObjectID, status EventStatus, remarks string) (int64, error)
	ApproveEvent(ctx context.Context, id primitive.ObjectID, confirmedDate time.Time) (*Event, error)
	RejectEvent(ctx context.Context, id primitive.ObjectID, remarks string) (*Event, error)
}

// errNotPending signals a conditional status write that matched no pending
// document. It never leaves this file; callers see a nil event instead.
var errNotPending = errors.New("no pending event matched")

func (mdb *MongodbRepo) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	col, err := mdb.GetCollection(ctx, DbName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if err := event.ValidateEvent(); err != nil {
		return nil, err
	}
	if err := event.BeforeCreate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	event.DateCreated = now
	event.LastModified = now

	if _, err := col.InsertOne(ctx, event); err != nil {
		return nil, fmt.Errorf("error inserting event: %v", err)
	}

	return event, nil
}

func (mdb *MongodbRepo) FindEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error) {
	col, err := mdb.GetCollection(ctx, DbName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var event Event
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&event); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding event: %v", err)
	}

	return &event, nil
}

func (mdb *MongodbRepo) FindEventsByCompany(ctx context.Context, companyId primitive.ObjectID) ([]*Event, error) {
	return mdb.findEvents(ctx, bson.M{"company_id": companyId})
}

func (mdb *MongodbRepo) FindEventsByVendor(ctx context.Context, vendorId primitive.ObjectID) ([]*Event, error) {
	return mdb.findEvents(ctx, bson.M{"vendor_id": vendorId})
}

func (mdb *MongodbRepo) FindEventsByEventItem(ctx context.Context, eventItemId primitive.ObjectID) ([]*Event, error) {
	return mdb.findEvents(ctx, bson.M{"event_item_id": eventItemId})
}

// findEvents returns most recent first; equal timestamps tie-break by id so
// the order stays deterministic.
func (mdb *MongodbRepo) findEvents(ctx context.Context, filter bson.M) ([]*Event, error) {
	col, err := mdb.GetCollection(ctx, DbName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "date_created", Value: -1},
		{Key: "_id", Value: -1},
	})

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding events: %v", err)
	}
	defer cursor.Close(ctx)

	var events []*Event
	for cursor.Next(ctx) {
		var event Event
		if err := cursor.Decode(&event); err != nil {
			return nil, fmt.Errorf("error decoding event: %v", err)
		}
		events = append(events, &event)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return events, nil
}

// UpdateEvent applies a partial merge and stamps last_modified. Returns nil
// when the id does not exist; the caller translates that to not-found.
func (mdb *MongodbRepo) UpdateEvent(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*Event, error) {
	col, err := mdb.GetCollection(ctx, DbName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	set := bson.M{"last_modified": time.Now().UTC()}
	for key, value := range fields {
		set[key] = value
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Event
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating event: %v", err)
	}

	return &updated, nil
}

func (mdb *MongodbRepo) CountApprovedForEventItem(ctx context.Context, eventItemId primitive.ObjectID) (int64, error) {
	col, err := mdb.GetCollection(ctx, DbName, EventsColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %v", err)
	}

	count, err := col.CountDocuments(ctx, bson.M{
		"event_item_id": eventItemId,
		"status":        EventStatusApproved,
	})
	if err != nil {
		return 0, fmt.Errorf("error counting approved events: %v", err)
	}

	return count, nil
}

func (mdb *MongodbRepo) HasApprovedEventForItem(ctx context.Context, eventItemId primitive.ObjectID) (bool, error) {
	count, err := mdb.CountApprovedForEventItem(ctx, eventItemId)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (mdb *MongodbRepo) BulkSetStatus(ctx context.Context, ids []primitive.ObjectID, status EventStatus, remarks string) (int64, error) {
	col, err := mdb.GetCollection(ctx, DbName, EventsColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %v", err)
	}
	return bulkSetStatus(ctx, col, bson.M{"_id": bson.M{"$in": ids}}, status, remarks)
}

func bulkSetStatus(ctx context.Context, col *mongo.Collection, filter bson.M, status EventStatus, remarks string) (int64, error) {
	update := bson.M{"$set": bson.M{
		"status":        status,
		"remarks":       remarks,
		"last_modified": time.Now().UTC(),
	}}

	res, err := col.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("error bulk updating events: %v", err)
	}

	return res.ModifiedCount, nil
}

// ApproveEvent flips the target event to approved and rejects every other
// pending event on the same event item, in one multi-document transaction.
// The status flip is a conditional write keyed on status=pending, so two
// racing approvals cannot both commit. Returns nil when no pending document
// matched the id.
func (mdb *MongodbRepo) ApproveEvent(ctx context.Context, id primitive.ObjectID, confirmedDate time.Time) (*Event, error) {
	col, err := mdb.GetCollection(ctx, DbName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	session, err := mdb.mongodbClient.StartSession()
	if err != nil {
		return nil, &apperrors.TransactionError{Err: err}
	}
	defer session.EndSession(ctx)

	var approved *Event
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		now := time.Now().UTC()

		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		filter := bson.M{"_id": id, "status": EventStatusPending}
		update := bson.M{"$set": bson.M{
			"status":         EventStatusApproved,
			"confirmed_date": confirmedDate,
			"last_modified":  now,
		}}

		var event Event
		if err := col.FindOneAndUpdate(sc, filter, update, opts).Decode(&event); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, errNotPending
			}
			return nil, err
		}

		siblings := bson.M{
			"event_item_id": event.EventItemID,
			"status":        EventStatusPending,
			"_id":           bson.M{"$ne": id},
		}
		if _, err := bulkSetStatus(sc, col, siblings, EventStatusRejected, AutoRejectRemarks); err != nil {
			return nil, err
		}

		approved = &event
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, errNotPending) {
			return nil, nil
		}
		return nil, &apperrors.TransactionError{Err: err}
	}

	return approved, nil
}

// RejectEvent is a single conditional write; it needs no transaction but
// shares the status=pending guard with ApproveEvent. Returns nil when no
// pending document matched the id.
func (mdb *MongodbRepo) RejectEvent(ctx context.Context, id primitive.ObjectID, remarks string) (*Event, error) {
	col, err := mdb.GetCollection(ctx, DbName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	filter := bson.M{"_id": id, "status": EventStatusPending}
	update := bson.M{"$set": bson.M{
		"status":        EventStatusRejected,
		"remarks":       remarks,
		"last_modified": time.Now().UTC(),
	}}

	var event Event
	if err := col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&event); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error rejecting event: %v", err)
	}

	return &event, nil
}
