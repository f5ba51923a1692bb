package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventItemsRepo interface {
	CreateEventItem(ctx context.Context, item *EventItem) (*EventItem, error)
	FindEventItemByID(ctx context.Context, id primitive.ObjectID) (*EventItem, error)
	ListEventItems(ctx context.Context) ([]*EventItem, error)
	ListEventItemsByVendor(ctx context.Context, vendorId primitive.ObjectID) ([]*EventItem, error)
}

func (mdb *MongodbRepo) CreateEventItem(ctx context.Context, item *EventItem) (*EventItem, error) {
	col, err := mdb.GetCollection(ctx, DbName, EventItemsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if err := item.BeforeCreate(); err != nil {
		return nil, err
	}
	item.DateCreated = time.Now().UTC()

	if _, err := col.InsertOne(ctx, item); err != nil {
		return nil, fmt.Errorf("error inserting event item: %v", err)
	}

	return item, nil
}

func (mdb *MongodbRepo) FindEventItemByID(ctx context.Context, id primitive.ObjectID) (*EventItem, error) {
	col, err := mdb.GetCollection(ctx, DbName, EventItemsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var item EventItem
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding event item: %v", err)
	}

	return &item, nil
}

func (mdb *MongodbRepo) ListEventItems(ctx context.Context) ([]*EventItem, error) {
	return mdb.listEventItems(ctx, bson.M{})
}

func (mdb *MongodbRepo) ListEventItemsByVendor(ctx context.Context, vendorId primitive.ObjectID) ([]*EventItem, error) {
	return mdb.listEventItems(ctx, bson.M{"vendor_id": vendorId})
}

func (mdb *MongodbRepo) listEventItems(ctx context.Context, filter bson.M) ([]*EventItem, error) {
	col, err := mdb.GetCollection(ctx, DbName, EventItemsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "date_created", Value: -1},
		{Key: "_id", Value: -1},
	})

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding event items: %v", err)
	}
	defer cursor.Close(ctx)

	var items []*EventItem
	for cursor.Next(ctx) {
		var item EventItem
		if err := cursor.Decode(&item); err != nil {
			return nil, fmt.Errorf("error decoding event item: %v", err)
		}
		items = append(items, &item)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return items, nil
}
