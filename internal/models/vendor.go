package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const VendorsColName = "vendors"

// Vendor owns a catalog of event items and decides the fate of event requests
// raised against them.
type Vendor struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name" validate:"required"`
	ContactEmail string             `bson:"contact_email" json:"contact_email" validate:"required,email"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	ContactPhone string             `bson:"contact_phone,omitempty" json:"contact_phone,omitempty"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	DateCreated  time.Time          `bson:"date_created" json:"date_created"`
}

type VendorsRepo interface {
	CreateVendor(ctx context.Context, vendor *Vendor) (*Vendor, error)
	FindVendorByID(ctx context.Context, id primitive.ObjectID) (*Vendor, error)
}

func (v *Vendor) BeforeCreate() error {
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	return nil
}

func (mdb *MongodbRepo) CreateVendor(ctx context.Context, vendor *Vendor) (*Vendor, error) {
	col, err := mdb.GetCollection(ctx, DbName, VendorsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if err := vendor.BeforeCreate(); err != nil {
		return nil, err
	}
	vendor.DateCreated = time.Now().UTC()

	if _, err := col.InsertOne(ctx, vendor); err != nil {
		return nil, fmt.Errorf("error inserting vendor: %v", err)
	}

	return vendor, nil
}

func (mdb *MongodbRepo) FindVendorByID(ctx context.Context, id primitive.ObjectID) (*Vendor, error) {
	col, err := mdb.GetCollection(ctx, DbName, VendorsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var vendor Vendor
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&vendor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding vendor: %v", err)
	}

	return &vendor, nil
}
