package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const CompaniesColName = "companies"

// Company is a client tenant. Created by onboarding and immutable thereafter.
type Company struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	DateCreated time.Time          `bson:"date_created" json:"date_created"`
}

type CompaniesRepo interface {
	CreateCompany(ctx context.Context, company *Company) (*Company, error)
	FindCompanyByID(ctx context.Context, id primitive.ObjectID) (*Company, error)
}

func (c *Company) BeforeCreate() error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	return nil
}

func (mdb *MongodbRepo) CreateCompany(ctx context.Context, company *Company) (*Company, error) {
	col, err := mdb.GetCollection(ctx, DbName, CompaniesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if err := company.BeforeCreate(); err != nil {
		return nil, err
	}
	company.DateCreated = time.Now().UTC()

	if _, err := col.InsertOne(ctx, company); err != nil {
		return nil, fmt.Errorf("error inserting company: %v", err)
	}

	return company, nil
}

func (mdb *MongodbRepo) FindCompanyByID(ctx context.Context, id primitive.ObjectID) (*Company, error) {
	col, err := mdb.GetCollection(ctx, DbName, CompaniesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var company Company
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&company); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding company: %v", err)
	}

	return &company, nil
}
