package services

import (
	"context"
	"strings"

	"github.com/wellnest/server/internal/apperrors"
	"github.com/wellnest/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DirectoryService covers the onboarding glue: creating and reading the
// company and vendor records that events reference.
type DirectoryService struct {
	companiesRepo models.CompaniesRepo
	vendorsRepo   models.VendorsRepo
}

func NewDirectoryService(companiesRepo models.CompaniesRepo, vendorsRepo models.VendorsRepo) *DirectoryService {
	return &DirectoryService{
		companiesRepo: companiesRepo,
		vendorsRepo:   vendorsRepo,
	}
}

func (ds *DirectoryService) CreateCompany(ctx context.Context, company *models.Company) (*models.Company, error) {
	company.Name = strings.TrimSpace(company.Name)
	if err := models.Validate.Struct(company); err != nil {
		return nil, apperrors.NewValidation("invalid company data: %v", err)
	}
	return ds.companiesRepo.CreateCompany(ctx, company)
}

func (ds *DirectoryService) GetCompany(ctx context.Context, id primitive.ObjectID) (*models.Company, error) {
	company, err := ds.companiesRepo.FindCompanyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, &apperrors.NotFoundError{Resource: "company"}
	}
	return company, nil
}

func (ds *DirectoryService) CreateVendor(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error) {
	vendor.Name = strings.TrimSpace(vendor.Name)
	vendor.ContactEmail = strings.TrimSpace(vendor.ContactEmail)
	if err := models.Validate.Struct(vendor); err != nil {
		return nil, apperrors.NewValidation("invalid vendor data: %v", err)
	}
	return ds.vendorsRepo.CreateVendor(ctx, vendor)
}

func (ds *DirectoryService) GetVendor(ctx context.Context, id primitive.ObjectID) (*models.Vendor, error) {
	vendor, err := ds.vendorsRepo.FindVendorByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, &apperrors.NotFoundError{Resource: "vendor"}
	}
	return vendor, nil
}
