package models

import (
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of tenant-scoped roles the platform understands.
type Role string

const (
	RoleHRAdmin     Role = "hr_admin"
	RoleVendorAdmin Role = "vendor_admin"
)

// Identity is the authenticated caller as resolved by the auth middleware.
// Exactly one of CompanyID/VendorID is expected to be set, matching the role;
// a missing scope id is treated as misconfiguration and denied downstream,
// never silently allowed.
type Identity struct {
	UserID    uuid.UUID
	Role      Role
	CompanyID primitive.ObjectID
	VendorID  primitive.ObjectID
}

func (id Identity) IsHRAdmin() bool {
	return id.Role == RoleHRAdmin
}

func (id Identity) IsVendorAdmin() bool {
	return id.Role == RoleVendorAdmin
}
