package services

import (
	"github.com/wellnest/server/internal/apperrors"
	"github.com/wellnest/server/internal/models"
)

// ValidateAccess checks a single event against the caller's tenant scope.
// HR admins must match the event's company, vendor admins the event's vendor.
// A missing scope id on the identity is misconfiguration and denies, and any
// role outside the known set denies by default. List queries do not come
// through here; they are scoped structurally by the query itself.
func ValidateAccess(event *models.Event, identity models.Identity) error {
	switch identity.Role {
	case models.RoleHRAdmin:
		if identity.CompanyID.IsZero() || identity.CompanyID != event.CompanyID {
			return &apperrors.ForbiddenError{Message: "event belongs to a different company"}
		}
		return nil
	case models.RoleVendorAdmin:
		if identity.VendorID.IsZero() || identity.VendorID != event.VendorID {
			return &apperrors.ForbiddenError{Message: "event belongs to a different vendor"}
		}
		return nil
	default:
		return &apperrors.ForbiddenError{Message: "unknown role"}
	}
}
