package helpers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/wellnest/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomClaims carries the tenant scope issued by the external auth service.
// The core never parses credentials beyond verifying this token.
type CustomClaims struct {
	Role      string `json:"role"`
	CompanyID string `json:"company_id,omitempty"`
	VendorID  string `json:"vendor_id,omitempty"`
	jwt.RegisteredClaims
}

// ValidateToken verifies a bearer token against the configured JWKS endpoint
// when AUTH_JWKS_URL is set, or the shared HMAC secret otherwise.
func ValidateToken(tokenStr string) (*CustomClaims, error) {
	jwksURL := os.Getenv("AUTH_JWKS_URL")
	if jwksURL != "" {
		return validateWithJWKS(tokenStr, jwksURL)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	return claims, nil
}

func validateWithJWKS(tokenStr, jwksURL string) (*CustomClaims, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{Ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %v", err)
	}
	defer jwks.EndBackground()

	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	return claims, nil
}

// Identity resolves the claims into the closed role variant the core works
// with. A malformed subject or scope id is an error; a missing scope id is
// left zero and denied by the access gate, never defaulted.
func (cc *CustomClaims) Identity() (models.Identity, error) {
	userID, err := uuid.Parse(cc.Subject)
	if err != nil {
		return models.Identity{}, fmt.Errorf("invalid user ID in token: %v", err)
	}

	identity := models.Identity{
		UserID: userID,
		Role:   models.Role(cc.Role),
	}

	if cc.CompanyID != "" {
		companyID, err := primitive.ObjectIDFromHex(cc.CompanyID)
		if err != nil {
			return models.Identity{}, fmt.Errorf("invalid company ID in token: %v", err)
		}
		identity.CompanyID = companyID
	}

	if cc.VendorID != "" {
		vendorID, err := primitive.ObjectIDFromHex(cc.VendorID)
		if err != nil {
			return models.Identity{}, fmt.Errorf("invalid vendor ID in token: %v", err)
		}
		identity.VendorID = vendorID
	}

	return identity, nil
}
