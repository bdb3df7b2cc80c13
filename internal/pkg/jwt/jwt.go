package jwt

import (
	"time"

	"github.com/emenu-platform/attendance-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies access tokens and resolves the caller identity from
// their claims. Tokens are issued by the platform's auth service; this
// backend only consumes them. GenerateAccessToken exists for integration
// tests and local tooling.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	IdentityFromClaims(claims map[string]interface{}) (auth.Identity, error)
	GenerateAccessToken(identity auth.Identity, expiration time.Duration) (string, error)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// IdentityFromClaims extracts the caller from verified token claims.
// employee_id and business_id are mandatory here: every operation this
// backend exposes is scoped to an employee within a business.
func (j *JWTService) IdentityFromClaims(claims map[string]interface{}) (auth.Identity, error) {
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "access" {
		return auth.Identity{}, auth.ErrInvalidToken
	}

	identity := auth.Identity{}
	if userID, ok := claims["user_id"].(string); ok {
		identity.UserID = userID
	}
	if role, ok := claims["role"].(string); ok {
		identity.Role = role
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return auth.Identity{}, auth.ErrMissingClaims
	}
	identity.EmployeeID = employeeID

	businessID, ok := claims["business_id"].(string)
	if !ok || businessID == "" {
		return auth.Identity{}, auth.ErrMissingClaims
	}
	identity.BusinessID = businessID

	return identity, nil
}

func (j *JWTService) GenerateAccessToken(identity auth.Identity, expiration time.Duration) (string, error) {
	claims := map[string]interface{}{
		"user_id":     identity.UserID,
		"employee_id": identity.EmployeeID,
		"business_id": identity.BusinessID,
		"role":        identity.Role,
		"type":        "access",
		"exp":         time.Now().Add(expiration).Unix(),
	}
	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, err
}
