package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appErrors "github.com/noah-isme/autoservice-booking-api/pkg/errors"
)

const customerTokenIssuer = "autoservice-booking"

// CustomerTokenService issues and verifies the HS256 bearer tokens that carry
// a customer identity. The subject claim is the customer ID.
type CustomerTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCustomerTokenService builds the service. A non-positive ttl defaults to
// 24 hours.
func NewCustomerTokenService(secret string, ttl time.Duration) *CustomerTokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CustomerTokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for customerID.
func (s *CustomerTokenService) Issue(customerID string) (string, error) {
	if customerID == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "customer id is required")
	}
	issuedAt := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   customerID,
		Issuer:    customerTokenIssuer,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		NotBefore: jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign customer token")
	}
	return signed, nil
}

// Verify returns the customer ID carried by a valid token.
func (s *CustomerTokenService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(customerTokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid customer token")
	}
	if !token.Valid || claims.Subject == "" {
		return "", appErrors.Clone(appErrors.ErrUnauthorized, "customer token has no subject")
	}
	return claims.Subject, nil
}
