package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/autoservice-booking-api/pkg/response"
)

// ContextCustomerKey is the gin context key storing the verified customer ID.
const ContextCustomerKey = "customerID"

type customerVerifier interface {
	Verify(token string) (string, error)
}

// OptionalCustomer attaches the customer ID of a bearer token when one is
// sent. Anonymous requests pass through; a malformed or invalid token is
// rejected so personalization never silently falls back.
func OptionalCustomer(verifier customerVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		customerID, err := verifier.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Set(ContextCustomerKey, customerID)
		c.Next()
	}
}

// CustomerID returns the verified customer ID, or "" for anonymous requests.
func CustomerID(c *gin.Context) string {
	return c.GetString(ContextCustomerKey)
}
