package publication

import (
	"fmt"
	"net/url"
	"strings"
)

// CustomerID is a value object holding the full customer organization
// URI. Storage keys embed only the trailing path segment, which is a
// lossy transform, so the full URI is retained here for responses.
type CustomerID struct {
	uri string
}

// NewCustomerID creates a CustomerID from a customer organization URI
func NewCustomerID(uri string) (CustomerID, error) {
	if uri == "" {
		return CustomerID{}, fmt.Errorf("customer URI cannot be empty")
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return CustomerID{}, fmt.Errorf("malformed customer URI: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return CustomerID{}, fmt.Errorf("customer URI must be absolute")
	}
	if trailingSegment(parsed.Path) == "" {
		return CustomerID{}, fmt.Errorf("customer URI has no identifier segment")
	}

	return CustomerID{uri: uri}, nil
}

// String returns the full customer URI
func (c CustomerID) String() string {
	return c.uri
}

// Identifier returns the trailing path segment used in storage keys
func (c CustomerID) Identifier() string {
	parsed, err := url.Parse(c.uri)
	if err != nil {
		return ""
	}
	return trailingSegment(parsed.Path)
}

// Equals checks if two customer IDs are equal
func (c CustomerID) Equals(other CustomerID) bool {
	return c.uri == other.uri
}

// IsZero checks if the customer ID is the zero value
func (c CustomerID) IsZero() bool {
	return c.uri == ""
}

func trailingSegment(path string) string {
	trimmed := strings.TrimRight(path, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return trimmed
	}
	return trimmed[idx+1:]
}
