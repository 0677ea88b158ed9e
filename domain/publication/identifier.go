package publication

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SortableIdentifier is a value object identifying a stored entity.
// The leading zero-padded microsecond timestamp makes lexicographic
// order match creation order, so index scans return entities in
// insertion order.
type SortableIdentifier struct {
	value string
}

var (
	lastMicrosMu sync.Mutex
	lastMicros   int64
)

// nextMicros returns a strictly increasing microsecond timestamp so
// identifiers minted in the same process always sort in creation
// order, even within one clock tick.
func nextMicros() int64 {
	lastMicrosMu.Lock()
	defer lastMicrosMu.Unlock()
	now := time.Now().UnixMicro()
	if now <= lastMicros {
		now = lastMicros + 1
	}
	lastMicros = now
	return now
}

// NewSortableIdentifier creates a new time-ordered identifier
func NewSortableIdentifier() SortableIdentifier {
	return SortableIdentifier{
		value: fmt.Sprintf("%016x-%s", nextMicros(), uuid.New().String()),
	}
}

// ParseSortableIdentifier creates an identifier from an existing string
func ParseSortableIdentifier(s string) (SortableIdentifier, error) {
	if s == "" {
		return SortableIdentifier{}, fmt.Errorf("identifier cannot be empty")
	}
	if strings.ContainsRune(s, ':') {
		return SortableIdentifier{}, fmt.Errorf("identifier cannot contain ':'")
	}
	return SortableIdentifier{value: s}, nil
}

// String returns the string representation of the identifier
func (id SortableIdentifier) String() string {
	return id.value
}

// Equals checks if two identifiers are equal
func (id SortableIdentifier) Equals(other SortableIdentifier) bool {
	return id.value == other.value
}

// IsZero checks if the identifier is the zero value
func (id SortableIdentifier) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id SortableIdentifier) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *SortableIdentifier) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("identifier must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}

// RowVersion is the opaque optimistic-concurrency token stored with
// every entity. It is regenerated on each successful mutation and is
// excluded from business equality.
type RowVersion struct {
	value string
}

// NewRowVersion creates a fresh random version token
func NewRowVersion() RowVersion {
	return RowVersion{value: uuid.New().String()}
}

// ParseRowVersion creates a version token from an existing string
func ParseRowVersion(s string) (RowVersion, error) {
	if s == "" {
		return RowVersion{}, fmt.Errorf("row version cannot be empty")
	}
	return RowVersion{value: s}, nil
}

// String returns the string representation of the version token
func (v RowVersion) String() string {
	return v.value
}

// Equals checks if two version tokens are equal
func (v RowVersion) Equals(other RowVersion) bool {
	return v.value == other.value
}

// IsZero checks if the version token is the zero value
func (v RowVersion) IsZero() bool {
	return v.value == ""
}
