package publication

import (
	"time"
)

// Type discriminates the entity kinds multiplexed into the single
// table. The type string is the leading segment of every storage key.
type Type string

const (
	TypeResource Type = "Resource"
	TypeTicket   Type = "Ticket"
	TypeMessage  Type = "Message"
)

// Entity is the closed set of stored entity kinds. All variants carry
// the same identity components (type, customer, owner, identifier)
// plus a lifecycle status and an opaque row version. The unexported
// method keeps the union sealed so Dao conversion and event
// serialization can switch exhaustively.
type Entity interface {
	EntityType() Type
	Identifier() SortableIdentifier
	Owner() string
	Customer() CustomerID
	StatusString() string
	Version() RowVersion
	RefreshVersion() RowVersion
	CreatedAt() time.Time
	ModifiedAt() time.Time

	sealed()
}
