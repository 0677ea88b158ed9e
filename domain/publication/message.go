package publication

import (
	"time"

	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

// MessageKind associates a conversation entry with a ticket workflow
type MessageKind string

const (
	MessageKindSupport    MessageKind = "SUPPORT"
	MessageKindDoiRequest MessageKind = "DOI_REQUEST"
)

// MessageStatus is the lifecycle state of a conversation entry.
// Messages have no workflow; they stay UNREAD until the recipient
// reads them.
type MessageStatus string

const (
	MessageStatusUnread MessageStatus = "UNREAD"
	MessageStatusRead   MessageStatus = "READ"
)

// Message is a conversation entry attached to a resource and
// optionally associated with a ticket workflow kind.
type Message struct {
	identifier         SortableIdentifier
	sender             string
	resourceIdentifier SortableIdentifier
	customer           CustomerID
	kind               MessageKind
	status             MessageStatus
	text               string
	createdAt          time.Time
	modifiedAt         time.Time
	version            RowVersion
}

// NewMessage creates a message from sender about the given resource
func NewMessage(sender string, resourceIdentifier SortableIdentifier, customer CustomerID, kind MessageKind, text string) (*Message, error) {
	if sender == "" {
		return nil, pkgerrors.NewValidationError("sender cannot be empty")
	}
	if resourceIdentifier.IsZero() {
		return nil, pkgerrors.NewValidationError("resource identifier cannot be empty")
	}
	if customer.IsZero() {
		return nil, pkgerrors.NewValidationError("customer cannot be empty")
	}
	if text == "" {
		return nil, pkgerrors.NewValidationError("text cannot be empty")
	}
	switch kind {
	case MessageKindSupport, MessageKindDoiRequest:
	default:
		return nil, pkgerrors.NewValidationError("unknown message kind")
	}

	now := time.Now().UTC()
	return &Message{
		identifier:         NewSortableIdentifier(),
		sender:             sender,
		resourceIdentifier: resourceIdentifier,
		customer:           customer,
		kind:               kind,
		status:             MessageStatusUnread,
		text:               text,
		createdAt:          now,
		modifiedAt:         now,
		version:            NewRowVersion(),
	}, nil
}

// ReconstructMessage rebuilds a message from stored data
func ReconstructMessage(
	identifier SortableIdentifier,
	sender string,
	resourceIdentifier SortableIdentifier,
	customer CustomerID,
	kind MessageKind,
	status MessageStatus,
	text string,
	createdAt, modifiedAt time.Time,
	version RowVersion,
) (*Message, error) {
	if identifier.IsZero() {
		return nil, pkgerrors.NewValidationError("identifier cannot be empty")
	}
	if sender == "" {
		return nil, pkgerrors.NewValidationError("sender cannot be empty")
	}
	if resourceIdentifier.IsZero() {
		return nil, pkgerrors.NewValidationError("resource identifier cannot be empty")
	}
	if customer.IsZero() {
		return nil, pkgerrors.NewValidationError("customer cannot be empty")
	}

	return &Message{
		identifier:         identifier,
		sender:             sender,
		resourceIdentifier: resourceIdentifier,
		customer:           customer,
		kind:               kind,
		status:             status,
		text:               text,
		createdAt:          createdAt,
		modifiedAt:         modifiedAt,
		version:            version,
	}, nil
}

func (m *Message) EntityType() Type                       { return TypeMessage }
func (m *Message) Identifier() SortableIdentifier         { return m.identifier }
func (m *Message) Sender() string                         { return m.sender }
func (m *Message) Owner() string                          { return m.sender }
func (m *Message) ResourceIdentifier() SortableIdentifier { return m.resourceIdentifier }
func (m *Message) Customer() CustomerID                   { return m.customer }
func (m *Message) Kind() MessageKind                      { return m.kind }
func (m *Message) Status() MessageStatus                  { return m.status }
func (m *Message) StatusString() string                   { return string(m.status) }
func (m *Message) Text() string                           { return m.text }
func (m *Message) Version() RowVersion                    { return m.version }
func (m *Message) CreatedAt() time.Time                   { return m.createdAt }
func (m *Message) ModifiedAt() time.Time                  { return m.modifiedAt }

func (m *Message) sealed() {}

// RefreshVersion issues a new row version token and returns it
func (m *Message) RefreshVersion() RowVersion {
	m.version = NewRowVersion()
	return m.version
}

// MarkRead flags the message as read by the recipient
func (m *Message) MarkRead() {
	if m.status == MessageStatusRead {
		return
	}
	m.status = MessageStatusRead
	m.touch()
}

// Equals compares two messages under business equality, ignoring row
// version.
func (m *Message) Equals(other *Message) bool {
	if other == nil {
		return false
	}
	return m.identifier.Equals(other.identifier) &&
		m.sender == other.sender &&
		m.resourceIdentifier.Equals(other.resourceIdentifier) &&
		m.customer.Equals(other.customer) &&
		m.kind == other.kind &&
		m.status == other.status &&
		m.text == other.text &&
		m.createdAt.Equal(other.createdAt) &&
		m.modifiedAt.Equal(other.modifiedAt)
}

func (m *Message) touch() {
	m.modifiedAt = time.Now().UTC()
}
