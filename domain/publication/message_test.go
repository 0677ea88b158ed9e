package publication

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage("bob", NewSortableIdentifier(), mustCustomer(t), MessageKindSupport, "please review")
	require.NoError(t, err)

	assert.Equal(t, MessageStatusUnread, msg.Status())
	assert.Equal(t, "bob", msg.Sender())
	assert.Equal(t, msg.Sender(), msg.Owner())
	assert.Equal(t, TypeMessage, msg.EntityType())
}

func TestNewMessageValidation(t *testing.T) {
	_, err := NewMessage("", NewSortableIdentifier(), mustCustomer(t), MessageKindSupport, "text")
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = NewMessage("bob", NewSortableIdentifier(), mustCustomer(t), MessageKindSupport, "")
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = NewMessage("bob", NewSortableIdentifier(), mustCustomer(t), "OTHER", "text")
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestMessageMarkRead(t *testing.T) {
	msg, err := NewMessage("bob", NewSortableIdentifier(), mustCustomer(t), MessageKindDoiRequest, "doi please")
	require.NoError(t, err)

	msg.MarkRead()
	assert.Equal(t, MessageStatusRead, msg.Status())
}

func TestMessageEqualityIgnoresVersion(t *testing.T) {
	msg, err := NewMessage("bob", NewSortableIdentifier(), mustCustomer(t), MessageKindSupport, "hello")
	require.NoError(t, err)

	copy, err := ReconstructMessage(
		msg.Identifier(), msg.Sender(), msg.ResourceIdentifier(), msg.Customer(),
		msg.Kind(), msg.Status(), msg.Text(),
		msg.CreatedAt(), msg.ModifiedAt(), NewRowVersion(),
	)
	require.NoError(t, err)

	assert.True(t, msg.Equals(copy))
	assert.False(t, msg.Version().Equals(copy.Version()))
}
