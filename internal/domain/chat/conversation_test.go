package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionIDForRemoteUser_Deterministic(t *testing.T) {
	a := SessionIDForRemoteUser("u1")
	b := SessionIDForRemoteUser("u1")
	c := SessionIDForRemoteUser("u2")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEmpty(t, a)
}

func TestNewConversation(t *testing.T) {
	conv, err := NewConversation(1, "u1", "Ana")
	require.NoError(t, err)
	assert.Equal(t, ConversationActive, conv.Status())
	assert.Equal(t, SessionIDForRemoteUser("u1"), conv.SessionID())
	assert.Equal(t, "Ana", conv.RemoteUserName())

	_, err = NewConversation(0, "u1", "Ana")
	assert.Error(t, err)

	_, err = NewConversation(1, "", "Ana")
	assert.Error(t, err)
}

func TestConversation_Reactivate(t *testing.T) {
	conv, err := NewConversation(1, "u1", "Ana")
	require.NoError(t, err)

	conv.Close()
	assert.True(t, conv.IsClosed())

	conv.Reactivate()
	assert.False(t, conv.IsClosed())
	assert.Equal(t, ConversationActive, conv.Status())
}

func TestNewMessage(t *testing.T) {
	m, err := NewMessage(1, "Ana", "hi", DirectionInbound)
	require.NoError(t, err)
	assert.Equal(t, DirectionInbound, m.Direction())

	_, err = NewMessage(0, "Ana", "hi", DirectionInbound)
	assert.Error(t, err)

	_, err = NewMessage(1, "Ana", "", DirectionInbound)
	assert.Error(t, err)

	_, err = NewMessage(1, "Ana", "hi", MessageDirection("sideways"))
	assert.Error(t, err)
}
