package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loopdesk/loopdesk/internal/application/crmsync/dto"
	"github.com/loopdesk/loopdesk/internal/domain/chat"
	domainsync "github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/infrastructure/repository"
)

func newChatMessageUC(env *testEnv) (*ChatMessageUseCase, chat.ConversationRepository, chat.MessageRepository) {
	convRepo := repository.NewConversationRepository(env.db)
	msgRepo := repository.NewMessageRepository(env.db)
	uc := NewChatMessageUseCase(
		env.resolver, convRepo, msgRepo, env.userRepo,
		env.notifier, env.txManager, env.log,
	)
	return uc, convRepo, msgRepo
}

func chatMsg(orgRef, userID, userName, content string) dto.ChatMessageRequest {
	return dto.ChatMessageRequest{
		UserID:         userID,
		UserName:       userName,
		Content:        content,
		OrganizationID: orgRef,
	}
}

func TestChatMessage_CreatesConversationAndMessage(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Acme")
	env.seedUser(t, org.ID(), "Admin", user.RoleAdmin)

	uc, convRepo, msgRepo := newChatMessageUC(env)

	resp, err := uc.Execute(context.Background(), chatMsg(org.SID(), "remote-u1", "Ana", "hi"))
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.NotEmpty(t, resp.MessageID)

	conv, err := convRepo.FindBySessionID(context.Background(), chat.SessionIDForRemoteUser("remote-u1"))
	require.NoError(t, err)
	assert.Equal(t, org.ID(), conv.OrganizationID())

	messages, err := msgRepo.ListByConversation(context.Background(), conv.ID())
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hi", messages[0].Content())
	assert.Equal(t, chat.DirectionInbound, messages[0].Direction())
}

func TestChatMessage_FallsBackToOldestOrganization(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Only Org")
	env.seedUser(t, org.ID(), "Admin", user.RoleAdmin)

	uc, convRepo, _ := newChatMessageUC(env)

	resp, err := uc.Execute(context.Background(), chatMsg("unknown-id", "u1", "Ana", "hi"))
	require.NoError(t, err)
	require.True(t, resp.Success)

	conv, err := convRepo.FindBySessionID(context.Background(), chat.SessionIDForRemoteUser("u1"))
	require.NoError(t, err)
	assert.Equal(t, org.ID(), conv.OrganizationID(),
		"unresolvable tenant reference must land in the oldest organization")
}

func TestChatMessage_TenantNotFoundWhenNoOrganizations(t *testing.T) {
	env := newTestEnv(t)
	uc, _, _ := newChatMessageUC(env)

	_, err := uc.Execute(context.Background(), chatMsg("unknown-id", "u1", "Ana", "hi"))
	assert.True(t, apperrors.IsTenantNotFoundError(err))
}

func TestChatMessage_ReusesConversationForSameRemoteUser(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Acme")
	env.seedUser(t, org.ID(), "Admin", user.RoleAdmin)

	uc, convRepo, msgRepo := newChatMessageUC(env)

	_, err := uc.Execute(context.Background(), chatMsg(org.SID(), "u1", "Ana", "first"))
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), chatMsg(org.SID(), "u1", "Ana", "second"))
	require.NoError(t, err)

	conv, err := convRepo.FindBySessionID(context.Background(), chat.SessionIDForRemoteUser("u1"))
	require.NoError(t, err)

	messages, err := msgRepo.ListByConversation(context.Background(), conv.ID())
	require.NoError(t, err)
	assert.Len(t, messages, 2)
}

func TestChatMessage_ReactivatesClosedConversation(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Acme")
	env.seedUser(t, org.ID(), "Admin", user.RoleAdmin)

	uc, convRepo, _ := newChatMessageUC(env)

	_, err := uc.Execute(context.Background(), chatMsg(org.SID(), "u1", "Ana", "hello"))
	require.NoError(t, err)

	conv, err := convRepo.FindBySessionID(context.Background(), chat.SessionIDForRemoteUser("u1"))
	require.NoError(t, err)
	conv.Close()
	require.NoError(t, convRepo.Update(context.Background(), conv))

	_, err = uc.Execute(context.Background(), chatMsg(org.SID(), "u1", "Ana", "again"))
	require.NoError(t, err)

	conv, err = convRepo.FindBySessionID(context.Background(), chat.SessionIDForRemoteUser("u1"))
	require.NoError(t, err)
	assert.False(t, conv.IsClosed())
}

func TestChatMessage_FanOut(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Acme")
	admin := env.seedUser(t, org.ID(), "Admin", user.RoleAdmin)

	uc, _, _ := newChatMessageUC(env)

	_, err := uc.Execute(context.Background(), chatMsg(org.SID(), "u1", "Ana", "hi"))
	require.NoError(t, err)

	require.Len(t, env.notifier.Notified, 1)
	assert.Equal(t, admin.ID(), env.notifier.Notified[0].UserID)

	events := make([]string, 0, len(env.notifier.Broadcasts))
	for _, b := range env.notifier.Broadcasts {
		events = append(events, b.Event)
	}
	assert.Contains(t, events, domainsync.RealtimeNewMessage)
	assert.Contains(t, events, domainsync.RealtimeInboxUpdate)
}

func TestChatMessage_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	uc, _, _ := newChatMessageUC(env)

	for _, req := range []dto.ChatMessageRequest{
		{UserName: "Ana", Content: "hi", OrganizationID: "o"},
		{UserID: "u1", Content: "hi", OrganizationID: "o"},
		{UserID: "u1", UserName: "Ana", OrganizationID: "o"},
		{UserID: "u1", UserName: "Ana", Content: "hi"},
	} {
		_, err := uc.Execute(context.Background(), req)
		assert.True(t, apperrors.IsValidationError(err))
	}
}
