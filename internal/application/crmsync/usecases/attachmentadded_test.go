package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loopdesk/loopdesk/internal/application/crmsync/dto"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
)

func newAttachmentAddedUC(env *testEnv) *AttachmentAddedUseCase {
	return NewAttachmentAddedUseCase(
		env.ticketRepo, env.attachRepo, env.userRepo, env.orgRepo,
		env.notifier, env.log,
	)
}

func TestAttachmentAdded_MirrorsFile(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Acme")
	assignee := env.seedUser(t, org.ID(), "Assignee", user.RoleAgent)
	assigneeID := assignee.ID()
	tk := env.seedTicket(t, org.ID(), assignee.ID(), &assigneeID)

	resp, err := newAttachmentAddedUC(env).Execute(context.Background(), dto.AttachmentAddedRequest{
		TicketID: tk.SID(),
		Attachment: dto.AttachmentPayload{
			Name: "stacktrace.txt",
			URL:  "https://files.example.com/stacktrace.txt",
			Type: "text/plain",
			Size: 2048,
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	attachments, err := env.attachRepo.ListByTicket(context.Background(), tk.ID())
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Equal(t, "stacktrace.txt", attachments[0].Name())
	assert.Equal(t, "https://files.example.com/stacktrace.txt", attachments[0].URL())
	assert.Equal(t, int64(2048), attachments[0].Size())
	assert.True(t, attachments[0].FromPeer())
	require.NotNil(t, attachments[0].UploaderID())
	assert.Equal(t, assignee.ID(), *attachments[0].UploaderID())
}

func TestAttachmentAdded_NoUploaderIsAccepted(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Acme")
	creator := env.seedUser(t, org.ID(), "Creator", user.RoleMember)
	tk := env.seedTicket(t, org.ID(), creator.ID(), nil)

	_, err := newAttachmentAddedUC(env).Execute(context.Background(), dto.AttachmentAddedRequest{
		TicketID:   tk.SID(),
		Attachment: dto.AttachmentPayload{Name: "a.png", URL: "https://files.example.com/a.png"},
	})
	require.NoError(t, err)

	attachments, err := env.attachRepo.ListByTicket(context.Background(), tk.ID())
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Nil(t, attachments[0].UploaderID())
}

func TestAttachmentAdded_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	uc := newAttachmentAddedUC(env)

	_, err := uc.Execute(context.Background(), dto.AttachmentAddedRequest{
		Attachment: dto.AttachmentPayload{Name: "a.png", URL: "https://x/a.png"},
	})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), dto.AttachmentAddedRequest{
		TicketID:   "tkt_x",
		Attachment: dto.AttachmentPayload{URL: "https://x/a.png"},
	})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), dto.AttachmentAddedRequest{
		TicketID:   "tkt_x",
		Attachment: dto.AttachmentPayload{Name: "a.png"},
	})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestAttachmentAdded_UnknownTicket(t *testing.T) {
	env := newTestEnv(t)

	_, err := newAttachmentAddedUC(env).Execute(context.Background(), dto.AttachmentAddedRequest{
		TicketID:   "tkt_missing",
		Attachment: dto.AttachmentPayload{Name: "a.png", URL: "https://x/a.png"},
	})
	assert.True(t, apperrors.IsNotFoundError(err))
}
