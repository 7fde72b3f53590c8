package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loopdesk/loopdesk/internal/application/devsync/dto"
	domainsync "github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/domain/task"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
)

func newTicketStatusChangedUC(env *testEnv) *TicketStatusChangedUseCase {
	return NewTicketStatusChangedUseCase(env.taskRepo, env.activityRepo, env.orgRepo, env.notifier, env.log)
}

func TestTicketStatusChanged_RecordsActivityWithoutTouchingStatus(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Devhouse")
	admin := env.seedUser(t, org.ID(), "Admin", user.RoleAdmin)
	ticketSID := "tkt_abc"
	tk := env.seedTask(t, org.ID(), admin.ID(), &ticketSID)
	require.NoError(t, tk.ChangeStatus(task.StatusInProgress))
	require.NoError(t, env.taskRepo.Update(context.Background(), tk))

	resp, err := newTicketStatusChangedUC(env).Execute(context.Background(), dto.TicketStatusChangedRequest{
		TicketID:  "tkt_abc",
		NewStatus: "RESOLVED",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	// The ticket's status is informational on this side.
	found, err := env.taskRepo.FindBySID(context.Background(), tk.SID())
	require.NoError(t, err)
	assert.Equal(t, task.StatusInProgress, found.Status())

	activities, err := env.activityRepo.ListByTask(context.Background(), tk.ID())
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, task.ActivityTicketStatusChanged, activities[0].Kind())
	assert.Contains(t, activities[0].Message(), "RESOLVED")

	require.Len(t, env.notifier.Broadcasts, 1)
	assert.Equal(t, domainsync.RealtimeInboxUpdate, env.notifier.Broadcasts[0].Event)
	assert.Empty(t, env.notifier.Notified, "status echoes carry no durable notification")
}

func TestTicketStatusChanged_NoLinkedTask(t *testing.T) {
	env := newTestEnv(t)

	_, err := newTicketStatusChangedUC(env).Execute(context.Background(), dto.TicketStatusChangedRequest{
		TicketID:  "tkt_unlinked",
		NewStatus: "RESOLVED",
	})
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestTicketStatusChanged_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	uc := newTicketStatusChangedUC(env)

	_, err := uc.Execute(context.Background(), dto.TicketStatusChangedRequest{NewStatus: "RESOLVED"})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), dto.TicketStatusChangedRequest{TicketID: "tkt_abc"})
	assert.True(t, apperrors.IsValidationError(err))
}
