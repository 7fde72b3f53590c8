package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loopdesk/loopdesk/internal/application/devsync/dto"
	"github.com/loopdesk/loopdesk/internal/domain/notification"
	domainsync "github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/domain/task"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
)

func newTaskCreateUC(env *testEnv) *TaskCreateUseCase {
	return NewTaskCreateUseCase(
		env.resolver, env.taskRepo, env.activityRepo, env.userRepo,
		env.notifier, env.dispatcher, env.txManager, env.log,
	)
}

func TestTaskCreate_CreatesTaskAndAcks(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Devhouse")
	admin := env.seedUser(t, org.ID(), "Admin", user.RoleAdmin)

	resp, err := newTaskCreateUC(env).Execute(context.Background(), dto.TaskCreateRequest{
		TicketID:       "tkt_abc",
		Title:          "Broken login",
		Description:    "Customer cannot sign in",
		OrganizationID: org.SID(),
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.NotEmpty(t, resp.TaskID)

	created, err := env.taskRepo.FindByCRMTicketSID(context.Background(), "tkt_abc")
	require.NoError(t, err)
	assert.Equal(t, resp.TaskID, created.SID())
	assert.Equal(t, task.StatusBacklog, created.Status())
	assert.Equal(t, admin.ID(), created.CreatorID())
	require.NotNil(t, created.CRMTicketSID())
	assert.Equal(t, "tkt_abc", *created.CRMTicketSID())

	activities, err := env.activityRepo.ListByTask(context.Background(), created.ID())
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, task.ActivityTaskCreated, activities[0].Kind())

	// The ack travels back through the dispatcher so the CRM can record
	// the task link on its ticket.
	require.Len(t, env.dispatcher.Events, 1)
	assert.Equal(t, domainsync.EventTicketReceived, env.dispatcher.Events[0].Kind)
	payload, ok := env.dispatcher.Events[0].Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "tkt_abc", payload["ticketId"])
	assert.Equal(t, created.SID(), payload["taskId"])

	require.Len(t, env.notifier.Notified, 1)
	assert.Equal(t, admin.ID(), env.notifier.Notified[0].UserID)
	assert.Equal(t, notification.TypeTaskAssigned, env.notifier.Notified[0].Type)

	require.Len(t, env.notifier.Broadcasts, 1)
	assert.Equal(t, domainsync.RealtimeInboxUpdate, env.notifier.Broadcasts[0].Event)
}

func TestTaskCreate_ReusesExistingTaskForSameTicket(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Devhouse")
	env.seedUser(t, org.ID(), "Admin", user.RoleAdmin)

	uc := newTaskCreateUC(env)
	req := dto.TaskCreateRequest{
		TicketID:       "tkt_abc",
		Title:          "Broken login",
		OrganizationID: org.SID(),
	}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.TaskID, second.TaskID, "one ticket maps to at most one task")

	// Both deliveries ack so the CRM can converge on the link either way.
	assert.Len(t, env.dispatcher.Events, 2)
	for _, ev := range env.dispatcher.Events {
		assert.Equal(t, domainsync.EventTicketReceived, ev.Kind)
	}
}

func TestTaskCreate_UnknownOrgFallsBackToOldest(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Only Org")
	env.seedUser(t, org.ID(), "Admin", user.RoleAdmin)

	resp, err := newTaskCreateUC(env).Execute(context.Background(), dto.TaskCreateRequest{
		TicketID:       "tkt_abc",
		Title:          "Broken login",
		OrganizationID: "no-such-org",
	})
	require.NoError(t, err)

	created, err := env.taskRepo.FindBySID(context.Background(), resp.TaskID)
	require.NoError(t, err)
	assert.Equal(t, org.ID(), created.OrganizationID())
}

func TestTaskCreate_NoAdminFails(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Devhouse")
	env.seedUser(t, org.ID(), "Member", user.RoleMember)

	_, err := newTaskCreateUC(env).Execute(context.Background(), dto.TaskCreateRequest{
		TicketID:       "tkt_abc",
		Title:          "Broken login",
		OrganizationID: org.SID(),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsInternalError(err), "no synthetic owner account is ever created")
	assert.Empty(t, env.dispatcher.Events, "a failed creation must not ack")
}

func TestTaskCreate_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	uc := newTaskCreateUC(env)

	_, err := uc.Execute(context.Background(), dto.TaskCreateRequest{Title: "Broken login"})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), dto.TaskCreateRequest{TicketID: "tkt_abc"})
	assert.True(t, apperrors.IsValidationError(err))
}
