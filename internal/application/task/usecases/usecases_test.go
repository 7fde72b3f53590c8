package usecases

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/loopdesk/loopdesk/internal/application/task/dto"
	"github.com/loopdesk/loopdesk/internal/domain/organization"
	domainsync "github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/domain/task"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/models"
	"github.com/loopdesk/loopdesk/internal/infrastructure/repository"
	"github.com/loopdesk/loopdesk/internal/shared/db"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

type dispatchRecord struct {
	Kind    domainsync.EventKind
	Payload interface{}
}

type fakeDispatcher struct {
	mu     sync.Mutex
	Events []dispatchRecord
}

func (f *fakeDispatcher) Dispatch(kind domainsync.EventKind, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Events = append(f.Events, dispatchRecord{Kind: kind, Payload: payload})
}

type testEnv struct {
	orgRepo      organization.Repository
	userRepo     user.Repository
	taskRepo     task.Repository
	commentRepo  task.CommentRepository
	activityRepo task.ActivityRepository
	txManager    *db.TransactionManager
	dispatcher   *fakeDispatcher
	log          logger.Interface
}

func newTestEnv(t *testing.T) *testEnv {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(
		&models.OrganizationModel{},
		&models.UserModel{},
		&models.TaskModel{},
		&models.TaskCommentModel{},
		&models.TaskActivityModel{},
	))

	return &testEnv{
		orgRepo:      repository.NewOrganizationRepository(gormDB),
		userRepo:     repository.NewUserRepository(gormDB),
		taskRepo:     repository.NewTaskRepository(gormDB),
		commentRepo:  repository.NewTaskCommentRepository(gormDB),
		activityRepo: repository.NewTaskActivityRepository(gormDB),
		txManager:    db.NewTransactionManager(gormDB),
		dispatcher:   &fakeDispatcher{},
		log:          logger.NewLogger(),
	}
}

func (env *testEnv) seed(t *testing.T, linked bool) (*user.User, *task.Task) {
	org, err := organization.NewOrganization("Devhouse")
	require.NoError(t, err)
	require.NoError(t, env.orgRepo.Save(context.Background(), org))

	u, err := user.NewUser(org.ID(), "Dana", "dana@example.com", user.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, env.userRepo.Save(context.Background(), u))

	var crmTicketSID *string
	if linked {
		sid := "tkt_linked"
		crmTicketSID = &sid
	}
	tk, err := task.NewTask(org.ID(), "Fix login", "Investigate the auth failure", u.ID(), crmTicketSID)
	require.NoError(t, err)
	require.NoError(t, env.taskRepo.Save(context.Background(), tk))
	return u, tk
}

func TestCompleteTask_UserOriginTellsCRM(t *testing.T) {
	env := newTestEnv(t)
	dana, tk := env.seed(t, true)

	uc := NewCompleteTaskUseCase(env.taskRepo, env.activityRepo, env.userRepo, env.dispatcher, env.txManager, env.log)
	resp, err := uc.Execute(context.Background(), tk.SID(), dana.ID(), domainsync.OriginUser)
	require.NoError(t, err)
	assert.Equal(t, "DONE", resp.Status)
	require.NotNil(t, resp.CompletedAt)

	require.Len(t, env.dispatcher.Events, 1)
	assert.Equal(t, domainsync.EventTaskCompleted, env.dispatcher.Events[0].Kind)
	payload, ok := env.dispatcher.Events[0].Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "tkt_linked", payload["ticketId"])
	assert.Equal(t, tk.SID(), payload["taskId"])
	assert.Equal(t, "Dana", payload["completedBy"])

	activities, err := env.activityRepo.ListByTask(context.Background(), tk.ID())
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, task.ActivityTaskCompleted, activities[0].Kind())
}

func TestCompleteTask_SyncOriginStaysLocal(t *testing.T) {
	env := newTestEnv(t)
	dana, tk := env.seed(t, true)

	uc := NewCompleteTaskUseCase(env.taskRepo, env.activityRepo, env.userRepo, env.dispatcher, env.txManager, env.log)
	_, err := uc.Execute(context.Background(), tk.SID(), dana.ID(), domainsync.OriginSync)
	require.NoError(t, err)

	assert.Empty(t, env.dispatcher.Events)

	found, err := env.taskRepo.FindBySID(context.Background(), tk.SID())
	require.NoError(t, err)
	assert.Equal(t, task.StatusDone, found.Status())
}

func TestCompleteTask_UnlinkedTaskStaysLocal(t *testing.T) {
	env := newTestEnv(t)
	dana, tk := env.seed(t, false)

	uc := NewCompleteTaskUseCase(env.taskRepo, env.activityRepo, env.userRepo, env.dispatcher, env.txManager, env.log)
	_, err := uc.Execute(context.Background(), tk.SID(), dana.ID(), domainsync.OriginUser)
	require.NoError(t, err)

	assert.Empty(t, env.dispatcher.Events)
}

func TestChangeTaskStatus_UserOriginDispatchesRawStatus(t *testing.T) {
	env := newTestEnv(t)
	_, tk := env.seed(t, true)

	uc := NewChangeTaskStatusUseCase(env.taskRepo, env.activityRepo, env.dispatcher, env.log)
	resp, err := uc.Execute(context.Background(), tk.SID(),
		dto.ChangeTaskStatusRequest{NewStatus: "REVIEW"}, domainsync.OriginUser)
	require.NoError(t, err)
	assert.Equal(t, "REVIEW", resp.Status)

	// The raw board status crosses the wire; the CRM applies its own
	// mapping and may ignore it.
	require.Len(t, env.dispatcher.Events, 1)
	assert.Equal(t, domainsync.EventTaskStatusChanged, env.dispatcher.Events[0].Kind)
	payload, ok := env.dispatcher.Events[0].Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "REVIEW", payload["newStatus"])
}

func TestChangeTaskStatus_SyncOriginNeverDispatches(t *testing.T) {
	env := newTestEnv(t)
	_, tk := env.seed(t, true)

	uc := NewChangeTaskStatusUseCase(env.taskRepo, env.activityRepo, env.dispatcher, env.log)
	_, err := uc.Execute(context.Background(), tk.SID(),
		dto.ChangeTaskStatusRequest{NewStatus: "IN_PROGRESS"}, domainsync.OriginSync)
	require.NoError(t, err)

	assert.Empty(t, env.dispatcher.Events)
}

func TestChangeTaskStatus_InvalidStatus(t *testing.T) {
	env := newTestEnv(t)
	_, tk := env.seed(t, true)

	uc := NewChangeTaskStatusUseCase(env.taskRepo, env.activityRepo, env.dispatcher, env.log)
	_, err := uc.Execute(context.Background(), tk.SID(),
		dto.ChangeTaskStatusRequest{NewStatus: "SHIPPED"}, domainsync.OriginUser)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestAddTaskComment_UserOriginMirrorsToCRM(t *testing.T) {
	env := newTestEnv(t)
	dana, tk := env.seed(t, true)

	uc := NewAddTaskCommentUseCase(env.taskRepo, env.commentRepo, env.userRepo, env.dispatcher, env.log)
	resp, err := uc.Execute(context.Background(), tk.SID(), dana.ID(),
		dto.AddTaskCommentRequest{Content: "deploying now"}, domainsync.OriginUser)
	require.NoError(t, err)
	assert.False(t, resp.FromPeer)

	require.Len(t, env.dispatcher.Events, 1)
	assert.Equal(t, domainsync.EventCommentAdded, env.dispatcher.Events[0].Kind)
	payload, ok := env.dispatcher.Events[0].Payload.(map[string]interface{})
	require.True(t, ok)
	comment, ok := payload["comment"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "deploying now", comment["content"])
	assert.Equal(t, "Dana", comment["authorName"])
}

func TestAddTaskComment_SyncOriginStaysLocal(t *testing.T) {
	env := newTestEnv(t)
	dana, tk := env.seed(t, true)

	uc := NewAddTaskCommentUseCase(env.taskRepo, env.commentRepo, env.userRepo, env.dispatcher, env.log)
	_, err := uc.Execute(context.Background(), tk.SID(), dana.ID(),
		dto.AddTaskCommentRequest{Content: "note"}, domainsync.OriginSync)
	require.NoError(t, err)

	assert.Empty(t, env.dispatcher.Events)

	comments, err := env.commentRepo.ListByTask(context.Background(), tk.ID())
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}
