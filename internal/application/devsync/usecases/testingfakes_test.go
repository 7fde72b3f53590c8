package usecases

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/loopdesk/loopdesk/internal/application/common"
	"github.com/loopdesk/loopdesk/internal/application/identity"
	"github.com/loopdesk/loopdesk/internal/domain/organization"
	domainsync "github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/domain/task"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/models"
	"github.com/loopdesk/loopdesk/internal/infrastructure/repository"
	"github.com/loopdesk/loopdesk/internal/shared/config"
	"github.com/loopdesk/loopdesk/internal/shared/db"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

type broadcastRecord struct {
	OrgSID string
	Event  string
	Data   map[string]interface{}
}

type fakeNotifier struct {
	mu         sync.Mutex
	Notified   []common.NotifyCommand
	Broadcasts []broadcastRecord
}

func (f *fakeNotifier) Notify(_ context.Context, cmd common.NotifyCommand) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Notified = append(f.Notified, cmd)
	return nil
}

func (f *fakeNotifier) Broadcast(_ context.Context, orgSID, event string, data map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Broadcasts = append(f.Broadcasts, broadcastRecord{OrgSID: orgSID, Event: event, Data: data})
	return nil
}

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

// testEnv wires the development-side use cases against an in-memory database.
type testEnv struct {
	db           *gorm.DB
	orgRepo      organization.Repository
	userRepo     user.Repository
	taskRepo     task.Repository
	commentRepo  task.CommentRepository
	activityRepo task.ActivityRepository
	txManager    *db.TransactionManager
	notifier     *fakeNotifier
	dispatcher   *fakeDispatcher
	resolver     *identity.OrganizationResolver
	log          logger.Interface
}

func newTestEnv(t *testing.T) *testEnv {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = gormDB.AutoMigrate(
		&models.OrganizationModel{},
		&models.UserModel{},
		&models.TaskModel{},
		&models.TaskCommentModel{},
		&models.TaskActivityModel{},
		&models.NotificationModel{},
	)
	require.NoError(t, err)

	log := logger.NewLogger()
	env := &testEnv{
		db:           gormDB,
		orgRepo:      repository.NewOrganizationRepository(gormDB),
		userRepo:     repository.NewUserRepository(gormDB),
		taskRepo:     repository.NewTaskRepository(gormDB),
		commentRepo:  repository.NewTaskCommentRepository(gormDB),
		activityRepo: repository.NewTaskActivityRepository(gormDB),
		txManager:    db.NewTransactionManager(gormDB),
		notifier:     &fakeNotifier{},
		dispatcher:   &fakeDispatcher{},
		log:          log,
	}
	env.resolver = identity.NewOrganizationResolver(env.orgRepo, &config.SyncConfig{
		LegacySentinel: "default",
	}, log)
	return env
}

func (env *testEnv) seedOrg(t *testing.T, name string) *organization.Organization {
	org, err := organization.NewOrganization(name)
	require.NoError(t, err)
	require.NoError(t, env.orgRepo.Save(context.Background(), org))
	return org
}

func (env *testEnv) seedUser(t *testing.T, orgID uint, name string, role user.Role) *user.User {
	u, err := user.NewUser(orgID, name, name+"@example.com", role)
	require.NoError(t, err)
	require.NoError(t, env.userRepo.Save(context.Background(), u))
	return u
}

func (env *testEnv) seedTask(t *testing.T, orgID, creatorID uint, crmTicketSID *string) *task.Task {
	tk, err := task.NewTask(orgID, "Fix login", "Investigate the auth failure", creatorID, crmTicketSID)
	require.NoError(t, err)
	require.NoError(t, env.taskRepo.Save(context.Background(), tk))
	return tk
}
