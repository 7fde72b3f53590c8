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
	"github.com/loopdesk/loopdesk/internal/domain/ticket"
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

// fakeNotifier records fan-out calls instead of touching Redis.
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

// testEnv wires the CRM-side use cases against an in-memory database.
type testEnv struct {
	db          *gorm.DB
	orgRepo     organization.Repository
	userRepo    user.Repository
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	attachRepo  ticket.AttachmentRepository
	txManager   *db.TransactionManager
	notifier    *fakeNotifier
	resolver    *identity.OrganizationResolver
	log         logger.Interface
}

func newTestEnv(t *testing.T) *testEnv {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = gormDB.AutoMigrate(
		&models.OrganizationModel{},
		&models.UserModel{},
		&models.TicketModel{},
		&models.TicketCommentModel{},
		&models.TicketAttachmentModel{},
		&models.ConversationModel{},
		&models.MessageModel{},
		&models.NotificationModel{},
	)
	require.NoError(t, err)

	log := logger.NewLogger()
	env := &testEnv{
		db:          gormDB,
		orgRepo:     repository.NewOrganizationRepository(gormDB),
		userRepo:    repository.NewUserRepository(gormDB),
		ticketRepo:  repository.NewTicketRepository(gormDB),
		commentRepo: repository.NewTicketCommentRepository(gormDB),
		attachRepo:  repository.NewTicketAttachmentRepository(gormDB),
		txManager:   db.NewTransactionManager(gormDB),
		notifier:    &fakeNotifier{},
		log:         log,
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

func (env *testEnv) seedTicket(t *testing.T, orgID, creatorID uint, assigneeID *uint) *ticket.Ticket {
	tk, err := ticket.NewTicket(orgID, "Broken login", "Customer cannot sign in", creatorID)
	require.NoError(t, err)
	if assigneeID != nil {
		require.NoError(t, tk.AssignTo(*assigneeID))
	}
	require.NoError(t, env.ticketRepo.Save(context.Background(), tk))
	return tk
}
