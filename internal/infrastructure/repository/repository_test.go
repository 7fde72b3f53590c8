package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/loopdesk/loopdesk/internal/domain/chat"
	"github.com/loopdesk/loopdesk/internal/domain/notification"
	"github.com/loopdesk/loopdesk/internal/domain/organization"
	"github.com/loopdesk/loopdesk/internal/domain/task"
	"github.com/loopdesk/loopdesk/internal/domain/ticket"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/models"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.OrganizationModel{},
		&models.UserModel{},
		&models.TicketModel{},
		&models.TicketCommentModel{},
		&models.TicketAttachmentModel{},
		&models.TaskModel{},
		&models.TaskCommentModel{},
		&models.TaskActivityModel{},
		&models.ConversationModel{},
		&models.MessageModel{},
		&models.NotificationModel{},
	)
	require.NoError(t, err)

	return db
}

func createTestOrg(t *testing.T, db *gorm.DB, name string) *organization.Organization {
	org, err := organization.NewOrganization(name)
	require.NoError(t, err)
	require.NoError(t, NewOrganizationRepository(db).Save(context.Background(), org))
	return org
}

func TestOrganizationRepository_FindBySID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrganizationRepository(db)
	ctx := context.Background()

	org := createTestOrg(t, db, "Acme Corp")

	found, err := repo.FindBySID(ctx, org.SID())
	require.NoError(t, err)
	assert.Equal(t, org.ID(), found.ID())
	assert.Equal(t, "Acme Corp", found.Name())

	_, err = repo.FindBySID(ctx, "org_missing")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestOrganizationRepository_FindOldest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrganizationRepository(db)
	ctx := context.Background()

	_, err := repo.FindOldest(ctx)
	assert.True(t, apperrors.IsNotFoundError(err))

	first := createTestOrg(t, db, "First")
	// Force a strictly older timestamp for the first row.
	db.Model(&models.OrganizationModel{}).
		Where("id = ?", first.ID()).
		Update("created_at", time.Now().Add(-time.Hour).UnixMilli())
	createTestOrg(t, db, "Second")

	oldest, err := repo.FindOldest(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID(), oldest.ID())
}

func TestUserRepository_FindAdminByOrganization(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	org := createTestOrg(t, db, "Acme Corp")

	member, err := user.NewUser(org.ID(), "Morgan", "morgan@example.com", user.RoleMember)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, member))

	_, err = repo.FindAdminByOrganization(ctx, org.ID())
	assert.True(t, apperrors.IsNotFoundError(err))

	admin, err := user.NewUser(org.ID(), "Alex", "alex@example.com", user.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, admin))

	found, err := repo.FindAdminByOrganization(ctx, org.ID())
	require.NoError(t, err)
	assert.Equal(t, admin.ID(), found.ID())
}

func TestTicketRepository_SaveAndUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	org := createTestOrg(t, db, "Acme Corp")

	tk, err := ticket.NewTicket(org.ID(), "Broken login", "Cannot sign in", 1)
	require.NoError(t, err)

	err = repo.Save(ctx, tk)
	require.NoError(t, err)
	assert.NotZero(t, tk.ID())

	require.NoError(t, tk.ChangeStatus(ticket.StatusResolved))
	require.NoError(t, repo.Update(ctx, tk))

	found, err := repo.FindBySID(ctx, tk.SID())
	require.NoError(t, err)
	assert.Equal(t, ticket.StatusResolved, found.Status())
	assert.NotNil(t, found.ResolvedAt())
}

func TestTicketRepository_FindBySIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)

	_, err := repo.FindBySID(context.Background(), "tkt_missing")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestTicketCommentRepository_DuplicatesAllowed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketCommentRepository(db)
	ctx := context.Background()

	authorID := uint(1)
	for i := 0; i < 2; i++ {
		c, err := ticket.NewComment(1, &authorID, "same content", true)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, c))
	}

	comments, err := repo.ListByTicket(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestTicketCommentRepository_NullableAuthor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketCommentRepository(db)
	ctx := context.Background()

	c, err := ticket.NewComment(1, nil, "from a peer with no attributable author", true)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, c))

	comments, err := repo.ListByTicket(ctx, 1)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Nil(t, comments[0].AuthorID())
	assert.True(t, comments[0].FromPeer())
}

func TestTaskRepository_FindByCRMTicketSID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	org := createTestOrg(t, db, "Dev Shop")

	ticketSID := "tkt_abc123"
	tk, err := task.NewTask(org.ID(), "Fix login bug", "", 1, &ticketSID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, tk))

	found, err := repo.FindByCRMTicketSID(ctx, ticketSID)
	require.NoError(t, err)
	assert.Equal(t, tk.ID(), found.ID())

	_, err = repo.FindByCRMTicketSID(ctx, "tkt_other")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestTaskActivityRepository_AppendAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskActivityRepository(db)
	ctx := context.Background()

	a1, err := task.NewActivity(1, task.ActivityTaskCreated, "Task created from CRM ticket")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, a1))

	a2, err := task.NewActivity(1, task.ActivityTicketStatusChanged, "CRM ticket moved to CLOSED")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, a2))

	activities, err := repo.ListByTask(ctx, 1)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, task.ActivityTaskCreated, activities[0].Kind())
	assert.Equal(t, task.ActivityTicketStatusChanged, activities[1].Kind())
}

func TestConversationRepository_FindBySessionID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	org := createTestOrg(t, db, "Acme Corp")

	conv, err := chat.NewConversation(org.ID(), "usr_remote1", "Remote User")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, conv))

	found, err := repo.FindBySessionID(ctx, chat.SessionIDForRemoteUser("usr_remote1"))
	require.NoError(t, err)
	assert.Equal(t, conv.ID(), found.ID())

	_, err = repo.FindBySessionID(ctx, chat.SessionIDForRemoteUser("usr_unknown"))
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestConversationRepository_ReactivateRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	org := createTestOrg(t, db, "Acme Corp")

	conv, err := chat.NewConversation(org.ID(), "usr_remote2", "Remote User")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, conv))

	conv.Close()
	require.NoError(t, repo.Update(ctx, conv))

	found, err := repo.FindByID(ctx, conv.ID())
	require.NoError(t, err)
	assert.True(t, found.IsClosed())

	found.Reactivate()
	require.NoError(t, repo.Update(ctx, found))

	found, err = repo.FindByID(ctx, conv.ID())
	require.NoError(t, err)
	assert.False(t, found.IsClosed())
}

func TestMessageRepository_ListByConversation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	m1, err := chat.NewMessage(1, "Remote User", "hello", chat.DirectionInbound)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, m1))

	m2, err := chat.NewMessage(1, "Agent", "hi there", chat.DirectionOutbound)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, m2))

	messages, err := repo.ListByConversation(ctx, 1)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, chat.DirectionInbound, messages[0].Direction())
	assert.Equal(t, chat.DirectionOutbound, messages[1].Direction())
}

func TestNotificationRepository_DataRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	n, err := notification.NewNotification(1, 1, notification.TypeTicketUpdated, "Ticket updated", "Status changed to RESOLVED", map[string]interface{}{
		"ticketSid": "tkt_abc123",
		"newStatus": "RESOLVED",
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, n))

	found, err := repo.FindByID(ctx, n.ID())
	require.NoError(t, err)
	assert.Equal(t, "tkt_abc123", found.Data()["ticketSid"])
	assert.Equal(t, "RESOLVED", found.Data()["newStatus"])
	assert.False(t, found.Read())
}

func TestNotificationRepository_UnreadCounting(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		n, err := notification.NewNotification(1, 1, notification.TypeNewMessage, "New message", "", nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, n))
	}

	other, err := notification.NewNotification(2, 1, notification.TypeNewMessage, "New message", "", nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	count, err := repo.CountUnread(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	require.NoError(t, repo.MarkAllRead(ctx, 1))

	count, err = repo.CountUnread(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// The other user's notifications are untouched.
	count, err = repo.CountUnread(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNotificationRepository_ListByUserPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		n, err := notification.NewNotification(1, 1, notification.TypeTicketUpdated, "Ticket updated", "", nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, n))
	}

	page, total, err := repo.ListByUser(ctx, 1, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page, 2)

	last, total, err := repo.ListByUser(ctx, 1, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, last, 1)
}
