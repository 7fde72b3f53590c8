package server

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/loopdesk/loopdesk/internal/application/crmsync/usecases"
	devusecases "github.com/loopdesk/loopdesk/internal/application/devsync/usecases"
	"github.com/loopdesk/loopdesk/internal/application/identity"
	notificationapp "github.com/loopdesk/loopdesk/internal/application/notification"
	notificationusecases "github.com/loopdesk/loopdesk/internal/application/notification/usecases"
	taskusecases "github.com/loopdesk/loopdesk/internal/application/task/usecases"
	ticketusecases "github.com/loopdesk/loopdesk/internal/application/ticket/usecases"
	"github.com/loopdesk/loopdesk/internal/domain/notification"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	"github.com/loopdesk/loopdesk/internal/infrastructure/auth"
	"github.com/loopdesk/loopdesk/internal/infrastructure/config"
	"github.com/loopdesk/loopdesk/internal/infrastructure/peer"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/models"
	"github.com/loopdesk/loopdesk/internal/infrastructure/pubsub"
	"github.com/loopdesk/loopdesk/internal/infrastructure/repository"
	routerhttp "github.com/loopdesk/loopdesk/internal/interfaces/http"
	"github.com/loopdesk/loopdesk/internal/interfaces/http/handlers"
	"github.com/loopdesk/loopdesk/internal/interfaces/http/middleware"
	"github.com/loopdesk/loopdesk/internal/shared/db"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

func modelsForRole(role string) []interface{} {
	shared := []interface{}{
		&models.OrganizationModel{},
		&models.UserModel{},
		&models.NotificationModel{},
	}
	switch role {
	case RoleCRM:
		return append(shared,
			&models.TicketModel{},
			&models.TicketCommentModel{},
			&models.TicketAttachmentModel{},
			&models.ConversationModel{},
			&models.MessageModel{},
		)
	case RoleDev:
		return append(shared,
			&models.TaskModel{},
			&models.TaskCommentModel{},
			&models.TaskActivityModel{},
		)
	}
	return shared
}

// buildCRMRouter wires the CRM deployment: the webhook surface the Dev
// platform calls, the agent-facing ticket routes, and the shared
// notification and realtime surfaces.
func buildCRMRouter(cfg *config.Config, gormDB *gorm.DB, bus *pubsub.RedisRealtimeBus, log logger.Interface) *gin.Engine {
	orgRepo := repository.NewOrganizationRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	ticketRepo := repository.NewTicketRepository(gormDB)
	commentRepo := repository.NewTicketCommentRepository(gormDB)
	attachRepo := repository.NewTicketAttachmentRepository(gormDB)
	convRepo := repository.NewConversationRepository(gormDB)
	msgRepo := repository.NewMessageRepository(gormDB)
	notifRepo := repository.NewNotificationRepository(gormDB)

	txManager := db.NewTransactionManager(gormDB)
	notifier := notificationapp.NewFanoutNotifier(notifRepo, bus, log)
	resolver := identity.NewOrganizationResolver(orgRepo, &cfg.Sync, log)
	dispatcher := peer.NewDispatcher(peer.NewClient(&cfg.Sync, peerPrefix), nil, log)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	authMW := middleware.NewAuthMiddleware(jwtService, log)

	webhooks := handlers.NewCRMWebhookHandler(
		usecases.NewTicketReceivedUseCase(ticketRepo, userRepo, orgRepo, notifier, log),
		usecases.NewTaskCompletedUseCase(ticketRepo, commentRepo, userRepo, orgRepo, notifier, txManager, log),
		usecases.NewTaskStatusChangedUseCase(ticketRepo, userRepo, orgRepo, notifier, log),
		usecases.NewCommentAddedUseCase(ticketRepo, commentRepo, userRepo, orgRepo, notifier, log),
		usecases.NewAttachmentAddedUseCase(ticketRepo, attachRepo, userRepo, orgRepo, notifier, log),
		usecases.NewChatMessageUseCase(resolver, convRepo, msgRepo, userRepo, notifier, txManager, log),
		log,
	)

	tickets := handlers.NewTicketHandler(
		ticketusecases.NewSendTicketToDevUseCase(ticketRepo, orgRepo, dispatcher, log),
		ticketusecases.NewChangeTicketStatusUseCase(ticketRepo, orgRepo, dispatcher, notifier, log),
		ticketusecases.NewAddTicketCommentUseCase(ticketRepo, commentRepo, userRepo, dispatcher, log),
		userRepo,
		log,
	)

	router := routerhttp.NewRouter(cfg, authMW, log)
	router.MountShared(buildNotificationHandler(notifRepo, userRepo, log), handlers.NewRealtimeHandler(bus, log))
	router.MountCRMWebhooks(webhooks)
	router.MountTickets(tickets)
	return router.Engine()
}

// buildDevRouter wires the Dev deployment: the webhook surface the CRM
// calls plus the developer-facing task routes.
func buildDevRouter(cfg *config.Config, gormDB *gorm.DB, bus *pubsub.RedisRealtimeBus, log logger.Interface) *gin.Engine {
	orgRepo := repository.NewOrganizationRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	commentRepo := repository.NewTaskCommentRepository(gormDB)
	activityRepo := repository.NewTaskActivityRepository(gormDB)
	notifRepo := repository.NewNotificationRepository(gormDB)

	txManager := db.NewTransactionManager(gormDB)
	notifier := notificationapp.NewFanoutNotifier(notifRepo, bus, log)
	resolver := identity.NewOrganizationResolver(orgRepo, &cfg.Sync, log)
	dispatcher := peer.NewDispatcher(peer.NewClient(&cfg.Sync, peerPrefix), nil, log)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	authMW := middleware.NewAuthMiddleware(jwtService, log)

	webhooks := handlers.NewDevWebhookHandler(
		devusecases.NewTaskCreateUseCase(resolver, taskRepo, activityRepo, userRepo, notifier, dispatcher, txManager, log),
		devusecases.NewTicketCommentAddedUseCase(taskRepo, commentRepo, userRepo, orgRepo, notifier, log),
		devusecases.NewTicketAttachmentAddedUseCase(taskRepo, activityRepo, userRepo, orgRepo, notifier, log),
		devusecases.NewTicketStatusChangedUseCase(taskRepo, activityRepo, orgRepo, notifier, log),
		log,
	)

	tasks := handlers.NewTaskHandler(
		taskusecases.NewCompleteTaskUseCase(taskRepo, activityRepo, userRepo, dispatcher, txManager, log),
		taskusecases.NewChangeTaskStatusUseCase(taskRepo, activityRepo, dispatcher, log),
		taskusecases.NewAddTaskCommentUseCase(taskRepo, commentRepo, userRepo, dispatcher, log),
		userRepo,
		log,
	)

	router := routerhttp.NewRouter(cfg, authMW, log)
	router.MountShared(buildNotificationHandler(notifRepo, userRepo, log), handlers.NewRealtimeHandler(bus, log))
	router.MountDevWebhooks(webhooks)
	router.MountTasks(tasks)
	return router.Engine()
}

func buildNotificationHandler(notifRepo notification.Repository, userRepo user.Repository, log logger.Interface) *handlers.NotificationHandler {
	return handlers.NewNotificationHandler(
		notificationusecases.NewListNotificationsUseCase(notifRepo, log),
		notificationusecases.NewUnreadCountUseCase(notifRepo, log),
		notificationusecases.NewMarkAllReadUseCase(notifRepo, log),
		userRepo,
		log,
	)
}
