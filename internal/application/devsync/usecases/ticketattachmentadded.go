package usecases

import (
	"context"
	"fmt"

	"github.com/loopdesk/loopdesk/internal/application/common"
	"github.com/loopdesk/loopdesk/internal/application/devsync/dto"
	"github.com/loopdesk/loopdesk/internal/domain/notification"
	"github.com/loopdesk/loopdesk/internal/domain/organization"
	"github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/domain/task"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// TicketAttachmentAddedUseCase records a CRM ticket attachment against the
// linked task. Tasks carry no file storage of their own, so the attachment is
// kept as an activity line pointing at the CRM-hosted file.
type TicketAttachmentAddedUseCase struct {
	taskRepo     task.Repository
	activityRepo task.ActivityRepository
	userRepo     user.Repository
	orgRepo      organization.Repository
	notifier     common.Notifier
	logger       logger.Interface
}

func NewTicketAttachmentAddedUseCase(
	taskRepo task.Repository,
	activityRepo task.ActivityRepository,
	userRepo user.Repository,
	orgRepo organization.Repository,
	notifier common.Notifier,
	log logger.Interface,
) *TicketAttachmentAddedUseCase {
	return &TicketAttachmentAddedUseCase{
		taskRepo:     taskRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		orgRepo:      orgRepo,
		notifier:     notifier,
		logger:       log,
	}
}

func (uc *TicketAttachmentAddedUseCase) Execute(ctx context.Context, request dto.TicketAttachmentAddedRequest) (*dto.AckResponse, error) {
	if request.TicketID == "" {
		return nil, apperrors.NewValidationError("ticketId is required")
	}
	if request.Attachment.Name == "" {
		return nil, apperrors.NewValidationError("attachment.name is required")
	}
	if request.Attachment.URL == "" {
		return nil, apperrors.NewValidationError("attachment.url is required")
	}

	t, err := uc.taskRepo.FindByCRMTicketSID(ctx, request.TicketID)
	if err != nil {
		return nil, err
	}

	activity, err := task.NewActivity(t.ID(), task.ActivityAttachmentMirrored,
		fmt.Sprintf("CRM attached %s (%s)", request.Attachment.Name, request.Attachment.URL))
	if err != nil {
		return nil, err
	}
	if err := uc.activityRepo.Save(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to record attachment activity: %w", err)
	}

	org, err := uc.orgRepo.FindByID(ctx, t.OrganizationID())
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"taskSid":        t.SID(),
		"attachmentName": request.Attachment.Name,
		"attachmentUrl":  request.Attachment.URL,
	}
	target, err := uc.userRepo.FindByID(ctx, notifyTargetID(t))
	if err == nil {
		err = uc.notifier.Notify(ctx, common.NotifyCommand{
			UserID:  target.ID(),
			UserSID: target.SID(),
			OrgID:   org.ID(),
			OrgSID:  org.SID(),
			Type:    notification.TypeAttachmentMirrored,
			Title:   "New attachment from CRM",
			Body:    request.Attachment.Name,
			Data:    data,
		})
		if err != nil {
			uc.logger.Warnw("attachment notification failed", "task_sid", t.SID(), "error", err)
		}
	}
	_ = uc.notifier.Broadcast(ctx, org.SID(), sync.RealtimeInboxUpdate, data)

	uc.logger.Infow("crm attachment recorded on task",
		"task_sid", t.SID(),
		"attachment", request.Attachment.Name,
	)

	return &dto.AckResponse{Success: true}, nil
}
