package usecase

import (
	"context"
	"fmt"

	"github.com/taskdesk/taskdesk/internal/domain"
)

// PollNotificationsInput contains the parameters for a notification poll.
type PollNotificationsInput struct {
	UserID int
}

// PollNotificationsOutput contains the unread notifications.
type PollNotificationsOutput struct {
	Unread []domain.Notification
}

// PollNotifications is the use case behind the periodic notification
// refetch: it lists the user's notifications and keeps the unread ones.
type PollNotifications struct {
	directory domain.Directory
	logger    domain.Logger
}

// NewPollNotifications creates a new PollNotifications use case.
func NewPollNotifications(directory domain.Directory, logger domain.Logger) *PollNotifications {
	return &PollNotifications{
		directory: directory,
		logger:    logger,
	}
}

// Execute fetches the user's unread notifications.
func (uc *PollNotifications) Execute(ctx context.Context, in PollNotificationsInput) (*PollNotificationsOutput, error) {
	notifications, err := uc.directory.ListNotifications(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	var unread []domain.Notification
	for _, n := range notifications {
		if !n.IsRead {
			unread = append(unread, n)
		}
	}
	if len(unread) > 0 {
		uc.logger.Debug(0, "notify", fmt.Sprintf("%d unread notifications", len(unread)))
	}
	return &PollNotificationsOutput{Unread: unread}, nil
}

// MarkRead marks a single notification as read.
func (uc *PollNotifications) MarkRead(ctx context.Context, userID, notificationID int) error {
	if err := uc.directory.MarkNotificationRead(ctx, userID, notificationID); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
