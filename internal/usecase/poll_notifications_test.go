package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdesk/taskdesk/internal/domain"
	"github.com/taskdesk/taskdesk/internal/testutil"
)

func TestPollNotifications_Execute_FiltersUnread(t *testing.T) {
	directory := &testutil.MockDirectory{Notifications: []domain.Notification{
		{ID: 1, Text: "Task assigned", IsRead: true},
		{ID: 2, Text: "New comment", TaskID: 5},
		{ID: 3, Text: "Status changed", TaskID: 5},
	}}

	uc := NewPollNotifications(directory, &testutil.MockLogger{})
	out, err := uc.Execute(context.Background(), PollNotificationsInput{UserID: 4})
	require.NoError(t, err)

	require.Len(t, out.Unread, 2)
	assert.Equal(t, 2, out.Unread[0].ID)
	assert.Equal(t, 3, out.Unread[1].ID)
}

func TestPollNotifications_Execute_AllRead(t *testing.T) {
	directory := &testutil.MockDirectory{Notifications: []domain.Notification{
		{ID: 1, IsRead: true},
	}}

	uc := NewPollNotifications(directory, &testutil.MockLogger{})
	out, err := uc.Execute(context.Background(), PollNotificationsInput{UserID: 4})
	require.NoError(t, err)

	assert.Empty(t, out.Unread)
}

func TestPollNotifications_Execute_ListError(t *testing.T) {
	errBackend := errors.New("backend down")
	directory := &testutil.MockDirectory{Err: errBackend}

	uc := NewPollNotifications(directory, &testutil.MockLogger{})
	_, err := uc.Execute(context.Background(), PollNotificationsInput{UserID: 4})

	require.Error(t, err)
	assert.ErrorIs(t, err, errBackend)
	assert.Contains(t, err.Error(), "list notifications")
}

func TestPollNotifications_MarkRead(t *testing.T) {
	directory := &testutil.MockDirectory{}

	uc := NewPollNotifications(directory, &testutil.MockLogger{})
	require.NoError(t, uc.MarkRead(context.Background(), 4, 2))

	assert.Equal(t, []int{2}, directory.ReadIDs)
}
