package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/testutil"
	"jobportal_backend/pkg/apperrors"
)

func TestNotifications_ReadState(t *testing.T) {
	e := newEnv(t)
	owner := testutil.CreateUser(t, e.db, "Owner", "secret1", models.UserRoleJobSeeker)
	other := testutil.CreateUser(t, e.db, "Other", "secret1", models.UserRoleJobSeeker)

	ns := e.svc.NotificationService
	ns.Notify(e.db, owner.ID, services.NotificationInput{Title: "One", Message: "first"})
	ns.Notify(e.db, owner.ID, services.NotificationInput{Title: "Two", Message: "second", Type: models.NotificationTypeJob})
	assert.Equal(t, 2, e.pusher.countFor(owner.ID))

	list := e.notifications(t, owner.ID)
	require.Len(t, list, 2)
	for _, n := range list {
		if n.Title == "One" {
			assert.Equal(t, models.NotificationTypeSystem, n.Type)
		}
	}

	unread, err := ns.GetUnreadCount(e.db, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	assert.ErrorIs(t, ns.MarkAsRead(e.db, other.ID, list[0].ID), apperrors.ErrNotificationNotFound)
	require.NoError(t, ns.MarkAsRead(e.db, owner.ID, list[0].ID))

	unread, err = ns.GetUnreadCount(e.db, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	resp, err := ns.MarkAllAsRead(e.db, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Updated)
	assert.Equal(t, "All notifications marked as read", resp.Message)

	unread, err = ns.GetUnreadCount(e.db, owner.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestNotifications_ListIsCapped(t *testing.T) {
	e := newEnv(t)
	user := testutil.CreateUser(t, e.db, "Busy", "secret1", models.UserRoleEmployer)
	for i := 0; i < 25; i++ {
		e.svc.NotificationService.Notify(e.db, user.ID, services.NotificationInput{Title: "n", Message: "m"})
	}
	assert.Len(t, e.notifications(t, user.ID), 20)
}
