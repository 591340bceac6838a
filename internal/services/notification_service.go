package services

import (
	"errors"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/metrics"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const notificationListLimit = 20

// NotificationPusher delivers a payload to the live connections of a user, if any.
type NotificationPusher interface {
	PushToUser(userID string, payload interface{})
}

// NotificationInput describes a notification before it is stored.
type NotificationInput struct {
	Title   string
	Message string
	Type    models.NotificationType
	Link    string
}

type NotificationService interface {
	// Notify stores and pushes a notification. Failures are logged and never returned.
	Notify(db *gorm.DB, userID string, in NotificationInput)
	// NotifyAdmins fans in out to every admin account.
	NotifyAdmins(db *gorm.DB, in NotificationInput)

	GetUserNotifications(db *gorm.DB, userID string) ([]models.Notification, error)
	MarkAsRead(db *gorm.DB, userID, notificationID string) error
	MarkAllAsRead(db *gorm.DB, userID string) (*dto.MarkAllReadResponse, error)
	GetUnreadCount(db *gorm.DB, userID string) (int64, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	pusher           NotificationPusher
	metrics          metrics.Recorder
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	pusher NotificationPusher,
	rec metrics.Recorder,
) NotificationService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		pusher:           pusher,
		metrics:          rec,
	}
}

func (s *notificationService) Notify(db *gorm.DB, userID string, in NotificationInput) {
	n := newNotification(userID, in)
	if err := s.notificationRepo.Create(db, &n); err != nil {
		logger.CtxWarn(db.Statement.Context, "failed to create notification",
			"recipient", userID, "title", in.Title, "error", err.Error())
		return
	}
	s.deliver(n)
}

func (s *notificationService) NotifyAdmins(db *gorm.DB, in NotificationInput) {
	admins, err := s.userRepo.FindByRole(db, models.UserRoleAdmin)
	if err != nil {
		logger.CtxWarn(db.Statement.Context, "failed to load admins for notification",
			"title", in.Title, "error", err.Error())
		return
	}
	if len(admins) == 0 {
		return
	}

	batch := make([]models.Notification, 0, len(admins))
	for _, a := range admins {
		batch = append(batch, newNotification(a.ID, in))
	}
	if err := s.notificationRepo.CreateMany(db, batch); err != nil {
		logger.CtxWarn(db.Statement.Context, "failed to notify admins",
			"title", in.Title, "admins", len(admins), "error", err.Error())
		return
	}
	for _, n := range batch {
		s.deliver(n)
	}
}

func (s *notificationService) deliver(n models.Notification) {
	s.metrics.RecordNotification(string(n.Type))
	if s.pusher != nil {
		s.pusher.PushToUser(n.UserID, n)
	}
}

func newNotification(userID string, in NotificationInput) models.Notification {
	t := in.Type
	if t == "" {
		t = models.NotificationTypeSystem
	}
	return models.Notification{
		UserID:  userID,
		Title:   in.Title,
		Message: in.Message,
		Type:    t,
		Link:    in.Link,
	}
}

func (s *notificationService) GetUserNotifications(db *gorm.DB, userID string) ([]models.Notification, error) {
	list, err := s.notificationRepo.FindByUser(db, userID, notificationListLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return list, nil
}

func (s *notificationService) MarkAsRead(db *gorm.DB, userID, notificationID string) error {
	if err := s.notificationRepo.MarkRead(db, notificationID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(db *gorm.DB, userID string) (*dto.MarkAllReadResponse, error) {
	updated, err := s.notificationRepo.MarkAllRead(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.MarkAllReadResponse{Message: "All notifications marked as read", Updated: updated}, nil
}

func (s *notificationService) GetUnreadCount(db *gorm.DB, userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}
