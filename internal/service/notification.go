package service

import (
	"facility-cleaning-backend/internal/database/models"
	"facility-cleaning-backend/internal/logger"
	"facility-cleaning-backend/internal/repository"

	"github.com/google/uuid"
)

//go:generate mockgen -source=notification.go -destination=../mocks/notifier_mocks.go -package=mocks

// Notifier delivers staff notifications fire-and-forget. Delivery failures
// must never fail or roll back the configuration change that triggered them.
type Notifier interface {
	Notify(userID, senderID, workOrderID uuid.UUID, message string)
}

// NotificationService persists staff notifications
type NotificationService struct {
	repo *repository.NotificationRepository
	log  *logger.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		repo: repo,
		log:  logger.New(),
	}
}

// Notify writes one notification row. Errors are logged and swallowed.
func (s *NotificationService) Notify(userID, senderID, workOrderID uuid.UUID, message string) {
	notification := &models.Notification{
		UserID:      userID,
		SenderID:    senderID,
		WorkOrderID: workOrderID,
		Message:     message,
	}
	if err := s.repo.Create(notification); err != nil {
		s.log.WithWorkOrder(workOrderID).
			WithField("user_id", userID).
			Warnf("notification delivery failed: %v", err)
	}
}
