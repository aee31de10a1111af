package notification

import (
	"Go-Course-Market/domain"
	"Go-Course-Market/entities"
	"Go-Course-Market/internal/utils/mailing"
	"Go-Course-Market/pkg/user"
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// Sink is the fire-and-forget notification contract consumed by the
	// purchase recorder. Delivery failures are logged, never propagated.
	Sink interface {
		Enqueue(ctx context.Context, userID uuid.UUID, notifType, title, body, data string)
	}

	NotificationService interface {
		Sink
		GetNotifications(ctx context.Context, userID string, page, limit int) ([]*domain.NotificationResponse, int64, error)
		MarkRead(ctx context.Context, notificationID, userID string) error
	}

	notificationService struct {
		notificationRepository NotificationRepository
		userRepository         user.UserRepository
	}
)

func NewNotificationService(notificationRepository NotificationRepository, userRepository user.UserRepository) NotificationService {
	return &notificationService{
		notificationRepository: notificationRepository,
		userRepository:         userRepository,
	}
}

func (s *notificationService) Enqueue(ctx context.Context, userID uuid.UUID, notifType, title, body, data string) {
	notification := &entities.Notification{
		ID:     uuid.New(),
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Data:   data,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	if err := s.notificationRepository.CreateNotification(ctx, notification); err != nil {
		log.Printf("failed to store notification for user %s: %v", userID, err)
		return
	}

	// Email delivery is best effort, off the request path.
	go s.sendEmail(userID.String(), title, body)
}

func (s *notificationService) sendEmail(userID, subject, body string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	recipient, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		log.Printf("failed to resolve notification recipient %s: %v", userID, err)
		return
	}

	if err := mailing.SendMail(recipient.Email, subject, body); err != nil {
		log.Printf("failed to send notification mail to %s: %v", recipient.Email, err)
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID string, page, limit int) ([]*domain.NotificationResponse, int64, error) {
	notifications, count, err := s.notificationRepository.GetUserNotifications(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, &domain.NotificationResponse{
			ID:        n.ID.String(),
			Type:      n.Type,
			Title:     n.Title,
			Body:      n.Body,
			Data:      n.Data,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}

	return result, count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	notification, err := s.notificationRepository.GetNotificationByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotificationNotFound
		}
		return err
	}

	if notification.UserID.String() != userID {
		return domain.ErrUserNotAllowed
	}

	return s.notificationRepository.MarkRead(ctx, notificationID)
}
