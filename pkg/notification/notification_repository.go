package notification

import (
	"Go-Course-Market/entities"
	"context"
	"gorm.io/gorm"
)

type (
	NotificationRepository interface {
		CreateNotification(ctx context.Context, notification *entities.Notification) error
		GetUserNotifications(ctx context.Context, userID string, page, limit int) ([]*entities.Notification, int64, error)
		GetNotificationByID(ctx context.Context, id string) (*entities.Notification, error)
		MarkRead(ctx context.Context, id string) error
	}

	notificationRepository struct {
		db *gorm.DB
	}
)

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, notification *entities.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) GetUserNotifications(ctx context.Context, userID string, page, limit int) ([]*entities.Notification, int64, error) {
	var notifications []*entities.Notification
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, count, nil
}

func (r *notificationRepository) GetNotificationByID(ctx context.Context, id string) (*entities.Notification, error) {
	var notification entities.Notification
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}
