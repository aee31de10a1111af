package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetNotifications = "notifications retrieved successfully"
	MessageSuccessMarkRead         = "notification marked as read"

	MessageFailedGetNotifications = "failed to retrieve notifications"
	MessageFailedMarkRead         = "failed to mark notification as read"

	ErrNotificationNotFound = errors.New("notification not found")
)

const (
	NotificationTypePurchase        = "purchase"
	NotificationTypeReferralEarning = "referral_earning"
)

type (
	NotificationResponse struct {
		ID        string    `json:"id"`
		Type      string    `json:"type"`
		Title     string    `json:"title"`
		Body      string    `json:"body"`
		Data      string    `json:"data,omitempty"`
		IsRead    bool      `json:"is_read"`
		CreatedAt time.Time `json:"created_at"`
	}
)
