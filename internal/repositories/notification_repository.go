package repositories

import (
	"socialite/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations.
// Like and comment notifications are created through their triggering
// repository's transaction, not here.
type NotificationRepository interface {
	GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAsRead(notificationID, recipientID uint) error
	MarkAllAsRead(recipientID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a NotificationRepository backed by PostgreSQL
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

// GetByRecipientID returns the recipient's notifications, unread first and
// newest first within each group.
func (r *postgresNotificationRepository) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	if err := r.db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Preload("Actor").
		Where("recipient_id = ?", recipientID).
		Order("is_read ASC").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("recipient_id = ? AND is_read = ?", recipientID, false).Count(&count).Error
	return count, err
}

// MarkAsRead flips is_read for a notification addressed to recipientID.
// A missing row and a row belonging to someone else are indistinguishable
// to the caller: both return gorm.ErrRecordNotFound.
func (r *postgresNotificationRepository) MarkAsRead(notificationID, recipientID uint) error {
	var notification models.Notification
	if err := r.db.Where("id = ? AND recipient_id = ?", notificationID, recipientID).First(&notification).Error; err != nil {
		return err
	}
	if notification.IsRead {
		return ErrAlreadyRead
	}
	return r.db.Model(&notification).Update("is_read", true).Error
}

func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint) error {
	return r.db.Model(&models.Notification{}).Where("recipient_id = ? AND is_read = ?", recipientID, false).Update("is_read", true).Error
}
