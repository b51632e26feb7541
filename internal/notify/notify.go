package notify

import (
	"log"

	"gorm.io/gorm"

	"hospital-management-server/internal/models"
)

// Recorder persists notifications to the user's inbox. Delivery is
// fire-and-forget with at-least-once semantics from the caller's point of
// view: a failed insert is logged and never fails the business operation
// that produced it.
type Recorder struct {
	DB *gorm.DB
}

// NewRecorder creates a new Recorder.
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{DB: db}
}

// Notify records one notification for the given user.
func (r *Recorder) Notify(userID, message string, kind models.NotificationKind, important bool, relatedKind, relatedID string) {
	notification := models.Notification{
		UserID:      userID,
		Message:     message,
		Kind:        kind,
		Important:   important,
		RelatedKind: relatedKind,
		RelatedID:   relatedID,
	}
	if err := r.DB.Create(&notification).Error; err != nil {
		log.Printf("Failed to record notification for user %s: %v", userID, err)
	}
}

// MarkRead flags a notification as read, scoped to its owner.
func (r *Recorder) MarkRead(notificationID, userID string) error {
	result := r.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ForUser lists a user's notifications, most recent first.
func (r *Recorder) ForUser(userID string, unreadOnly bool) ([]models.Notification, error) {
	query := r.DB.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}
	var notifications []models.Notification
	err := query.Order("created_at desc").Find(&notifications).Error
	return notifications, err
}
