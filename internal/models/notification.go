package models

// NotificationKind classifies a notification for display purposes.
type NotificationKind string

const (
	NotifyConfirmation NotificationKind = "confirmation"
	NotifyReminder     NotificationKind = "reminder"
	NotifyCancellation NotificationKind = "cancellation"
	NotifyWarning      NotificationKind = "warning"
	NotifyInformation  NotificationKind = "information"
)

// Notification is a persisted message delivered to a user's inbox.
// Creation is fire-and-forget from the caller's point of view: a failed
// insert is logged, never propagated into the business operation.
type Notification struct {
	BaseModel
	UserID      string           `gorm:"size:36;index" json:"userId"`
	Message     string           `gorm:"type:text" json:"message"`
	Kind        NotificationKind `gorm:"size:15;default:'information'" json:"kind"`
	Important   bool             `gorm:"default:false" json:"important"`
	Read        bool             `gorm:"default:false" json:"read"`
	RelatedKind string           `gorm:"size:30" json:"relatedKind,omitempty"`
	RelatedID   string           `gorm:"size:36" json:"relatedId,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
