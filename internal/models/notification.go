package models

type Notification struct {
	BaseModel
	UserID  string           `gorm:"type:varchar(36);not null;index" json:"userId"`
	Title   string           `gorm:"not null" json:"title"`
	Message string           `gorm:"not null" json:"message"`
	Type    NotificationType `gorm:"type:varchar(20);not null;default:'system'" json:"type"`
	Read    bool             `gorm:"column:is_read;default:false" json:"read"`
	Link    string           `json:"link,omitempty"`
}
