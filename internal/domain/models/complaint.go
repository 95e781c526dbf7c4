package models

// 投诉状态
const (
	ComplaintStatusOpen       = "open"
	ComplaintStatusInProgress = "in_progress"
	ComplaintStatusResolved   = "resolved"
)

// Complaint represents a maintenance complaint raised by a tenant
type Complaint struct {
	BaseModel
	UserID         uint    `gorm:"index;not null" json:"user_id"`
	RoomID         *uint   `gorm:"index" json:"room_id"`
	Title          string  `gorm:"type:varchar(200);not null" json:"title"`
	Description    string  `gorm:"type:text;not null" json:"description"`
	Status         string  `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	LandlordRemark *string `gorm:"type:text" json:"landlord_remark"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

// IsValidComplaintStatus 校验投诉状态取值
func IsValidComplaintStatus(status string) bool {
	switch status {
	case ComplaintStatusOpen, ComplaintStatusInProgress, ComplaintStatusResolved:
		return true
	}
	return false
}
