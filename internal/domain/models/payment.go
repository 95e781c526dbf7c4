package models

// 缴费状态
const (
	PaymentStatusSubmitted = "submitted"
	PaymentStatusApproved  = "approved"
	PaymentStatusRejected  = "rejected"
)

// Payment represents a rent payment proof submitted by a tenant.
// (user_id, month)上的唯一索引兜底并发的重复提交，预检查仍负责返回契约错误。
type Payment struct {
	BaseModel
	UserID   uint    `gorm:"uniqueIndex:idx_user_month;not null" json:"user_id"`
	Month    string  `gorm:"type:varchar(7);uniqueIndex:idx_user_month;not null" json:"month"` // 格式: YYYY-MM
	ProofURL *string `gorm:"type:varchar(500)" json:"proof_url"`
	Amount   *int    `gorm:"type:int" json:"amount"`
	Status   string  `gorm:"type:varchar(20);not null;default:'submitted'" json:"status"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// IsValidPaymentStatus 校验缴费状态取值
func IsValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusSubmitted, PaymentStatusApproved, PaymentStatusRejected:
		return true
	}
	return false
}
