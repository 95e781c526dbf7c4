package services

import (
	"errors"
	"pgstay-http-service/internal/domain/models"
	"pgstay-http-service/internal/infrastructure/config"
	"regexp"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrDuplicatePayment 当月已提交过缴费记录
	ErrDuplicatePayment = errors.New("payment already submitted for this month")
	// ErrPaymentNotFound 缴费记录不存在
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrInvalidMonth 月份格式错误
	ErrInvalidMonth = errors.New("invalid month format, expected YYYY-MM")
	// ErrInvalidPaymentStatus 无效的缴费状态
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// 月份键格式: YYYY-MM
var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// InterfacePaymentService defines the payment service interface
type InterfacePaymentService interface {
	SubmitPayment(userID uint, month string, proofURL *string, amount *int) (*models.Payment, error)
	GetPaymentStatus(userID uint, month string) (*models.Payment, bool, error)
	UpdatePaymentStatus(id uint, status string) (*models.Payment, error)
	ClearMonth(month string) (int64, error)
	CurrentMonth() string
}

// PaymentService 提供租金缴纳相关的服务
type PaymentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPaymentService 创建一个新的缴费服务
func NewPaymentService(db *gorm.DB, cfg *config.Config) InterfacePaymentService {
	return &PaymentService{
		DB:     db,
		Config: cfg,
	}
}

// 1 SubmitPayment 提交缴费凭证，每个租客每月只能有一条记录。
// 预检查和写入在同一事务内完成，(user_id, month)唯一索引兜底并发提交。
func (s *PaymentService) SubmitPayment(userID uint, month string, proofURL *string, amount *int) (*models.Payment, error) {
	if !monthPattern.MatchString(month) {
		return nil, ErrInvalidMonth
	}

	payment := &models.Payment{
		UserID:   userID,
		Month:    month,
		ProofURL: proofURL,
		Amount:   amount,
		Status:   models.PaymentStatusSubmitted,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Payment{}).
			Where("user_id = ? AND month = ?", userID, month).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicatePayment
		}

		return tx.Create(payment).Error
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// 2 GetPaymentStatus 查询某月的缴费记录。
// "已缴费"只看记录是否存在，与status取值无关，rejected的记录同样算已缴。
func (s *PaymentService) GetPaymentStatus(userID uint, month string) (*models.Payment, bool, error) {
	var payment models.Payment
	if err := s.DB.Where("user_id = ? AND month = ?", userID, month).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &payment, true, nil
}

// 3 UpdatePaymentStatus 房东审核缴费凭证，将状态置为approved或rejected
func (s *PaymentService) UpdatePaymentStatus(id uint, status string) (*models.Payment, error) {
	if !models.IsValidPaymentStatus(status) {
		return nil, ErrInvalidPaymentStatus
	}

	var payment models.Payment
	if err := s.DB.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if err := s.DB.Model(&payment).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// 4 ClearMonth 删除某月的全部缴费记录，返回删除的行数。
// 由运维CLI调用，用于把所有租客重置为未缴费状态。
func (s *PaymentService) ClearMonth(month string) (int64, error) {
	if !monthPattern.MatchString(month) {
		return 0, ErrInvalidMonth
	}

	result := s.DB.Where("month = ?", month).Delete(&models.Payment{})
	return result.RowsAffected, result.Error
}

// 5 CurrentMonth 当前月份键
func (s *PaymentService) CurrentMonth() string {
	return time.Now().Format("2006-01")
}
