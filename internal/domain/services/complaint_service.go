package services

import (
	"errors"
	"pgstay-http-service/internal/domain/models"
	"pgstay-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

var (
	// ErrComplaintNotFound 投诉不存在
	ErrComplaintNotFound = errors.New("complaint not found")
	// ErrInvalidComplaintStatus 无效的投诉状态
	ErrInvalidComplaintStatus = errors.New("invalid complaint status")
)

// InterfaceComplaintService defines the complaint service interface
type InterfaceComplaintService interface {
	CreateComplaint(complaint *models.Complaint) error
	GetComplaintsForUser(userID uint, role string) ([]models.Complaint, error)
	UpdateComplaint(id uint, status *string, landlordRemark *string) (*models.Complaint, error)
}

// ComplaintService 提供投诉相关的服务
type ComplaintService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewComplaintService 创建一个新的投诉服务
func NewComplaintService(db *gorm.DB, cfg *config.Config) InterfaceComplaintService {
	return &ComplaintService{
		DB:     db,
		Config: cfg,
	}
}

// 1 CreateComplaint 创建投诉，初始状态为open
func (s *ComplaintService) CreateComplaint(complaint *models.Complaint) error {
	complaint.Status = models.ComplaintStatusOpen
	return s.DB.Create(complaint).Error
}

// 2 GetComplaintsForUser 按角色过滤投诉：租客只看自己的，房东看全部
func (s *ComplaintService) GetComplaintsForUser(userID uint, role string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	query := s.DB.Order("created_at DESC")
	if role == models.RoleTenant {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

// 3 UpdateComplaint 更新投诉状态和/或房东备注，两个字段相互独立。
// 状态在三个取值之间自由流转，已解决的投诉可以重新打开。
func (s *ComplaintService) UpdateComplaint(id uint, status *string, landlordRemark *string) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := s.DB.First(&complaint, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if status != nil {
		if !models.IsValidComplaintStatus(*status) {
			return nil, ErrInvalidComplaintStatus
		}
		updates["status"] = *status
	}
	if landlordRemark != nil {
		updates["landlord_remark"] = *landlordRemark
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&complaint).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return &complaint, nil
}
