package services

import (
	"errors"
	"pgstay-http-service/internal/domain/models"
	"pgstay-http-service/internal/infrastructure/config"
	"time"

	"gorm.io/gorm"
)

// ErrTenantNotFound 租客不存在
var ErrTenantNotFound = errors.New("tenant not found")

// TenantInfo 房东视角的租客列表项
type TenantInfo struct {
	ID               uint      `json:"id"`
	Username         string    `json:"username"`
	Name             string    `json:"name"`
	Age              *int      `json:"age"`
	Phone            string    `json:"phone"`
	RoomID           *uint     `json:"room_id"`
	RoomNumber       *int      `json:"room_number"`
	CautionDeposit   *int      `json:"caution_deposit"`
	CreatedAt        time.Time `json:"created_at"`
	HasPaidThisMonth bool      `json:"has_paid_this_month"`
}

// TenantProfile 租客视角的个人信息，带所在房间的租金信息
type TenantProfile struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	Age            *int   `json:"age"`
	Phone          string `json:"phone"`
	RoomID         *uint  `json:"room_id"`
	CautionDeposit *int   `json:"caution_deposit"`
	RoomNumber     *int   `json:"room_number"`
	MaxTenants     *int   `json:"max_tenants"`
	RentPerTenant  *int   `json:"rent_per_tenant"`
}

// Roommate 同房间的其他租客
type Roommate struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Age  *int   `json:"age"`
}

// InterfaceTenantService defines the tenant service interface
type InterfaceTenantService interface {
	GetAllTenants() ([]TenantInfo, error)
	GetTenantProfile(userID uint) (*TenantProfile, []Roommate, error)
	UpdateTenant(id uint, updates map[string]interface{}) (*models.User, error)
	DeleteTenant(id uint) (*models.User, error)
}

// TenantService 提供租客管理相关的服务
type TenantService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewTenantService 创建一个新的租客服务
func NewTenantService(db *gorm.DB, cfg *config.Config) InterfaceTenantService {
	return &TenantService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllTenants 获取所有租客，附带房间号和当月缴费状态。
// 缴费状态只看记录是否存在，与记录的status取值无关。
func (s *TenantService) GetAllTenants() ([]TenantInfo, error) {
	var tenants []models.User
	if err := s.DB.Preload("Room").
		Where("role = ?", models.RoleTenant).
		Find(&tenants).Error; err != nil {
		return nil, err
	}

	// 当月已有缴费记录的租客集合
	currentMonth := time.Now().Format("2006-01")
	var payments []models.Payment
	if err := s.DB.Where("month = ?", currentMonth).Find(&payments).Error; err != nil {
		return nil, err
	}
	paidUsers := make(map[uint]bool, len(payments))
	for _, p := range payments {
		paidUsers[p.UserID] = true
	}

	result := make([]TenantInfo, 0, len(tenants))
	for _, t := range tenants {
		info := TenantInfo{
			ID:               t.ID,
			Username:         t.Username,
			Name:             t.Name,
			Age:              t.Age,
			Phone:            t.Phone,
			RoomID:           t.RoomID,
			CautionDeposit:   t.CautionDeposit,
			CreatedAt:        t.CreatedAt,
			HasPaidThisMonth: paidUsers[t.ID],
		}
		if t.Room != nil {
			roomNumber := t.Room.RoomNumber
			info.RoomNumber = &roomNumber
		}
		result = append(result, info)
	}
	return result, nil
}

// 2 GetTenantProfile 获取租客本人信息及同房间的室友
func (s *TenantService) GetTenantProfile(userID uint) (*TenantProfile, []Roommate, error) {
	var tenant models.User
	if err := s.DB.Preload("Room").
		Where("id = ? AND role = ?", userID, models.RoleTenant).
		First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTenantNotFound
		}
		return nil, nil, err
	}

	profile := &TenantProfile{
		ID:             tenant.ID,
		Username:       tenant.Username,
		Name:           tenant.Name,
		Age:            tenant.Age,
		Phone:          tenant.Phone,
		RoomID:         tenant.RoomID,
		CautionDeposit: tenant.CautionDeposit,
	}
	if tenant.Room != nil {
		profile.RoomNumber = &tenant.Room.RoomNumber
		profile.MaxTenants = &tenant.Room.MaxTenants
		profile.RentPerTenant = &tenant.Room.RentPerTenant
	}

	// 同房间的室友（不含本人）
	roommates := []Roommate{}
	if tenant.RoomID != nil {
		var others []models.User
		if err := s.DB.Where("room_id = ? AND role = ? AND id != ?", *tenant.RoomID, models.RoleTenant, tenant.ID).
			Find(&others).Error; err != nil {
			return nil, nil, err
		}
		for _, o := range others {
			roommates = append(roommates, Roommate{ID: o.ID, Name: o.Name, Age: o.Age})
		}
	}

	return profile, roommates, nil
}

// 3 UpdateTenant 更新租客信息。换房时在同一事务内重新检查目标房间容量，
// 计数排除本人，重复保存同一房间不会把自己算作占用。
func (s *TenantService) UpdateTenant(id uint, updates map[string]interface{}) (*models.User, error) {
	var tenant models.User

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND role = ?", id, models.RoleTenant).First(&tenant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTenantNotFound
			}
			return err
		}

		if roomID, ok := updates["room_id"]; ok {
			targetRoom, ok := roomID.(uint)
			if !ok {
				return errors.New("invalid room id")
			}
			excludeID := tenant.ID
			if err := CheckRoomCapacity(tx, targetRoom, &excludeID); err != nil {
				return err
			}
		}

		return tx.Model(&tenant).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	// 返回更新后的记录
	if err := s.DB.First(&tenant, id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// 4 DeleteTenant 删除租客并返回被删除的记录
func (s *TenantService) DeleteTenant(id uint) (*models.User, error) {
	var tenant models.User
	if err := s.DB.Where("id = ? AND role = ?", id, models.RoleTenant).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	if err := s.DB.Delete(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}
