package services

import (
	"errors"
	"fmt"
	"pgstay-http-service/internal/domain/models"
	"pgstay-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// ErrRoomNotFound 房间不存在
var ErrRoomNotFound = errors.New("room not found")

// CapacityError 房间满员错误，消息格式是对外契约的一部分
type CapacityError struct {
	RoomNumber     int
	CurrentTenants int
	MaxTenants     int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("Room %d is full (%d/%d tenants)", e.RoomNumber, e.CurrentTenants, e.MaxTenants)
}

// CheckRoomCapacity 房间分配的核心检查：入住人数不得超过房间上限。
// excludeTenantID 用于重新保存已入住租客时把自己从计数中排除。
// 调用方应在同一事务内完成检查和写入，占用数始终按现存租客行实时统计。
func CheckRoomCapacity(db *gorm.DB, roomID uint, excludeTenantID *uint) error {
	var room models.Room
	if err := db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}

	query := db.Model(&models.User{}).
		Where("room_id = ? AND role = ?", roomID, models.RoleTenant)
	if excludeTenantID != nil {
		query = query.Where("id != ?", *excludeTenantID)
	}

	var currentTenants int64
	if err := query.Count(&currentTenants).Error; err != nil {
		return err
	}

	if currentTenants >= int64(room.MaxTenants) {
		return &CapacityError{
			RoomNumber:     room.RoomNumber,
			CurrentTenants: int(currentTenants),
			MaxTenants:     room.MaxTenants,
		}
	}

	return nil
}

// InterfaceRoomService defines the room service interface
type InterfaceRoomService interface {
	GetAllRooms() ([]RoomWithOccupancy, error)
	GetRoomByID(id uint) (*models.Room, error)
	CreateRoom(room *models.Room) error
	CheckCapacity(roomID uint, excludeTenantID *uint) error
}

// RoomWithOccupancy 房间及其当前入住情况
type RoomWithOccupancy struct {
	models.Room
	CurrentTenants int `json:"current_tenants"`
}

// RoomService 提供房间相关的服务
type RoomService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewRoomService 创建一个新的房间服务
func NewRoomService(db *gorm.DB, cfg *config.Config) InterfaceRoomService {
	return &RoomService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllRooms 获取所有房间及当前入住的租客
func (s *RoomService) GetAllRooms() ([]RoomWithOccupancy, error) {
	var rooms []models.Room
	if err := s.DB.Preload("Tenants", "role = ?", models.RoleTenant).Find(&rooms).Error; err != nil {
		return nil, err
	}

	result := make([]RoomWithOccupancy, 0, len(rooms))
	for _, room := range rooms {
		result = append(result, RoomWithOccupancy{
			Room:           room,
			CurrentTenants: len(room.Tenants),
		})
	}
	return result, nil
}

// 2 GetRoomByID 根据ID获取房间
func (s *RoomService) GetRoomByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// 3 CreateRoom 创建新房间
func (s *RoomService) CreateRoom(room *models.Room) error {
	if room.MaxTenants < 1 {
		return errors.New("max tenants must be at least 1")
	}
	if room.RentPerTenant < 0 {
		return errors.New("rent per tenant must not be negative")
	}
	return s.DB.Create(room).Error
}

// 4 CheckCapacity 检查房间容量
func (s *RoomService) CheckCapacity(roomID uint, excludeTenantID *uint) error {
	return CheckRoomCapacity(s.DB, roomID, excludeTenantID)
}
