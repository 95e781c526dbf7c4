package services

import (
	"errors"
	"pgstay-http-service/internal/domain/models"
	"pgstay-http-service/internal/infrastructure/config"
	Logger "pgstay-http-service/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken 用户名已被占用
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// InterfaceUserService defines the user service interface
type InterfaceUserService interface {
	Register(user *models.User) error
	Authenticate(username, password string) (*models.User, error)
	CreateTenant(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	EnsureDefaultLandlord(username, password, name string) error
}

// UserService 提供用户注册、登录相关的服务
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUserService 创建一个新的用户服务
func NewUserService(db *gorm.DB, cfg *config.Config) InterfaceUserService {
	return &UserService{
		DB:     db,
		Config: cfg,
	}
}

// 1 Register 注册房东账号
func (s *UserService) Register(user *models.User) error {
	// 验证用户名唯一性
	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUsernameTaken
	}

	// 注册入口只创建房东，房东不关联房间
	user.Role = models.RoleLandlord
	user.RoomID = nil
	return s.DB.Create(user).Error
}

// 2 Authenticate 校验用户名和密码
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// 3 CreateTenant 创建租客，如指定了房间则在同一事务内检查容量后写入
func (s *UserService) CreateTenant(user *models.User) error {
	user.Role = models.RoleTenant

	return s.DB.Transaction(func(tx *gorm.DB) error {
		// 验证用户名唯一性
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}

		// 如指定了房间，检查容量
		if user.RoomID != nil {
			if err := CheckRoomCapacity(tx, *user.RoomID, nil); err != nil {
				return err
			}
		}

		return tx.Create(user).Error
	})
}

// 4 GetUserByID 根据ID获取用户
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// 5 EnsureDefaultLandlord 服务启动时创建默认房东账号（已存在则跳过）
func (s *UserService) EnsureDefaultLandlord(username, password, name string) error {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		Logger.Info("默认房东账号已存在: %s", username)
		return nil
	}

	landlord := &models.User{
		Username: username,
		Password: password,
		Role:     models.RoleLandlord,
		Name:     name,
	}
	if err := s.DB.Create(landlord).Error; err != nil {
		return err
	}

	Logger.Info("默认房东账号已创建: %s", username)
	return nil
}
