package models

import (
	"gorm.io/gorm"
)

// 用户角色
const (
	RoleTenant   = "tenant"
	RoleLandlord = "landlord"
)

// User represents both tenants and landlords
type User struct {
	BaseModel
	Username       string `gorm:"type:varchar(100);unique;not null" json:"username"`
	Password       string `gorm:"type:varchar(100);not null" json:"-"` // 不在JSON中暴露密码
	Role           string `gorm:"type:varchar(20);not null" json:"role"`
	Name           string `gorm:"type:varchar(100);not null" json:"name"`
	Age            *int   `gorm:"type:int" json:"age"`
	Phone          string `gorm:"type:varchar(20)" json:"phone"`
	RoomID         *uint  `gorm:"index" json:"room_id"` // 房东的RoomID始终为空
	CautionDeposit *int   `gorm:"type:int" json:"caution_deposit"`

	// Relations
	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

// IsTenant 判断用户是否为租客
func (u *User) IsTenant() bool {
	return u.Role == RoleTenant
}

// IsLandlord 判断用户是否为房东
func (u *User) IsLandlord() bool {
	return u.Role == RoleLandlord
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行。
// 创建时BeforeSave先执行，这里同样要跳过已哈希的密码，避免二次哈希。
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Password != "" && len(u.Password) < 60 {
		hashedPassword, err := HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}

// BeforeSave 是一个GORM钩子，在保存记录前运行
func (u *User) BeforeSave(tx *gorm.DB) error {
	// 如果提供了密码且不是已哈希的，对其进行哈希处理
	if u.Password != "" && len(u.Password) < 60 {
		hashedPassword, err := HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}
