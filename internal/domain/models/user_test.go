package models_test

import (
	"strings"
	"testing"

	"pgstay-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Room{}, &models.User{}))
	return db
}

// 创建时BeforeSave和BeforeCreate都会执行，密码只能被哈希一次，
// 否则落库的是哈希的哈希，登录校验永远失败。
func TestPasswordHashedOnceOnCreate(t *testing.T) {
	db := setupUserDB(t)

	user := &models.User{
		Username: "ravi",
		Password: "secret123",
		Role:     models.RoleTenant,
		Name:     "Ravi",
	}
	assert.NoError(t, db.Create(user).Error)

	var stored models.User
	assert.NoError(t, db.First(&stored, user.ID).Error)
	assert.True(t, strings.HasPrefix(stored.Password, "$2"))
	assert.Len(t, stored.Password, 60)
	assert.True(t, models.CheckPasswordHash("secret123", stored.Password))
}

func TestPasswordNotRehashedOnSave(t *testing.T) {
	db := setupUserDB(t)

	user := &models.User{
		Username: "ravi",
		Password: "secret123",
		Role:     models.RoleTenant,
		Name:     "Ravi",
	}
	assert.NoError(t, db.Create(user).Error)
	hashAfterCreate := user.Password

	// 密码未变时重新保存，哈希保持不变
	user.Name = "Ravi Kumar"
	assert.NoError(t, db.Save(user).Error)

	var stored models.User
	assert.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, hashAfterCreate, stored.Password)
	assert.True(t, models.CheckPasswordHash("secret123", stored.Password))
}

func TestPasswordRehashedWhenChanged(t *testing.T) {
	db := setupUserDB(t)

	user := &models.User{
		Username: "ravi",
		Password: "secret123",
		Role:     models.RoleTenant,
		Name:     "Ravi",
	}
	assert.NoError(t, db.Create(user).Error)
	oldHash := user.Password

	user.Password = "newsecret456"
	assert.NoError(t, db.Save(user).Error)

	var stored models.User
	assert.NoError(t, db.First(&stored, user.ID).Error)
	assert.NotEqual(t, oldHash, stored.Password)
	assert.False(t, models.CheckPasswordHash("secret123", stored.Password))
	assert.True(t, models.CheckPasswordHash("newsecret456", stored.Password))
}
