package services_test

import (
	"errors"
	"testing"

	"pgstay-http-service/internal/domain/models"
	"pgstay-http-service/internal/domain/services"
	"pgstay-http-service/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB 创建内存数据库并迁移全部表
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	err = db.AutoMigrate(&models.Room{}, &models.User{}, &models.Complaint{}, &models.Payment{})
	assert.NoError(t, err)
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey: "test-secret-key",
	}
}

func createTestRoom(t *testing.T, db *gorm.DB, number, maxTenants, rent int) *models.Room {
	t.Helper()
	room := &models.Room{RoomNumber: number, MaxTenants: maxTenants, RentPerTenant: rent}
	assert.NoError(t, db.Create(room).Error)
	return room
}

func createTestTenant(t *testing.T, db *gorm.DB, username string, roomID *uint) *models.User {
	t.Helper()
	tenant := &models.User{
		Username: username,
		Password: "password123",
		Role:     models.RoleTenant,
		Name:     "Tenant " + username,
		RoomID:   roomID,
	}
	assert.NoError(t, db.Create(tenant).Error)
	return tenant
}

func TestCheckRoomCapacity(t *testing.T) {
	db := setupTestDB(t)
	room := createTestRoom(t, db, 101, 2, 5000)

	// 空房间可入住
	err := services.CheckRoomCapacity(db, room.ID, nil)
	assert.NoError(t, err)

	// 一人入住后仍有空位
	createTestTenant(t, db, "t1", &room.ID)
	err = services.CheckRoomCapacity(db, room.ID, nil)
	assert.NoError(t, err)

	// 满员后拒绝新入住，错误消息是对外契约
	createTestTenant(t, db, "t2", &room.ID)
	err = services.CheckRoomCapacity(db, room.ID, nil)
	assert.Error(t, err)
	var capErr *services.CapacityError
	assert.True(t, errors.As(err, &capErr))
	assert.Equal(t, "Room 101 is full (2/2 tenants)", err.Error())
	assert.Equal(t, 2, capErr.CurrentTenants)
	assert.Equal(t, 2, capErr.MaxTenants)
}

func TestCheckRoomCapacityExcludesSelf(t *testing.T) {
	db := setupTestDB(t)
	room := createTestRoom(t, db, 102, 1, 4000)
	tenant := createTestTenant(t, db, "t1", &room.ID)

	// 不排除本人时房间已满
	err := services.CheckRoomCapacity(db, room.ID, nil)
	assert.Error(t, err)

	// 排除本人后重新保存到同一房间不受影响
	err = services.CheckRoomCapacity(db, room.ID, &tenant.ID)
	assert.NoError(t, err)
}

func TestCheckRoomCapacityIgnoresLandlords(t *testing.T) {
	db := setupTestDB(t)
	room := createTestRoom(t, db, 103, 1, 4000)

	// 非租客角色不计入占用
	landlord := &models.User{
		Username: "boss",
		Password: "password123",
		Role:     models.RoleLandlord,
		Name:     "Boss",
		RoomID:   &room.ID,
	}
	assert.NoError(t, db.Create(landlord).Error)

	err := services.CheckRoomCapacity(db, room.ID, nil)
	assert.NoError(t, err)
}

func TestCheckRoomCapacityRoomNotFound(t *testing.T) {
	db := setupTestDB(t)
	err := services.CheckRoomCapacity(db, 999, nil)
	assert.ErrorIs(t, err, services.ErrRoomNotFound)
}

func TestCreateRoom(t *testing.T) {
	db := setupTestDB(t)
	roomService := services.NewRoomService(db, testConfig())

	err := roomService.CreateRoom(&models.Room{RoomNumber: 201, MaxTenants: 3, RentPerTenant: 6000})
	assert.NoError(t, err)

	// 上限必须至少为1
	err = roomService.CreateRoom(&models.Room{RoomNumber: 202, MaxTenants: 0, RentPerTenant: 6000})
	assert.Error(t, err)

	// 租金不能为负
	err = roomService.CreateRoom(&models.Room{RoomNumber: 203, MaxTenants: 2, RentPerTenant: -1})
	assert.Error(t, err)
}

func TestGetAllRoomsWithOccupancy(t *testing.T) {
	db := setupTestDB(t)
	roomService := services.NewRoomService(db, testConfig())

	roomA := createTestRoom(t, db, 301, 2, 5000)
	createTestRoom(t, db, 302, 3, 4500)
	createTestTenant(t, db, "a1", &roomA.ID)
	createTestTenant(t, db, "a2", &roomA.ID)

	rooms, err := roomService.GetAllRooms()
	assert.NoError(t, err)
	assert.Len(t, rooms, 2)

	byNumber := make(map[int]services.RoomWithOccupancy)
	for _, r := range rooms {
		byNumber[r.RoomNumber] = r
	}
	assert.Equal(t, 2, byNumber[301].CurrentTenants)
	assert.Equal(t, 0, byNumber[302].CurrentTenants)
}

func TestGetRoomByID(t *testing.T) {
	db := setupTestDB(t)
	roomService := services.NewRoomService(db, testConfig())

	room := createTestRoom(t, db, 401, 2, 5000)

	found, err := roomService.GetRoomByID(room.ID)
	assert.NoError(t, err)
	assert.Equal(t, 401, found.RoomNumber)

	_, err = roomService.GetRoomByID(999)
	assert.ErrorIs(t, err, services.ErrRoomNotFound)
}
