package services_test

import (
	"testing"
	"time"

	"pgstay-http-service/internal/domain/models"
	"pgstay-http-service/internal/domain/services"
	"pgstay-http-service/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndExtractClaims(t *testing.T) {
	db := setupTestDB(t)
	jwtService := services.NewJWTService(testConfig(), db)

	user := &models.User{
		BaseModel: models.BaseModel{ID: 42},
		Username:  "ravi",
		Role:      models.RoleTenant,
	}

	token, err := jwtService.GenerateToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.ExtractClaims(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ravi", claims.Username)
	assert.Equal(t, models.RoleTenant, claims.Role)

	// jti用于注销黑名单，必须存在
	assert.NotEmpty(t, claims.ID)

	// 有效期7天
	assert.WithinDuration(t, time.Now().Add(services.TokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateToken(t *testing.T) {
	db := setupTestDB(t)
	jwtService := services.NewJWTService(testConfig(), db)

	user := &models.User{BaseModel: models.BaseModel{ID: 1}, Username: "owner", Role: models.RoleLandlord}
	token, err := jwtService.GenerateToken(user)
	assert.NoError(t, err)

	parsed, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	db := setupTestDB(t)
	jwtService := services.NewJWTService(testConfig(), db)

	user := &models.User{BaseModel: models.BaseModel{ID: 1}, Username: "owner", Role: models.RoleLandlord}
	token, err := jwtService.GenerateToken(user)
	assert.NoError(t, err)

	otherService := services.NewJWTService(&config.Config{JWTSecretKey: "another-secret"}, db)
	_, err = otherService.ValidateToken(token)
	assert.Error(t, err)

	_, err = otherService.ExtractClaims(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	db := setupTestDB(t)
	jwtService := services.NewJWTService(testConfig(), db)

	_, err := jwtService.ValidateToken("not.a.token")
	assert.Error(t, err)
}
