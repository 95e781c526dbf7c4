package routes_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"pgstay-http-service/internal/app/routes"
	"pgstay-http-service/internal/domain/models"
	"pgstay-http-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// apiEnvelope 统一响应格式
type apiEnvelope struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	err = db.AutoMigrate(&models.Room{}, &models.User{}, &models.Complaint{}, &models.Payment{})
	assert.NoError(t, err)

	cfg := &config.Config{
		JWTSecretKey: "routes-test-secret",
	}
	return routes.SetupRouter(db, cfg)
}

func perform(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var envelope apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

// registerLandlord 注册房东并返回令牌
func registerLandlord(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := perform(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"password": "landlord123",
		"name":     "Landlord",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeEnvelope(t, w).Data
	return data["token"].(string)
}

// loginAs 登录并返回令牌
func loginAs(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := perform(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": password,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w).Data
	return data["token"].(string)
}

func TestHealthEndpoints(t *testing.T) {
	r := setupTestRouter(t)

	w := perform(t, r, http.MethodGet, "/api/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(t, r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(t, r, http.MethodGet, "/api/health/status", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSwaggerDoc(t *testing.T) {
	r := setupTestRouter(t)

	w := perform(t, r, http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "PGStay HTTP Service API")
	assert.Contains(t, w.Body.String(), "/auth/login")
}

func TestAuthFlow(t *testing.T) {
	r := setupTestRouter(t)

	token := registerLandlord(t, r, "owner@pg.in")

	// 重复注册返回409
	w := perform(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "owner@pg.in",
		"password": "other456",
		"name":     "Other",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Username already exists", decodeEnvelope(t, w).Message)

	// 登录成功
	loginToken := loginAs(t, r, "owner@pg.in", "landlord123")
	assert.NotEmpty(t, loginToken)

	// 密码错误返回401
	w = perform(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "owner@pg.in",
		"password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeEnvelope(t, w).Message)

	// 缺少必填字段返回400
	w = perform(t, r, http.MethodPost, "/api/auth/register", "", gin.H{"username": "incomplete@pg.in"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 获取当前用户信息
	w = perform(t, r, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	user := decodeEnvelope(t, w).Data["user"].(map[string]interface{})
	assert.Equal(t, "owner@pg.in", user["username"])
	assert.Equal(t, models.RoleLandlord, user["role"])

	// 缺少授权头返回401，无效令牌返回403
	w = perform(t, r, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = perform(t, r, http.MethodGet, "/api/auth/me", "not.a.token", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 注销（未配置Redis时仍然成功，只是不做黑名单）
	w = perform(t, r, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoomCapacityEndToEnd(t *testing.T) {
	r := setupTestRouter(t)
	landlordToken := registerLandlord(t, r, "owner@pg.in")

	// 创建上限为2的房间
	w := perform(t, r, http.MethodPost, "/api/rooms", landlordToken, gin.H{
		"room_number":     101,
		"max_tenants":     2,
		"rent_per_tenant": 5000,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	room := decodeEnvelope(t, w).Data["room"].(map[string]interface{})
	roomID := uint(room["id"].(float64))
	assert.Equal(t, float64(0), room["current_tenants"])

	createTenant := func(username string) *httptest.ResponseRecorder {
		return perform(t, r, http.MethodPost, "/api/auth/create-tenant", landlordToken, gin.H{
			"username": username,
			"password": "tenant123",
			"name":     "Tenant " + username,
			"room_id":  roomID,
		})
	}

	// 前两个租客入住成功
	assert.Equal(t, http.StatusCreated, createTenant("t1").Code)
	assert.Equal(t, http.StatusCreated, createTenant("t2").Code)

	// 第三个租客被容量检查拒绝
	w = createTenant("t3")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Room 101 is full (2/2 tenants)", decodeEnvelope(t, w).Message)

	// 用户名冲突在创建租客时按400返回
	w = createTenant("t1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username already exists", decodeEnvelope(t, w).Message)

	// 不存在的房间返回404
	w = perform(t, r, http.MethodPost, "/api/auth/create-tenant", landlordToken, gin.H{
		"username": "t4",
		"password": "tenant123",
		"name":     "Tenant t4",
		"room_id":  999,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 房间列表显示入住情况
	w = perform(t, r, http.MethodGet, "/api/rooms", landlordToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	rooms := decodeEnvelope(t, w).Data["rooms"].([]interface{})
	assert.Len(t, rooms, 1)
	assert.Equal(t, float64(2), rooms[0].(map[string]interface{})["current_tenants"])
}

func TestTenantAndPaymentFlow(t *testing.T) {
	r := setupTestRouter(t)
	landlordToken := registerLandlord(t, r, "owner@pg.in")

	w := perform(t, r, http.MethodPost, "/api/rooms", landlordToken, gin.H{
		"room_number":     201,
		"max_tenants":     2,
		"rent_per_tenant": 5000,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	roomID := uint(decodeEnvelope(t, w).Data["room"].(map[string]interface{})["id"].(float64))

	w = perform(t, r, http.MethodPost, "/api/auth/create-tenant", landlordToken, gin.H{
		"username": "ravi",
		"password": "tenant123",
		"name":     "Ravi",
		"room_id":  roomID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	tenantID := uint(decodeEnvelope(t, w).Data["tenant"].(map[string]interface{})["id"].(float64))

	tenantToken := loginAs(t, r, "ravi", "tenant123")

	// 角色边界：租客不能建房间，房东不能访问租客自助接口，匿名请求被拒
	w = perform(t, r, http.MethodPost, "/api/rooms", tenantToken, gin.H{
		"room_number": 999, "max_tenants": 1, "rent_per_tenant": 100,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = perform(t, r, http.MethodGet, "/api/tenants/me", landlordToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = perform(t, r, http.MethodGet, "/api/rooms", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 租客查看个人信息
	w = perform(t, r, http.MethodGet, "/api/tenants/me", tenantToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	profile := decodeEnvelope(t, w).Data["tenant"].(map[string]interface{})
	assert.Equal(t, float64(201), profile["room_number"])
	assert.Equal(t, float64(5000), profile["rent_per_tenant"])

	// 提交当月缴费凭证
	currentMonth := time.Now().Format("2006-01")
	w = perform(t, r, http.MethodPost, "/api/payments", tenantToken, gin.H{
		"month":     currentMonth,
		"proof_url": "https://cdn.example.com/proof.jpg",
		"amount":    5000,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	payment := decodeEnvelope(t, w).Data["payment"].(map[string]interface{})
	paymentID := uint(payment["id"].(float64))
	assert.Equal(t, models.PaymentStatusSubmitted, payment["status"])

	// 同月重复提交返回400
	w = perform(t, r, http.MethodPost, "/api/payments", tenantToken, gin.H{"month": currentMonth})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Payment already submitted for this month", decodeEnvelope(t, w).Message)

	// 月份格式错误返回400
	w = perform(t, r, http.MethodPost, "/api/payments", tenantToken, gin.H{"month": "2026-13"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 当月缴费状态
	w = perform(t, r, http.MethodGet, "/api/payments/current-month", tenantToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	status := decodeEnvelope(t, w).Data
	assert.Equal(t, true, status["has_paid"])
	assert.Equal(t, currentMonth, status["month"])

	// 指定月份（无记录）
	w = perform(t, r, http.MethodGet, "/api/payments/status/2020-01", tenantToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeEnvelope(t, w).Data["has_paid"])

	// 房东审核凭证
	w = perform(t, r, http.MethodPatch, "/api/payments/"+itoa(paymentID), landlordToken, gin.H{
		"status": models.PaymentStatusApproved,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PaymentStatusApproved, decodeEnvelope(t, w).Data["payment"].(map[string]interface{})["status"])

	// 租客列表带缴费状态
	w = perform(t, r, http.MethodGet, "/api/tenants", landlordToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	tenants := decodeEnvelope(t, w).Data["tenants"].([]interface{})
	assert.Len(t, tenants, 1)
	assert.Equal(t, true, tenants[0].(map[string]interface{})["has_paid_this_month"])

	// 房东更新租客信息
	w = perform(t, r, http.MethodPatch, "/api/tenants/"+itoa(tenantID), landlordToken, gin.H{
		"phone": "9876543210",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "9876543210", decodeEnvelope(t, w).Data["tenant"].(map[string]interface{})["phone"])

	// 房东删除租客
	w = perform(t, r, http.MethodDelete, "/api/tenants/"+itoa(tenantID), landlordToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = perform(t, r, http.MethodDelete, "/api/tenants/"+itoa(tenantID), landlordToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestComplaintFlow(t *testing.T) {
	r := setupTestRouter(t)
	landlordToken := registerLandlord(t, r, "owner@pg.in")

	w := perform(t, r, http.MethodPost, "/api/auth/create-tenant", landlordToken, gin.H{
		"username": "ravi",
		"password": "tenant123",
		"name":     "Ravi",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	tenantToken := loginAs(t, r, "ravi", "tenant123")

	// 租客提交投诉
	w = perform(t, r, http.MethodPost, "/api/complaints", tenantToken, gin.H{
		"title":       "Leaking tap",
		"description": "The bathroom tap has been leaking since Monday",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	complaint := decodeEnvelope(t, w).Data["complaint"].(map[string]interface{})
	complaintID := uint(complaint["id"].(float64))
	assert.Equal(t, models.ComplaintStatusOpen, complaint["status"])

	// 缺少描述返回400
	w = perform(t, r, http.MethodPost, "/api/complaints", tenantToken, gin.H{"title": "No details"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 租客和房东都能看到这条投诉
	w = perform(t, r, http.MethodGet, "/api/complaints", tenantToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeEnvelope(t, w).Data["complaints"].([]interface{}), 1)
	w = perform(t, r, http.MethodGet, "/api/complaints", landlordToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeEnvelope(t, w).Data["complaints"].([]interface{}), 1)

	// 房东更新状态和备注
	w = perform(t, r, http.MethodPatch, "/api/complaints/"+itoa(complaintID), landlordToken, gin.H{
		"status":          models.ComplaintStatusResolved,
		"landlord_remark": "Plumber fixed it on Friday",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	updated := decodeEnvelope(t, w).Data["complaint"].(map[string]interface{})
	assert.Equal(t, models.ComplaintStatusResolved, updated["status"])
	assert.Equal(t, "Plumber fixed it on Friday", updated["landlord_remark"])

	// 无效状态返回400
	w = perform(t, r, http.MethodPatch, "/api/complaints/"+itoa(complaintID), landlordToken, gin.H{
		"status": "closed",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 租客不能更新投诉状态
	w = perform(t, r, http.MethodPatch, "/api/complaints/"+itoa(complaintID), tenantToken, gin.H{
		"status": models.ComplaintStatusOpen,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
