package controllers

import (
	"errors"
	"time"

	"pgstay-http-service/internal/domain/models"
	"pgstay-http-service/internal/domain/services"
	"pgstay-http-service/internal/domain/services/container"
	"pgstay-http-service/internal/error/code"
	"pgstay-http-service/internal/error/response"
	Logger "pgstay-http-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// InterfaceAuthController 定义认证控制器接口
type InterfaceAuthController interface {
	Register()
	Login()
	CreateTenant()
	Me()
	Logout()
}

// AuthController 处理注册、登录和账号相关的请求
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController 创建一个新的认证控制器
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// RegisterRequest 表示房东注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required" example:"landlord@pg.in"`
	Password string `json:"password" binding:"required" example:"landlord123"`
	Name     string `json:"name" binding:"required" example:"Ramesh Kumar"`
	Age      *int   `json:"age" example:"45"`
	Phone    string `json:"phone" example:"9812345678"`
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"landlord@pg.in"`
	Password string `json:"password" binding:"required" example:"landlord123"`
}

// CreateTenantRequest 表示房东创建租客的请求
type CreateTenantRequest struct {
	Username       string `json:"username" binding:"required" example:"tenant1@pg.in"`
	Password       string `json:"password" binding:"required" example:"tenant123"`
	Name           string `json:"name" binding:"required" example:"Suresh"`
	Age            *int   `json:"age" example:"24"`
	Phone          string `json:"phone" example:"9887654321"`
	RoomID         *uint  `json:"room_id" example:"1"` // 可选，入住的房间ID
	CautionDeposit *int   `json:"caution_deposit" example:"10000"`
}

// ErrorResponse 表示错误响应
type ErrorResponse struct {
	Code    int         `json:"code" example:"401"`
	Message string      `json:"message" example:"Invalid credentials"`
	Data    interface{} `json:"data"`
}

// userPayload 登录/注册响应中的用户信息
func userPayload(user *models.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
		"name":     user.Name,
	}
}

// Register 注册房东账号
// @Summary      房东注册
// @Description  创建房东账号并返回JWT令牌
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "注册请求参数"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /auth/register [post]
func (c *AuthController) Register() {
	var req RegisterRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Username, password, and name are required", nil)
		return
	}

	user := &models.User{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Age:      req.Age,
		Phone:    req.Phone,
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.Register(user); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			response.Fail(c.Ctx, code.ErrUserAlreadyExist, nil)
			return
		}
		Logger.Error("注册失败: %v", err)
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	token, err := jwtService.GenerateToken(user)
	if err != nil {
		response.Fail(c.Ctx, code.ErrUnknown, nil)
		return
	}

	response.Created(c.Ctx, gin.H{
		"token": token,
		"user":  userPayload(user),
	})
}

// Login 处理用户登录（房东和租客共用）
// @Summary      用户登录
// @Description  校验用户名密码并返回JWT令牌
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "登录请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Username and password are required", nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Fail(c.Ctx, code.ErrUserPasswordIncorrect, nil)
			return
		}
		Logger.Error("登录失败: %v", err)
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	token, err := jwtService.GenerateToken(user)
	if err != nil {
		response.Fail(c.Ctx, code.ErrUnknown, nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"token": token,
		"user":  userPayload(user),
	})
}

// CreateTenant 房东创建租客账号
// @Summary      创建租客
// @Description  房东创建租客账号，可同时分配房间（受容量限制）
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body CreateTenantRequest true "创建租客请求参数"
// @Security     BearerAuth
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /auth/create-tenant [post]
func (c *AuthController) CreateTenant() {
	var req CreateTenantRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Username, password, and name are required", nil)
		return
	}

	tenant := &models.User{
		Username:       req.Username,
		Password:       req.Password,
		Name:           req.Name,
		Age:            req.Age,
		Phone:          req.Phone,
		RoomID:         req.RoomID,
		CautionDeposit: req.CautionDeposit,
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.CreateTenant(tenant); err != nil {
		// 与注册不同，创建租客时用户名冲突按400返回
		if errors.Is(err, services.ErrUsernameTaken) {
			response.FailWithMessage(c.Ctx, code.ErrValidation, "Username already exists", nil)
			return
		}
		if errors.Is(err, services.ErrRoomNotFound) {
			response.FailWithMessage(c.Ctx, code.ErrRoomNotFound, "Room not found", nil)
			return
		}
		var capErr *services.CapacityError
		if errors.As(err, &capErr) {
			response.FailWithMessage(c.Ctx, code.ErrRoomFull, capErr.Error(), nil)
			return
		}
		Logger.Error("创建租客失败: %v", err)
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Created(c.Ctx, gin.H{
		"tenant": userPayload(tenant),
	})
}

// Me 获取当前登录用户信息
// @Summary      当前用户信息
// @Description  根据令牌返回当前用户的详细信息
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /auth/me [get]
func (c *AuthController) Me() {
	userID := c.Ctx.GetUint("userID")

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.NotFound(c.Ctx, "User not found")
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
			"name":     user.Name,
			"age":      user.Age,
			"phone":    user.Phone,
			"room_id":  user.RoomID,
		},
	})
}

// Logout 注销当前会话，将令牌加入黑名单直到自然过期
// @Summary      注销
// @Description  将当前令牌加入黑名单
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /auth/logout [post]
func (c *AuthController) Logout() {
	claimsValue, exists := c.Ctx.Get("claims")
	if !exists {
		response.Unauthorized(c.Ctx)
		return
	}
	claims := claimsValue.(*services.JWTClaims)

	if redisService := c.Container.GetRedisService(); redisService != nil && claims.ID != "" && claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if ttl > 0 {
			if err := redisService.BlacklistToken(claims.ID, ttl); err != nil {
				Logger.Warning("令牌加入黑名单失败: %v", err)
			}
		}
	}

	response.Success(c.Ctx, gin.H{
		"message": "Logged out successfully",
	})
}

// HandleAuthFunc 返回一个处理认证请求的Gin处理函数
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "register":
			controller.Register()
		case "login":
			controller.Login()
		case "createTenant":
			controller.CreateTenant()
		case "me":
			controller.Me()
		case "logout":
			controller.Logout()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Invalid method", nil)
		}
	}
}
