package controllers

import (
	"errors"
	"strconv"

	"pgstay-http-service/internal/domain/services"
	"pgstay-http-service/internal/domain/services/container"
	"pgstay-http-service/internal/error/code"
	"pgstay-http-service/internal/error/response"
	Logger "pgstay-http-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// InterfaceTenantController 定义租客控制器接口
type InterfaceTenantController interface {
	GetTenants()
	GetMyProfile()
	UpdateTenant()
	DeleteTenant()
}

// TenantController 处理租客管理相关的请求
type TenantController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewTenantController 创建一个新的租客控制器
func NewTenantController(ctx *gin.Context, container *container.ServiceContainer) *TenantController {
	return &TenantController{
		Ctx:       ctx,
		Container: container,
	}
}

// UpdateTenantRequest 表示更新租客请求，字段均为可选
type UpdateTenantRequest struct {
	Name           *string `json:"name" example:"Suresh"`
	Age            *int    `json:"age" example:"25"`
	Phone          *string `json:"phone" example:"9887654321"`
	RoomID         *uint   `json:"room_id" example:"2"`
	CautionDeposit *int    `json:"caution_deposit" example:"12000"`
}

// GetTenants 获取所有租客
// @Summary      获取租客列表
// @Description  房东获取所有租客，附带房间号和当月缴费状态
// @Tags         Tenant
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /tenants [get]
func (c *TenantController) GetTenants() {
	tenantService := c.Container.GetService("tenant").(services.InterfaceTenantService)
	tenants, err := tenantService.GetAllTenants()
	if err != nil {
		Logger.Error("获取租客列表失败: %v", err)
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"tenants": tenants,
	})
}

// GetMyProfile 租客获取本人信息及室友
// @Summary      租客个人信息
// @Description  租客获取本人信息、所在房间和室友列表
// @Tags         Tenant
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /tenants/me [get]
func (c *TenantController) GetMyProfile() {
	userID := c.Ctx.GetUint("userID")

	tenantService := c.Container.GetService("tenant").(services.InterfaceTenantService)
	profile, roommates, err := tenantService.GetTenantProfile(userID)
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			response.NotFound(c.Ctx, "Tenant not found")
			return
		}
		Logger.Error("获取租客信息失败: %v", err)
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"tenant":    profile,
		"roommates": roommates,
	})
}

// UpdateTenant 更新租客信息
// @Summary      更新租客
// @Description  房东更新租客信息，换房时重新检查容量
// @Tags         Tenant
// @Accept       json
// @Produce      json
// @Param        id path int true "租客ID"
// @Param        request body UpdateTenantRequest true "更新字段"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /tenants/{id} [patch]
func (c *TenantController) UpdateTenant() {
	idUint, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "Invalid tenant ID")
		return
	}

	var req UpdateTenantRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request parameters", nil)
		return
	}

	// 构建更新字段映射
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.RoomID != nil {
		updates["room_id"] = *req.RoomID
	}
	if req.CautionDeposit != nil {
		updates["caution_deposit"] = *req.CautionDeposit
	}

	tenantService := c.Container.GetService("tenant").(services.InterfaceTenantService)
	tenant, err := tenantService.UpdateTenant(uint(idUint), updates)
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			response.NotFound(c.Ctx, "Tenant not found")
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
		Logger.Error("更新租客失败: %v", err)
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"tenant": tenant,
	})
}

// DeleteTenant 删除租客
// @Summary      删除租客
// @Description  房东删除租客账号，返回被删除的记录
// @Tags         Tenant
// @Produce      json
// @Param        id path int true "租客ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /tenants/{id} [delete]
func (c *TenantController) DeleteTenant() {
	idUint, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "Invalid tenant ID")
		return
	}

	tenantService := c.Container.GetService("tenant").(services.InterfaceTenantService)
	tenant, err := tenantService.DeleteTenant(uint(idUint))
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			response.NotFound(c.Ctx, "Tenant not found")
			return
		}
		Logger.Error("删除租客失败: %v", err)
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"tenant": tenant,
	})
}

// HandleTenantFunc 返回一个处理租客请求的Gin处理函数
func HandleTenantFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewTenantController(ctx, container)

		switch method {
		case "getTenants":
			controller.GetTenants()
		case "getMyProfile":
			controller.GetMyProfile()
		case "updateTenant":
			controller.UpdateTenant()
		case "deleteTenant":
			controller.DeleteTenant()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Invalid method", nil)
		}
	}
}
