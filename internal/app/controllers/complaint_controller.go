package controllers

import (
	"errors"
	"strconv"

	"pgstay-http-service/internal/domain/models"
	"pgstay-http-service/internal/domain/services"
	"pgstay-http-service/internal/domain/services/container"
	"pgstay-http-service/internal/error/code"
	"pgstay-http-service/internal/error/response"
	Logger "pgstay-http-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// InterfaceComplaintController 定义投诉控制器接口
type InterfaceComplaintController interface {
	GetComplaints()
	CreateComplaint()
	UpdateComplaint()
}

// ComplaintController 处理投诉相关的请求
type ComplaintController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewComplaintController 创建一个新的投诉控制器
func NewComplaintController(ctx *gin.Context, container *container.ServiceContainer) *ComplaintController {
	return &ComplaintController{
		Ctx:       ctx,
		Container: container,
	}
}

// ComplaintRequest 表示创建投诉请求
type ComplaintRequest struct {
	Title       string `json:"title" binding:"required" example:"Leaking tap"`
	Description string `json:"description" binding:"required" example:"The bathroom tap has been leaking for two days"`
	RoomID      *uint  `json:"room_id" example:"1"`
}

// UpdateComplaintRequest 表示房东更新投诉请求，两个字段相互独立
type UpdateComplaintRequest struct {
	Status         *string `json:"status" example:"in_progress"`
	LandlordRemark *string `json:"landlord_remark" example:"Plumber scheduled for tomorrow"`
}

// GetComplaints 获取投诉列表
// @Summary      获取投诉列表
// @Description  租客只能看到自己的投诉，房东可以看到全部
// @Tags         Complaint
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /complaints [get]
func (c *ComplaintController) GetComplaints() {
	userID := c.Ctx.GetUint("userID")
	role := c.Ctx.GetString("role")

	complaintService := c.Container.GetService("complaint").(services.InterfaceComplaintService)
	complaints, err := complaintService.GetComplaintsForUser(userID, role)
	if err != nil {
		Logger.Error("获取投诉列表失败: %v", err)
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"complaints": complaints,
	})
}

// CreateComplaint 租客创建投诉
// @Summary      创建投诉
// @Description  租客提交投诉，初始状态为open
// @Tags         Complaint
// @Accept       json
// @Produce      json
// @Param        request body ComplaintRequest true "创建投诉请求参数"
// @Security     BearerAuth
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /complaints [post]
func (c *ComplaintController) CreateComplaint() {
	var req ComplaintRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Title and description are required", nil)
		return
	}

	complaint := &models.Complaint{
		UserID:      c.Ctx.GetUint("userID"),
		RoomID:      req.RoomID,
		Title:       req.Title,
		Description: req.Description,
	}

	complaintService := c.Container.GetService("complaint").(services.InterfaceComplaintService)
	if err := complaintService.CreateComplaint(complaint); err != nil {
		Logger.Error("创建投诉失败: %v", err)
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Created(c.Ctx, gin.H{
		"complaint": complaint,
	})
}

// UpdateComplaint 房东更新投诉状态和备注
// @Summary      更新投诉
// @Description  房东更新投诉状态和/或备注，状态可在三个取值间自由流转
// @Tags         Complaint
// @Accept       json
// @Produce      json
// @Param        id path int true "投诉ID"
// @Param        request body UpdateComplaintRequest true "更新字段"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /complaints/{id} [patch]
func (c *ComplaintController) UpdateComplaint() {
	idUint, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "Invalid complaint ID")
		return
	}

	var req UpdateComplaintRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request parameters", nil)
		return
	}

	complaintService := c.Container.GetService("complaint").(services.InterfaceComplaintService)
	complaint, err := complaintService.UpdateComplaint(uint(idUint), req.Status, req.LandlordRemark)
	if err != nil {
		if errors.Is(err, services.ErrComplaintNotFound) {
			response.NotFound(c.Ctx, "Complaint not found")
			return
		}
		if errors.Is(err, services.ErrInvalidComplaintStatus) {
			response.ParamError(c.Ctx, "Invalid complaint status")
			return
		}
		Logger.Error("更新投诉失败: %v", err)
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"complaint": complaint,
	})
}

// HandleComplaintFunc 返回一个处理投诉请求的Gin处理函数
func HandleComplaintFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewComplaintController(ctx, container)

		switch method {
		case "getComplaints":
			controller.GetComplaints()
		case "createComplaint":
			controller.CreateComplaint()
		case "updateComplaint":
			controller.UpdateComplaint()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Invalid method", nil)
		}
	}
}
