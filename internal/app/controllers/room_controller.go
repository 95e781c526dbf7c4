package controllers

import (
	"pgstay-http-service/internal/domain/models"
	"pgstay-http-service/internal/domain/services"
	"pgstay-http-service/internal/domain/services/container"
	"pgstay-http-service/internal/error/code"
	"pgstay-http-service/internal/error/response"
	Logger "pgstay-http-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// InterfaceRoomController 定义房间控制器接口
type InterfaceRoomController interface {
	GetRooms()
	CreateRoom()
}

// RoomController 处理房间相关的请求
type RoomController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRoomController 创建一个新的房间控制器
func NewRoomController(ctx *gin.Context, container *container.ServiceContainer) *RoomController {
	return &RoomController{
		Ctx:       ctx,
		Container: container,
	}
}

// RoomRequest 表示创建房间请求
type RoomRequest struct {
	RoomNumber    int `json:"room_number" binding:"required" example:"101"`
	MaxTenants    int `json:"max_tenants" binding:"required,min=1" example:"2"`
	RentPerTenant int `json:"rent_per_tenant" binding:"required,min=0" example:"5000"`
}

// GetRooms 获取所有房间及入住情况
// @Summary      获取房间列表
// @Description  获取所有房间，附带当前入住人数和租客列表
// @Tags         Room
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /rooms [get]
func (c *RoomController) GetRooms() {
	roomService := c.Container.GetService("room").(services.InterfaceRoomService)
	rooms, err := roomService.GetAllRooms()
	if err != nil {
		Logger.Error("获取房间列表失败: %v", err)
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"rooms": rooms,
	})
}

// CreateRoom 创建新房间
// @Summary      创建房间
// @Description  房东创建新房间
// @Tags         Room
// @Accept       json
// @Produce      json
// @Param        request body RoomRequest true "创建房间请求参数"
// @Security     BearerAuth
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /rooms [post]
func (c *RoomController) CreateRoom() {
	var req RoomRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Room number, max tenants, and rent are required", nil)
		return
	}

	room := &models.Room{
		RoomNumber:    req.RoomNumber,
		MaxTenants:    req.MaxTenants,
		RentPerTenant: req.RentPerTenant,
	}

	roomService := c.Container.GetService("room").(services.InterfaceRoomService)
	if err := roomService.CreateRoom(room); err != nil {
		Logger.Error("创建房间失败: %v", err)
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Created(c.Ctx, gin.H{
		"room": services.RoomWithOccupancy{
			Room:           *room,
			CurrentTenants: 0,
		},
	})
}

// HandleRoomFunc 返回一个处理房间请求的Gin处理函数
func HandleRoomFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRoomController(ctx, container)

		switch method {
		case "getRooms":
			controller.GetRooms()
		case "createRoom":
			controller.CreateRoom()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Invalid method", nil)
		}
	}
}
