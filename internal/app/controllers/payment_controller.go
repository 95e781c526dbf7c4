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

// InterfacePaymentController 定义缴费控制器接口
type InterfacePaymentController interface {
	GetCurrentMonthStatus()
	GetMonthStatus()
	SubmitPayment()
	UpdatePaymentStatus()
}

// PaymentController 处理租金缴纳相关的请求
type PaymentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPaymentController 创建一个新的缴费控制器
func NewPaymentController(ctx *gin.Context, container *container.ServiceContainer) *PaymentController {
	return &PaymentController{
		Ctx:       ctx,
		Container: container,
	}
}

// PaymentRequest 表示提交缴费凭证请求
type PaymentRequest struct {
	Month    string  `json:"month" binding:"required" example:"2025-03"` // 格式: YYYY-MM
	ProofURL *string `json:"proof_url" example:"https://cdn.example.com/proofs/abc.jpg"`
	Amount   *int    `json:"amount" example:"5000"`
}

// UpdatePaymentStatusRequest 表示房东审核缴费请求
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required" example:"approved"`
}

// GetCurrentMonthStatus 查询当月缴费状态
// @Summary      当月缴费状态
// @Description  租客查询当月是否已提交缴费记录，只看记录是否存在
// @Tags         Payment
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /payments/current-month [get]
func (c *PaymentController) GetCurrentMonthStatus() {
	userID := c.Ctx.GetUint("userID")

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	month := paymentService.CurrentMonth()
	payment, hasPaid, err := paymentService.GetPaymentStatus(userID, month)
	if err != nil {
		Logger.Error("查询缴费状态失败: %v", err)
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"has_paid": hasPaid,
		"month":    month,
		"payment":  payment,
	})
}

// GetMonthStatus 查询指定月份的缴费状态
// @Summary      指定月份缴费状态
// @Description  租客查询某月是否已提交缴费记录
// @Tags         Payment
// @Produce      json
// @Param        month path string true "月份，格式YYYY-MM"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /payments/status/{month} [get]
func (c *PaymentController) GetMonthStatus() {
	userID := c.Ctx.GetUint("userID")
	month := c.Ctx.Param("month")

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payment, hasPaid, err := paymentService.GetPaymentStatus(userID, month)
	if err != nil {
		Logger.Error("查询缴费状态失败: %v", err)
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"has_paid": hasPaid,
		"payment":  payment,
	})
}

// SubmitPayment 提交缴费凭证
// @Summary      提交缴费凭证
// @Description  租客提交租金缴纳凭证，每月只能提交一次
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        request body PaymentRequest true "缴费请求参数"
// @Security     BearerAuth
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /payments [post]
func (c *PaymentController) SubmitPayment() {
	var req PaymentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Month is required", nil)
		return
	}

	userID := c.Ctx.GetUint("userID")

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payment, err := paymentService.SubmitPayment(userID, req.Month, req.ProofURL, req.Amount)
	if err != nil {
		if errors.Is(err, services.ErrDuplicatePayment) {
			response.Fail(c.Ctx, code.ErrPaymentDuplicate, nil)
			return
		}
		if errors.Is(err, services.ErrInvalidMonth) {
			response.ParamError(c.Ctx, "Invalid month format, expected YYYY-MM")
			return
		}
		Logger.Error("提交缴费失败: %v", err)
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Created(c.Ctx, gin.H{
		"payment": payment,
	})
}

// UpdatePaymentStatus 房东审核缴费凭证
// @Summary      审核缴费凭证
// @Description  房东将缴费记录状态置为approved或rejected
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        id path int true "缴费记录ID"
// @Param        request body UpdatePaymentStatusRequest true "审核状态"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /payments/{id} [patch]
func (c *PaymentController) UpdatePaymentStatus() {
	idUint, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "Invalid payment ID")
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Status is required", nil)
		return
	}

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payment, err := paymentService.UpdatePaymentStatus(uint(idUint), req.Status)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			response.NotFound(c.Ctx, "Payment not found")
			return
		}
		if errors.Is(err, services.ErrInvalidPaymentStatus) {
			response.ParamError(c.Ctx, "Invalid payment status")
			return
		}
		Logger.Error("审核缴费失败: %v", err)
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"payment": payment,
	})
}

// HandlePaymentFunc 返回一个处理缴费请求的Gin处理函数
func HandlePaymentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPaymentController(ctx, container)

		switch method {
		case "getCurrentMonthStatus":
			controller.GetCurrentMonthStatus()
		case "getMonthStatus":
			controller.GetMonthStatus()
		case "submitPayment":
			controller.SubmitPayment()
		case "updatePaymentStatus":
			controller.UpdatePaymentStatus()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Invalid method", nil)
		}
	}
}
