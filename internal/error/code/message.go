package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:          "Success",
	ErrUnknown:          "Internal server error",
	ErrBind:             "Invalid request parameters",
	ErrValidation:       "Request validation failed",
	ErrTokenInvalid:     "Invalid or expired token",
	ErrPermissionDenied: "Insufficient permissions",
	ErrTooManyRequests:  "Too many requests",

	// 用户相关错误码
	ErrUserNotFound:          "User not found",
	ErrUserAlreadyExist:      "Username already exists",
	ErrUserPasswordIncorrect: "Invalid credentials",
	ErrTenantNotFound:        "Tenant not found",

	// 房间相关错误码
	ErrRoomNotFound: "Room not found",
	ErrRoomFull:     "Room is full",

	// 投诉相关错误码
	ErrComplaintNotFound: "Complaint not found",

	// 缴费相关错误码
	ErrPaymentNotFound:  "Payment not found",
	ErrPaymentDuplicate: "Payment already submitted for this month",

	// 数据库相关错误码
	ErrDatabase:       "Database error",
	ErrRecordNotFound: "Record not found",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:          StatusOK,
	ErrUnknown:          StatusInternalServerError,
	ErrBind:             StatusBadRequest,
	ErrValidation:       StatusBadRequest,
	ErrTokenInvalid:     StatusUnauthorized,
	ErrPermissionDenied: StatusForbidden,
	ErrTooManyRequests:  StatusTooManyRequests,

	// 用户相关错误码
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusConflict,
	ErrUserPasswordIncorrect: StatusUnauthorized,
	ErrTenantNotFound:        StatusNotFound,

	// 房间相关错误码
	ErrRoomNotFound: StatusNotFound,
	ErrRoomFull:     StatusBadRequest,

	// 投诉相关错误码
	ErrComplaintNotFound: StatusNotFound,

	// 缴费相关错误码
	ErrPaymentNotFound:  StatusNotFound,
	ErrPaymentDuplicate: StatusBadRequest,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "Unknown error"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
