package response

import (
	"errors"
	"net/http"

	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"
	"github.com/Hariokas/PersonRegistrationSystem/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, Response{
		Code:    code.ErrSuccess,
		Message: code.GetMessage(code.ErrSuccess),
		Data:    data,
	})
}

// Fail 按错误码返回失败响应，HTTP状态由错误码映射决定
func Fail(ctx *gin.Context, c int) {
	ctx.JSON(code.GetStatus(c), Response{
		Code:    c,
		Message: code.GetMessage(c),
	})
}

// FailWithMessage 按错误码返回失败响应，使用自定义提示信息
func FailWithMessage(ctx *gin.Context, c int, message string, data interface{}) {
	ctx.JSON(code.GetStatus(c), Response{
		Code:    c,
		Message: message,
		Data:    data,
	})
}

// FailWithError 按服务层返回的错误生成失败响应：
// 业务错误映射到对应的HTTP状态，其余一律按内部错误处理
func FailWithError(ctx *gin.Context, err error) {
	var e *code.Error
	if errors.As(err, &e) {
		ctx.JSON(code.GetStatus(e.Code), Response{
			Code:    e.Code,
			Message: e.Message,
		})
		return
	}
	ServerError(ctx, err)
}

// ServerError 内部错误响应，生成关联ID便于从日志中定位
func ServerError(ctx *gin.Context, err error) {
	correlationID := uuid.NewString()
	logger.Error("内部错误 [%s] %s %s: %v",
		correlationID, ctx.Request.Method, ctx.Request.URL.Path, err)
	ctx.JSON(http.StatusInternalServerError, Response{
		Code:    code.ErrUnknown,
		Message: code.GetMessage(code.ErrUnknown),
		Data:    gin.H{"correlation_id": correlationID},
	})
}

// ParamError 参数错误响应
func ParamError(ctx *gin.Context, message string) {
	FailWithMessage(ctx, code.ErrBind, message, nil)
}

// Unauthorized 未认证响应
func Unauthorized(ctx *gin.Context) {
	Fail(ctx, code.ErrTokenInvalid)
}
