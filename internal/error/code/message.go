package code

import "net/http"

// codeMessageMap 错误码对应的默认提示信息
var codeMessageMap = map[int]string{
	ErrSuccess:            "成功",
	ErrUnknown:            "内部服务器错误",
	ErrBind:               "请求参数绑定失败",
	ErrValidation:         "请求数据未通过校验",
	ErrTokenInvalid:       "令牌无效或已过期",
	ErrTooManyRequests:    "请求过于频繁，请稍后再试",
	ErrDatabase:           "数据库操作失败",
	ErrUserNotFound:       "用户不存在",
	ErrUserAlreadyExist:   "用户名已被占用",
	ErrInvalidCredentials: "用户名或密码错误",
	ErrUnauthorized:       "无权访问该资源",
	ErrPersonNotFound:     "人员档案不存在",
	ErrResidenceNotFound:  "居住地址不存在",
	ErrPictureNotFound:    "头像文件不存在",
	ErrPictureInvalid:     "无法识别的图片内容",
}

// codeStatusMap 错误码对应的HTTP状态码
var codeStatusMap = map[int]int{
	ErrSuccess:            http.StatusOK,
	ErrUnknown:            http.StatusInternalServerError,
	ErrBind:               http.StatusBadRequest,
	ErrValidation:         http.StatusBadRequest,
	ErrTokenInvalid:       http.StatusUnauthorized,
	ErrTooManyRequests:    http.StatusTooManyRequests,
	ErrDatabase:           http.StatusInternalServerError,
	ErrUserNotFound:       http.StatusNotFound,
	ErrUserAlreadyExist:   http.StatusConflict,
	ErrInvalidCredentials: http.StatusBadRequest,
	ErrUnauthorized:       http.StatusForbidden,
	ErrPersonNotFound:     http.StatusNotFound,
	ErrResidenceNotFound:  http.StatusNotFound,
	ErrPictureNotFound:    http.StatusNotFound,
	ErrPictureInvalid:     http.StatusBadRequest,
}

// GetMessage 获取错误码对应的提示信息
func GetMessage(c int) string {
	if msg, ok := codeMessageMap[c]; ok {
		return msg
	}
	return codeMessageMap[ErrUnknown]
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(c int) int {
	if status, ok := codeStatusMap[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}
