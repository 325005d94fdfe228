package code

import "errors"

// Error 携带错误码的业务错误，服务层返回它，
// 控制器通过错误码映射HTTP状态，不再比较错误字符串
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError 使用错误码的默认提示信息创建业务错误
func NewError(c int) *Error {
	return &Error{Code: c, Message: GetMessage(c)}
}

// NewErrorWithMessage 使用自定义提示信息创建业务错误
func NewErrorWithMessage(c int, message string) *Error {
	return &Error{Code: c, Message: message}
}

// CodeOf 提取错误携带的错误码，非业务错误一律视为未知错误
func CodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrUnknown
}

// Is 判断错误是否携带指定的错误码
func Is(err error, c int) bool {
	if err == nil {
		return c == ErrSuccess
	}
	return CodeOf(err) == c
}
