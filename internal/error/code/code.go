package code

// 错误码按业务域分块：
// 100xxx 通用错误
// 101xxx 用户相关错误
// 102xxx 人员档案相关错误
// 103xxx 居住地址相关错误
// 104xxx 头像文件相关错误
const (
	// ErrSuccess 成功
	ErrSuccess int = iota + 100000
	// ErrUnknown 未知的内部错误
	ErrUnknown
	// ErrBind 请求参数绑定失败
	ErrBind
	// ErrValidation 请求数据未通过校验
	ErrValidation
	// ErrTokenInvalid 令牌无效或已过期
	ErrTokenInvalid
	// ErrTooManyRequests 请求过于频繁
	ErrTooManyRequests
	// ErrDatabase 数据库操作失败
	ErrDatabase
)

const (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist 用户名已被占用
	ErrUserAlreadyExist
	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials
	// ErrUnauthorized 无权访问该资源
	ErrUnauthorized
)

const (
	// ErrPersonNotFound 人员档案不存在
	ErrPersonNotFound int = iota + 102000
)

const (
	// ErrResidenceNotFound 居住地址不存在
	ErrResidenceNotFound int = iota + 103000
)

const (
	// ErrPictureNotFound 头像文件不存在
	ErrPictureNotFound int = iota + 104000
	// ErrPictureInvalid 无法识别的图片内容
	ErrPictureInvalid
)
