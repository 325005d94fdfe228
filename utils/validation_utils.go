package utils

import (
	"regexp"

	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"
)

var (
	usernameAlphanumeric = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	passwordUpper        = regexp.MustCompile(`[A-Z]`)
	passwordLower        = regexp.MustCompile(`[a-z]`)
	passwordDigit        = regexp.MustCompile(`[0-9]`)
	passwordSpecial      = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// ValidateUsername 校验用户名：6-20位，仅限字母和数字
func ValidateUsername(username string) error {
	if len(username) < 6 {
		return code.NewErrorWithMessage(code.ErrValidation, "用户名长度不能少于6个字符")
	}
	if len(username) > 20 {
		return code.NewErrorWithMessage(code.ErrValidation, "用户名长度不能超过20个字符")
	}
	if !usernameAlphanumeric.MatchString(username) {
		return code.NewErrorWithMessage(code.ErrValidation, "用户名只能包含字母和数字")
	}
	return nil
}

// ValidatePassword 校验密码：至少8位，须包含大写、小写、数字和特殊字符
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return code.NewErrorWithMessage(code.ErrValidation, "密码长度不能少于8个字符")
	}
	if !passwordUpper.MatchString(password) {
		return code.NewErrorWithMessage(code.ErrValidation, "密码必须包含至少一个大写字母")
	}
	if !passwordLower.MatchString(password) {
		return code.NewErrorWithMessage(code.ErrValidation, "密码必须包含至少一个小写字母")
	}
	if !passwordDigit.MatchString(password) {
		return code.NewErrorWithMessage(code.ErrValidation, "密码必须包含至少一个数字")
	}
	if !passwordSpecial.MatchString(password) {
		return code.NewErrorWithMessage(code.ErrValidation, "密码必须包含至少一个特殊字符")
	}
	return nil
}

// ValidateUser 注册时的完整校验
func ValidateUser(username, password string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	return ValidatePassword(password)
}
