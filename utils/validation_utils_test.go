package utils

import (
	"testing"

	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"合法用户名", "johndoe1", true},
		{"最短长度", "abc123", true},
		{"最长长度", "a1234567890123456789", true},
		{"太短", "john1", false},
		{"太长", "a12345678901234567890", false},
		{"包含下划线", "john_doe", false},
		{"包含空格", "john doe1", false},
		{"包含中文", "用户johndoe", false},
		{"空字符串", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, code.Is(err, code.ErrValidation))
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"合法密码", "Passw0rd!", true},
		{"太短", "P0rd!", false},
		{"缺少大写", "passw0rd!", false},
		{"缺少小写", "PASSW0RD!", false},
		{"缺少数字", "Password!", false},
		{"缺少特殊字符", "Passw0rd1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, code.Is(err, code.ErrValidation))
			}
		})
	}
}
