package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize       = 16
	hashIterations = 10000
	hashKeyLength  = 32
)

// GenerateSalt 生成随机盐值，base64编码
func GenerateSalt() (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("生成盐值失败: %w", err)
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// HashPassword 使用PBKDF2-HMAC-SHA256计算密码摘要，base64编码
func HashPassword(password, salt string) (string, error) {
	saltBytes, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("盐值解码失败: %w", err)
	}
	digest := pbkdf2.Key([]byte(password), saltBytes, hashIterations, hashKeyLength, sha256.New)
	return base64.StdEncoding.EncodeToString(digest), nil
}

// CheckPassword 用存储的盐值重新计算摘要并与存储值比较
func CheckPassword(password, salt, storedDigest string) bool {
	computed, err := HashPassword(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedDigest)) == 1
}
