package common

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// Truncate 依字元數截斷字串，供日誌使用
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}

// NormalizeSpace 合併連續空白並去除前後空白
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
