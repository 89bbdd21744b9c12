package utils

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrInvalidEmailFormat = errors.New("无效的邮箱格式")
	ErrInvalidDateFormat  = errors.New("日期格式无效，请使用 YYYY-MM-DD 或类似格式")
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsNumeric 检查字符串是否只包含数字
func IsNumeric(s string) bool {
	if s == "" {
		return false // 空字符串不视为数字
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ValidateEmailFormat 校验邮箱格式。空字符串视为通过，由业务逻辑决定是否允许为空。
func ValidateEmailFormat(email string) bool {
	trimmedEmail := strings.TrimSpace(email)
	if trimmedEmail == "" {
		return true
	}
	return emailPattern.MatchString(trimmedEmail)
}

// NormalizeKeyword 对搜索关键词做 NFC 归一化并去除首尾空白。
// 中文姓名等字符可能以组合形式输入，归一化后才能与库中存储值匹配。
func NormalizeKeyword(keyword string) string {
	return norm.NFC.String(strings.TrimSpace(keyword))
}

// ParseDate 解析日期字符串，支持多种常见格式。
// 支持 YYYY-MM-DD, YYYY/MM/DD, YYYY-M-D, YYYY/M/D 等及其变体。
func ParseDate(dateStr string) (time.Time, error) {
	trimmedDateStr := strings.TrimSpace(dateStr)
	if trimmedDateStr == "" {
		return time.Time{}, ErrInvalidDateFormat // 空日期字符串视为无效
	}

	normalizedDateStr := strings.ReplaceAll(trimmedDateStr, "/", "-")

	// 包含补零和不补零的情况
	dateLayouts := []string{
		"2006-01-02", // YYYY-MM-DD
		"2006-1-2",   // YYYY-M-D
		"2006-01-2",  // YYYY-MM-D
		"2006-1-02",  // YYYY-M-DD
	}

	for _, layout := range dateLayouts {
		if parsedDate, err := time.Parse(layout, normalizedDateStr); err == nil {
			return parsedDate, nil
		}
	}
	return time.Time{}, ErrInvalidDateFormat
}
