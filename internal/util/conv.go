package util

import (
	"strconv"
	"strings"
)

// ParseIntDefault 将字符串转换为整数，为空或解析失败时返回默认值
func ParseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// IntPtr 返回 v 的指针
func IntPtr(v int) *int {
	return &v
}
