package utils

import "github.com/google/uuid"

// NewID 生成记录主键（UUID v4 字符串）
func NewID() string { return uuid.NewString() }

// ValidID 校验 id 结构是否合法
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
