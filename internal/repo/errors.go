package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"go-user-center/internal/domain"
)

// isDupKey 不依赖 gorm.ErrDuplicatedKey，避免驱动/版本差异导致漏判
func isDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "constraint failed")
}

// classifyDup 唯一冲突 → DuplicateError。columns 按声明顺序匹配，
// 同时命中多列时报告第一列，保证结果确定。
func classifyDup(err error, columns ...string) error {
	if err == nil || !isDupKey(err) {
		return err
	}
	msg := strings.ToLower(err.Error())
	for _, col := range columns {
		if strings.Contains(msg, col) {
			return &domain.DuplicateError{Field: col}
		}
	}
	return &domain.DuplicateError{Field: "field"}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
