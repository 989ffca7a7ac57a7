package domain

import "errors"

// 领域错误（不依赖具体驱动）
var ErrNotFound = errors.New("record not found")

// DuplicateError 唯一约束冲突，Field 为命中的列（name/username/email）
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string { return e.Field + " must be unique" }

func IsDuplicate(err error) (*DuplicateError, bool) {
	var de *DuplicateError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
