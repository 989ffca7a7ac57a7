package repo

import "gorm.io/gorm"

// deletionScope 两个列表入口共用的软删过滤点：默认排除 is_delete=true
func deletionScope(includeDeleted bool) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if includeDeleted {
			return q
		}
		return q.Where("is_delete = ?", false)
	}
}
