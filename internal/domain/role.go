package domain

import (
	"context"
	"time"
)

// Role 角色（软删用 is_delete 标记，唯一索引覆盖全部记录）
type Role struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:191;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	IsDelete    bool      `gorm:"not null;default:false" json:"isDelete"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Role) TableName() string { return "roles" }

// RoleFilter 列表筛选：name 子串（不区分大小写）+ 是否含软删
type RoleFilter struct {
	Name           string
	IncludeDeleted bool
}

type RoleRepository interface {
	Create(ctx context.Context, r *Role) error
	List(ctx context.Context, f RoleFilter) ([]Role, error)
	FindByName(ctx context.Context, name string) (*Role, error)
	FindByID(ctx context.Context, id string) (*Role, error)
	// Update 只写 fields 中出现的列，返回更新后的记录
	Update(ctx context.Context, id string, fields map[string]any) (*Role, error)
	SoftDelete(ctx context.Context, id string) (*Role, error)
}
