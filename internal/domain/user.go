package domain

import (
	"context"
	"time"
)

// User 用户。Role 为可选外键，读取时展开（悬空引用展开为 null）
type User struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Username   string    `gorm:"uniqueIndex;size:191;not null" json:"username"`
	Password   string    `gorm:"size:191;not null" json:"password"`
	Email      string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	FullName   string    `gorm:"size:128" json:"fullName"`
	AvatarURL  string    `gorm:"column:avatar_url;size:255" json:"avatarUrl"`
	Status     bool      `gorm:"not null;default:false" json:"status"`
	RoleID     *string   `gorm:"size:36;index" json:"-"`
	Role       *Role     `gorm:"foreignKey:RoleID" json:"role"`
	LoginCount int       `gorm:"not null;default:0" json:"loginCount"`
	IsDelete   bool      `gorm:"not null;default:false" json:"isDelete"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// UserFilter username/fullName 子串筛选（AND）+ 是否含软删
type UserFilter struct {
	Username       string
	FullName       string
	IncludeDeleted bool
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	List(ctx context.Context, f UserFilter) ([]User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, id string, fields map[string]any) (*User, error)
	SoftDelete(ctx context.Context, id string) (*User, error)
	// Activate email+username 双字段精确匹配，置 status=true（幂等）
	Activate(ctx context.Context, email, username string) (*User, error)
}
