package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"go-user-center/internal/core/cache"
	"go-user-center/internal/domain"
)

type UserRepo struct {
	db    *gorm.DB
	cache *cache.Cache
	ttl   time.Duration
}

func NewUserRepo(db *gorm.DB, c *cache.Cache, ttl time.Duration) *UserRepo {
	return &UserRepo{db: db, cache: c, ttl: ttl}
}

func userNameKey(username string) string { return "user:username:" + username }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		// username 在前：同时撞两列时报告字段固定
		return classifyDup(err, "username", "email")
	}
	return nil
}

func (r *UserRepo) List(ctx context.Context, f domain.UserFilter) ([]domain.User, error) {
	q := r.db.WithContext(ctx).Model(&domain.User{}).Preload("Role").Scopes(deletionScope(f.IncludeDeleted))
	if f.Username != "" {
		q = q.Where("LOWER(username) LIKE ?", "%"+strings.ToLower(f.Username)+"%")
	}
	if f.FullName != "" {
		q = q.Where("LOWER(full_name) LIKE ?", "%"+strings.ToLower(f.FullName)+"%")
	}
	users := make([]domain.User, 0)
	if err := q.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	load := func(ctx context.Context) (*domain.User, error) {
		var u domain.User
		if err := r.db.WithContext(ctx).Preload("Role").First(&u, "username = ?", username).Error; err != nil {
			return nil, notFound(err)
		}
		return &u, nil
	}
	if r.cache == nil {
		return load(ctx)
	}
	return cache.GetOrLoadJSON[domain.User](r.cache, ctx, userNameKey(username), r.ttl, load)
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Preload("Role").First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserRepo) Update(ctx context.Context, id string, fields map[string]any) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&u).Updates(fields).Error; err != nil {
			return nil, classifyDup(err, "username", "email")
		}
	}
	r.invalidate(ctx, u.Username)
	// role_id 可能变化，重读并展开
	return r.FindByID(ctx, id)
}

// SoftDelete 响应不展开 role
func (r *UserRepo) SoftDelete(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	if err := r.db.WithContext(ctx).Model(&u).Update("is_delete", true).Error; err != nil {
		return nil, err
	}
	r.invalidate(ctx, u.Username)
	return &u, nil
}

func (r *UserRepo) Activate(ctx context.Context, email, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "email = ? AND username = ?", email, username).Error
	if err != nil {
		return nil, notFound(err)
	}
	if err := r.db.WithContext(ctx).Model(&u).Update("status", true).Error; err != nil {
		return nil, err
	}
	r.invalidate(ctx, u.Username)
	return &u, nil
}

func (r *UserRepo) invalidate(ctx context.Context, usernames ...string) {
	if r.cache == nil {
		return
	}
	keys := make([]string, 0, len(usernames))
	for _, n := range usernames {
		keys = append(keys, userNameKey(n))
	}
	r.cache.Del(ctx, keys...)
}
