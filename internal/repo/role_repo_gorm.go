package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"go-user-center/internal/core/cache"
	"go-user-center/internal/domain"
)

type RoleRepo struct {
	db    *gorm.DB
	cache *cache.Cache // 可为 nil（未配置 redis 时直查）
	ttl   time.Duration
}

func NewRoleRepo(db *gorm.DB, c *cache.Cache, ttl time.Duration) *RoleRepo {
	return &RoleRepo{db: db, cache: c, ttl: ttl}
}

func roleNameKey(name string) string { return "role:name:" + name }

func (r *RoleRepo) Create(ctx context.Context, role *domain.Role) error {
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		return classifyDup(err, "name")
	}
	return nil
}

func (r *RoleRepo) List(ctx context.Context, f domain.RoleFilter) ([]domain.Role, error) {
	q := r.db.WithContext(ctx).Model(&domain.Role{}).Scopes(deletionScope(f.IncludeDeleted))
	if f.Name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Name)+"%")
	}
	roles := make([]domain.Role, 0)
	if err := q.Order("created_at DESC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// FindByName 精确匹配，不管软删状态；配置了 redis 则走读穿缓存
func (r *RoleRepo) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	load := func(ctx context.Context) (*domain.Role, error) {
		var role domain.Role
		if err := r.db.WithContext(ctx).First(&role, "name = ?", name).Error; err != nil {
			return nil, notFound(err)
		}
		return &role, nil
	}
	if r.cache == nil {
		return load(ctx)
	}
	return cache.GetOrLoadJSON[domain.Role](r.cache, ctx, roleNameKey(name), r.ttl, load)
}

func (r *RoleRepo) FindByID(ctx context.Context, id string) (*domain.Role, error) {
	var role domain.Role
	if err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &role, nil
}

func (r *RoleRepo) Update(ctx context.Context, id string, fields map[string]any) (*domain.Role, error) {
	var role domain.Role
	if err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	oldName := role.Name
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&role).Updates(fields).Error; err != nil {
			return nil, classifyDup(err, "name")
		}
	}
	r.invalidate(ctx, oldName, role.Name)
	return &role, nil
}

// SoftDelete 无条件置 is_delete=true（幂等，已删仍返回 200）
func (r *RoleRepo) SoftDelete(ctx context.Context, id string) (*domain.Role, error) {
	var role domain.Role
	if err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	if err := r.db.WithContext(ctx).Model(&role).Update("is_delete", true).Error; err != nil {
		return nil, err
	}
	r.invalidate(ctx, role.Name)
	return &role, nil
}

func (r *RoleRepo) invalidate(ctx context.Context, names ...string) {
	if r.cache == nil {
		return
	}
	keys := make([]string, 0, len(names))
	for _, n := range names {
		keys = append(keys, roleNameKey(n))
	}
	r.cache.Del(ctx, keys...)
}
