package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-user-center/internal/domain"
	resp "go-user-center/internal/transport/http/response"
	"go-user-center/pkg/utils"
)

type RoleHandler struct {
	repo domain.RoleRepository
}

func NewRoleHandler(repo domain.RoleRepository) *RoleHandler {
	return &RoleHandler{repo: repo}
}

func (h *RoleHandler) Mount(g *gin.RouterGroup) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/by-name/:name", h.GetByName)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.SoftDelete)
}

type createRoleReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *RoleHandler) Create(c *gin.Context) {
	var in createRoleReq
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	role := &domain.Role{
		ID:          utils.NewID(),
		Name:        in.Name,
		Description: in.Description,
	}
	if err := h.repo.Create(c.Request.Context(), role); err != nil {
		if _, ok := domain.IsDuplicate(err); ok {
			resp.Error(c, http.StatusConflict, "Role name must be unique")
			return
		}
		resp.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, role)
}

// List 默认排除软删；includeDeleted 给了且不是字面 "false" 就放进来
func (h *RoleHandler) List(c *gin.Context) {
	inc := c.Query("includeDeleted")
	roles, err := h.repo.List(c.Request.Context(), domain.RoleFilter{
		Name:           c.Query("name"),
		IncludeDeleted: inc != "" && inc != "false",
	})
	if err != nil {
		resp.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, roles)
}

// GetByName 精确匹配，软删的也能查到
func (h *RoleHandler) GetByName(c *gin.Context) {
	role, err := h.repo.FindByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "Role not found")
			return
		}
		resp.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, role)
}

func (h *RoleHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if !utils.ValidID(id) {
		resp.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}
	role, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "Role not found")
			return
		}
		resp.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, role)
}

type updateRoleReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsDelete    *bool   `json:"isDelete"`
}

// Update 部分更新：请求里出现的字段才写
func (h *RoleHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if !utils.ValidID(id) {
		resp.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}
	var in updateRoleReq
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.IsDelete != nil {
		fields["is_delete"] = *in.IsDelete
	}
	role, err := h.repo.Update(c.Request.Context(), id, fields)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			resp.Error(c, http.StatusNotFound, "Role not found")
		default:
			if _, ok := domain.IsDuplicate(err); ok {
				resp.Error(c, http.StatusConflict, "Role name must be unique")
				return
			}
			resp.Error(c, http.StatusBadRequest, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, role)
}

// SoftDelete 幂等：重复删仍 200
func (h *RoleHandler) SoftDelete(c *gin.Context) {
	id := c.Param("id")
	if !utils.ValidID(id) {
		resp.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}
	role, err := h.repo.SoftDelete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "Role not found")
			return
		}
		resp.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role soft-deleted", "role": role})
}
