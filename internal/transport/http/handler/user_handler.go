package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-user-center/internal/domain"
	resp "go-user-center/internal/transport/http/response"
	"go-user-center/pkg/utils"
)

type UserHandler struct {
	repo domain.UserRepository
}

func NewUserHandler(repo domain.UserRepository) *UserHandler {
	return &UserHandler{repo: repo}
}

func (h *UserHandler) Mount(g *gin.RouterGroup) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/by-username/:username", h.GetByUsername)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.SoftDelete)
	g.POST("/activate", h.Activate)
}

type createUserReq struct {
	Username   string  `json:"username" binding:"required"`
	Password   string  `json:"password" binding:"required"`
	Email      string  `json:"email" binding:"required"`
	FullName   string  `json:"fullName"`
	AvatarURL  string  `json:"avatarUrl"`
	Status     bool    `json:"status"`
	Role       *string `json:"role"`
	LoginCount int     `json:"loginCount"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var in createUserReq
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	var roleID *string
	if in.Role != nil && *in.Role != "" {
		if !utils.ValidID(*in.Role) {
			resp.Error(c, http.StatusBadRequest, "Invalid role id")
			return
		}
		roleID = in.Role
	}
	u := &domain.User{
		ID:         utils.NewID(),
		Username:   in.Username,
		Password:   in.Password,
		Email:      in.Email,
		FullName:   in.FullName,
		AvatarURL:  in.AvatarURL,
		Status:     in.Status,
		RoleID:     roleID,
		LoginCount: in.LoginCount,
	}
	if err := h.repo.Create(c.Request.Context(), u); err != nil {
		// 撞唯一键时点名是哪个字段
		if de, ok := domain.IsDuplicate(err); ok {
			resp.Error(c, http.StatusConflict, de.Field+" must be unique")
			return
		}
		resp.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *UserHandler) List(c *gin.Context) {
	inc := c.Query("includeDeleted")
	users, err := h.repo.List(c.Request.Context(), domain.UserFilter{
		Username:       c.Query("username"),
		FullName:       c.Query("fullName"),
		IncludeDeleted: inc != "" && inc != "false",
	})
	if err != nil {
		resp.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetByUsername(c *gin.Context) {
	u, err := h.repo.FindByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "User not found")
			return
		}
		resp.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if !utils.ValidID(id) {
		resp.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}
	u, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "User not found")
			return
		}
		resp.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, u)
}

type updateUserReq struct {
	Password   *string `json:"password"`
	Email      *string `json:"email"`
	FullName   *string `json:"fullName"`
	AvatarURL  *string `json:"avatarUrl"`
	Status     *bool   `json:"status"`
	Role       *string `json:"role"`
	LoginCount *int    `json:"loginCount"`
	IsDelete   *bool   `json:"isDelete"`
}

func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if !utils.ValidID(id) {
		resp.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}
	var in updateUserReq
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	fields := map[string]any{}
	if in.Password != nil {
		fields["password"] = *in.Password
	}
	if in.Email != nil {
		fields["email"] = *in.Email
	}
	if in.FullName != nil {
		fields["full_name"] = *in.FullName
	}
	if in.AvatarURL != nil {
		fields["avatar_url"] = *in.AvatarURL
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.Role != nil {
		// 空串解绑角色
		if *in.Role == "" {
			fields["role_id"] = nil
		} else {
			if !utils.ValidID(*in.Role) {
				resp.Error(c, http.StatusBadRequest, "Invalid role id")
				return
			}
			fields["role_id"] = *in.Role
		}
	}
	if in.LoginCount != nil {
		fields["login_count"] = *in.LoginCount
	}
	if in.IsDelete != nil {
		fields["is_delete"] = *in.IsDelete
	}
	u, err := h.repo.Update(c.Request.Context(), id, fields)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			resp.Error(c, http.StatusNotFound, "User not found")
		default:
			if de, ok := domain.IsDuplicate(err); ok {
				resp.Error(c, http.StatusConflict, de.Field+" must be unique")
				return
			}
			resp.Error(c, http.StatusBadRequest, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) SoftDelete(c *gin.Context) {
	id := c.Param("id")
	if !utils.ValidID(id) {
		resp.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}
	u, err := h.repo.SoftDelete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "User not found")
			return
		}
		resp.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User soft-deleted", "user": u})
}

type activateReq struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Activate 按 email+username 双字段匹配置 status=true。
// 查无此人和信息对不上故意不区分。
func (h *UserHandler) Activate(c *gin.Context) {
	var in activateReq
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if in.Email == "" || in.Username == "" {
		resp.Error(c, http.StatusBadRequest, "email and username are required")
		return
	}
	u, err := h.repo.Activate(c.Request.Context(), in.Email, in.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "User not found or info not matched")
			return
		}
		resp.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated to true", "user": u})
}
