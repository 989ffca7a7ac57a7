package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-user-center/internal/core/auth"
	"go-user-center/internal/transport/http/handler"
	mdw "go-user-center/internal/transport/http/middleware"
	resp "go-user-center/internal/transport/http/response"
	"go-user-center/pkg/utils"
)

// AdminCred 管理端静态凭证（hash 放配置，不进库）
type AdminCred struct {
	Username     string
	PasswordHash string // bcrypt
}

// NewAdminEngine 管理面：同一套资源接口挂到 /admin/v1 并要求 Bearer
func NewAdminEngine(l *zap.Logger, roleH *handler.RoleHandler, userH *handler.UserHandler, jwter *auth.JWTer, cred AdminCred) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	r.POST("/auth/login", loginAction(jwter, cred))

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter))
	roleH.Mount(admin.Group("/roles"))
	userH.Mount(admin.Group("/users"))

	return r
}

func loginAction(jwter *auth.JWTer, cred AdminCred) gin.HandlerFunc {
	type loginIn struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	return func(c *gin.Context) {
		var in loginIn
		if err := c.ShouldBindJSON(&in); err != nil {
			resp.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		if in.Username != cred.Username || !utils.CheckPassword(in.Password, cred.PasswordHash) {
			resp.Error(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		tok, err := jwter.Issue(in.Username)
		if err != nil || tok == "" {
			resp.Error(c, http.StatusInternalServerError, "issue token failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": tok})
	}
}
