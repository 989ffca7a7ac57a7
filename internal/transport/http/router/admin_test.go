package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-user-center/internal/core/auth"
	"go-user-center/internal/domain"
	"go-user-center/internal/repo"
	"go-user-center/internal/transport/http/handler"
	"go-user-center/pkg/utils"
)

func newAdminTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Role{}, &domain.User{}))

	hash := utils.HashPassword("s3cret")
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Minute}
	return NewAdminEngine(
		zap.NewNop(),
		handler.NewRoleHandler(repo.NewRoleRepo(db, nil, 0)),
		handler.NewUserHandler(repo.NewUserRepo(db, nil, 0)),
		jwter,
		AdminCred{Username: "root", PasswordHash: hash},
	)
}

func adminReq(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf []byte
	if body != nil {
		var err error
		buf, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminLogin(t *testing.T) {
	r := newAdminTestEngine(t)

	w := adminReq(t, r, http.MethodPost, "/auth/login", "", gin.H{"username": "root", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = adminReq(t, r, http.MethodPost, "/auth/login", "", gin.H{"username": "nobody", "password": "s3cret"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = adminReq(t, r, http.MethodPost, "/auth/login", "", gin.H{"username": "root", "password": "s3cret"})
	require.Equal(t, http.StatusOK, w.Code)
	var out map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.NotEmpty(t, out["token"])
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := newAdminTestEngine(t)

	// 无凭证 / 坏凭证
	w := adminReq(t, r, http.MethodGet, "/admin/v1/roles", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	w = adminReq(t, r, http.MethodGet, "/admin/v1/roles", "garbage.token.here", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// 登录后全链路走通
	w = adminReq(t, r, http.MethodPost, "/auth/login", "", gin.H{"username": "root", "password": "s3cret"})
	require.Equal(t, http.StatusOK, w.Code)
	var out map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	tok := out["token"]

	w = adminReq(t, r, http.MethodPost, "/admin/v1/roles", tok, gin.H{"name": "admin"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = adminReq(t, r, http.MethodGet, "/admin/v1/roles", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
}
