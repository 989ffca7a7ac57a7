package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUser(t *testing.T, r http.Handler, body gin.H) map[string]any {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/users", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)
}

func TestCreateUserDefaults(t *testing.T) {
	r := setupRouter(t)

	u := createUser(t, r, gin.H{"username": "alice", "password": "secret", "email": "alice@example.com"})
	assert.NotEmpty(t, u["id"])
	assert.Equal(t, "alice", u["username"])
	assert.Equal(t, "", u["fullName"])
	assert.Equal(t, false, u["status"])
	assert.Equal(t, float64(0), u["loginCount"])
	assert.Equal(t, false, u["isDelete"])
	assert.Nil(t, u["role"])

	// 三个必填字段缺一不可
	for _, body := range []gin.H{
		{"password": "x", "email": "a@b.c"},
		{"username": "x", "email": "a@b.c"},
		{"username": "x", "password": "x"},
	} {
		w := doJSON(t, r, http.MethodPost, "/users", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestCreateUserDuplicates(t *testing.T) {
	r := setupRouter(t)
	createUser(t, r, gin.H{"username": "alice", "password": "x", "email": "alice@example.com"})

	w := doJSON(t, r, http.MethodPost, "/users", gin.H{"username": "alice", "password": "x", "email": "other@example.com"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "username must be unique", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodPost, "/users", gin.H{"username": "bob", "password": "x", "email": "alice@example.com"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email must be unique", decode(t, w)["message"])

	// 软删不释放唯一键
	u := createUser(t, r, gin.H{"username": "carol", "password": "x", "email": "carol@example.com"})
	doJSON(t, r, http.MethodDelete, "/users/"+u["id"].(string), nil)
	w = doJSON(t, r, http.MethodPost, "/users", gin.H{"username": "carol", "password": "x", "email": "carol2@example.com"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "username must be unique", decode(t, w)["message"])
}

func TestCreateUserInvalidRole(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(t, r, http.MethodPost, "/users", gin.H{
		"username": "alice", "password": "x", "email": "a@b.c", "role": "not-a-uuid",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid role id", decode(t, w)["message"])
}

func TestUserRoleExpansion(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(t, r, http.MethodPost, "/roles", gin.H{"name": "admin"})
	roleID := decode(t, w)["id"].(string)

	u := createUser(t, r, gin.H{"username": "alice", "password": "x", "email": "a@b.c", "role": roleID})
	id := u["id"].(string)

	w = doJSON(t, r, http.MethodGet, "/users/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	role, ok := decode(t, w)["role"].(map[string]any)
	require.True(t, ok, "role should expand to an object")
	assert.Equal(t, "admin", role["name"])

	// 悬空引用回退为 null
	w = doJSON(t, r, http.MethodPut, "/users/"+id, gin.H{"role": "6f1c6f80-0000-4000-8000-000000000000"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode(t, w)["role"])

	// 空串解绑
	w = doJSON(t, r, http.MethodPut, "/users/"+id, gin.H{"role": roleID})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPut, "/users/"+id, gin.H{"role": ""})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode(t, w)["role"])
}

func TestListUsersFilters(t *testing.T) {
	r := setupRouter(t)
	createUser(t, r, gin.H{"username": "alice", "password": "x", "email": "a@b.c", "fullName": "Alice Doe"})
	createUser(t, r, gin.H{"username": "bob", "password": "x", "email": "b@b.c", "fullName": "Bob Roe"})

	w := doJSON(t, r, http.MethodGet, "/users?username=ALI", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeList(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "alice", list[0]["username"])

	w = doJSON(t, r, http.MethodGet, "/users?fullName=doe", nil)
	require.Len(t, decodeList(t, w), 1)

	// 两个条件取交集
	w = doJSON(t, r, http.MethodGet, "/users?username=ali&fullName=roe", nil)
	assert.Len(t, decodeList(t, w), 0)

	// 空结果是 []，不是 null
	w = doJSON(t, r, http.MethodGet, "/users?username=zzz", nil)
	assert.Equal(t, "[]", w.Body.String())
}

func TestUpdateUserPartial(t *testing.T) {
	r := setupRouter(t)
	u := createUser(t, r, gin.H{"username": "alice", "password": "x", "email": "a@b.c"})
	id := u["id"].(string)

	w := doJSON(t, r, http.MethodPut, "/users/"+id, gin.H{"loginCount": 5})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(5), body["loginCount"])
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "a@b.c", body["email"])

	// email 改撞已有
	createUser(t, r, gin.H{"username": "bob", "password": "x", "email": "b@b.c"})
	w = doJSON(t, r, http.MethodPut, "/users/"+id, gin.H{"email": "b@b.c"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email must be unique", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodPut, "/users/bad-id", gin.H{"loginCount": 1})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid id", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodPut, "/users/6f1c6f80-0000-4000-8000-000000000000", gin.H{"loginCount": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSoftDeleteUserIdempotent(t *testing.T) {
	r := setupRouter(t)
	u := createUser(t, r, gin.H{"username": "alice", "password": "x", "email": "a@b.c"})
	id := u["id"].(string)

	for i := 0; i < 2; i++ {
		w := doJSON(t, r, http.MethodDelete, "/users/"+id, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "User soft-deleted", body["message"])
		assert.Equal(t, true, body["user"].(map[string]any)["isDelete"])
	}
}

func TestActivateUser(t *testing.T) {
	r := setupRouter(t)
	createUser(t, r, gin.H{"username": "alice", "password": "x", "email": "a@b.c"})

	// 两个字段都必填
	w := doJSON(t, r, http.MethodPost, "/users/activate", gin.H{"email": "a@b.c"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email and username are required", decode(t, w)["message"])

	// 信息对不上
	w = doJSON(t, r, http.MethodPost, "/users/activate", gin.H{"email": "a@b.c", "username": "bob"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found or info not matched", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodPost, "/users/activate", gin.H{"email": "a@b.c", "username": "alice"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Status updated to true", body["message"])
	assert.Equal(t, true, body["user"].(map[string]any)["status"])

	// 重复激活无副作用
	w = doJSON(t, r, http.MethodPost, "/users/activate", gin.H{"email": "a@b.c", "username": "alice"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetUserByUsername(t *testing.T) {
	r := setupRouter(t)
	createUser(t, r, gin.H{"username": "alice", "password": "x", "email": "a@b.c"})

	w := doJSON(t, r, http.MethodGet, "/users/by-username/alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decode(t, w)["username"])

	w = doJSON(t, r, http.MethodGet, "/users/by-username/ghost", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decode(t, w)["message"])
}
