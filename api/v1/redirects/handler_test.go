package redirects

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_redirect/internal/db"
	"go_redirect/internal/httpx"
	"go_redirect/internal/redirect"
	"go_redirect/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupRouter(t *testing.T) (*gin.Engine, *store.GormStore) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), db.Config())
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(conn, ""))

	s := store.NewGormStore(conn, "", 0)
	m, err := redirect.NewManager(s)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(m, logrus.WithField("component", "test"))
	r.POST("/redirects/create", h.Create)
	r.GET("/redirects/exists", h.Exists)
	r.GET("/redirects/loops", h.Loops)
	return r, s
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestCreate(t *testing.T) {
	r, _ := setupRouter(t)

	w, resp := do(t, r, "POST", "/redirects/create", CreateRequest{Source: "https://e.com/a", Target: "https://e.com/b"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, httpx.CodeSuccess, resp.Code)

	tests := []struct {
		name   string
		body   any
		status int
		code   int
	}{
		{"missing target", gin.H{"source": "https://e.com/x"}, http.StatusBadRequest, httpx.CodeParamMissing},
		{"wrong field type", gin.H{"source": 1, "target": "https://e.com/y"}, http.StatusBadRequest, httpx.CodeParamInvalid},
		{"too long", CreateRequest{Source: "https://e.com/" + strings.Repeat("x", 600), Target: "https://e.com/y"}, http.StatusBadRequest, httpx.CodeParamInvalid},
		{"duplicate source", CreateRequest{Source: "https://e.com/a", Target: "https://e.com/c"}, http.StatusConflict, httpx.CodeAlreadyExists},
		{"loop", CreateRequest{Source: "https://e.com/z", Target: "https://e.com/a"}, http.StatusConflict, httpx.CodeRedirectLoop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := do(t, r, "POST", "/redirects/create", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}

func TestCreate_MalformedJSON(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest("POST", "/redirects/create", strings.NewReader(`{"source":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, httpx.CodeParamInvalid, resp.Code)
}

func TestExists(t *testing.T) {
	r, s := setupRouter(t)
	require.NoError(t, s.Insert(context.Background(), "https://e.com/a", "https://e.com/b"))

	tests := []struct {
		name   string
		query  string
		status int
		exists bool
	}{
		{"source default column", "url=https://e.com/a", http.StatusOK, true},
		{"target column", "url=https://e.com/b&column=target", http.StatusOK, true},
		{"absent", "url=https://e.com/b&column=source", http.StatusOK, false},
		{"missing url", "column=source", http.StatusBadRequest, false},
		{"bad column", "url=https://e.com/a&column=created_at", http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := do(t, r, "GET", "/redirects/exists?"+tt.query, nil)
			require.Equal(t, tt.status, w.Code)
			if tt.status != http.StatusOK {
				return
			}
			var data struct {
				Exists bool `json:"exists"`
			}
			require.NoError(t, json.Unmarshal(resp.Data, &data))
			assert.Equal(t, tt.exists, data.Exists)
		})
	}
}

func TestLoops(t *testing.T) {
	r, s := setupRouter(t)
	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, "A", "B"))
	require.NoError(t, s.Insert(ctx, "C", "A"))

	w, resp := do(t, r, "GET", "/redirects/loops", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data httpx.ListData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, int64(1), data.Total)
	assert.Equal(t, []any{"A"}, data.Items)
}
