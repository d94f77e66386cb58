package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/v900meme-wq/room-api/config"
	"github.com/v900meme-wq/room-api/middleware"
	"github.com/v900meme-wq/room-api/models"
)

// setupMockDB thay config.DB bằng một GORM mở trên sqlmock,
// để test controller đi qua đúng đường SQL mà không cần Postgres thật
func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	config.DB = gdb
	return mock
}

func newTestContext(t *testing.T, u models.User) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.CtxUser, u)
	return c, w
}

func setJSONBody(t *testing.T, c *gin.Context, method, path, body string) {
	t.Helper()
	req, err := http.NewRequest(method, path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
}
