package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/v900meme-wq/room-api/models"
)

func TestCanAccess(t *testing.T) {
	admin := models.User{ID: 1, IsAdmin: true}
	owner := models.User{ID: 7}
	other := models.User{ID: 8}

	// admin bỏ qua kiểm tra sở hữu trên mọi resource
	assert.True(t, CanAccess(admin, 7))
	assert.True(t, CanAccess(admin, 999))

	// user thường chỉ truy cập resource của chính mình
	assert.True(t, CanAccess(owner, 7))
	assert.False(t, CanAccess(other, 7))
}
