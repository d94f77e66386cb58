package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/v900meme-wq/room-api/config"
	"github.com/v900meme-wq/room-api/models"
	"github.com/v900meme-wq/room-api/utils"
)

const (
	CtxUser      = "user"       // models.User đã xác thực
	CtxHouse     = "houseObj"   // house đã nạp sẵn bởi CheckHouseOwner
	CtxRoom      = "roomObj"    // room đã nạp sẵn bởi CheckRoomOwner
	CtxPayment   = "paymentObj" // payment đã nạp sẵn bởi CheckPaymentOwner
	CtxRequestID = "request_id"
)

// AuthJWT kiểm tra Authorization: Bearer <token>, validate JWT, lấy user và inject vào context.
func AuthJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing or invalid Authorization header"})
			return
		}
		rawToken := strings.TrimSpace(authHeader[7:])

		claims, err := utils.VerifyToken(rawToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		// UserID trong claims là string → parse ra uint64 để tìm DB theo primary key
		uid, err := strconv.ParseUint(claims.UserID, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid subject"})
			return
		}

		var user models.User
		if err := config.DB.First(&user, uid).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
			return
		}

		// Tài khoản bị khóa thì token cũ không còn dùng được
		if !user.Status {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Tài khoản đã bị khóa"})
			return
		}

		// Inject vào context
		c.Set(CtxUser, user)

		c.Next()
	}
}

// RequireAdmin chặn các route chỉ dành cho admin
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(CtxUser)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		u := v.(models.User)
		if !u.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}
		c.Next()
	}
}
