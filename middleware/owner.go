package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/v900meme-wq/room-api/config"
	"github.com/v900meme-wq/room-api/models"
)

// CanAccess là luật phân quyền duy nhất của service: admin thao tác được mọi
// resource, user thường chỉ thao tác resource thuộc sở hữu của mình
// (house của mình, room trong house đó, payment của room đó).
func CanAccess(u models.User, ownerID uint) bool {
	return u.IsAdmin || u.ID == ownerID
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return 0, false
	}
	return uint(id), true
}

// CheckHouseOwner: nạp house vào context & xác thực quyền truy cập.
// Kiểm tra tồn tại trước, sở hữu sau.
func CheckHouseOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := c.MustGet(CtxUser).(models.User)

		id, ok := parseIDParam(c)
		if !ok {
			return
		}

		var house models.House
		if err := config.DB.First(&house, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy nhà"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
			return
		}

		if !CanAccess(u, house.UserID) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Bạn không có quyền thao tác nhà này"})
			return
		}

		// Đưa house vào context để controller dùng tiếp
		c.Set(CtxHouse, house)
		c.Next()
	}
}

// CheckRoomOwner: nạp room (kèm house) vào context & xác thực quyền qua chủ nhà.
func CheckRoomOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := c.MustGet(CtxUser).(models.User)

		id, ok := parseIDParam(c)
		if !ok {
			return
		}

		var room models.Room
		if err := config.DB.Preload("House").First(&room, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy phòng"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
			return
		}

		if room.House == nil || !CanAccess(u, room.House.UserID) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Bạn chỉ có thể thao tác phòng của nhà bạn"})
			return
		}

		c.Set(CtxRoom, room)
		c.Next()
	}
}

// CheckPaymentOwner: nạp payment (kèm room + house) vào context & xác thực quyền.
func CheckPaymentOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := c.MustGet(CtxUser).(models.User)

		id, ok := parseIDParam(c)
		if !ok {
			return
		}

		var payment models.MonthlyPayment
		if err := config.DB.Preload("Room.House").First(&payment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy hóa đơn"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
			return
		}

		if payment.Room == nil || payment.Room.House == nil || !CanAccess(u, payment.Room.House.UserID) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Bạn chỉ có thể thao tác hóa đơn của bạn"})
			return
		}

		c.Set(CtxPayment, payment)
		c.Next()
	}
}
