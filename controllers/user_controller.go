package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/v900meme-wq/room-api/config"
	"github.com/v900meme-wq/room-api/middleware"
	"github.com/v900meme-wq/room-api/models"
	"github.com/v900meme-wq/room-api/utils"
)

type CreateUserReq struct {
	Username  string `json:"username" binding:"required,max=50"`
	Password  string `json:"password" binding:"required,min=6"`
	Phone     string `json:"phone" binding:"required,max=10"`
	RoomLimit *int   `json:"roomLimit"`
	IsAdmin   *bool  `json:"isAdmin"`
	Status    *bool  `json:"status"`
}

type UpdateUserReq struct {
	Username  *string `json:"username" binding:"omitempty,max=50"`
	Password  *string `json:"password" binding:"omitempty,min=6"`
	Phone     *string `json:"phone" binding:"omitempty,max=10"`
	RoomLimit *int    `json:"roomLimit"`
	IsAdmin   *bool   `json:"isAdmin"`
	Status    *bool   `json:"status"`
}

// POST /api/users (admin)
func CreateUser(c *gin.Context) {
	var req CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	var count int64
	config.DB.Model(&models.User{}).Where("username = ?", req.Username).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "Tên đăng nhập đã tồn tại"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể mã hóa mật khẩu"})
		return
	}

	user := models.User{
		Username:  req.Username,
		Password:  hash,
		Phone:     req.Phone,
		RoomLimit: req.RoomLimit,
		Status:    true,
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if req.Status != nil {
		user.Status = *req.Status
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo tài khoản"})
		return
	}

	recordAudit(c, ActionCreate, EntityUser, user.ID, nil, user)
	c.JSON(http.StatusCreated, gin.H{"data": user})
}

// GET /api/users (admin)
func ListUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("id asc").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được danh sách người dùng"})
		return
	}

	// Gắn thêm số nhà mỗi user (quy mô dữ liệu nhỏ, đếm từng dòng là đủ)
	data := make([]gin.H, 0, len(users))
	for _, u := range users {
		var houseCount int64
		config.DB.Model(&models.House{}).Where("user_id = ?", u.ID).Count(&houseCount)
		data = append(data, gin.H{
			"id":         u.ID,
			"username":   u.Username,
			"phone":      u.Phone,
			"roomLimit":  u.RoomLimit,
			"isAdmin":    u.IsAdmin,
			"status":     u.Status,
			"createdAt":  u.CreatedAt,
			"updatedAt":  u.UpdatedAt,
			"houseCount": houseCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}

// GET /api/users/:id — user thường chỉ xem được chính mình, admin xem được tất cả
func GetUser(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	if !u.IsAdmin && u.ID != uint(id) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Bạn chỉ có thể xem thông tin của chính mình"})
		return
	}

	var user models.User
	if err := config.DB.Preload("Houses").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy người dùng"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
		return
	}

	houses := make([]gin.H, 0, len(user.Houses))
	for _, h := range user.Houses {
		var roomCount int64
		config.DB.Model(&models.Room{}).Where("house_id = ?", h.ID).Count(&roomCount)
		houses = append(houses, gin.H{
			"id":        h.ID,
			"address":   h.Address,
			"roomCount": roomCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"phone":     user.Phone,
		"roomLimit": user.RoomLimit,
		"isAdmin":   user.IsAdmin,
		"status":    user.Status,
		"createdAt": user.CreatedAt,
		"updatedAt": user.UpdatedAt,
		"houses":    houses,
	})
}

// PATCH /api/users/:id (admin)
func UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	var req UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy người dùng"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
		return
	}
	oldUser := user

	// Đổi username thì phải kiểm tra trùng
	if req.Username != nil && *req.Username != user.Username {
		var count int64
		config.DB.Model(&models.User{}).Where("username = ?", *req.Username).Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"message": "Tên đăng nhập đã tồn tại"})
			return
		}
		user.Username = *req.Username
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể mã hóa mật khẩu"})
			return
		}
		user.Password = hash
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.RoomLimit != nil {
		user.RoomLimit = req.RoomLimit
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if req.Status != nil {
		user.Status = *req.Status
	}

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không cập nhật được người dùng"})
		return
	}

	recordAudit(c, ActionUpdate, EntityUser, user.ID, oldUser, user)
	c.JSON(http.StatusOK, gin.H{"data": user})
}

// DELETE /api/users/:id (admin) — chặn xóa khi user còn sở hữu nhà
func DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy người dùng"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
		return
	}

	// Count lỗi thì không được coi là 0 nhà rồi xóa bừa
	var houseCount int64
	if err := config.DB.Model(&models.House{}).Where("user_id = ?", user.ID).Count(&houseCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
		return
	}
	if houseCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "Không thể xóa người dùng còn sở hữu nhà. Hãy xóa hết nhà trước."})
		return
	}

	if err := config.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không xóa được người dùng"})
		return
	}

	recordAudit(c, ActionDelete, EntityUser, user.ID, user, nil)
	c.JSON(http.StatusOK, gin.H{"message": "Xóa người dùng thành công"})
}
