package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/v900meme-wq/room-api/config"
	"github.com/v900meme-wq/room-api/metrics"
	"github.com/v900meme-wq/room-api/models"
	"github.com/v900meme-wq/room-api/utils"
)

type RegisterReq struct {
	Username  string `json:"username" binding:"required,max=50"`
	Password  string `json:"password" binding:"required,min=6"`
	Phone     string `json:"phone" binding:"required,max=10"`
	RoomLimit *int   `json:"roomLimit"`
	IsAdmin   bool   `json:"isAdmin"`
}

type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var req RegisterReq
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
		IsAdmin:   req.IsAdmin,
		Status:    true,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo tài khoản"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Đăng ký thành công",
		"user":    user,
	})
}

func Login(c *gin.Context) {
	metrics.AuthAttemptsCounter.Inc()

	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		metrics.AuthErrorsCounter.Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Thông tin đăng nhập không đúng"})
		return
	}

	if !user.Status {
		metrics.AuthErrorsCounter.Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Tài khoản đã bị khóa"})
		return
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		metrics.AuthErrorsCounter.Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Thông tin đăng nhập không đúng"})
		return
	}

	token, err := utils.GenerateToken(strconv.FormatUint(uint64(user.ID), 10), user.Username, user.IsAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không tạo được token"})
		return
	}

	metrics.AuthSuccessCounter.Inc()
	c.JSON(http.StatusOK, gin.H{
		"accessToken": token,
		"user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"phone":     user.Phone,
			"roomLimit": user.RoomLimit,
			"isAdmin":   user.IsAdmin,
		},
	})
}
