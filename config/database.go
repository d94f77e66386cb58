package config

import (
	"fmt"
	"log"

	"github.com/v900meme-wq/room-api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB khởi tạo kết nối PostgreSQL và migrate bảng
func ConnectDB(cfg *AppConfig) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Ho_Chi_Minh",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	// TranslateError: vi phạm unique index trả về gorm.ErrDuplicatedKey,
	// để controller map được sang 409 thay vì lỗi 500 chung chung
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Auto migrate bảng
	err = db.AutoMigrate(
		&models.User{},
		&models.House{},
		&models.Room{},
		&models.MonthlyPayment{},
		&models.Price{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	DB = db
	log.Println("Connected to PostgreSQL & migrated successfully")
}
