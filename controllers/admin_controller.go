package controllers

import (
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/v900meme-wq/room-api/config"
	"github.com/v900meme-wq/room-api/models"
)

// OccupancyRate trả về % phòng đang thuê, làm tròn 2 chữ số thập phân.
// Chưa có phòng nào thì trả 0, không chia cho 0.
func OccupancyRate(occupied, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(occupied)/float64(total)*100*100) / 100
}

type MonthRevenue struct {
	Month  int             `json:"month"`
	Year   int             `json:"year"`
	Total  decimal.Decimal `json:"total"`
	Paid   decimal.Decimal `json:"paid"`
	Unpaid decimal.Decimal `json:"unpaid"`
	Count  int             `json:"count"`
}

// BuildRevenueStats gom doanh thu theo trạng thái và theo (năm, tháng),
// sắp xếp kỳ mới nhất lên đầu. Tính toàn bộ bằng decimal.
func BuildRevenueStats(payments []models.MonthlyPayment) gin.H {
	totalRevenue := decimal.Zero
	paidRevenue := decimal.Zero
	unpaidRevenue := decimal.Zero
	paidCount := 0
	unpaidCount := 0

	byMonth := map[[2]int]*MonthRevenue{}
	for _, p := range payments {
		totalRevenue = totalRevenue.Add(p.TotalAmount)

		key := [2]int{p.Year, p.Month}
		m, ok := byMonth[key]
		if !ok {
			m = &MonthRevenue{Month: p.Month, Year: p.Year, Total: decimal.Zero, Paid: decimal.Zero, Unpaid: decimal.Zero}
			byMonth[key] = m
		}
		m.Total = m.Total.Add(p.TotalAmount)
		m.Count++

		if p.Status == "paid" {
			paidRevenue = paidRevenue.Add(p.TotalAmount)
			paidCount++
			m.Paid = m.Paid.Add(p.TotalAmount)
		} else {
			unpaidRevenue = unpaidRevenue.Add(p.TotalAmount)
			unpaidCount++
			m.Unpaid = m.Unpaid.Add(p.TotalAmount)
		}
	}

	revenueByMonth := make([]MonthRevenue, 0, len(byMonth))
	for _, m := range byMonth {
		revenueByMonth = append(revenueByMonth, *m)
	}
	sort.Slice(revenueByMonth, func(i, j int) bool {
		if revenueByMonth[i].Year != revenueByMonth[j].Year {
			return revenueByMonth[i].Year > revenueByMonth[j].Year
		}
		return revenueByMonth[i].Month > revenueByMonth[j].Month
	})

	return gin.H{
		"totalRevenue":        totalRevenue,
		"paidRevenue":         paidRevenue,
		"unpaidRevenue":       unpaidRevenue,
		"totalPaidPayments":   paidCount,
		"totalUnpaidPayments": unpaidCount,
		"revenueByMonth":      revenueByMonth,
	}
}

func parseDateQuery(c *gin.Context, key string) *time.Time {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return &t
	}
	return nil
}

// GET /api/admin/dashboard?startDate=&endDate=
func GetDashboard(c *gin.Context) {
	startDate := parseDateQuery(c, "startDate")
	endDate := parseDateQuery(c, "endDate")

	var totalUsers, totalHouses, totalRooms, totalPayments int64
	config.DB.Model(&models.User{}).Count(&totalUsers)
	config.DB.Model(&models.House{}).Count(&totalHouses)
	config.DB.Model(&models.Room{}).Count(&totalRooms)

	paymentQuery := config.DB.Model(&models.MonthlyPayment{})
	if startDate != nil {
		paymentQuery = paymentQuery.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		paymentQuery = paymentQuery.Where("created_at <= ?", *endDate)
	}
	paymentQuery.Count(&totalPayments)

	// user active = status còn hoạt động và có ít nhất một phòng đang cho thuê
	var activeUsers int64
	config.DB.Model(&models.User{}).
		Where("status = ?", true).
		Where(`EXISTS (
			SELECT 1 FROM house
			JOIN room ON room.house_id = house.id
			WHERE house.user_id = "user".id AND room.status = 'rented'
		)`).
		Count(&activeUsers)

	var occupiedRooms int64
	config.DB.Model(&models.Room{}).Where("status = ?", "rented").Count(&occupiedRooms)

	var payments []models.MonthlyPayment
	revenueQuery := config.DB.Model(&models.MonthlyPayment{}).
		Select("total_amount", "status", "month", "year")
	if startDate != nil {
		revenueQuery = revenueQuery.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		revenueQuery = revenueQuery.Where("created_at <= ?", *endDate)
	}
	if err := revenueQuery.Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được thống kê doanh thu"})
		return
	}

	var unpaidPayments []models.MonthlyPayment
	config.DB.
		Preload("Room.House").
		Where("status = ?", "unpaid").
		Order("year desc, month desc").
		Limit(20).
		Find(&unpaidPayments)

	var activities []models.AuditLog
	config.DB.Order("created_at desc").Limit(20).Find(&activities)
	recentActivities := make([]gin.H, 0, len(activities))
	for _, a := range activities {
		recentActivities = append(recentActivities, auditLogJSON(a))
	}

	c.JSON(http.StatusOK, gin.H{
		"overview": gin.H{
			"totalUsers":     totalUsers,
			"totalHouses":    totalHouses,
			"totalRooms":     totalRooms,
			"totalPayments":  totalPayments,
			"activeUsers":    activeUsers,
			"occupiedRooms":  occupiedRooms,
			"availableRooms": totalRooms - occupiedRooms,
			"occupancyRate":  OccupancyRate(occupiedRooms, totalRooms),
		},
		"revenue":          BuildRevenueStats(payments),
		"unpaidPayments":   unpaidPayments,
		"recentActivities": recentActivities,
	})
}

// GET /api/admin/users/stats — mỗi user kèm số nhà, số phòng và % sử dụng giới hạn
func GetUserStats(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("id asc").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được thống kê người dùng"})
		return
	}

	data := make([]gin.H, 0, len(users))
	for _, u := range users {
		var houseCount, roomCount int64
		config.DB.Model(&models.House{}).Where("user_id = ?", u.ID).Count(&houseCount)
		roomCount, _ = countRoomsOfUser(config.DB, u.ID)

		var utilization *int
		if u.RoomLimit != nil && *u.RoomLimit > 0 {
			v := int(math.Round(float64(roomCount) / float64(*u.RoomLimit) * 100))
			utilization = &v
		}

		data = append(data, gin.H{
			"id":              u.ID,
			"username":        u.Username,
			"phone":           u.Phone,
			"roomLimit":       u.RoomLimit,
			"isAdmin":         u.IsAdmin,
			"status":          u.Status,
			"createdAt":       u.CreatedAt,
			"houseCount":      houseCount,
			"roomCount":       roomCount,
			"roomUtilization": utilization,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}

// GET /api/admin/houses/stats — mỗi nhà kèm tỷ lệ lấp đầy và doanh thu đã thu
func GetHouseStats(c *gin.Context) {
	var houses []models.House
	if err := config.DB.Preload("User").Order("id asc").Find(&houses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được thống kê nhà"})
		return
	}

	data := make([]gin.H, 0, len(houses))
	for _, h := range houses {
		var totalRooms, occupiedRooms int64
		config.DB.Model(&models.Room{}).Where("house_id = ?", h.ID).Count(&totalRooms)
		config.DB.Model(&models.Room{}).Where("house_id = ? AND status = ?", h.ID, "rented").Count(&occupiedRooms)

		var totalRevenue decimal.Decimal
		config.DB.Model(&models.MonthlyPayment{}).
			Joins("JOIN room ON room.id = monthly_payment.room_id").
			Where("room.house_id = ? AND monthly_payment.status = ?", h.ID, "paid").
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&totalRevenue)

		data = append(data, gin.H{
			"id":             h.ID,
			"address":        h.Address,
			"note":           h.Note,
			"userId":         h.UserID,
			"user":           h.User,
			"totalRooms":     totalRooms,
			"occupiedRooms":  occupiedRooms,
			"availableRooms": totalRooms - occupiedRooms,
			"occupancyRate":  OccupancyRate(occupiedRooms, totalRooms),
			"totalRevenue":   totalRevenue,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}

// GET /api/admin/rooms/stats — mỗi phòng kèm số hóa đơn, doanh thu đã thu, số hóa đơn nợ
func GetRoomStats(c *gin.Context) {
	var rooms []models.Room
	if err := config.DB.Preload("House.User").Order("id asc").Find(&rooms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được thống kê phòng"})
		return
	}

	data := make([]gin.H, 0, len(rooms))
	for _, r := range rooms {
		var totalPayments, unpaidCount int64
		config.DB.Model(&models.MonthlyPayment{}).Where("room_id = ?", r.ID).Count(&totalPayments)
		config.DB.Model(&models.MonthlyPayment{}).Where("room_id = ? AND status = ?", r.ID, "unpaid").Count(&unpaidCount)

		var totalRevenue decimal.Decimal
		config.DB.Model(&models.MonthlyPayment{}).
			Where("room_id = ? AND status = ?", r.ID, "paid").
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&totalRevenue)

		data = append(data, gin.H{
			"room":          r,
			"totalPayments": totalPayments,
			"totalRevenue":  totalRevenue,
			"unpaidCount":   unpaidCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}
