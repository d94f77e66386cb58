package controllers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/v900meme-wq/room-api/models"
)

const createRoomBody = `{
	"roomName": "P104",
	"renter": "Nguyễn Văn A",
	"phone": "0901234567",
	"area": 20,
	"status": "rented",
	"roomPrice": 2000000,
	"electPrice": 3500,
	"waterPrice": 10000,
	"trashFee": 50000,
	"washingMachineFee": 30000,
	"elevatorFee": 20000,
	"parkingFee": 0,
	"deposit": 1000000,
	"rentedAt": "2026-01-01T00:00:00Z",
	"houseId": 1
}`

func expectHouseLookup(mock sqlmock.Sqlmock, houseID, ownerID int64) {
	mock.ExpectQuery(`SELECT \* FROM "house" WHERE "house"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "address", "note", "user_id"}).
			AddRow(houseID, "12 Lý Thường Kiệt", "", ownerID))
}

func TestCreateRoomRejectsWhenOwnerAtLimit(t *testing.T) {
	mock := setupMockDB(t)

	expectHouseLookup(mock, 1, 7)

	// Trong transaction: lock chủ nhà (roomLimit=3) rồi đếm ra đúng 3 phòng
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "user".*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "room_limit", "is_admin", "status"}).
			AddRow(7, "chunha", 3, false, true))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "room" JOIN house`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	c, w := newTestContext(t, models.User{ID: 7})
	setJSONBody(t, c, "POST", "/api/rooms", createRoomBody)

	CreateRoom(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "số lượng phòng tối đa (3)")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRoomUnlimitedWhenRoomLimitNull(t *testing.T) {
	mock := setupMockDB(t)

	expectHouseLookup(mock, 1, 7)

	// roomLimit NULL = không giới hạn: không đếm phòng, insert luôn
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "user".*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "room_limit", "is_admin", "status"}).
			AddRow(7, "chunha", nil, false, true))
	mock.ExpectQuery(`INSERT INTO "room"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectCommit()

	c, w := newTestContext(t, models.User{ID: 7})
	setJSONBody(t, c, "POST", "/api/rooms", createRoomBody)

	CreateRoom(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
