package controllers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/v900meme-wq/room-api/middleware"
	"github.com/v900meme-wq/room-api/models"
)

func TestDeleteHouseBlockedByRooms(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "room"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	c, w := newTestContext(t, models.User{ID: 7})
	c.Set(middleware.CtxHouse, models.House{ID: 1, Address: "12 Lý Thường Kiệt", UserID: 7})

	DeleteHouse(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Không thể xóa nhà còn phòng")
}

func TestDeleteHouseCountErrorDoesNotDelete(t *testing.T) {
	mock := setupMockDB(t)

	// Count lỗi không được rơi về 0 rồi cho xóa
	mock.ExpectQuery(`SELECT count\(\*\) FROM "room"`).
		WillReturnError(errors.New("canceling statement due to statement timeout"))

	c, w := newTestContext(t, models.User{ID: 7})
	c.Set(middleware.CtxHouse, models.House{ID: 1, Address: "12 Lý Thường Kiệt", UserID: 7})

	DeleteHouse(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Lỗi DB")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRoomCountErrorDoesNotDelete(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "monthly_payment"`).
		WillReturnError(errors.New("connection reset by peer"))

	c, w := newTestContext(t, models.User{ID: 7})
	c.Set(middleware.CtxRoom, models.Room{ID: 5, RoomName: "P101", HouseID: 1})

	DeleteRoom(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Lỗi DB")
	assert.NoError(t, mock.ExpectationsWereMet())
}
