package controllers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/v900meme-wq/room-api/middleware"
	"github.com/v900meme-wq/room-api/models"
)

const createPaymentBody = `{
	"electStart": 100,
	"electEnd": 150,
	"waterStart": 10,
	"waterEnd": 20,
	"month": 1,
	"year": 2026,
	"status": "unpaid",
	"roomId": 5
}`

func expectRoomWithHouse(mock sqlmock.Sqlmock, roomID, houseID, ownerID int64) {
	mock.ExpectQuery(`SELECT \* FROM "room" WHERE "room"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_name", "house_id"}).
			AddRow(roomID, "P101", houseID))
	mock.ExpectQuery(`SELECT \* FROM "house"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).
			AddRow(houseID, ownerID))
}

func TestCreatePaymentDuplicatePeriodPreCheck(t *testing.T) {
	mock := setupMockDB(t)

	expectRoomWithHouse(mock, 5, 1, 7)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "monthly_payment"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	c, w := newTestContext(t, models.User{ID: 7})
	setJSONBody(t, c, "POST", "/api/payments", createPaymentBody)

	CreatePayment(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "đã tồn tại")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentDuplicatePeriodUniqueIndex(t *testing.T) {
	mock := setupMockDB(t)

	expectRoomWithHouse(mock, 5, 1, 7)

	// Request song song lách qua pre-check: unique index của DB vẫn phải chặn
	// và lỗi trùng key phải được map ra 409
	mock.ExpectQuery(`SELECT count\(\*\) FROM "monthly_payment"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "monthly_payment"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_payment_room_period"})
	mock.ExpectRollback()

	c, w := newTestContext(t, models.User{ID: 7})
	setJSONBody(t, c, "POST", "/api/payments", createPaymentBody)

	CreatePayment(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "đã tồn tại")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePaymentKeepsRoomInResponse(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "monthly_payment"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, w := newTestContext(t, models.User{ID: 7})
	c.Set(middleware.CtxPayment, models.MonthlyPayment{
		ID: 9, Month: 1, Year: 2026, RoomID: 5, Status: "unpaid",
		Room: &models.Room{ID: 5, RoomName: "P101", HouseID: 1},
	})
	setJSONBody(t, c, "PATCH", "/api/payments/9", `{"status": "paid"}`)

	UpdatePayment(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"P101"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
