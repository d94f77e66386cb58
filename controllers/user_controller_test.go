package controllers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/v900meme-wq/room-api/models"
)

func TestDeleteUserBlockedByHouses(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "user" WHERE "user"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "status"}).
			AddRow(3, "chunha", true))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "house"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	c, w := newTestContext(t, models.User{ID: 1, IsAdmin: true})
	c.Params = gin.Params{{Key: "id", Value: "3"}}

	DeleteUser(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "còn sở hữu nhà")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserCountErrorDoesNotDelete(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "user" WHERE "user"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "status"}).
			AddRow(3, "chunha", true))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "house"`).
		WillReturnError(errors.New("canceling statement due to statement timeout"))

	c, w := newTestContext(t, models.User{ID: 1, IsAdmin: true})
	c.Params = gin.Params{{Key: "id", Value: "3"}}

	DeleteUser(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Lỗi DB")
	assert.NoError(t, mock.ExpectationsWereMet())
}
