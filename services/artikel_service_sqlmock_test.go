package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("could not create sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("could not open gorm with sqlmock: %v", err)
	}
	return db, mock
}

// Verifies the availability filter reaches the SQL layer instead of being
// applied in memory.
func TestFindVerfuegbareArtikel_QueryShape(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewArtikelService(db, NewTestValidator(t))

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "bezeichnung", "preis", "verfuegbar", "erzeugt", "aktualisiert"}).
		AddRow(1, "Tisch", "124.99", true, now, now).
		AddRow(2, "Stuhl", "50.00", true, now, now)

	mock.ExpectQuery(`SELECT (.+) FROM "artikel" WHERE verfuegbar = (.+) ORDER BY id`).
		WithArgs(true).
		WillReturnRows(rows)

	artikel, err := svc.FindVerfuegbareArtikel(context.Background())

	assert.NoError(t, err)
	assert.Len(t, artikel, 2)
	assert.Equal(t, "Tisch", artikel[0].Bezeichnung)
	assert.NoError(t, mock.ExpectationsWereMet())
}
