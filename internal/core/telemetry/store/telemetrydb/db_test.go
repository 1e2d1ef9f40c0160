package telemetrydb

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ixugo/goddd/pkg/orm"
	"github.com/ixugo/goddd/pkg/web"
	"github.com/tmviz/kestrel/internal/core/telemetry"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func generateMockDB() (*gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return nil, nil, err
	}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{})
	return db, mock, err
}

func TestSampleFind(t *testing.T) {
	db, mock, err := generateMockDB()
	if err != nil {
		t.Fatal(err)
	}
	sampleDB := NewDB(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "samples" WHERE metric = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "samples" WHERE metric = \$1 (.+) LIMIT \$\d`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "metric", "value", "collected_at"}).
			AddRow(1, telemetry.MetricCPUPercent, 12.5, 1000))

	query := orm.NewQuery(2).OrderBy("collected_at DESC")
	query.Where("metric = ?", telemetry.MetricCPUPercent)

	var out []*telemetry.Sample
	pager := web.PagerFilter{Page: 1, Size: 10}
	total, err := sampleDB.Sample().Find(context.Background(), &out, &pager, query.Encode()...)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(out) != 1 {
		t.Fatalf("unexpected result total=%d len=%d", total, len(out))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal("ExpectationsWereMet err:", err)
	}
}

func TestSampleAdd(t *testing.T) {
	db, mock, err := generateMockDB()
	if err != nil {
		t.Fatal(err)
	}
	sampleDB := NewDB(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "samples" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	sample := telemetry.Sample{Metric: telemetry.MetricMemPercent, Value: 63.4, CollectedAt: 2000}
	if err := sampleDB.Sample().Add(context.Background(), &sample); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal("ExpectationsWereMet err:", err)
	}
}
