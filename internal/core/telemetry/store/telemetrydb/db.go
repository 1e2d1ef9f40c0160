package telemetrydb

import (
	"context"

	"github.com/ixugo/goddd/pkg/orm"
	"github.com/tmviz/kestrel/internal/core/telemetry"
	"gorm.io/gorm"
)

var _ telemetry.Storer = &DB{}

type DB struct {
	db *gorm.DB
}

func NewDB(db *gorm.DB) *DB {
	return &DB{db: db}
}

// AutoMigrate creates or updates the samples table when enabled.
func (d *DB) AutoMigrate(ok bool) *DB {
	if ok {
		if err := d.db.AutoMigrate(&telemetry.Sample{}); err != nil {
			panic(err)
		}
	}
	return d
}

func (d *DB) Sample() telemetry.SampleStorer {
	return Sample{db: d.db}
}

var _ telemetry.SampleStorer = Sample{}

type Sample struct {
	db *gorm.DB
}

// Find implements telemetry.SampleStorer.
func (s Sample) Find(ctx context.Context, items *[]*telemetry.Sample, pager orm.Pager, opts ...orm.QueryOption) (int64, error) {
	db := s.db.WithContext(ctx).Model(&telemetry.Sample{})
	for _, opt := range opts {
		db = opt(db)
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return 0, err
	}
	err := db.Limit(pager.Limit()).Offset(pager.Offset()).Find(items).Error
	return total, err
}

// Add implements telemetry.SampleStorer.
func (s Sample) Add(ctx context.Context, sample *telemetry.Sample) error {
	return s.db.WithContext(ctx).Create(sample).Error
}

// Count implements telemetry.SampleStorer.
func (s Sample) Count(ctx context.Context, opts ...orm.QueryOption) (int64, error) {
	db := s.db.WithContext(ctx).Model(&telemetry.Sample{})
	for _, opt := range opts {
		db = opt(db)
	}
	var total int64
	err := db.Count(&total).Error
	return total, err
}

// Session implements telemetry.SampleStorer.
func (s Sample) Session(ctx context.Context, changeFns ...func(*gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, fn := range changeFns {
			if err := fn(tx); err != nil {
				return err
			}
		}
		return nil
	})
}
