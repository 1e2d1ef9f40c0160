package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/ixugo/goddd/pkg/orm"
	"github.com/ixugo/goddd/pkg/reason"
	"github.com/jinzhu/copier"
	"github.com/tmviz/kestrel/internal/conf"
	"gorm.io/gorm"
)

// Storer data persistence
type Storer interface {
	Sample() SampleStorer
}

// SampleStorer Instantiation interface
type SampleStorer interface {
	Find(context.Context, *[]*Sample, orm.Pager, ...orm.QueryOption) (int64, error)
	Add(context.Context, *Sample) error
	Count(context.Context, ...orm.QueryOption) (int64, error)

	Session(context.Context, ...func(*gorm.DB) error) error
}

// Core business domain
type Core struct {
	store Storer
	conf  *conf.Telemetry
}

type Option func(*Core)

// WithConfig injects collector/retention settings.
func WithConfig(cfg *conf.Telemetry) Option {
	return func(c *Core) {
		c.conf = cfg
	}
}

// NewCore create business domain
func NewCore(store Storer, opts ...Option) Core {
	c := Core{store: store}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// FindSamples returns a page of samples, newest first, filtered by metric
// and by the supplied time window when both ends are given.
func (c Core) FindSamples(ctx context.Context, in *FindSamplesInput) ([]*Sample, int64, error) {
	query := orm.NewQuery(3).OrderBy("collected_at DESC")

	if in.Metric != "" {
		query.Where("metric = ?", in.Metric)
	}
	if in.StartMs > 0 && in.EndMs > 0 {
		query.Where("collected_at >= ? AND collected_at <= ?", in.StartMs, in.EndMs)
	}

	items := make([]*Sample, 0, in.Limit())
	total, err := c.store.Sample().Find(ctx, &items, in, query.Encode()...)
	if err != nil {
		return nil, 0, reason.ErrDB.Withf(`Find in[%+v] err[%s]`, in, err.Error())
	}
	return items, total, nil
}

// AddSample Insert into database
func (c Core) AddSample(ctx context.Context, in *AddSampleInput) (*Sample, error) {
	var out Sample
	if err := copier.Copy(&out, in); err != nil {
		slog.ErrorContext(ctx, "Copy", "err", err)
	}
	if out.CollectedAt == 0 {
		out.CollectedAt = time.Now().UnixMilli()
	}

	if err := c.store.Sample().Add(ctx, &out); err != nil {
		return nil, reason.ErrDB.Withf(`Add err[%s]`, err.Error())
	}
	return &out, nil
}

// CountSamples reports how many samples a window holds.
func (c Core) CountSamples(ctx context.Context, startMs, endMs int64) (int64, error) {
	total, err := c.store.Sample().Count(ctx,
		orm.Where("collected_at >= ? AND collected_at <= ?", startMs, endMs),
	)
	if err != nil {
		return 0, reason.ErrDB.Withf(`Count err[%s]`, err.Error())
	}
	return total, nil
}

// StartCleanupWorker deletes samples older than the retain window once a
// day. A non-positive retain_days disables cleanup.
func (c Core) StartCleanupWorker(ctx context.Context) {
	if c.conf == nil || c.conf.RetainDays <= 0 {
		slog.Info("sample cleanup disabled")
		return
	}
	slog.Info("sample cleanup worker started", "retain_days", c.conf.RetainDays)

	c.cleanupExpiredSamples(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.cleanupExpiredSamples(ctx)
		}
	}
}

func (c Core) cleanupExpiredSamples(ctx context.Context) {
	cutoffMs := time.Now().AddDate(0, 0, -c.conf.RetainDays).UnixMilli()

	err := c.store.Sample().Session(ctx, func(tx *gorm.DB) error {
		return tx.Where("collected_at < ?", cutoffMs).Delete(&Sample{}).Error
	})
	if err != nil {
		slog.Warn("failed to delete expired samples", "err", err)
		return
	}
	slog.Info("sample cleanup completed", "cutoff_ms", cutoffMs)
}
