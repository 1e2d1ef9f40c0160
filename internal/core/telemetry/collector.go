package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/ixugo/goddd/pkg/conc"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/tmviz/kestrel/internal/conf"
	"github.com/tmviz/kestrel/internal/core/conductor"
)

// defaultFollowSpan is the window width used when follow mode turns on
// before any bounds were ever set.
const defaultFollowSpan = 15 * time.Minute

// Conductor is the slice of the time conductor the collector drives,
// decoupling the telemetry domain from the conductor implementation.
type Conductor interface {
	GetFollowMode() bool
	State() conductor.State
	SetBounds(conductor.BoundsInput) (conductor.Bounds, error)
}

// Collector samples host metrics into the store on a fixed interval. It is
// also the service's tick source: while follow mode is on it slides the
// conductor window forward so the live edge stays in view. The conductor
// core itself stays free of ticking logic.
type Collector struct {
	core      Core
	conductor Conductor
	interval  time.Duration
}

func NewCollector(core Core, cond Conductor, cfg *conf.Telemetry) *Collector {
	interval := cfg.Interval.Duration()
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Collector{core: core, conductor: cond, interval: interval}
}

// Start runs the sampling loop until ctx is cancelled.
func (c *Collector) Start(ctx context.Context) {
	slog.Info("telemetry collector started", "interval", c.interval)
	conc.Timer(ctx, c.interval, c.interval, func() {
		c.collect(ctx)
	})
}

func (c *Collector) collect(ctx context.Context) {
	now := time.Now().UnixMilli()

	if percents, err := cpu.Percent(0, false); err != nil {
		slog.Warn("cpu sample failed", "err", err)
	} else if len(percents) > 0 {
		c.addSample(ctx, MetricCPUPercent, percents[0], now)
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		slog.Warn("mem sample failed", "err", err)
	} else {
		c.addSample(ctx, MetricMemPercent, vm.UsedPercent, now)
	}

	c.advanceFollowWindow(now)
}

func (c *Collector) addSample(ctx context.Context, metric string, value float64, atMs int64) {
	if _, err := c.core.AddSample(ctx, &AddSampleInput{
		Metric:      metric,
		Value:       value,
		CollectedAt: atMs,
	}); err != nil {
		slog.Warn("store sample failed", "metric", metric, "err", err)
	}
}

// advanceFollowWindow slides the bounds so they end at now while keeping the
// window width. No-op while follow mode is off.
func (c *Collector) advanceFollowWindow(nowMs int64) {
	if !c.conductor.GetFollowMode() {
		return
	}

	span := defaultFollowSpan.Milliseconds()
	if b := c.conductor.State().Bounds; b != nil && b.End > b.Start {
		span = b.End - b.Start
	}

	start := nowMs - span
	if _, err := c.conductor.SetBounds(conductor.BoundsInput{Start: &start, End: &nowMs}); err != nil {
		slog.Warn("follow advance failed", "err", err)
	}
}
