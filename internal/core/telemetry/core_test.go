package telemetry

import (
	"context"
	"testing"

	"github.com/ixugo/goddd/pkg/orm"
	"gorm.io/gorm"
)

type fakeSampleStorer struct {
	samples []*Sample
	findLen int
}

func (f *fakeSampleStorer) Find(_ context.Context, out *[]*Sample, _ orm.Pager, opts ...orm.QueryOption) (int64, error) {
	f.findLen = len(opts)
	*out = append(*out, f.samples...)
	return int64(len(f.samples)), nil
}

func (f *fakeSampleStorer) Add(_ context.Context, s *Sample) error {
	s.ID = int64(len(f.samples) + 1)
	f.samples = append(f.samples, s)
	return nil
}

func (f *fakeSampleStorer) Count(context.Context, ...orm.QueryOption) (int64, error) {
	return int64(len(f.samples)), nil
}

func (f *fakeSampleStorer) Session(context.Context, ...func(*gorm.DB) error) error {
	return nil
}

type fakeStorer struct{ s *fakeSampleStorer }

func (f fakeStorer) Sample() SampleStorer { return f.s }

func TestAddSampleDefaultsTimestamp(t *testing.T) {
	store := &fakeSampleStorer{}
	core := NewCore(fakeStorer{s: store})

	out, err := core.AddSample(context.Background(), &AddSampleInput{
		Metric: MetricCPUPercent,
		Value:  42.5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.CollectedAt == 0 {
		t.Fatal("missing collected_at must default to now")
	}
	if out.Metric != MetricCPUPercent || out.Value != 42.5 {
		t.Fatalf("input not copied onto entity: %+v", out)
	}
}

func TestFindSamplesFilters(t *testing.T) {
	store := &fakeSampleStorer{samples: []*Sample{
		{ID: 1, Metric: MetricCPUPercent, Value: 10, CollectedAt: 1000},
	}}
	core := NewCore(fakeStorer{s: store})

	items, total, err := core.FindSamples(context.Background(), &FindSamplesInput{
		Metric:  MetricCPUPercent,
		StartMs: 500,
		EndMs:   2000,
	})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("unexpected result total=%d len=%d", total, len(items))
	}
	if store.findLen == 0 {
		t.Fatal("expected query options for metric, window and ordering")
	}
}
