package telemetry

import (
	"github.com/ixugo/goddd/pkg/web"
)

// FindSamplesInput filters samples by metric and time window; views pass the
// active conductor bounds as start_ms/end_ms.
type FindSamplesInput struct {
	web.PagerFilter
	Metric  string `form:"metric"`
	StartMs int64  `form:"start_ms"`
	EndMs   int64  `form:"end_ms"`
}

type AddSampleInput struct {
	Metric      string  `json:"metric"`
	Value       float64 `json:"value"`
	CollectedAt int64   `json:"collected_at"`
}
