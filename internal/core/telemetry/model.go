package telemetry

// Metric names produced by the built-in host collector.
const (
	MetricCPUPercent = "cpu_percent"
	MetricMemPercent = "mem_percent"
)

// Sample is one telemetry point. CollectedAt is epoch milliseconds so range
// queries line up with conductor bounds in the UTC time system.
type Sample struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Metric      string  `gorm:"index;size:64;notNull" json:"metric"`
	Value       float64 `gorm:"notNull" json:"value"`
	CollectedAt int64   `gorm:"index;notNull" json:"collected_at"`
}

func (*Sample) TableName() string {
	return "samples"
}
