package types

// TrendDirection indicates how a metric moved relative to its baseline.
type TrendDirection string

const (
	TrendUp      TrendDirection = "up"
	TrendDown    TrendDirection = "down"
	TrendNeutral TrendDirection = "neutral"
)

// Trend compares a current metric value against a previously captured
// baseline. When no baseline exists the direction is neutral and the
// delta is empty.
type Trend struct {
	// Delta is a human-readable difference against the baseline, e.g.
	// "+12%" or "-0:45". Empty when no baseline was captured.
	Delta string `json:"delta"`

	// Direction is the movement relative to the baseline.
	Direction TrendDirection `json:"direction"`
}

// StatMetric is a derived dashboard metric. Metrics are recomputed on
// demand from the call record store and are never persisted.
type StatMetric struct {
	// Title is the display label of the metric.
	Title string `json:"title"`

	// Value is the formatted current value.
	Value string `json:"value"`

	// Trend relates the value to the prior baseline.
	Trend Trend `json:"trend"`
}
