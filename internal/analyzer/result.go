package analyzer

import "github.com/jacobarthurs/dremprof/internal/metrics"

type AnomalyKind int

const (
	HighWait AnomalyKind = iota
	HighMemory
	HighVolume
	LowSelectivity
	ExpensiveJoin
	ExpensiveSort
)

func (k AnomalyKind) String() string {
	switch k {
	case HighWait:
		return "high-wait"
	case HighMemory:
		return "high-memory"
	case HighVolume:
		return "high-volume"
	case LowSelectivity:
		return "low-selectivity"
	case ExpensiveJoin:
		return "expensive-join"
	case ExpensiveSort:
		return "expensive-sort"
	default:
		return "unknown"
	}
}

// Title is the section heading the renderer shows for a group of
// anomalies of this kind.
func (k AnomalyKind) Title() string {
	switch k {
	case HighWait:
		return "High wait time (potential I/O bottleneck)"
	case HighMemory:
		return "High memory usage"
	case HighVolume:
		return "High record volume"
	case LowSelectivity:
		return "Low selectivity (filtering many records)"
	case ExpensiveJoin:
		return "Expensive join"
	case ExpensiveSort:
		return "Expensive sort"
	default:
		return "Unknown"
	}
}

// OperatorRef identifies the offending operator of an anomaly.
type OperatorRef struct {
	FragmentID      int32
	MinorFragmentID int32
	OperatorID      int32
}

// Anomaly is one flagged finding. Value carries the triggering metric;
// Message is display-ready text computed here so renderers stay
// formatting-only.
type Anomaly struct {
	Kind     AnomalyKind
	Operator *OperatorRef
	Value    float64
	Message  string
}

// Summary holds the aggregate statistics of one analyzed profile.
type Summary struct {
	QueryMillis    int64
	PlanningMillis int64

	OperatorCount     int
	TotalOperatorTime int64
	MaxOperatorTime   int64
	AvgOperatorTime   int64

	PhaseCount     int
	TotalPhaseTime int64
	MaxPhaseTime   int64

	TotalInputRecords int64
	TotalInputBytes   int64
	TotalPeakMemory   int64

	// OverallThroughput is total input records per second of total
	// process time across all operators, 0 when no process time was
	// recorded.
	OverallThroughput float64
}

// Report is the assembled analysis handed to a renderer.
type Report struct {
	QueryID string
	User    string

	// Ranked descending by total time; ties keep extraction order.
	Operators []metrics.OperatorMetric
	Phases    []metrics.PhaseMetric

	Summary   Summary
	Anomalies []Anomaly

	// Head of the respective ranked sequence, nil when empty.
	LongestOperator *metrics.OperatorMetric
	LongestPhase    *metrics.PhaseMetric
}
