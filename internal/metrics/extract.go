package metrics

import "github.com/jacobarthurs/dremprof/internal/profile"

// OperatorMetric is one normalized row per (fragment, minor fragment,
// operator) triple. Built once per extraction pass and never mutated or
// merged afterwards.
type OperatorMetric struct {
	FragmentID      int32
	MinorFragmentID int32
	OperatorID      int32

	OperatorType int32
	OperatorName string

	SetupNanos   int64
	ProcessNanos int64
	WaitNanos    int64
	// TotalNanos is always setup+process+wait, recomputed here rather
	// than trusted from the capture.
	TotalNanos int64

	InputRecords  int64
	OutputRecords int64
	InputBytes    int64
	OutputBytes   int64
	PeakMemory    int64

	CustomMetrics map[int32]MetricValue
}

// MetricValue is a tagged numeric: Dremio operator metrics carry either a
// longValue or a doubleValue depending on the counter.
type MetricValue struct {
	Long     int64
	Double   float64
	IsDouble bool
}

// Float64 widens either variant for arithmetic and display.
func (v MetricValue) Float64() float64 {
	if v.IsDouble {
		return v.Double
	}
	return float64(v.Long)
}

// PhaseMetric is one planning-phase duration.
type PhaseMetric struct {
	PhaseName      string
	DurationMillis int64
}

// ExtractOperators flattens the fragment → minor fragment → operator
// hierarchy into one OperatorMetric per operator record, in document
// order. Missing hierarchy levels yield an empty result, never an error.
func ExtractOperators(doc profile.Document) []OperatorMetric {
	var operators []OperatorMetric

	for _, fragment := range doc.Fragments {
		for _, minor := range fragment.MinorFragments {
			for _, op := range minor.Operators {
				var inputRecords, inputBytes int64
				for _, in := range op.InputProfile {
					inputRecords += in.Records
					inputBytes += in.Size
				}

				operators = append(operators, OperatorMetric{
					FragmentID:      fragment.MajorFragmentID,
					MinorFragmentID: minor.MinorFragmentID,
					OperatorID:      op.OperatorID,
					OperatorType:    op.OperatorType,
					OperatorName:    OperatorTypeName(op.OperatorType),
					SetupNanos:      op.SetupNanos,
					ProcessNanos:    op.ProcessNanos,
					WaitNanos:       op.WaitNanos,
					TotalNanos:      op.SetupNanos + op.ProcessNanos + op.WaitNanos,
					InputRecords:    inputRecords,
					OutputRecords:   op.OutputRecords,
					InputBytes:      inputBytes,
					OutputBytes:     op.OutputBytes,
					PeakMemory:      op.PeakLocalMemoryAllocated,
					CustomMetrics:   extractCustomMetrics(op.Metrics),
				})
			}
		}
	}

	return operators
}

// extractCustomMetrics keeps only entries carrying a numeric value.
func extractCustomMetrics(entries []profile.MetricEntry) map[int32]MetricValue {
	var values map[int32]MetricValue
	for _, entry := range entries {
		var v MetricValue
		switch {
		case entry.LongValue != nil:
			v = MetricValue{Long: *entry.LongValue}
		case entry.DoubleValue != nil:
			v = MetricValue{Double: *entry.DoubleValue, IsDouble: true}
		default:
			continue
		}
		if values == nil {
			values = make(map[int32]MetricValue)
		}
		values[entry.MetricID] = v
	}
	return values
}

// ExtractPhases returns one PhaseMetric per declared planning phase, in
// document order.
func ExtractPhases(doc profile.Document) []PhaseMetric {
	var phases []PhaseMetric

	for _, phase := range doc.PlanPhases {
		name := phase.PhaseName
		if name == "" {
			name = "Unknown"
		}
		phases = append(phases, PhaseMetric{
			PhaseName:      name,
			DurationMillis: phase.DurationMillis,
		})
	}

	return phases
}
