package metrics

// Derived statistics over extracted metrics. These are the single source
// of truth for both the ranked report summary and the bottleneck rules;
// every division is guarded so an empty or zero input degrades to 0
// rather than an error or a non-finite value.

// TotalNanos sums operator total time.
func TotalNanos(operators []OperatorMetric) int64 {
	var total int64
	for _, op := range operators {
		total += op.TotalNanos
	}
	return total
}

// MaxNanos returns the largest operator total time, 0 for an empty input.
func MaxNanos(operators []OperatorMetric) int64 {
	var max int64
	for _, op := range operators {
		if op.TotalNanos > max {
			max = op.TotalNanos
		}
	}
	return max
}

// AvgNanos returns the mean operator total time truncated to integer
// nanoseconds, 0 for an empty input.
func AvgNanos(operators []OperatorMetric) int64 {
	if len(operators) == 0 {
		return 0
	}
	return TotalNanos(operators) / int64(len(operators))
}

// TotalPhaseMillis sums phase durations.
func TotalPhaseMillis(phases []PhaseMetric) int64 {
	var total int64
	for _, p := range phases {
		total += p.DurationMillis
	}
	return total
}

// MaxPhaseMillis returns the largest phase duration, 0 for an empty input.
func MaxPhaseMillis(phases []PhaseMetric) int64 {
	var max int64
	for _, p := range phases {
		if p.DurationMillis > max {
			max = p.DurationMillis
		}
	}
	return max
}

// Throughput returns input records per second of active processing time,
// 0 when the operator recorded no process time.
func Throughput(op OperatorMetric) float64 {
	if op.ProcessNanos <= 0 {
		return 0
	}
	return float64(op.InputRecords) / (float64(op.ProcessNanos) / 1e9)
}

// Selectivity returns outputRecords/inputRecords. The ratio is undefined
// when the operator saw no input; ok reports whether it is defined.
func Selectivity(op OperatorMetric) (ratio float64, ok bool) {
	if op.InputRecords <= 0 {
		return 0, false
	}
	return float64(op.OutputRecords) / float64(op.InputRecords), true
}

// PercentOfTotal returns component/total as a percentage, 0 when total
// is not positive.
func PercentOfTotal(component, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(component) / float64(total) * 100
}
