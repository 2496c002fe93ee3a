package analyzer

import (
	"fmt"
	"strings"

	"github.com/jacobarthurs/dremprof/internal/metrics"
)

// Default classification thresholds. Heuristic tuning knobs, overridable
// via the thresholds config file.
const (
	DefaultHighWaitNanos          = 1_000_000
	DefaultHighMemoryBytes        = 1_000_000
	DefaultHighVolumeRecords      = 1_000_000
	DefaultLowSelectivityMinInput = 1_000
	DefaultLowSelectivityRatio    = 0.01
	DefaultExpensiveJoinNanos     = 1_000_000_000
	DefaultExpensiveSortBytes     = 50_000_000
)

// Thresholds parameterizes the bottleneck rules.
type Thresholds struct {
	HighWaitNanos          int64
	HighMemoryBytes        int64
	HighVolumeRecords      int64
	LowSelectivityMinInput int64
	LowSelectivityRatio    float64
	ExpensiveJoinNanos     int64
	ExpensiveSortBytes     int64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		HighWaitNanos:          DefaultHighWaitNanos,
		HighMemoryBytes:        DefaultHighMemoryBytes,
		HighVolumeRecords:      DefaultHighVolumeRecords,
		LowSelectivityMinInput: DefaultLowSelectivityMinInput,
		LowSelectivityRatio:    DefaultLowSelectivityRatio,
		ExpensiveJoinNanos:     DefaultExpensiveJoinNanos,
		ExpensiveSortBytes:     DefaultExpensiveSortBytes,
	}
}

type Rule func(op *metrics.OperatorMetric, th Thresholds) []Anomaly

var defaultRules = []Rule{
	checkHighWait,
	checkHighMemory,
	checkHighVolume,
	checkLowSelectivity,
	checkExpensiveJoin,
	checkExpensiveSort,
}

// Classify evaluates every rule over the full operator sequence. Rules
// are independent; several may fire for the same operator. An empty
// result means nothing was flagged.
func Classify(operators []metrics.OperatorMetric, th Thresholds) []Anomaly {
	var anomalies []Anomaly
	for i := range operators {
		for _, rule := range defaultRules {
			anomalies = append(anomalies, rule(&operators[i], th)...)
		}
	}
	return anomalies
}

func checkHighWait(op *metrics.OperatorMetric, th Thresholds) []Anomaly {
	if op.WaitNanos <= op.ProcessNanos || op.WaitNanos <= th.HighWaitNanos {
		return nil
	}

	waitPct := metrics.PercentOfTotal(op.WaitNanos, op.TotalNanos)

	return []Anomaly{{
		Kind:     HighWait,
		Operator: refFor(op),
		Value:    float64(op.WaitNanos),
		Message: fmt.Sprintf("%s waited %s (%.1f%% of total time), exceeding its process time of %s",
			operatorLabel(op), metrics.FormatNanos(op.WaitNanos), waitPct, metrics.FormatNanos(op.ProcessNanos)),
	}}
}

func checkHighMemory(op *metrics.OperatorMetric, th Thresholds) []Anomaly {
	if op.PeakMemory <= th.HighMemoryBytes {
		return nil
	}

	return []Anomaly{{
		Kind:     HighMemory,
		Operator: refFor(op),
		Value:    float64(op.PeakMemory),
		Message: fmt.Sprintf("%s allocated %s peak memory",
			operatorLabel(op), metrics.FormatBytes(op.PeakMemory)),
	}}
}

func checkHighVolume(op *metrics.OperatorMetric, th Thresholds) []Anomaly {
	if op.InputRecords <= th.HighVolumeRecords {
		return nil
	}

	return []Anomaly{{
		Kind:     HighVolume,
		Operator: refFor(op),
		Value:    float64(op.InputRecords),
		Message: fmt.Sprintf("%s processed %s records at %.0f rec/sec",
			operatorLabel(op), metrics.FormatRecords(op.InputRecords), metrics.Throughput(*op)),
	}}
}

func checkLowSelectivity(op *metrics.OperatorMetric, th Thresholds) []Anomaly {
	if op.InputRecords <= th.LowSelectivityMinInput || op.OutputRecords <= 0 {
		return nil
	}

	selectivity, ok := metrics.Selectivity(*op)
	if !ok || selectivity >= th.LowSelectivityRatio {
		return nil
	}

	return []Anomaly{{
		Kind:     LowSelectivity,
		Operator: refFor(op),
		Value:    selectivity,
		Message: fmt.Sprintf("%s kept %.3f%% of its input (%s -> %s records)",
			operatorLabel(op), selectivity*100,
			metrics.FormatRecords(op.InputRecords), metrics.FormatRecords(op.OutputRecords)),
	}}
}

func checkExpensiveJoin(op *metrics.OperatorMetric, th Thresholds) []Anomaly {
	if !strings.Contains(op.OperatorName, "Join") || op.TotalNanos <= th.ExpensiveJoinNanos {
		return nil
	}

	return []Anomaly{{
		Kind:     ExpensiveJoin,
		Operator: refFor(op),
		Value:    float64(op.TotalNanos),
		Message: fmt.Sprintf("%s spent %s joining %s records",
			operatorLabel(op), metrics.FormatNanos(op.TotalNanos), metrics.FormatRecords(op.InputRecords)),
	}}
}

func checkExpensiveSort(op *metrics.OperatorMetric, th Thresholds) []Anomaly {
	if !strings.Contains(op.OperatorName, "Sort") || op.PeakMemory <= th.ExpensiveSortBytes {
		return nil
	}

	return []Anomaly{{
		Kind:     ExpensiveSort,
		Operator: refFor(op),
		Value:    float64(op.PeakMemory),
		Message: fmt.Sprintf("%s used %s sorting %s records",
			operatorLabel(op), metrics.FormatBytes(op.PeakMemory), metrics.FormatRecords(op.InputRecords)),
	}}
}

func refFor(op *metrics.OperatorMetric) *OperatorRef {
	return &OperatorRef{
		FragmentID:      op.FragmentID,
		MinorFragmentID: op.MinorFragmentID,
		OperatorID:      op.OperatorID,
	}
}

func operatorLabel(op *metrics.OperatorMetric) string {
	return fmt.Sprintf("Op %d (%s) in fragment %d-%d",
		op.OperatorID, op.OperatorName, op.FragmentID, op.MinorFragmentID)
}
