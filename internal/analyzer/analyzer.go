package analyzer

import (
	"sort"

	"github.com/jacobarthurs/dremprof/internal/metrics"
	"github.com/jacobarthurs/dremprof/internal/profile"
)

// Analyze runs the full pipeline over one captured profile document:
// extraction, ranking, summary statistics, and bottleneck
// classification. Pure and deterministic; the document is never
// modified.
func Analyze(doc profile.Document, th Thresholds) Report {
	operators := metrics.ExtractOperators(doc)
	phases := metrics.ExtractPhases(doc)

	rankOperators(operators)
	rankPhases(phases)

	report := Report{
		QueryID:   doc.ID.Part1,
		User:      doc.User,
		Operators: operators,
		Phases:    phases,
		Summary:   summarize(doc, operators, phases),
		Anomalies: Classify(operators, th),
	}

	if len(operators) > 0 {
		report.LongestOperator = &operators[0]
	}
	if len(phases) > 0 {
		report.LongestPhase = &phases[0]
	}

	return report
}

// rankOperators orders descending by total time. The sort is stable so
// ties keep extraction order (first seen wins).
func rankOperators(operators []metrics.OperatorMetric) {
	sort.SliceStable(operators, func(i, j int) bool {
		return operators[i].TotalNanos > operators[j].TotalNanos
	})
}

func rankPhases(phases []metrics.PhaseMetric) {
	sort.SliceStable(phases, func(i, j int) bool {
		return phases[i].DurationMillis > phases[j].DurationMillis
	})
}

func summarize(doc profile.Document, operators []metrics.OperatorMetric, phases []metrics.PhaseMetric) Summary {
	s := Summary{
		OperatorCount:     len(operators),
		TotalOperatorTime: metrics.TotalNanos(operators),
		MaxOperatorTime:   metrics.MaxNanos(operators),
		AvgOperatorTime:   metrics.AvgNanos(operators),
		PhaseCount:        len(phases),
		TotalPhaseTime:    metrics.TotalPhaseMillis(phases),
		MaxPhaseTime:      metrics.MaxPhaseMillis(phases),
	}

	if doc.End > doc.Start {
		s.QueryMillis = doc.End - doc.Start
	}
	if doc.PlanningEnd > doc.PlanningStart {
		s.PlanningMillis = doc.PlanningEnd - doc.PlanningStart
	}

	var totalProcess int64
	for _, op := range operators {
		s.TotalInputRecords += op.InputRecords
		s.TotalInputBytes += op.InputBytes
		s.TotalPeakMemory += op.PeakMemory
		totalProcess += op.ProcessNanos
	}
	if totalProcess > 0 {
		s.OverallThroughput = float64(s.TotalInputRecords) / (float64(totalProcess) / 1e9)
	}

	return s
}
