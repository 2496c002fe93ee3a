package output

import (
	"fmt"
	"io"

	"github.com/jacobarthurs/dremprof/internal/analyzer"
	"github.com/jacobarthurs/dremprof/internal/comparator"
	"github.com/jacobarthurs/dremprof/internal/metrics"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

type textWriter struct {
	w   io.Writer
	err error
}

func (tw *textWriter) printf(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}

// RenderAnalysisText writes the full human-readable report. topN bounds
// the operator and phase tables and the detailed breakdown.
func RenderAnalysisText(w io.Writer, report analyzer.Report, topN int) error {
	tw := &textWriter{w: w}

	tw.renderHeader(report)
	tw.renderSummary(report.Summary)
	tw.renderTopOperators(report.Operators, topN)
	tw.renderTopPhases(report.Phases, topN)
	tw.renderBreakdown(report.Operators, topN)
	tw.renderAnomalies(report.Anomalies)
	tw.renderLongest(report)

	return tw.err
}

func (tw *textWriter) renderHeader(report analyzer.Report) {
	queryID := report.QueryID
	if queryID == "" {
		queryID = "Unknown"
	}
	user := report.User
	if user == "" {
		user = "Unknown"
	}
	tw.printf("%s%sQuery Profile%s\n\n", colorBold, colorCyan, colorReset)
	tw.printf("  Query ID: %s\n", queryID)
	tw.printf("  User:     %s\n\n", user)
}

func (tw *textWriter) renderSummary(s analyzer.Summary) {
	tw.printf("%s%sSummary%s\n\n", colorBold, colorCyan, colorReset)
	if s.QueryMillis > 0 {
		tw.printf("  Total Query Time:    %s\n", metrics.FormatMillis(s.QueryMillis))
	}
	if s.PlanningMillis > 0 {
		tw.printf("  Planning Time:       %s\n", metrics.FormatMillis(s.PlanningMillis))
	}
	if s.OperatorCount > 0 {
		tw.printf("  Total Operator Time: %s\n", metrics.FormatNanos(s.TotalOperatorTime))
		tw.printf("  Max Operator Time:   %s\n", metrics.FormatNanos(s.MaxOperatorTime))
		tw.printf("  Avg Operator Time:   %s\n", metrics.FormatNanos(s.AvgOperatorTime))
		tw.printf("  Operators:           %d\n", s.OperatorCount)
		tw.printf("  Input Records:       %s\n", metrics.FormatRecords(s.TotalInputRecords))
		tw.printf("  Input Bytes:         %s\n", metrics.FormatBytes(s.TotalInputBytes))
		tw.printf("  Peak Memory (sum):   %s\n", metrics.FormatBytes(s.TotalPeakMemory))
		if s.OverallThroughput > 0 {
			tw.printf("  Overall Throughput:  %.0f rec/sec\n", s.OverallThroughput)
		}
	}
	if s.PhaseCount > 0 {
		tw.printf("  Total Phase Time:    %s\n", metrics.FormatMillis(s.TotalPhaseTime))
		tw.printf("  Max Phase Time:      %s\n", metrics.FormatMillis(s.MaxPhaseTime))
		tw.printf("  Phases:              %d\n", s.PhaseCount)
	}
	tw.printf("\n")
}

func (tw *textWriter) renderTopOperators(operators []metrics.OperatorMetric, topN int) {
	if len(operators) == 0 {
		return
	}
	n := min(topN, len(operators))

	tw.printf("%s%sTop %d Operators%s\n\n", colorBold, colorCyan, n, colorReset)
	tw.printf("  %-4s %-10s %-5s %-24s %-10s %-10s %-10s %-10s\n",
		"Rank", "Fragment", "Op", "Type", "Setup", "Process", "Wait", "Total")

	for i, op := range operators[:n] {
		tw.printf("  %-4d %-10s %-5d %-24s %-10s %-10s %-10s %-10s\n",
			i+1,
			fmt.Sprintf("%d-%d", op.FragmentID, op.MinorFragmentID),
			op.OperatorID,
			op.OperatorName,
			metrics.FormatNanos(op.SetupNanos),
			metrics.FormatNanos(op.ProcessNanos),
			metrics.FormatNanos(op.WaitNanos),
			metrics.FormatNanos(op.TotalNanos))
	}
	tw.printf("\n")
}

func (tw *textWriter) renderTopPhases(phases []metrics.PhaseMetric, topN int) {
	if len(phases) == 0 {
		return
	}
	n := min(topN, len(phases))

	tw.printf("%s%sTop %d Phases%s\n\n", colorBold, colorCyan, n, colorReset)
	tw.printf("  %-4s %-40s %-12s\n", "Rank", "Phase", "Duration")
	for i, p := range phases[:n] {
		tw.printf("  %-4d %-40s %-12s\n", i+1, p.PhaseName, metrics.FormatMillis(p.DurationMillis))
	}
	tw.printf("\n")
}

// Known TableFunction custom metric ids.
const (
	tableFunctionOpType int32 = 53
	metricIDReaders     int32 = 1
	metricIDBytesRead   int32 = 10
	metricIDAsyncReads  int32 = 12
)

func (tw *textWriter) renderBreakdown(operators []metrics.OperatorMetric, topN int) {
	if len(operators) == 0 {
		return
	}
	n := min(topN, len(operators))

	tw.printf("%s%sDetailed Breakdown%s\n", colorBold, colorCyan, colorReset)

	for i, op := range operators[:n] {
		tw.printf("\n  #%d Fragment %d-%d, Operator %d (%s)\n",
			i+1, op.FragmentID, op.MinorFragmentID, op.OperatorID, op.OperatorName)
		tw.printf("     Total: %s (setup %s %.1f%%, process %s %.1f%%, wait %s %.1f%%)\n",
			metrics.FormatNanos(op.TotalNanos),
			metrics.FormatNanos(op.SetupNanos), metrics.PercentOfTotal(op.SetupNanos, op.TotalNanos),
			metrics.FormatNanos(op.ProcessNanos), metrics.PercentOfTotal(op.ProcessNanos, op.TotalNanos),
			metrics.FormatNanos(op.WaitNanos), metrics.PercentOfTotal(op.WaitNanos, op.TotalNanos))
		tw.printf("     Input:  %s records, %s\n",
			metrics.FormatRecords(op.InputRecords), metrics.FormatBytes(op.InputBytes))
		tw.printf("     Output: %s records, %s\n",
			metrics.FormatRecords(op.OutputRecords), metrics.FormatBytes(op.OutputBytes))
		if op.PeakMemory > 0 {
			tw.printf("     Peak Memory: %s\n", metrics.FormatBytes(op.PeakMemory))
		}
		tw.renderTableFunctionMetrics(op)
	}
	tw.printf("\n")
}

func (tw *textWriter) renderTableFunctionMetrics(op metrics.OperatorMetric) {
	if op.OperatorType != tableFunctionOpType || len(op.CustomMetrics) == 0 {
		return
	}
	if v, ok := op.CustomMetrics[metricIDReaders]; ok {
		tw.printf("     Readers: %d\n", v.Long)
	}
	if v, ok := op.CustomMetrics[metricIDBytesRead]; ok {
		tw.printf("     Bytes Read: %s\n", metrics.FormatBytes(v.Long))
	}
	if v, ok := op.CustomMetrics[metricIDAsyncReads]; ok {
		tw.printf("     Async Reads: %d\n", v.Long)
	}
}

func (tw *textWriter) renderAnomalies(anomalies []analyzer.Anomaly) {
	if len(anomalies) == 0 {
		tw.printf("%s%sNo bottlenecks found.%s\n", colorBold, colorGreen, colorReset)
		return
	}

	tw.printf("%s%sBottlenecks (%d)%s\n", colorBold, colorCyan, len(anomalies), colorReset)

	kinds := []analyzer.AnomalyKind{
		analyzer.HighWait,
		analyzer.HighMemory,
		analyzer.HighVolume,
		analyzer.LowSelectivity,
		analyzer.ExpensiveJoin,
		analyzer.ExpensiveSort,
	}

	for _, kind := range kinds {
		var matched []analyzer.Anomaly
		for _, a := range anomalies {
			if a.Kind == kind {
				matched = append(matched, a)
			}
		}
		if len(matched) == 0 {
			continue
		}

		tw.printf("\n  %s%s%s\n", colorYellow, kind.Title(), colorReset)
		for _, a := range matched {
			tw.printf("  %s→ %s%s\n", colorDim, a.Message, colorReset)
		}
	}
	tw.printf("\n")
}

func (tw *textWriter) renderLongest(report analyzer.Report) {
	if op := report.LongestOperator; op != nil {
		tw.printf("%sLongest operator:%s Fragment %d-%d, Operator %d (%s): %s\n",
			colorBold, colorReset,
			op.FragmentID, op.MinorFragmentID, op.OperatorID, op.OperatorName,
			metrics.FormatNanos(op.TotalNanos))
	}
	if p := report.LongestPhase; p != nil {
		tw.printf("%sLongest phase:%s %s: %s\n",
			colorBold, colorReset, p.PhaseName, metrics.FormatMillis(p.DurationMillis))
	}
}

// RenderComparisonText writes the human-readable diff of two captures.
func RenderComparisonText(w io.Writer, result comparator.ComparisonResult) error {
	tw := &textWriter{w: w}
	s := result.Summary

	tw.printf("%s%sSummary%s\n\n", colorBold, colorCyan, colorReset)
	if s.OldQueryMillis > 0 || s.NewQueryMillis > 0 {
		tw.printf("  Query Time:    %s\n", formatMillisDelta(s.OldQueryMillis, s.NewQueryMillis, s.QueryPct, s.QueryDir))
	}
	if s.OldPlanningMillis > 0 || s.NewPlanningMillis > 0 {
		tw.printf("  Planning Time: %s\n", formatMillisDelta(s.OldPlanningMillis, s.NewPlanningMillis,
			pctChange(float64(s.OldPlanningMillis), float64(s.NewPlanningMillis)), s.PlanningDir))
	}
	tw.printf("  Operator Time: %s\n", formatNanosDelta(s.OldOperatorTime, s.NewOperatorTime, s.OperatorTimePct, s.OperatorTimeDir))
	tw.printf("  Bottlenecks:   %d → %d\n\n", s.OldAnomalyCount, s.NewAnomalyCount)

	changes := s.OperatorsModified + s.OperatorsAdded + s.OperatorsRemoved
	if changes == 0 {
		tw.printf("%s%sNo significant operator changes.%s\n", colorBold, colorGreen, colorReset)
	} else {
		tw.printf("  Changes: %d modified, %d added, %d removed\n\n",
			s.OperatorsModified, s.OperatorsAdded, s.OperatorsRemoved)

		tw.printf("%s%sOperator Details%s\n\n", colorBold, colorCyan, colorReset)
		for _, d := range result.Operators {
			tw.renderOperatorDelta(d)
		}
	}

	tw.renderPhaseDeltas(result.Phases)
	tw.renderVerdict(s)

	return tw.err
}

func (tw *textWriter) renderOperatorDelta(d comparator.OperatorDelta) {
	switch d.ChangeType {
	case comparator.NoChange:
		return
	case comparator.Added:
		tw.printf("  %s+ %s%s (%d instances, %s)\n",
			colorGreen, d.OperatorName, colorReset, d.NewCount, metrics.FormatNanos(d.NewNanos))
	case comparator.Removed:
		tw.printf("  %s- %s%s (%d instances, %s)\n",
			colorRed, d.OperatorName, colorReset, d.OldCount, metrics.FormatNanos(d.OldNanos))
	case comparator.Modified:
		tw.printf("  %s~ %s%s\n", colorYellow, d.OperatorName, colorReset)
		tw.printf("    time: %s\n", formatNanosDelta(d.OldNanos, d.NewNanos, d.NanosPct, d.NanosDir))
		if d.OldRecords != d.NewRecords {
			tw.printf("    records: %s → %s\n",
				metrics.FormatRecords(d.OldRecords), metrics.FormatRecords(d.NewRecords))
		}
		if d.OldPeakMemory != d.NewPeakMemory {
			tw.printf("    peak memory: %s → %s\n",
				metrics.FormatBytes(d.OldPeakMemory), metrics.FormatBytes(d.NewPeakMemory))
		}
	}
}

func (tw *textWriter) renderPhaseDeltas(phases []comparator.PhaseDelta) {
	var changed []comparator.PhaseDelta
	for _, d := range phases {
		if d.ChangeType != comparator.NoChange {
			changed = append(changed, d)
		}
	}
	if len(changed) == 0 {
		return
	}

	tw.printf("\n%s%sPhase Details%s\n\n", colorBold, colorCyan, colorReset)
	for _, d := range changed {
		switch d.ChangeType {
		case comparator.Added:
			tw.printf("  %s+ %s%s (%s)\n", colorGreen, d.PhaseName, colorReset, metrics.FormatMillis(d.NewMillis))
		case comparator.Removed:
			tw.printf("  %s- %s%s (%s)\n", colorRed, d.PhaseName, colorReset, metrics.FormatMillis(d.OldMillis))
		default:
			tw.printf("  %s~ %s%s: %s\n", colorYellow, d.PhaseName, colorReset,
				formatMillisDelta(d.OldMillis, d.NewMillis, d.MillisPct, d.MillisDir))
		}
	}
}

func (tw *textWriter) renderVerdict(s comparator.Summary) {
	var color string
	switch {
	case s.QueryDir == comparator.Improved && s.OperatorTimeDir != comparator.Regressed:
		color = colorGreen
	case s.QueryDir == comparator.Regressed:
		color = colorRed
	case s.QueryDir == comparator.Improved || s.OperatorTimeDir == comparator.Improved:
		color = colorYellow
	}
	if color != "" {
		tw.printf("\n%sVerdict: %s%s\n", color, s.Verdict, colorReset)
	} else {
		tw.printf("\nVerdict: %s\n", s.Verdict)
	}
}

func formatMillisDelta(old, new int64, pct float64, dir comparator.Direction) string {
	return formatDelta(metrics.FormatMillis(old), metrics.FormatMillis(new), pct, dir)
}

func formatNanosDelta(old, new int64, pct float64, dir comparator.Direction) string {
	return formatDelta(metrics.FormatNanos(old), metrics.FormatNanos(new), pct, dir)
}

func formatDelta(oldStr, newStr string, pct float64, dir comparator.Direction) string {
	color := dirColor(dir)
	arrow := dirArrow(dir)
	return fmt.Sprintf("%s → %s%s %s (%+.1f%%)%s", oldStr, color, newStr, arrow, pct, colorReset)
}

func dirColor(d comparator.Direction) string {
	switch d {
	case comparator.Improved:
		return colorGreen
	case comparator.Regressed:
		return colorRed
	default:
		return ""
	}
}

func dirArrow(d comparator.Direction) string {
	switch d {
	case comparator.Improved:
		return "↓"
	case comparator.Regressed:
		return "↑"
	default:
		return ""
	}
}

func pctChange(old, new float64) float64 {
	if old == 0 {
		if new == 0 {
			return 0
		}
		return 100
	}
	return ((new - old) / old) * 100
}
