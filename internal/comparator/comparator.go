package comparator

import (
	"math"

	"github.com/jacobarthurs/dremprof/internal/analyzer"
	"github.com/jacobarthurs/dremprof/internal/metrics"
)

type Comparator struct {
	// Threshold is the percentage change below which a delta is treated
	// as noise.
	Threshold float64
}

// Compare diffs two analyzed captures of the same query, typically taken
// before and after a tuning change.
func (c *Comparator) Compare(old, new analyzer.Report) ComparisonResult {
	summary := Summary{
		OldQueryMillis: old.Summary.QueryMillis,
		NewQueryMillis: new.Summary.QueryMillis,
		QueryPct:       pctChange(float64(old.Summary.QueryMillis), float64(new.Summary.QueryMillis)),
		QueryDir:       c.direction(float64(old.Summary.QueryMillis), float64(new.Summary.QueryMillis)),

		OldPlanningMillis: old.Summary.PlanningMillis,
		NewPlanningMillis: new.Summary.PlanningMillis,
		PlanningDir:       c.direction(float64(old.Summary.PlanningMillis), float64(new.Summary.PlanningMillis)),

		OldOperatorTime: old.Summary.TotalOperatorTime,
		NewOperatorTime: new.Summary.TotalOperatorTime,
		OperatorTimePct: pctChange(float64(old.Summary.TotalOperatorTime), float64(new.Summary.TotalOperatorTime)),
		OperatorTimeDir: c.direction(float64(old.Summary.TotalOperatorTime), float64(new.Summary.TotalOperatorTime)),

		OldAnomalyCount: len(old.Anomalies),
		NewAnomalyCount: len(new.Anomalies),
	}

	operators := c.diffOperators(old.Operators, new.Operators)
	phases := c.diffPhases(old.Phases, new.Phases)

	for _, d := range operators {
		switch d.ChangeType {
		case Modified:
			summary.OperatorsModified++
		case Added:
			summary.OperatorsAdded++
		case Removed:
			summary.OperatorsRemoved++
		}
	}

	summary.Verdict = verdict(summary)

	return ComparisonResult{
		Operators: operators,
		Phases:    phases,
		Summary:   summary,
	}
}

type operatorGroup struct {
	count      int
	nanos      int64
	records    int64
	peakMemory int64
}

// groupByName aggregates operator instances per operator type, keeping
// first-seen name order so the diff output is stable.
func groupByName(operators []metrics.OperatorMetric) (map[string]*operatorGroup, []string) {
	groups := make(map[string]*operatorGroup)
	var order []string

	for _, op := range operators {
		g, ok := groups[op.OperatorName]
		if !ok {
			g = &operatorGroup{}
			groups[op.OperatorName] = g
			order = append(order, op.OperatorName)
		}
		g.count++
		g.nanos += op.TotalNanos
		g.records += op.InputRecords
		g.peakMemory += op.PeakMemory
	}

	return groups, order
}

func (c *Comparator) diffOperators(oldOps, newOps []metrics.OperatorMetric) []OperatorDelta {
	oldGroups, oldOrder := groupByName(oldOps)
	newGroups, newOrder := groupByName(newOps)

	var deltas []OperatorDelta

	for _, name := range oldOrder {
		og := oldGroups[name]
		ng, ok := newGroups[name]
		if !ok {
			deltas = append(deltas, OperatorDelta{
				OperatorName:  name,
				ChangeType:    Removed,
				OldCount:      og.count,
				OldNanos:      og.nanos,
				OldRecords:    og.records,
				OldPeakMemory: og.peakMemory,
			})
			continue
		}

		delta := OperatorDelta{
			OperatorName:  name,
			ChangeType:    Modified,
			OldCount:      og.count,
			NewCount:      ng.count,
			OldNanos:      og.nanos,
			NewNanos:      ng.nanos,
			NanosDelta:    ng.nanos - og.nanos,
			NanosPct:      pctChange(float64(og.nanos), float64(ng.nanos)),
			NanosDir:      c.direction(float64(og.nanos), float64(ng.nanos)),
			OldRecords:    og.records,
			NewRecords:    ng.records,
			OldPeakMemory: og.peakMemory,
			NewPeakMemory: ng.peakMemory,
		}
		if math.Abs(delta.NanosPct) <= c.threshold() {
			delta.ChangeType = NoChange
		}
		deltas = append(deltas, delta)
	}

	for _, name := range newOrder {
		if _, ok := oldGroups[name]; ok {
			continue
		}
		ng := newGroups[name]
		deltas = append(deltas, OperatorDelta{
			OperatorName:  name,
			ChangeType:    Added,
			NewCount:      ng.count,
			NewNanos:      ng.nanos,
			NewRecords:    ng.records,
			NewPeakMemory: ng.peakMemory,
		})
	}

	return deltas
}

func (c *Comparator) diffPhases(oldPhases, newPhases []metrics.PhaseMetric) []PhaseDelta {
	oldByName := make(map[string]int64)
	var oldOrder []string
	for _, p := range oldPhases {
		if _, ok := oldByName[p.PhaseName]; !ok {
			oldOrder = append(oldOrder, p.PhaseName)
		}
		oldByName[p.PhaseName] += p.DurationMillis
	}

	newByName := make(map[string]int64)
	var newOrder []string
	for _, p := range newPhases {
		if _, ok := newByName[p.PhaseName]; !ok {
			newOrder = append(newOrder, p.PhaseName)
		}
		newByName[p.PhaseName] += p.DurationMillis
	}

	var deltas []PhaseDelta

	for _, name := range oldOrder {
		oldMillis := oldByName[name]
		newMillis, ok := newByName[name]
		if !ok {
			deltas = append(deltas, PhaseDelta{
				PhaseName:  name,
				ChangeType: Removed,
				OldMillis:  oldMillis,
			})
			continue
		}

		delta := PhaseDelta{
			PhaseName:   name,
			ChangeType:  Modified,
			OldMillis:   oldMillis,
			NewMillis:   newMillis,
			MillisDelta: newMillis - oldMillis,
			MillisPct:   pctChange(float64(oldMillis), float64(newMillis)),
			MillisDir:   c.direction(float64(oldMillis), float64(newMillis)),
		}
		if math.Abs(delta.MillisPct) <= c.threshold() {
			delta.ChangeType = NoChange
		}
		deltas = append(deltas, delta)
	}

	for _, name := range newOrder {
		if _, ok := oldByName[name]; ok {
			continue
		}
		deltas = append(deltas, PhaseDelta{
			PhaseName:  name,
			ChangeType: Added,
			NewMillis:  newByName[name],
		})
	}

	return deltas
}

func (c *Comparator) threshold() float64 {
	if c.Threshold > 0 {
		return c.Threshold
	}
	return SignificanceThresholdPct
}

// direction treats lower as better: every compared metric here is a
// time, a count of work, or memory.
func (c *Comparator) direction(old, new float64) Direction {
	pct := pctChange(old, new)
	if math.Abs(pct) <= c.threshold() {
		return Unchanged
	}
	if new < old {
		return Improved
	}
	return Regressed
}

func verdict(s Summary) string {
	switch {
	case s.QueryDir == Improved && s.OperatorTimeDir != Regressed:
		return "Query improved"
	case s.QueryDir == Regressed && s.OperatorTimeDir != Improved:
		return "Query regressed"
	case s.QueryDir == Unchanged && s.OperatorTimeDir == Unchanged:
		return "No significant change"
	default:
		return "Mixed results"
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
