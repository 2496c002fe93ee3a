package comparator

type Direction int

const (
	Unchanged Direction = 0
	Improved  Direction = 1
	Regressed Direction = 2

	SignificanceThresholdPct = 1.0
)

func (d Direction) String() string {
	switch d {
	case Improved:
		return "improved"
	case Regressed:
		return "regressed"
	default:
		return "unchanged"
	}
}

type ChangeType int

const (
	NoChange ChangeType = 0
	Modified ChangeType = 1
	Added    ChangeType = 2
	Removed  ChangeType = 3
)

func (c ChangeType) String() string {
	switch c {
	case Modified:
		return "modified"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "no_change"
	}
}

// OperatorDelta aggregates every instance of one operator type across
// the two captures (fragment layout may differ between runs, so the
// comparison keys on the operator name rather than fragment identity).
type OperatorDelta struct {
	OperatorName string
	ChangeType   ChangeType

	OldCount int
	NewCount int

	OldNanos   int64
	NewNanos   int64
	NanosDelta int64
	NanosPct   float64
	NanosDir   Direction

	OldRecords int64
	NewRecords int64

	OldPeakMemory int64
	NewPeakMemory int64
}

type PhaseDelta struct {
	PhaseName  string
	ChangeType ChangeType

	OldMillis   int64
	NewMillis   int64
	MillisDelta int64
	MillisPct   float64
	MillisDir   Direction
}

type ComparisonResult struct {
	Operators []OperatorDelta
	Phases    []PhaseDelta
	Summary   Summary
}

type Summary struct {
	OldQueryMillis int64
	NewQueryMillis int64
	QueryPct       float64
	QueryDir       Direction

	OldPlanningMillis int64
	NewPlanningMillis int64
	PlanningDir       Direction

	OldOperatorTime int64
	NewOperatorTime int64
	OperatorTimePct float64
	OperatorTimeDir Direction

	OldAnomalyCount int
	NewAnomalyCount int

	OperatorsModified int
	OperatorsAdded    int
	OperatorsRemoved  int

	Verdict string
}
