package profile

// Document is the consumed shape of a captured Dremio query profile.
// Only the fields the analysis reads are modeled; everything else in the
// capture is ignored by the decoder.
type Document struct {
	ID            QueryID    `json:"id"`
	User          string     `json:"user,omitempty"`
	Start         int64      `json:"start,omitempty"`
	End           int64      `json:"end,omitempty"`
	PlanningStart int64      `json:"planningStart,omitempty"`
	PlanningEnd   int64      `json:"planningEnd,omitempty"`
	Fragments     []Fragment `json:"fragmentProfile,omitempty"`
	PlanPhases    []Phase    `json:"planPhases,omitempty"`
}

type QueryID struct {
	Part1 string `json:"part1,omitempty"`
}

// Fragment is one major fragment: a parallelizable stage of the
// distributed plan, split into minor fragments (parallel instances).
type Fragment struct {
	MajorFragmentID int32           `json:"majorFragmentId"`
	MinorFragments  []MinorFragment `json:"minorFragmentProfile,omitempty"`
}

type MinorFragment struct {
	MinorFragmentID int32             `json:"minorFragmentId"`
	Operators       []OperatorProfile `json:"operatorProfile,omitempty"`
}

// OperatorProfile is the raw per-operator record. Timing counters are
// nanoseconds; absent fields decode to zero.
type OperatorProfile struct {
	OperatorID   int32 `json:"operatorId"`
	OperatorType int32 `json:"operatorType"`

	SetupNanos   int64 `json:"setupNanos,omitempty"`
	ProcessNanos int64 `json:"processNanos,omitempty"`
	WaitNanos    int64 `json:"waitNanos,omitempty"`

	InputProfile  []StreamProfile `json:"inputProfile,omitempty"`
	OutputRecords int64           `json:"outputRecords,omitempty"`
	OutputBytes   int64           `json:"outputBytes,omitempty"`

	PeakLocalMemoryAllocated int64 `json:"peakLocalMemoryAllocated,omitempty"`

	Metrics []MetricEntry `json:"metric,omitempty"`
}

// StreamProfile is one declared input stream of an operator.
type StreamProfile struct {
	Records int64 `json:"records,omitempty"`
	Size    int64 `json:"size,omitempty"`
}

// MetricEntry is an operator-type-specific counter. Exactly one of
// LongValue/DoubleValue is set on a well-formed entry; entries carrying
// neither are skipped during extraction.
type MetricEntry struct {
	MetricID    int32    `json:"metricId"`
	LongValue   *int64   `json:"longValue,omitempty"`
	DoubleValue *float64 `json:"doubleValue,omitempty"`
}

type Phase struct {
	PhaseName      string `json:"phaseName,omitempty"`
	DurationMillis int64  `json:"durationMillis,omitempty"`
}
